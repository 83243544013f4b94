// Package list реализует HTTP-обработчик списка каталога ассистентов.
//
// Handler читает фильтры и пагинацию из query-параметров, вызывает
// бизнес-логику каталога и возвращает страницу с метаданными.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Пагинация каталога по умолчанию.
const (
	defaultLimit = 12
	maxLimit     = 100
)

// Handler обрабатывает запросы на список ассистентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, filter models.AssistantFilter) ([]*models.AssistantCard, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог ассистентов
// @Description Возвращает страницу активных ассистентов с агрегатами по рейтингу и заказам.
// @Tags Assistants
// @Produce  json
// @Param category query string false "Фильтр по категории"
// @Param search query string false "Поиск по имени и описанию"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(12)
// @Success 200 {object} response.Response "Страница каталога"
// @Router /assistants [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, limit := pagination(r)
	filter := models.AssistantFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	items, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list assistants", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.Paginated(items, page, limit, total))
}

// pagination читает page и limit из query-параметров с дефолтами
// и ограничением сверху.
func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
