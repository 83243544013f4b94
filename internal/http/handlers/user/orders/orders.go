// Package orders реализует HTTP-обработчик истории заказов пользователя.
package orders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Пагинация истории заказов по умолчанию.
const (
	defaultLimit = 10
	maxLimit     = 100
)

// Handler обрабатывает запросы на историю заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики истории заказов.
type Service interface {
	Orders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История заказов
// @Description Возвращает страницу заказов текущего пользователя, новые первыми.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Success 200 {object} response.Response "Страница заказов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.orders"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("access token required"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	result, total, err := h.service.Orders(r.Context(), uid, limit, (page-1)*limit)
	if err != nil {
		log.Error("failed to list user orders", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.Paginated(result, page, limit, total))
}
