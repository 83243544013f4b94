// Package categories реализует HTTP-обработчик списка категорий каталога.
package categories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Handler обрабатывает запросы на список категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики категорий каталога.
type Service interface {
	Categories(ctx context.Context) ([]models.CategoryStat, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Категории каталога
// @Description Возвращает категории активных ассистентов с количеством в каждой.
// @Tags Assistants
// @Produce  json
// @Success 200 {object} response.Response "Список категорий"
// @Router /assistants/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.categories"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Categories(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"categories": stats,
	}))
}
