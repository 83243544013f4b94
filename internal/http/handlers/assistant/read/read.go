// Package read реализует HTTP-обработчик карточки ассистента по slug.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Handler обрабатывает запросы на карточку ассистента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики карточки ассистента.
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*models.Assistant, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Карточка ассистента
// @Description Возвращает активного ассистента по slug с агрегатами и последними отзывами.
// @Tags Assistants
// @Produce  json
// @Param slug path string true "Slug ассистента"
// @Success 200 {object} response.Response "Карточка ассистента"
// @Failure 404 {object} response.ErrorResponse "Ассистент не найден"
// @Router /assistants/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		log.Error("missing slug in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing slug in url"))
		return
	}

	assistant, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Error("failed to read assistant", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"assistant": assistant,
	}))
}
