// Package cancel реализует HTTP-обработчик отмены заказа.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Handler обрабатывает запросы на отмену заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены заказа.
type Service interface {
	Cancel(ctx context.Context, orderUID, userUID string) (*models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить заказ
// @Description Переводит pending-заказ текущего пользователя в статус cancelled. Заказ в другом статусе отменить нельзя.
// @Tags Orders
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор заказа"
// @Success 200 {object} response.Response "Отмененный заказ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден или не в статусе pending"
// @Router /orders/{id}/cancel [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.cancel"

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

	orderUID := chi.URLParam(r, "id")
	if orderUID == "" {
		log.Error("missing order id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing order id in url"))
		return
	}

	result, err := h.service.Cancel(r.Context(), orderUID, uid)
	if err != nil {
		log.Error("failed to cancel order", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("order cancelled", slog.String("uid", result.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order": result,
	}))
}
