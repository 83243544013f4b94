// Package review реализует HTTP-обработчик отзыва на завершённый заказ.
package review

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/order"
)

// Request — входные данные отзыва.
type Request struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// Handler обрабатывает запросы на создание отзыва.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	Review(ctx context.Context, input order.ReviewInput) (*models.Review, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отзыв на заказ
// @Description Создает отзыв на завершённый заказ текущего пользователя, один отзыв на заказ.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор заказа"
// @Param request body Request true "Оценка и комментарий"
// @Success 201 {object} response.Response "Созданный отзыв"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или повторный отзыв"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Завершённый заказ не найден"
// @Router /orders/{id}/review [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.review"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Review(r.Context(), order.ReviewInput{
		UserUID:  uid,
		OrderUID: orderUID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		log.Error("failed to create review", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("review created", slog.String("uid", created.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"review": created,
	}))
}
