// Package create реализует HTTP-обработчик создания заказа.
//
// Handler принимает JSON-запрос с идентификатором ассистента и составом
// услуг, валидирует данные, создает заказ через бизнес-логику и
// возвращает созданную запись.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/order"
)

// Request — входные данные нового заказа.
type Request struct {
	AssistantID    string          `json:"assistantId" validate:"required,uuid4"`
	ServiceDetails json.RawMessage `json:"serviceDetails"`
	Notes          *string         `json:"notes" validate:"omitempty,max=1000"`
}

// Handler обрабатывает запросы на создание заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания заказа.
type Service interface {
	Create(ctx context.Context, input order.CreateInput) (*models.Order, error)
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
// @Summary Создать заказ
// @Description Создает заказ на активного ассистента со статусом pending и фиксированной суммой.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные нового заказа"
// @Success 201 {object} response.Response "Созданный заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ассистент не найден или неактивен"
// @Router /orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"

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

	created, err := h.service.Create(r.Context(), order.CreateInput{
		UserUID:        uid,
		AssistantUID:   req.AssistantID,
		ServiceDetails: req.ServiceDetails,
		Notes:          req.Notes,
	})
	if err != nil {
		log.Error("failed to create order", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("order created", slog.String("uid", created.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order": created,
	}))
}
