// Package demo реализует HTTP-обработчик демо-режима ассистента.
package demo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Request — входные данные демо-запроса.
type Request struct {
	Message string `json:"message" validate:"required,max=500"`
}

// Handler обрабатывает демо-запросы к ассистенту.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики демо-режима.
type Service interface {
	Demo(ctx context.Context, slug, message string) (*models.DemoReply, error)
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
// @Summary Демо-режим ассистента
// @Description Возвращает демонстрационный ответ ассистента на сообщение пользователя.
// @Tags Assistants
// @Accept  json
// @Produce  json
// @Param slug path string true "Slug ассистента"
// @Param request body Request true "Сообщение пользователя"
// @Success 200 {object} response.Response "Ответ ассистента"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Демо недоступно"
// @Router /assistants/{slug}/demo [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.demo"

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

	reply, err := h.service.Demo(r.Context(), slug, req.Message)
	if err != nil {
		log.Error("failed to get demo reply", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(reply))
}
