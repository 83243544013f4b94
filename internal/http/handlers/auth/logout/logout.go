// Package logout реализует HTTP-обработчик выхода из сессии.
//
// Выход подтверждается и фиксируется в аудит-логе; refresh-токен
// на сервере не отзывается и действует до истечения.
package logout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
)

// Request — входные данные выхода, refresh-токен необязателен.
type Request struct {
	RefreshToken string `json:"refreshToken"`
}

// Handler обрабатывает запросы на выход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, uid, refreshToken string)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход из сессии
// @Description Подтверждает выход текущего пользователя. Refresh-токен не отзывается.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request false "Refresh-токен (необязательно)"
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

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

	// Тело запроса необязательно, ошибки декодирования игнорируются.
	var req Request
	_ = json.NewDecoder(r.Body).Decode(&req)

	h.service.Logout(r.Context(), uid, req.RefreshToken)

	render.JSON(w, r, response.OKWithMessage(nil, "logged out successfully"))
}
