package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
	jwtlib "github.com/eklimchuk/assistant-marketplace/internal/lib/jwt"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Authenticator описывает интерфейс сервиса для проверки access-токена.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.Identity, error)
}

// AuthMiddleware возвращает HTTP middleware, который требует валидный
// access-токен в заголовке Authorization.
//
// Если токен валиден, добавляет uid, email и уровень подписки в контекст
// запроса, иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
// Истёкший токен, повреждённый токен и токен удалённого пользователя
// различаются текстом сообщения.
func AuthMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := bearerToken(r)
			if !ok {
				log.Error("missing authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access token required"))
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.Error("failed to authenticate request", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(authFailureMessage(err)))
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// authFailureMessage транслирует ошибку аутентификации в текст ответа.
func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, jwtlib.ErrExpiredToken):
		return "token expired"
	case errors.Is(err, errs.ErrUserGone):
		return "user no longer exists"
	default:
		return "invalid token"
	}
}

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

// withIdentity добавляет личность запроса в контекст.
func withIdentity(ctx context.Context, identity *models.Identity) context.Context {
	ctx = context.WithValue(ctx, UserUID, identity.UID)
	ctx = context.WithValue(ctx, UserEmail, identity.Email)
	return context.WithValue(ctx, UserTier, identity.SubscriptionTier)
}
