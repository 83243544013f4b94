package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
)

// RequireTierMiddleware возвращает HTTP middleware, который пропускает
// только пользователей с одним из перечисленных уровней подписки.
// Ставится после AuthMiddleware. Отсутствие личности в контексте —
// сбой аутентификации, а не авторизации: отдаётся 401 с тем же
// сообщением, что и у AuthMiddleware; 403 зарезервирован за
// недостаточным уровнем подписки аутентифицированного пользователя.
func RequireTierMiddleware(log *slog.Logger, tiers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireTierMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tier, ok := r.Context().Value(UserTier).(string)
			if !ok || tier == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access token required"))
				return
			}

			if !slices.Contains(tiers, tier) {
				log.Error("insufficient subscription tier",
					slog.String("tier", tier))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient permissions"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
