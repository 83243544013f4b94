package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
)

// OptionalAuthMiddleware возвращает HTTP middleware, который пытается
// аутентифицировать запрос, но никогда его не отклоняет: при отсутствии
// заголовка или любой ошибке проверки токена запрос проходит дальше
// анонимным, ошибка только логируется.
func OptionalAuthMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OptionalAuthMiddleware"

			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.Debug("optional auth failed, continuing as anonymous",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}
