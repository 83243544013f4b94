package assistantmarketplace

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eklimchuk/assistant-marketplace/internal/config"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/assistant/categories"
	assistantdemo "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/assistant/demo"
	assistantlist "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/assistant/list"
	assistantread "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/assistant/read"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/login"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/logout"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/password"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/profile"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/refresh"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/register"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/remove"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/update"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/health"
	ordercancel "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/order/cancel"
	ordercreate "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/order/create"
	orderread "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/order/read"
	orderreview "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/order/review"
	userorders "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/user/orders"
	userreviews "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/user/reviews"
	userstats "github.com/eklimchuk/assistant-marketplace/internal/http/handlers/user/stats"
	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	assistantservice "github.com/eklimchuk/assistant-marketplace/internal/services/assistant"
	authservice "github.com/eklimchuk/assistant-marketplace/internal/services/auth"
	orderservice "github.com/eklimchuk/assistant-marketplace/internal/services/order"
	userservice "github.com/eklimchuk/assistant-marketplace/internal/services/user"
)

// Services сервисы бизнес-логики, необходимые маршрутам.
type Services struct {
	Auth      *authservice.Service
	Assistant *assistantservice.Service
	Order     *orderservice.Service
	User      *userservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services, db *sql.DB) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware(),
		middlewarectx.RateLimitMiddleware(logger, cfg.HTTPServer.RateLimit, cfg.HTTPServer.RateBurst),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки аутентификации
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, s.Auth).ServeHTTP)

		// Публичный каталог, личность необязательна
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalAuthMiddleware(s.Auth, logger))
			r.Get("/assistants", assistantlist.New(logger, s.Assistant).ServeHTTP)
			r.Get("/assistants/categories", categories.New(logger, s.Assistant).ServeHTTP)
			r.Get("/assistants/{slug}", assistantread.New(logger, s.Assistant).ServeHTTP)
			r.Post("/assistants/{slug}/demo", assistantdemo.New(logger, s.Assistant).ServeHTTP)
		})

		// Группа с обязательной JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(s.Auth, logger))
			r.Get("/auth/profile", profile.New(logger, s.Auth).ServeHTTP)
			r.Put("/auth/profile", update.New(logger, s.Auth).ServeHTTP)
			r.Put("/auth/change-password", password.New(logger, s.Auth).ServeHTTP)
			r.Post("/auth/logout", logout.New(logger, s.Auth).ServeHTTP)
			r.Delete("/auth/account", remove.New(logger, s.Auth).ServeHTTP)

			r.Post("/orders", ordercreate.New(logger, s.Order).ServeHTTP)
			r.Get("/orders/{id}", orderread.New(logger, s.Order).ServeHTTP)
			r.Put("/orders/{id}/cancel", ordercancel.New(logger, s.Order).ServeHTTP)
			r.Post("/orders/{id}/review", orderreview.New(logger, s.Order).ServeHTTP)

			r.Get("/users/stats", userstats.New(logger, s.User).ServeHTTP)
			r.Get("/users/orders", userorders.New(logger, s.User).ServeHTTP)
			r.Get("/users/reviews", userreviews.New(logger, s.User).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
