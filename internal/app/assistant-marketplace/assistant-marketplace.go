// Package assistantmarketplace собирает приложение маркетплейса:
// хранилище, кеш, брокер уведомлений, сервисы и HTTP-сервер.
package assistantmarketplace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/eklimchuk/assistant-marketplace/internal/cache"
	"github.com/eklimchuk/assistant-marketplace/internal/config"
	jwtlib "github.com/eklimchuk/assistant-marketplace/internal/lib/jwt"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/rabbitmq"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/migrations"
	assistantservice "github.com/eklimchuk/assistant-marketplace/internal/services/assistant"
	authservice "github.com/eklimchuk/assistant-marketplace/internal/services/auth"
	"github.com/eklimchuk/assistant-marketplace/internal/services/notify"
	orderservice "github.com/eklimchuk/assistant-marketplace/internal/services/order"
	userservice "github.com/eklimchuk/assistant-marketplace/internal/services/user"
	"github.com/eklimchuk/assistant-marketplace/internal/storage/repository"
)

// App агрегирует зависимости приложения и HTTP-сервер.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	broker *amqp.Connection
}

// New собирает приложение: подключает Postgres с миграциями, Redis и
// RabbitMQ, создает сервисы и маршруты. Недоступный брокер не мешает
// старту, события в этом случае не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var broker *amqp.Connection
	var channel *amqp.Channel
	broker, err = rabbitmq.Connect(cfg.RabbitMQ.AddressRabbit, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, events will be dropped", sl.Err(err))
	} else {
		channel, err = rabbitmq.SetupChannel(broker, rabbitmq.GetNotificationQueues())
		if err != nil {
			return nil, err
		}
	}

	tokenMaker := jwtlib.NewMaker(
		cfg.JWTToken.AccessSecretKey,
		cfg.JWTToken.RefreshSecretKey,
		cfg.JWTToken.AccessTokenTTL,
		cfg.JWTToken.RefreshTokenTTL,
	)
	publisher := notify.New(channel, logger)

	authService := authservice.New(db, tokenMaker, publisher, logger)
	assistantService := assistantservice.New(db, cacheRedis, logger)
	orderService := orderservice.New(db, publisher, logger)
	userService := userservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Auth:      authService,
		Assistant: assistantService,
		Order:     orderService,
		User:      userService,
	}, db.DB)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		broker: broker,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста
// с ожиданием активных запросов.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.broker != nil {
			_ = a.broker.Close()
		}
		_ = a.cache.Db.Close()
		a.db.Close()
		return err
	}
}
