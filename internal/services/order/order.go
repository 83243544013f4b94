// Package order содержит бизнес-логику заказов: создание с учётной
// транзакцией оплаты, чтение, отмену и отзыв на завершённый заказ.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/eklimchuk/assistant-marketplace/internal/lib/rabbitmq"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// Цена заказа до интеграции платёжного провайдера: стоимость
// фиксирована и не зависит от выбранных услуг.
const (
	placeholderAmount   = 29.99
	placeholderCurrency = "USD"
)

// OrderRepository описывает контракт хранилища для заказов и отзывов.
type OrderRepository interface {
	GetActiveAssistant(ctx context.Context, uid string) (*models.Assistant, error)
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	CreateTransaction(ctx context.Context, tx models.Transaction) error
	GetOrderForUser(ctx context.Context, orderUID, userUID string) (*models.Order, error)
	CancelPendingOrder(ctx context.Context, orderUID, userUID string) (*models.Order, error)
	GetCompletedOrder(ctx context.Context, orderUID, userUID string) (*models.Order, error)
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
}

// EventPublisher публикует доменные события для воркеров уведомлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// CreateInput данные нового заказа.
type CreateInput struct {
	UserUID        string
	AssistantUID   string
	ServiceDetails json.RawMessage
	Notes          *string
}

// ReviewInput данные отзыва на завершённый заказ.
type ReviewInput struct {
	UserUID  string
	OrderUID string
	Rating   int
	Comment  *string
}

// Service реализует операции над заказами.
type Service struct {
	repo   OrderRepository
	events EventPublisher
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo OrderRepository, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// orderCreatedEvent событие для очереди уведомлений о новых заказах.
type orderCreatedEvent struct {
	OrderUID     string  `json:"order_uid"`
	UserUID      string  `json:"user_uid"`
	AssistantUID string  `json:"assistant_uid"`
	TotalAmount  float64 `json:"total_amount"`
	Currency     string  `json:"currency"`
}

// Create создает заказ на активного ассистента со статусом pending
// и фиксированной суммой, пишет учётную транзакцию оплаты и публикует
// событие order.created. Неактивный ассистент — errs.ErrNotFound.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	const op = "order.Create"

	if _, err := s.repo.GetActiveAssistant(ctx, input.AssistantUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order := models.Order{
		UserUID:        input.UserUID,
		AssistantUID:   input.AssistantUID,
		ServiceDetails: input.ServiceDetails,
		TotalAmount:    placeholderAmount,
		Currency:       placeholderCurrency,
		Notes:          input.Notes,
	}
	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx := models.Transaction{
		OrderUID:    created.UID,
		Type:        models.TransactionPayment,
		Amount:      created.TotalAmount,
		Currency:    created.Currency,
		Description: "Order payment",
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.events.Publish(rabbitmq.RouteOrderCreated, orderCreatedEvent{
		OrderUID:     created.UID,
		UserUID:      created.UserUID,
		AssistantUID: created.AssistantUID,
		TotalAmount:  created.TotalAmount,
		Currency:     created.Currency,
	}); err != nil {
		s.log.Warn("failed to publish order.created event", sl.Err(err))
	}

	s.log.Info("created new order",
		slog.String("uid", created.UID),
		slog.String("user_uid", created.UserUID))
	return created, nil
}

// Get возвращает заказ владельца с транзакциями и отзывом.
// Чужой или несуществующий заказ неразличимы — errs.ErrNotFound.
func (s *Service) Get(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	const op = "order.Get"

	order, err := s.repo.GetOrderForUser(ctx, orderUID, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// Cancel переводит pending-заказ владельца в статус cancelled.
// Заказ в любом другом статусе, чужой или несуществующий —
// errs.ErrNotFound.
func (s *Service) Cancel(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	const op = "order.Cancel"

	order, err := s.repo.CancelPendingOrder(ctx, orderUID, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("cancelled order", slog.String("uid", order.UID))
	return order, nil
}

// Review создает отзыв на завершённый заказ владельца. Заказ в любом
// другом статусе — errs.ErrNotFound; повторный отзыв на тот же заказ —
// errs.ErrReviewExists, гонка двух конкурентных отзывов разрешается
// уникальным ограничением хранилища.
func (s *Service) Review(ctx context.Context, input ReviewInput) (*models.Review, error) {
	const op = "order.Review"

	order, err := s.repo.GetCompletedOrder(ctx, input.OrderUID, input.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	review := models.Review{
		UserUID:      input.UserUID,
		AssistantUID: order.AssistantUID,
		OrderUID:     order.UID,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}
	created, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}
