package order_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/order"
)

type OrderRepoMock struct {
	mock.Mock
}

func (m *OrderRepoMock) GetActiveAssistant(ctx context.Context, uid string) (*models.Assistant, error) {
	args := m.Called(ctx, uid)
	res, _ := args.Get(0).(*models.Assistant)
	return res, args.Error(1)
}

func (m *OrderRepoMock) CreateOrder(ctx context.Context, o models.Order) (*models.Order, error) {
	args := m.Called(ctx, o)
	res, _ := args.Get(0).(*models.Order)
	return res, args.Error(1)
}

func (m *OrderRepoMock) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *OrderRepoMock) GetOrderForUser(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	args := m.Called(ctx, orderUID, userUID)
	res, _ := args.Get(0).(*models.Order)
	return res, args.Error(1)
}

func (m *OrderRepoMock) CancelPendingOrder(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	args := m.Called(ctx, orderUID, userUID)
	res, _ := args.Get(0).(*models.Order)
	return res, args.Error(1)
}

func (m *OrderRepoMock) GetCompletedOrder(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	args := m.Called(ctx, orderUID, userUID)
	res, _ := args.Get(0).(*models.Order)
	return res, args.Error(1)
}

func (m *OrderRepoMock) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	args := m.Called(ctx, review)
	res, _ := args.Get(0).(*models.Review)
	return res, args.Error(1)
}

type EventsMock struct {
	mock.Mock
}

func (m *EventsMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCreate_Success(t *testing.T) {
	repo := new(OrderRepoMock)
	events := new(EventsMock)
	svc := order.New(repo, events, newNoopLogger())

	repo.On("GetActiveAssistant", mock.Anything, "assistant-1").
		Return(&models.Assistant{UID: "assistant-1", IsActive: true}, nil)
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.UserUID == "uid-1" &&
			o.AssistantUID == "assistant-1" &&
			o.TotalAmount == 29.99 &&
			o.Currency == "USD"
	})).Return(&models.Order{
		UID:          "order-1",
		UserUID:      "uid-1",
		AssistantUID: "assistant-1",
		TotalAmount:  29.99,
		Currency:     "USD",
		Status:       models.OrderStatusPending,
	}, nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx models.Transaction) bool {
		return tx.OrderUID == "order-1" &&
			tx.Type == models.TransactionPayment &&
			tx.Amount == 29.99
	})).Return(nil)
	events.On("Publish", "order.created", mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), order.CreateInput{
		UserUID:      "uid-1",
		AssistantUID: "assistant-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, created.Status)

	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreate_InactiveAssistant(t *testing.T) {
	repo := new(OrderRepoMock)
	events := new(EventsMock)
	svc := order.New(repo, events, newNoopLogger())

	repo.On("GetActiveAssistant", mock.Anything, "assistant-off").
		Return(nil, errs.ErrNotFound)

	_, err := svc.Create(context.Background(), order.CreateInput{
		UserUID:      "uid-1",
		AssistantUID: "assistant-off",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

// Недоступный брокер не ломает создание заказа.
func TestCreate_PublishFailureIgnored(t *testing.T) {
	repo := new(OrderRepoMock)
	events := new(EventsMock)
	svc := order.New(repo, events, newNoopLogger())

	repo.On("GetActiveAssistant", mock.Anything, "assistant-1").
		Return(&models.Assistant{UID: "assistant-1"}, nil)
	repo.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&models.Order{UID: "order-1", TotalAmount: 29.99, Currency: "USD"}, nil)
	repo.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	events.On("Publish", "order.created", mock.Anything).Return(errors.New("broker down"))

	_, err := svc.Create(context.Background(), order.CreateInput{
		UserUID:      "uid-1",
		AssistantUID: "assistant-1",
	})
	assert.NoError(t, err)
}

func TestCancel_NotPending(t *testing.T) {
	repo := new(OrderRepoMock)
	svc := order.New(repo, new(EventsMock), newNoopLogger())

	repo.On("CancelPendingOrder", mock.Anything, "order-1", "uid-1").
		Return(nil, errs.ErrNotFound)

	_, err := svc.Cancel(context.Background(), "order-1", "uid-1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestReview_OnlyCompletedOrders(t *testing.T) {
	repo := new(OrderRepoMock)
	svc := order.New(repo, new(EventsMock), newNoopLogger())

	repo.On("GetCompletedOrder", mock.Anything, "order-pending", "uid-1").
		Return(nil, errs.ErrNotFound)

	_, err := svc.Review(context.Background(), order.ReviewInput{
		UserUID:  "uid-1",
		OrderUID: "order-pending",
		Rating:   5,
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	repo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestReview_Success(t *testing.T) {
	repo := new(OrderRepoMock)
	svc := order.New(repo, new(EventsMock), newNoopLogger())

	repo.On("GetCompletedOrder", mock.Anything, "order-1", "uid-1").Return(&models.Order{
		UID:          "order-1",
		UserUID:      "uid-1",
		AssistantUID: "assistant-1",
		Status:       models.OrderStatusCompleted,
	}, nil)
	repo.On("CreateReview", mock.Anything, mock.MatchedBy(func(r models.Review) bool {
		return r.OrderUID == "order-1" && r.AssistantUID == "assistant-1" && r.Rating == 4
	})).Return(&models.Review{UID: "review-1", Rating: 4}, nil)

	created, err := svc.Review(context.Background(), order.ReviewInput{
		UserUID:  "uid-1",
		OrderUID: "order-1",
		Rating:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, "review-1", created.UID)
}

func TestReview_Duplicate(t *testing.T) {
	repo := new(OrderRepoMock)
	svc := order.New(repo, new(EventsMock), newNoopLogger())

	repo.On("GetCompletedOrder", mock.Anything, "order-1", "uid-1").
		Return(&models.Order{UID: "order-1", AssistantUID: "assistant-1"}, nil)
	repo.On("CreateReview", mock.Anything, mock.Anything).
		Return(nil, errs.ErrReviewExists)

	_, err := svc.Review(context.Background(), order.ReviewInput{
		UserUID:  "uid-1",
		OrderUID: "order-1",
		Rating:   5,
	})
	assert.ErrorIs(t, err, errs.ErrReviewExists)
}
