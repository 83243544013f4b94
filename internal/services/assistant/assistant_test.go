package assistant_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/assistant"
)

type CatalogRepoMock struct {
	mock.Mock
}

func (m *CatalogRepoMock) ListAssistants(ctx context.Context, filter models.AssistantFilter) ([]*models.AssistantCard, int, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]*models.AssistantCard)
	return res, args.Int(1), args.Error(2)
}

func (m *CatalogRepoMock) ListCategories(ctx context.Context) ([]models.CategoryStat, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.CategoryStat)
	return res, args.Error(1)
}

func (m *CatalogRepoMock) GetAssistantBySlug(ctx context.Context, slug string) (*models.Assistant, error) {
	args := m.Called(ctx, slug)
	res, _ := args.Get(0).(*models.Assistant)
	return res, args.Error(1)
}

func (m *CatalogRepoMock) GetDemoAssistant(ctx context.Context, slug string) (*models.Assistant, error) {
	args := m.Called(ctx, slug)
	res, _ := args.Get(0).(*models.Assistant)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Сервис работает и без кеша: nil-кеш означает прямой поход в хранилище.
func TestList_WithoutCache(t *testing.T) {
	repo := new(CatalogRepoMock)
	svc := assistant.New(repo, nil, newNoopLogger())

	filter := models.AssistantFilter{Category: "support", Limit: 12}
	repo.On("ListAssistants", mock.Anything, filter).Return([]*models.AssistantCard{
		{UID: "a-1", Name: "Helper", Slug: "helper", Category: "support"},
	}, 1, nil)

	items, total, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "helper", items[0].Slug)
}

func TestCategories(t *testing.T) {
	repo := new(CatalogRepoMock)
	svc := assistant.New(repo, nil, newNoopLogger())

	repo.On("ListCategories", mock.Anything).Return([]models.CategoryStat{
		{Name: "sales", Count: 3},
		{Name: "support", Count: 5},
	}, nil)

	stats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 5, stats[1].Count)
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo := new(CatalogRepoMock)
	svc := assistant.New(repo, nil, newNoopLogger())

	repo.On("GetAssistantBySlug", mock.Anything, "missing").Return(nil, errs.ErrNotFound)

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDemo_CannedReply(t *testing.T) {
	repo := new(CatalogRepoMock)
	svc := assistant.New(repo, nil, newNoopLogger())

	repo.On("GetDemoAssistant", mock.Anything, "helper").Return(&models.Assistant{
		UID:      "a-1",
		Name:     "Helper",
		Slug:     "helper",
		Category: "support",
	}, nil)

	reply, err := svc.Demo(context.Background(), "helper", "hi there")
	require.NoError(t, err)
	assert.Equal(t, "Helper", reply.Assistant)
	assert.Contains(t, reply.Response, "Helper")
	assert.Contains(t, reply.Response, "support")
	assert.False(t, reply.Timestamp.IsZero())
}

func TestDemo_Unavailable(t *testing.T) {
	repo := new(CatalogRepoMock)
	svc := assistant.New(repo, nil, newNoopLogger())

	repo.On("GetDemoAssistant", mock.Anything, "no-demo").Return(nil, errs.ErrNotFound)

	_, err := svc.Demo(context.Background(), "no-demo", "hi")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
