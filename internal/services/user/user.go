// Package user содержит бизнес-логику личного кабинета:
// агрегированную статистику, историю заказов и отзывов.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// HistoryRepository описывает контракт чтения истории пользователя.
type HistoryRepository interface {
	GetUserStats(ctx context.Context, userUID string) (models.UserStats, error)
	ListUserOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, int, error)
	ListUserReviews(ctx context.Context, userUID string) ([]*models.Review, error)
}

// Service реализует операции личного кабинета.
type Service struct {
	repo HistoryRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo HistoryRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Stats возвращает агрегаты личного кабинета: количество заказов,
// количество отзывов и сумму по завершённым заказам.
func (s *Service) Stats(ctx context.Context, userUID string) (models.UserStats, error) {
	const op = "user.Stats"

	stats, err := s.repo.GetUserStats(ctx, userUID)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// Orders возвращает страницу заказов пользователя, новые первыми,
// и общее количество.
func (s *Service) Orders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, int, error) {
	const op = "user.Orders"

	orders, total, err := s.repo.ListUserOrders(ctx, userUID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return orders, total, nil
}

// Reviews возвращает отзывы пользователя, новые первыми.
func (s *Service) Reviews(ctx context.Context, userUID string) ([]*models.Review, error) {
	const op = "user.Reviews"

	reviews, err := s.repo.ListUserReviews(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}
