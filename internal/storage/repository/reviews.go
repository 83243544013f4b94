package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// CreateReview сохраняет отзыв на заказ. Повторный отзыв на тот же заказ
// упирается в уникальное ограничение и транслируется в errs.ErrReviewExists.
func (s *Storage) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	const op = "repository.CreateReview"

	query := `INSERT INTO reviews (user_uid, assistant_uid, order_uid, rating, comment)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid, created_at`
	created := review
	err := s.DB.QueryRowContext(ctx, query,
		review.UserUID, review.AssistantUID, review.OrderUID, review.Rating, review.Comment).
		Scan(&created.UID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrReviewExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary, err := s.assistantSummary(ctx, review.AssistantUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created.Assistant = summary
	return &created, nil
}

// ListUserReviews возвращает отзывы пользователя, новые первыми,
// со сводками по ассистенту и заказу.
func (s *Storage) ListUserReviews(ctx context.Context, userUID string) ([]*models.Review, error) {
	const op = "repository.ListUserReviews"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.uid, r.rating, r.comment, r.created_at,
		       a.uid, a.name, a.category,
		       o.uid, o.total_amount, o.created_at
		FROM reviews r
		JOIN assistants a ON a.uid = r.assistant_uid
		JOIN orders o ON o.uid = r.order_uid
		WHERE r.user_uid = $1
		ORDER BY r.created_at DESC`, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		review := &models.Review{
			Assistant: &models.AssistantSummary{},
			Order:     &models.OrderSummary{},
		}
		var comment sql.NullString
		if err = rows.Scan(&review.UID, &review.Rating, &comment, &review.CreatedAt,
			&review.Assistant.UID, &review.Assistant.Name, &review.Assistant.Category,
			&review.Order.UID, &review.Order.TotalAmount, &review.Order.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if comment.Valid {
			review.Comment = &comment.String
		}
		result = append(result, review)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// getOrderReview возвращает отзыв на заказ или nil, если его нет.
func (s *Storage) getOrderReview(ctx context.Context, orderUID string) (*models.Review, error) {
	review := &models.Review{}
	var comment sql.NullString
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid, rating, comment, created_at
		FROM reviews
		WHERE order_uid = $1`, orderUID).
		Scan(&review.UID, &review.Rating, &comment, &review.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		review.Comment = &comment.String
	}
	return review, nil
}
