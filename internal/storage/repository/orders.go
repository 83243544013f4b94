package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// CreateOrder сохраняет новый заказ и возвращает созданную запись
// со сводкой по ассистенту.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	const op = "repository.CreateOrder"

	details := order.ServiceDetails
	if details == nil {
		details = []byte(`[]`)
	}

	query := `INSERT INTO orders (user_uid, assistant_uid, service_details, total_amount, currency, notes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid, status, created_at, updated_at`
	created := order
	err := s.DB.QueryRowContext(ctx, query,
		order.UserUID, order.AssistantUID, details, order.TotalAmount, order.Currency, order.Notes).
		Scan(&created.UID, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary, err := s.assistantSummary(ctx, order.AssistantUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created.Assistant = summary
	return &created, nil
}

// GetOrderForUser возвращает заказ владельца вместе со сводкой по
// ассистенту, транзакциями и отзывом, если он есть.
// Чужой или несуществующий заказ — errs.ErrNotFound.
func (s *Storage) GetOrderForUser(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	const op = "repository.GetOrderForUser"

	query := `
		SELECT o.uid, o.user_uid, o.assistant_uid, o.service_details, o.total_amount,
		       o.currency, o.status, o.notes, o.created_at, o.updated_at,
		       a.uid, a.name, a.slug, a.category
		FROM orders o
		JOIN assistants a ON a.uid = o.assistant_uid
		WHERE o.uid = $1 AND o.user_uid = $2`

	order := &models.Order{Assistant: &models.AssistantSummary{}}
	var notes sql.NullString
	err := s.DB.QueryRowContext(ctx, query, orderUID, userUID).Scan(
		&order.UID, &order.UserUID, &order.AssistantUID, &order.ServiceDetails, &order.TotalAmount,
		&order.Currency, &order.Status, &notes, &order.CreatedAt, &order.UpdatedAt,
		&order.Assistant.UID, &order.Assistant.Name, &order.Assistant.Slug, &order.Assistant.Category)
	if err != nil {
		if isMissingRow(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes.Valid {
		order.Notes = &notes.String
	}

	transactions, err := s.listOrderTransactions(ctx, order.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Transactions = transactions

	review, err := s.getOrderReview(ctx, order.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Review = review
	return order, nil
}

// CancelPendingOrder переводит заказ владельца в статус cancelled.
// Отменить можно только pending-заказ; всё остальное — errs.ErrNotFound,
// не раскрывая, существует заказ или нет.
func (s *Storage) CancelPendingOrder(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	const op = "repository.CancelPendingOrder"

	query := `UPDATE orders
			  SET status = $1, updated_at = now()
			  WHERE uid = $2 AND user_uid = $3 AND status = $4
			  RETURNING uid, user_uid, assistant_uid, service_details, total_amount,
			      currency, status, notes, created_at, updated_at`

	order := &models.Order{}
	var notes sql.NullString
	err := s.DB.QueryRowContext(ctx, query,
		models.OrderStatusCancelled, orderUID, userUID, models.OrderStatusPending).Scan(
		&order.UID, &order.UserUID, &order.AssistantUID, &order.ServiceDetails, &order.TotalAmount,
		&order.Currency, &order.Status, &notes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isMissingRow(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	return order, nil
}

// GetCompletedOrder возвращает завершённый заказ владельца
// (проверка перед созданием отзыва).
func (s *Storage) GetCompletedOrder(ctx context.Context, orderUID, userUID string) (*models.Order, error) {
	const op = "repository.GetCompletedOrder"

	order := &models.Order{}
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid, user_uid, assistant_uid, total_amount, currency, status
		FROM orders
		WHERE uid = $1 AND user_uid = $2 AND status = $3`,
		orderUID, userUID, models.OrderStatusCompleted).
		Scan(&order.UID, &order.UserUID, &order.AssistantUID, &order.TotalAmount,
			&order.Currency, &order.Status)
	if err != nil {
		if isMissingRow(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ListUserOrders возвращает страницу заказов пользователя, новые первыми,
// со сводкой по ассистенту и отзывом, плюс общее количество.
func (s *Storage) ListUserOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, int, error) {
	const op = "repository.ListUserOrders"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT o.uid, o.user_uid, o.assistant_uid, o.service_details, o.total_amount,
		       o.currency, o.status, o.notes, o.created_at, o.updated_at,
		       a.uid, a.name, a.slug, a.category
		FROM orders o
		JOIN assistants a ON a.uid = o.assistant_uid
		WHERE o.user_uid = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`, userUID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		order := &models.Order{Assistant: &models.AssistantSummary{}}
		var notes sql.NullString
		if err = rows.Scan(
			&order.UID, &order.UserUID, &order.AssistantUID, &order.ServiceDetails, &order.TotalAmount,
			&order.Currency, &order.Status, &notes, &order.CreatedAt, &order.UpdatedAt,
			&order.Assistant.UID, &order.Assistant.Name, &order.Assistant.Slug, &order.Assistant.Category,
		); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if notes.Valid {
			order.Notes = &notes.String
		}
		result = append(result, order)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, order := range result {
		review, err := s.getOrderReview(ctx, order.UID)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		order.Review = review
	}

	var total int
	if err = s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_uid = $1`, userUID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// GetUserStats считает агрегаты личного кабинета одним запросом.
func (s *Storage) GetUserStats(ctx context.Context, userUID string) (models.UserStats, error) {
	const op = "repository.GetUserStats"

	var stats models.UserStats
	err := s.DB.QueryRowContext(ctx, `
		SELECT
		    (SELECT COUNT(*) FROM orders WHERE user_uid = $1),
		    (SELECT COUNT(*) FROM reviews WHERE user_uid = $1),
		    (SELECT COALESCE(SUM(total_amount), 0)::FLOAT8 FROM orders WHERE user_uid = $1 AND status = $2)`,
		userUID, models.OrderStatusCompleted).
		Scan(&stats.OrdersCount, &stats.ReviewsCount, &stats.TotalSpent)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// assistantSummary возвращает сокращённое представление ассистента.
func (s *Storage) assistantSummary(ctx context.Context, uid string) (*models.AssistantSummary, error) {
	summary := &models.AssistantSummary{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT uid, name, slug, category FROM assistants WHERE uid = $1`, uid).
		Scan(&summary.UID, &summary.Name, &summary.Slug, &summary.Category)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
