package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// ListAssistants возвращает страницу активных ассистентов с агрегатами
// (средний рейтинг, количество заказов и отзывов) и общее число
// подходящих под фильтр записей.
func (s *Storage) ListAssistants(ctx context.Context, filter models.AssistantFilter) ([]*models.AssistantCard, int, error) {
	const op = "repository.ListAssistants"

	where := `a.is_active
		AND ($1 = '' OR a.category = $1)
		AND ($2 = '' OR a.name ILIKE '%' || $2 || '%' OR a.description ILIKE '%' || $2 || '%')`

	query := fmt.Sprintf(`
		SELECT a.uid, a.name, a.slug, a.description, a.category, a.pricing, a.demo_available,
		       AVG(r.rating)::FLOAT8 AS average_rating,
		       COUNT(DISTINCT o.uid) AS total_orders,
		       COUNT(DISTINCT r.uid) AS total_reviews
		FROM assistants a
		LEFT JOIN orders o ON o.assistant_uid = a.uid
		LEFT JOIN reviews r ON r.assistant_uid = a.uid
		WHERE %s
		GROUP BY a.uid
		ORDER BY a.created_at DESC
		LIMIT $3 OFFSET $4`, where)

	rows, err := s.DB.QueryContext(ctx, query, filter.Category, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AssistantCard
	for rows.Next() {
		card := &models.AssistantCard{}
		var avg sql.NullFloat64
		if err = rows.Scan(&card.UID, &card.Name, &card.Slug, &card.Description, &card.Category,
			&card.Pricing, &card.DemoAvailable, &avg, &card.TotalOrders, &card.TotalReviews); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if avg.Valid {
			card.AverageRating = &avg.Float64
		}
		result = append(result, card)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM assistants a WHERE %s`, where)
	if err = s.DB.QueryRowContext(ctx, countQuery, filter.Category, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ListCategories возвращает категории активных ассистентов с количеством.
func (s *Storage) ListCategories(ctx context.Context) ([]models.CategoryStat, error) {
	const op = "repository.ListCategories"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM assistants
		WHERE is_active
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CategoryStat
	for rows.Next() {
		var stat models.CategoryStat
		if err = rows.Scan(&stat.Name, &stat.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetAssistantBySlug возвращает активного ассистента со всеми агрегатами
// и десятью последними отзывами.
func (s *Storage) GetAssistantBySlug(ctx context.Context, slug string) (*models.Assistant, error) {
	const op = "repository.GetAssistantBySlug"

	query := `
		SELECT a.uid, a.name, a.slug, a.description, a.category, a.voice_config, a.ai_model,
		       a.pricing, a.is_active, a.demo_available, a.created_at, a.updated_at,
		       AVG(r.rating)::FLOAT8 AS average_rating,
		       COUNT(DISTINCT o.uid) AS total_orders,
		       COUNT(DISTINCT r.uid) AS total_reviews
		FROM assistants a
		LEFT JOIN orders o ON o.assistant_uid = a.uid
		LEFT JOIN reviews r ON r.assistant_uid = a.uid
		WHERE a.slug = $1 AND a.is_active
		GROUP BY a.uid`

	a := &models.Assistant{}
	var avg sql.NullFloat64
	err := s.DB.QueryRowContext(ctx, query, slug).Scan(&a.UID, &a.Name, &a.Slug, &a.Description,
		&a.Category, &a.VoiceConfig, &a.AIModel, &a.Pricing, &a.IsActive, &a.DemoAvailable,
		&a.CreatedAt, &a.UpdatedAt, &avg, &a.TotalOrders, &a.TotalReviews)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if avg.Valid {
		a.AverageRating = &avg.Float64
	}

	reviews, err := s.listAssistantReviews(ctx, a.UID, 10)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Reviews = reviews
	return a, nil
}

// GetActiveAssistant возвращает активного ассистента по uid
// (проверка перед созданием заказа).
func (s *Storage) GetActiveAssistant(ctx context.Context, uid string) (*models.Assistant, error) {
	const op = "repository.GetActiveAssistant"

	a := &models.Assistant{}
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid, name, slug, description, category, is_active, demo_available
		FROM assistants
		WHERE uid = $1 AND is_active`, uid).
		Scan(&a.UID, &a.Name, &a.Slug, &a.Description, &a.Category, &a.IsActive, &a.DemoAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetDemoAssistant возвращает ассистента с доступным демо по slug.
func (s *Storage) GetDemoAssistant(ctx context.Context, slug string) (*models.Assistant, error) {
	const op = "repository.GetDemoAssistant"

	a := &models.Assistant{}
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid, name, slug, description, category, is_active, demo_available
		FROM assistants
		WHERE slug = $1 AND is_active AND demo_available`, slug).
		Scan(&a.UID, &a.Name, &a.Slug, &a.Description, &a.Category, &a.IsActive, &a.DemoAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// listAssistantReviews возвращает последние отзывы ассистента с именами авторов.
func (s *Storage) listAssistantReviews(ctx context.Context, assistantUID string, limit int) ([]models.Review, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.uid, r.rating, r.comment, r.created_at, u.first_name, u.last_name
		FROM reviews r
		JOIN users u ON u.uid = r.user_uid
		WHERE r.assistant_uid = $1
		ORDER BY r.created_at DESC
		LIMIT $2`, assistantUID, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Review
	for rows.Next() {
		var review models.Review
		var comment, firstName, lastName sql.NullString
		if err = rows.Scan(&review.UID, &review.Rating, &comment, &review.CreatedAt,
			&firstName, &lastName); err != nil {
			return nil, err
		}
		if comment.Valid {
			review.Comment = &comment.String
		}
		author := &models.ReviewAuthor{}
		if firstName.Valid {
			author.FirstName = &firstName.String
		}
		if lastName.Valid {
			author.LastName = &lastName.String
		}
		review.Author = author
		result = append(result, review)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
