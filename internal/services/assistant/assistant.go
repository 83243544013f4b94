// Package assistant содержит бизнес-логику публичного каталога
// ассистентов с кеш-прослойкой поверх Redis.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eklimchuk/assistant-marketplace/internal/cache"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// cacheTTL время жизни кеша каталога.
const cacheTTL = time.Hour

// CatalogRepository описывает контракт чтения каталога из хранилища.
type CatalogRepository interface {
	ListAssistants(ctx context.Context, filter models.AssistantFilter) ([]*models.AssistantCard, int, error)
	ListCategories(ctx context.Context) ([]models.CategoryStat, error)
	GetAssistantBySlug(ctx context.Context, slug string) (*models.Assistant, error)
	GetDemoAssistant(ctx context.Context, slug string) (*models.Assistant, error)
}

// Service реализует операции каталога по схеме cache-aside:
// сначала Redis, при промахе — база с записью результата в кеш.
// Ошибки кеша не фатальны и только логируются.
type Service struct {
	catalog CatalogRepository
	cache   *cache.Cache
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(catalog CatalogRepository, c *cache.Cache, log *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		cache:   c,
		log:     log,
	}
}

// listPage страница каталога, кешируется целиком вместе с total.
type listPage struct {
	Items []*models.AssistantCard `json:"items"`
	Total int                     `json:"total"`
}

// List возвращает страницу активных ассистентов с агрегатами
// и общее число подходящих под фильтр записей.
func (s *Service) List(ctx context.Context, filter models.AssistantFilter) ([]*models.AssistantCard, int, error) {
	const op = "assistant.List"

	key := fmt.Sprintf("assistants:list:%s:%s:%d:%d",
		filter.Category, filter.Search, filter.Limit, filter.Offset)

	var page listPage
	if s.cache != nil {
		found, err := s.cache.Get(key, &page)
		if err != nil {
			s.log.Warn("failed to read assistants from cache", sl.Err(err))
		}
		if found {
			return page.Items, page.Total, nil
		}
	}

	items, total, err := s.catalog.ListAssistants(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(key, listPage{Items: items, Total: total}, cacheTTL); err != nil {
			s.log.Warn("failed to cache assistants", sl.Err(err))
		}
	}
	return items, total, nil
}

// Categories возвращает категории активных ассистентов с количеством.
func (s *Service) Categories(ctx context.Context) ([]models.CategoryStat, error) {
	const op = "assistant.Categories"

	const key = "assistants:categories"

	var stats []models.CategoryStat
	if s.cache != nil {
		found, err := s.cache.Get(key, &stats)
		if err != nil {
			s.log.Warn("failed to read categories from cache", sl.Err(err))
		}
		if found {
			return stats, nil
		}
	}

	stats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(key, stats, cacheTTL); err != nil {
			s.log.Warn("failed to cache categories", sl.Err(err))
		}
	}
	return stats, nil
}

// GetBySlug возвращает активного ассистента со всеми агрегатами
// и последними отзывами. Неактивный или несуществующий slug —
// errs.ErrNotFound.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Assistant, error) {
	const op = "assistant.GetBySlug"

	key := "assistants:slug:" + slug

	var a models.Assistant
	if s.cache != nil {
		found, err := s.cache.Get(key, &a)
		if err != nil {
			s.log.Warn("failed to read assistant from cache", sl.Err(err))
		}
		if found {
			return &a, nil
		}
	}

	result, err := s.catalog.GetAssistantBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(key, result, cacheTTL); err != nil {
			s.log.Warn("failed to cache assistant", sl.Err(err))
		}
	}
	return result, nil
}

// Demo возвращает заготовленный ответ демо-режима ассистента.
// Генерация настоящего ответа делегирована внешнему AI-сервису,
// здесь отдаётся статичная реплика.
func (s *Service) Demo(ctx context.Context, slug, _ string) (*models.DemoReply, error) {
	const op = "assistant.Demo"

	a, err := s.catalog.GetDemoAssistant(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.DemoReply{
		Assistant: a.Name,
		Response: fmt.Sprintf(
			"Hello! I'm %s, your %s assistant. This is a demo response. In the full version, I would process your request using advanced AI capabilities.",
			a.Name, a.Category),
		Timestamp: time.Now().UTC(),
	}, nil
}
