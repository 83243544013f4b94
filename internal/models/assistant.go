package models

import (
	"encoding/json"
	"time"
)

// Assistant представляет голосового ассистента каталога.
type Assistant struct {
	UID           string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	VoiceConfig   json.RawMessage `json:"voiceConfig,omitempty"`
	AIModel       string          `json:"aiModel,omitempty"`
	Pricing       json.RawMessage `json:"pricing,omitempty"`
	IsActive      bool            `json:"isActive"`
	DemoAvailable bool            `json:"demoAvailable"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	// Агрегаты, заполняются при чтении каталога.
	AverageRating *float64 `json:"averageRating"`
	TotalOrders   int      `json:"totalOrders"`
	TotalReviews  int      `json:"totalReviews"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// AssistantCard сокращённое представление ассистента в списке каталога.
type AssistantCard struct {
	UID           string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Pricing       json.RawMessage `json:"pricing,omitempty"`
	DemoAvailable bool            `json:"demoAvailable"`
	AverageRating *float64        `json:"averageRating"`
	TotalOrders   int             `json:"totalOrders"`
	TotalReviews  int             `json:"totalReviews"`
}

// AssistantSummary вложенное представление ассистента внутри заказа или отзыва.
type AssistantSummary struct {
	UID      string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Category string `json:"category"`
}

// AssistantFilter параметры выборки каталога.
type AssistantFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// CategoryStat категория каталога с количеством активных ассистентов.
type CategoryStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DemoReply ответ демо-режима ассистента. Генерация настоящего ответа
// делегирована внешнему AI-сервису и здесь не реализована.
type DemoReply struct {
	Assistant string    `json:"assistant"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
