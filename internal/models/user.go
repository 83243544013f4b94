// Package models содержит доменные модели маркетплейса: пользователей,
// ассистентов, заказы, отзывы и транзакции. Структуры используются
// в бизнес-логике и при работе с хранилищем.
package models

import (
	"encoding/json"
	"time"
)

// Уровни подписки пользователя.
const (
	TierFree     = "free"
	TierPremium  = "premium"
	TierBusiness = "business"
)

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется наружу.
type User struct {
	UID              string          `json:"id"`
	Email            string          `json:"email"`
	PasswordHash     string          `json:"-"`
	FirstName        *string         `json:"firstName,omitempty"`
	LastName         *string         `json:"lastName,omitempty"`
	Phone            *string         `json:"phone,omitempty"`
	Address          json.RawMessage `json:"address,omitempty"`
	Preferences      json.RawMessage `json:"preferences,omitempty"`
	SubscriptionTier string          `json:"subscriptionTier"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ProfileUpdate частичное обновление профиля. nil-поле не трогает
// значение в хранилище, не-nil (включая пустую строку) перезаписывает.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   json.RawMessage
}

// Identity разрешённая из access-токена личность, живёт в контексте запроса.
type Identity struct {
	UID              string `json:"id"`
	Email            string `json:"email"`
	SubscriptionTier string `json:"subscriptionTier"`
}

// UserStats агрегированная статистика личного кабинета.
type UserStats struct {
	OrdersCount  int     `json:"ordersCount"`
	ReviewsCount int     `json:"reviewsCount"`
	TotalSpent   float64 `json:"totalSpent"`
}
