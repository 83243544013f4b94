package models

import (
	"encoding/json"
	"time"
)

// Статусы заказа.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// Order представляет заказ пользователя на услуги ассистента.
type Order struct {
	UID            string          `json:"id"`
	UserUID        string          `json:"userId"`
	AssistantUID   string          `json:"assistantId"`
	ServiceDetails json.RawMessage `json:"serviceDetails"`
	TotalAmount    float64         `json:"totalAmount"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`

	Assistant    *AssistantSummary `json:"assistant,omitempty"`
	Transactions []Transaction     `json:"transactions,omitempty"`
	Review       *Review           `json:"review,omitempty"`
}

// OrderSummary вложенное представление заказа внутри отзыва.
type OrderSummary struct {
	UID         string    `json:"id"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}
