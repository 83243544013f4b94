package models

import "time"

// Review представляет отзыв на выполненный заказ.
// Пара (order_uid, user_uid) уникальна: один отзыв на заказ.
type Review struct {
	UID          string    `json:"id"`
	UserUID      string    `json:"userId,omitempty"`
	AssistantUID string    `json:"assistantId,omitempty"`
	OrderUID     string    `json:"orderId,omitempty"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	Author    *ReviewAuthor     `json:"user,omitempty"`
	Assistant *AssistantSummary `json:"assistant,omitempty"`
	Order     *OrderSummary     `json:"order,omitempty"`
}

// ReviewAuthor имя автора отзыва для публичной витрины.
type ReviewAuthor struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}
