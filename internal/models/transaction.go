package models

import (
	"encoding/json"
	"time"
)

// Типы транзакций по заказу.
const (
	TransactionPayment    = "payment"
	TransactionRefund     = "refund"
	TransactionCommission = "commission"
	TransactionFee        = "fee"
)

// Transaction денежная операция, привязанная к заказу.
// Реальное проведение платежа делегировано внешнему провайдеру,
// здесь фиксируется только учётная запись операции.
type Transaction struct {
	UID         string          `json:"id"`
	OrderUID    string          `json:"orderId"`
	Type        string          `json:"type"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
