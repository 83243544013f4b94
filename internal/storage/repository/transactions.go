package repository

import (
	"context"
	"fmt"

	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// CreateTransaction фиксирует учётную запись денежной операции по заказу.
func (s *Storage) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	const op = "repository.CreateTransaction"

	metadata := tx.Metadata
	if metadata == nil {
		metadata = []byte(`{}`)
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO transactions (order_uid, type, amount, currency, description, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		tx.OrderUID, tx.Type, tx.Amount, tx.Currency, tx.Description, metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// listOrderTransactions возвращает транзакции заказа, новые первыми.
func (s *Storage) listOrderTransactions(ctx context.Context, orderUID string) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT uid, order_uid, type, amount, currency, description, metadata, created_at
		FROM transactions
		WHERE order_uid = $1
		ORDER BY created_at DESC`, orderUID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err = rows.Scan(&tx.UID, &tx.OrderUID, &tx.Type, &tx.Amount, &tx.Currency,
			&tx.Description, &tx.Metadata, &tx.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
