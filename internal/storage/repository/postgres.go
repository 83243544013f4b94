// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, ассистентов, заказов, отзывов и транзакций.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(connectionString string) (*Storage, error) {
	const op = "repository.New"
	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{DB: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// isUniqueViolation проверяет нарушение уникального ограничения.
// Гонка двух конкурентных вставок с одинаковым ключом разрешается
// ограничением базы: проигравший получает именно эту ошибку.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isMissingRow сообщает, что строка не найдена. Идентификатор из пути
// запроса может не быть валидным UUID; Postgres отвечает на такой
// параметр ошибкой 22P02, для клиента это тот же несуществующий id.
func isMissingRow(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
