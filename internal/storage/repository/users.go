package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

const userColumns = `uid, email, password_hash, first_name, last_name, phone,
	address, preferences, subscription_tier, created_at, updated_at`

// CreateUser сохраняет нового пользователя и возвращает созданную запись.
// Дубликат email транслируется в errs.ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "repository.CreateUser"

	address := user.Address
	if address == nil {
		address = []byte(`{}`)
	}
	preferences := user.Preferences
	if preferences == nil {
		preferences = []byte(`{}`)
	}

	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone,
			      address, preferences, subscription_tier)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		address, preferences, user.SubscriptionTier)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetUserByEmail возвращает пользователя по email (регистрозависимо).
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "repository.GetUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetUserByUID возвращает пользователя по его uid.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "repository.GetUserByUID"

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	user, err := scanUser(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUserProfile применяет частичное обновление профиля: в SET попадают
// только не-nil поля, остальные колонки остаются нетронутыми.
func (s *Storage) UpdateUserProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "repository.UpdateUserProfile"

	set := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Address != nil {
		add("address", []byte(upd.Address))
	}

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE uid = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), userColumns)

	user, err := scanUser(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUserPassword перезаписывает хэш пароля пользователя.
func (s *Storage) UpdateUserPassword(ctx context.Context, uid, passwordHash string) error {
	const op = "repository.UpdateUserPassword"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE uid = $2`,
		passwordHash, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
	}
	return nil
}

// DeleteUser удаляет пользователя. Заказы, отзывы и транзакции
// удаляются каскадом по внешним ключам.
func (s *Storage) DeleteUser(ctx context.Context, uid string) error {
	const op = "repository.DeleteUser"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrUserNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var firstName, lastName, phone sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &firstName, &lastName, &phone,
		&u.Address, &u.Preferences, &u.SubscriptionTier, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if firstName.Valid {
		u.FirstName = &firstName.String
	}
	if lastName.Valid {
		u.LastName = &lastName.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	return u, nil
}
