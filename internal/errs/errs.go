// Package errs определяет типизированные ошибки доменного уровня.
//
// Сервисы возвращают эти sentinel-ошибки (обёрнутыми через %w),
// а единая точка маппинга response.RenderError переводит их
// в HTTP-статус и JSON-конверт ответа.
package errs

import "errors"

var (
	// ErrEmailTaken пользователь с таким email уже зарегистрирован (409).
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials единая ошибка аутентификации (401).
	// Намеренно одинакова для «нет такого email» и «неверный пароль»,
	// чтобы не допускать перебор пользователей.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongPassword текущий пароль не совпал при смене пароля (401).
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrUserNotFound пользователь не найден в хранилище (404).
	ErrUserNotFound = errors.New("user not found")

	// ErrUserGone токен валиден, но пользователь уже удалён (401).
	ErrUserGone = errors.New("user no longer exists")

	// ErrNotFound ресурс не найден или недоступен вызывающему (404).
	ErrNotFound = errors.New("not found")

	// ErrReviewExists отзыв на этот заказ уже оставлен (400).
	ErrReviewExists = errors.New("review already exists for this order")

	// ErrForbidden аутентифицирован, но уровень подписки не даёт доступа (403).
	ErrForbidden = errors.New("insufficient permissions")
)
