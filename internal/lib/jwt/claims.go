// Package jwt реализует выпуск и парсинг пары JWT токенов (access + refresh)
// с пользовательскими claim полями.
//
// Два вида токенов подписываются разными секретами: проверка access-токена
// никогда не примет refresh-токен и наоборот.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpiredToken срок действия токена истёк.
	ErrExpiredToken = errors.New("token expired")
	// ErrInvalidToken подпись не сошлась, payload повреждён или токен не того вида.
	ErrInvalidToken = errors.New("invalid token")
)

// AccessClaims описывает данные, хранящиеся в access-токене.
// Subject стандартных claims содержит uid пользователя.
type AccessClaims struct {
	Email                string `json:"email"`
	SubscriptionTier     string `json:"subscription_tier"`
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// RefreshClaims описывает данные refresh-токена: только uid и email,
// уровень подписки перечитывается из хранилища при ротации.
type RefreshClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Maker описывает интерфейс для выпуска и парсинга пары токенов.
type Maker interface {
	// IssueAccessToken выпускает короткоживущий access-токен.
	IssueAccessToken(uid, email, tier string) (string, error)
	// IssueRefreshToken выпускает долгоживущий refresh-токен.
	IssueRefreshToken(uid, email string) (string, error)
	// ParseAccessToken проверяет подпись и срок действия access-токена.
	ParseAccessToken(tokenStr string) (*AccessClaims, error)
	// ParseRefreshToken проверяет подпись и срок действия refresh-токена.
	ParseRefreshToken(tokenStr string) (*RefreshClaims, error)
	// ExpiresIn возвращает срок жизни access-токена в секундах,
	// ровно тот же, с которым токен был подписан. Клиент использует
	// значение для планирования своего refresh-таймера.
	ExpiresIn() int64
}

// MakerImpl реализует Maker на двух секретных ключах и двух TTL.
type MakerImpl struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewMaker создаёт новый MakerImpl.
func NewMaker(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// ExpiresIn возвращает TTL access-токена в целых секундах.
func (m *MakerImpl) ExpiresIn() int64 {
	return int64(m.accessTTL.Seconds())
}
