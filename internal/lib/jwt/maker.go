package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueAccessToken создает access-токен с uid, email и уровнем подписки,
// подписывая его секретом access-токенов.
func (m *MakerImpl) IssueAccessToken(uid, email, tier string) (string, error) {
	const op = "jwt.IssueAccessToken"
	now := time.Now()
	claims := AccessClaims{
		Email:            email,
		SubscriptionTier: tier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.accessSecret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// IssueRefreshToken создает refresh-токен с uid и email,
// подписывая его отдельным секретом refresh-токенов.
func (m *MakerImpl) IssueRefreshToken(uid, email string) (string, error) {
	const op = "jwt.IssueRefreshToken"
	now := time.Now()
	claims := RefreshClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.refreshSecret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseAccessToken парсит access-токен, проверяет подпись и срок действия,
// возвращает AccessClaims, если токен корректен.
func (m *MakerImpl) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.accessSecret), nil
	})
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseRefreshToken парсит refresh-токен против секрета refresh-токенов.
func (m *MakerImpl) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.refreshSecret), nil
	})
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// classify сводит все ошибки библиотеки к двум терминальным исходам:
// истёкший токен или невалидный токен. Частичного доверия нет.
func classify(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return ErrInvalidToken
}
