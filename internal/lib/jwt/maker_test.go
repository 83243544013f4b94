package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/eklimchuk/assistant-marketplace/internal/lib/jwt"
)

func newTestMaker() *jwtlib.MakerImpl {
	return jwtlib.NewMaker("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestAccessTokenRoundtrip(t *testing.T) {
	maker := newTestMaker()

	token, err := maker.IssueAccessToken("uid-123", "user@example.com", "premium")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "premium", claims.SubscriptionTier)
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	maker := newTestMaker()

	token, err := maker.IssueRefreshToken("uid-123", "user@example.com")
	require.NoError(t, err)

	claims, err := maker.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseAccessToken_Expired(t *testing.T) {
	maker := jwtlib.NewMaker("access-secret", "refresh-secret", -time.Minute, 168*time.Hour)

	token, err := maker.IssueAccessToken("uid-123", "user@example.com", "free")
	require.NoError(t, err)

	_, err = maker.ParseAccessToken(token)
	assert.ErrorIs(t, err, jwtlib.ErrExpiredToken)
}

func TestParseAccessToken_Tampered(t *testing.T) {
	maker := newTestMaker()

	token, err := maker.IssueAccessToken("uid-123", "user@example.com", "free")
	require.NoError(t, err)

	_, err = maker.ParseAccessToken(token + "x")
	assert.ErrorIs(t, err, jwtlib.ErrInvalidToken)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	maker := newTestMaker()

	_, err := maker.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, jwtlib.ErrInvalidToken)
}

// Refresh-токен не должен проходить проверку как access-токен: они
// подписаны разными секретами.
func TestCrossSecretRejected(t *testing.T) {
	maker := newTestMaker()

	refresh, err := maker.IssueRefreshToken("uid-123", "user@example.com")
	require.NoError(t, err)
	_, err = maker.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, jwtlib.ErrInvalidToken)

	access, err := maker.IssueAccessToken("uid-123", "user@example.com", "free")
	require.NoError(t, err)
	_, err = maker.ParseRefreshToken(access)
	assert.ErrorIs(t, err, jwtlib.ErrInvalidToken)
}

func TestExpiresIn(t *testing.T) {
	maker := newTestMaker()
	assert.Equal(t, int64(900), maker.ExpiresIn())
}
