package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	jwtlib "github.com/eklimchuk/assistant-marketplace/internal/lib/jwt"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

type AuthenticatorMock struct {
	mock.Mock
}

func (m *AuthenticatorMock) Authenticate(ctx context.Context, accessToken string) (*models.Identity, error) {
	args := m.Called(ctx, accessToken)
	res, _ := args.Get(0).(*models.Identity)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthMiddleware(t *testing.T) {
	identity := &models.Identity{UID: "uid-1", Email: "user@example.com", SubscriptionTier: models.TierFree}

	tests := []struct {
		name           string
		authHeader     string
		mockIdentity   *models.Identity
		mockErr        error
		wantStatusCode int
		wantBody       string
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "access token required",
		},
		{
			name:           "wrong header scheme",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "access token required",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer token",
			mockErr:        jwtlib.ErrExpiredToken,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "token expired",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer token",
			mockErr:        jwtlib.ErrInvalidToken,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "invalid token",
		},
		{
			name:           "deleted user",
			authHeader:     "Bearer token",
			mockErr:        errs.ErrUserGone,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "user no longer exists",
		},
		{
			name:           "valid token",
			authHeader:     "Bearer token",
			mockIdentity:   identity,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthenticatorMock)
			if tt.mockIdentity != nil || tt.mockErr != nil {
				authMock.On("Authenticate", mock.Anything, "token").Return(tt.mockIdentity, tt.mockErr)
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				assert.Equal(t, "uid-1", r.Context().Value(middlewarectx.UserUID))
				assert.Equal(t, "user@example.com", r.Context().Value(middlewarectx.UserEmail))
				assert.Equal(t, models.TierFree, r.Context().Value(middlewarectx.UserTier))
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.AuthMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

// Optional auth никогда не отклоняет запрос: любая ошибка токена
// оставляет запрос анонимным.
func TestOptionalAuthMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		mockIdentity *models.Identity
		mockErr      error
		wantUID      any
	}{
		{
			name:       "no header passes as anonymous",
			authHeader: "",
			wantUID:    nil,
		},
		{
			name:       "bad token passes as anonymous",
			authHeader: "Bearer bad",
			mockErr:    jwtlib.ErrInvalidToken,
			wantUID:    nil,
		},
		{
			name:       "expired token passes as anonymous",
			authHeader: "Bearer bad",
			mockErr:    jwtlib.ErrExpiredToken,
			wantUID:    nil,
		},
		{
			name:         "valid token attaches identity",
			authHeader:   "Bearer good",
			mockIdentity: &models.Identity{UID: "uid-1", Email: "u@example.com", SubscriptionTier: models.TierFree},
			wantUID:      "uid-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthenticatorMock)
			if tt.mockIdentity != nil || tt.mockErr != nil {
				authMock.On("Authenticate", mock.Anything, mock.Anything).Return(tt.mockIdentity, tt.mockErr)
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				assert.Equal(t, tt.wantUID, r.Context().Value(middlewarectx.UserUID))
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.OptionalAuthMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/public", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.True(t, handlerCalled)
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestRequireTierMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		tierInContext  string
		allowed        []string
		wantStatusCode int
	}{
		{
			name:           "no identity",
			tierInContext:  "",
			allowed:        []string{models.TierPremium},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "tier not whitelisted",
			tierInContext:  models.TierFree,
			allowed:        []string{models.TierPremium, models.TierBusiness},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "tier allowed",
			tierInContext:  models.TierPremium,
			allowed:        []string{models.TierPremium, models.TierBusiness},
			wantStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.RequireTierMiddleware(newNoopLogger(), tt.allowed...)(next)

			req := httptest.NewRequest(http.MethodGet, "/premium", nil)
			if tt.tierInContext != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserTier, tt.tierInContext)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middlewarectx.RateLimitMiddleware(newNoopLogger(), 1, 2)(next)

	codes := make([]int, 0, 4)
	for range 4 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
