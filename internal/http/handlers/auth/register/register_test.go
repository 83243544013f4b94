package register_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/register"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*models.User, *auth.TokenPair, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*models.User)
	pair, _ := args.Get(1).(*auth.TokenPair)
	return user, pair, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockUser       *models.User
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "invalid json",
			body:           `{not json`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "invalid request body",
		},
		{
			name:           "missing email",
			body:           `{"password": "longenough1"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "validation error",
		},
		{
			name:           "missing password",
			body:           `{"email": "a@x.com"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "validation error",
		},
		{
			name:           "invalid email",
			body:           `{"email": "nope", "password": "longenough1"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "must be a valid email",
		},
		{
			name:           "short password",
			body:           `{"email": "a@x.com", "password": "short"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "too short",
		},
		{
			name:           "duplicate email",
			body:           `{"email": "taken@x.com", "password": "longenough1"}`,
			mockErr:        errs.ErrEmailTaken,
			mockCalled:     true,
			wantStatusCode: http.StatusConflict,
			wantBody:       "already exists",
		},
		{
			name:           "success",
			body:           `{"email": "a@x.com", "password": "longenough1"}`,
			mockUser:       &models.User{UID: "uid-1", Email: "a@x.com", SubscriptionTier: models.TierFree},
			mockCalled:     true,
			wantStatusCode: http.StatusCreated,
			wantBody:       `"a@x.com"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockCalled {
				var pair *auth.TokenPair
				if tt.mockErr == nil {
					pair = &auth.TokenPair{AccessToken: "acc", RefreshToken: "ref", ExpiresIn: 900}
				}
				svc.On("Register", mock.Anything, mock.Anything).Return(tt.mockUser, pair, tt.mockErr)
			}

			handler := register.New(newNoopLogger(), svc)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			if !tt.mockCalled {
				svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			}
		})
	}
}

// В ответе не должно быть хэша пароля.
func TestRegisterHandler_NoPasswordInResponse(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Register", mock.Anything, mock.Anything).Return(&models.User{
		UID:          "uid-1",
		Email:        "a@x.com",
		PasswordHash: "$2a$12$secret",
	}, &auth.TokenPair{AccessToken: "acc", RefreshToken: "ref", ExpiresIn: 900}, nil)

	handler := register.New(newNoopLogger(), svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email": "a@x.com", "password": "longenough1"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")
	assert.NotContains(t, rr.Body.String(), "password")
}
