package login_test

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
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/auth/login"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password string) (*models.User, *auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	pair, _ := args.Get(1).(*auth.TokenPair)
	return user, pair, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler(t *testing.T) {
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
			body:           `{`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "invalid request body",
		},
		{
			name:           "missing password",
			body:           `{"email": "a@x.com"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "validation error",
		},
		{
			name:           "bad credentials",
			body:           `{"email": "a@x.com", "password": "wrong"}`,
			mockErr:        errs.ErrInvalidCredentials,
			mockCalled:     true,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "invalid email or password",
		},
		{
			name:           "success",
			body:           `{"email": "a@x.com", "password": "correct"}`,
			mockUser:       &models.User{UID: "uid-1", Email: "a@x.com"},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantBody:       `"accessToken"`,
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
				svc.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(tt.mockUser, pair, tt.mockErr)
			}

			handler := login.New(newNoopLogger(), svc)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}
