package create_test

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
	"github.com/eklimchuk/assistant-marketplace/internal/http/handlers/order/create"
	"github.com/eklimchuk/assistant-marketplace/internal/http/middlewarectx"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
	"github.com/eklimchuk/assistant-marketplace/internal/services/order"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, input order.CreateInput) (*models.Order, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*models.Order)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const assistantUID = "a81bc81b-dead-4e5d-abff-90865d1e13b1"

func newRequest(body string, authenticated bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	if authenticated {
		ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
		req = req.WithContext(ctx)
	}
	return req
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authenticated  bool
		mockOrder      *models.Order
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "unauthenticated",
			body:           `{"assistantId": "` + assistantUID + `"}`,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "access token required",
		},
		{
			name:           "invalid json",
			body:           `{`,
			authenticated:  true,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "invalid request body",
		},
		{
			name:           "missing assistant id",
			body:           `{}`,
			authenticated:  true,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "validation error",
		},
		{
			name:           "inactive assistant",
			body:           `{"assistantId": "` + assistantUID + `"}`,
			authenticated:  true,
			mockErr:        errs.ErrNotFound,
			mockCalled:     true,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:          "success",
			body:          `{"assistantId": "` + assistantUID + `", "notes": "call me"}`,
			authenticated: true,
			mockOrder: &models.Order{
				UID:         "order-1",
				UserUID:     "uid-1",
				TotalAmount: 29.99,
				Currency:    "USD",
				Status:      models.OrderStatusPending,
			},
			mockCalled:     true,
			wantStatusCode: http.StatusCreated,
			wantBody:       `"pending"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockCalled {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in order.CreateInput) bool {
					return in.UserUID == "uid-1" && in.AssistantUID == assistantUID
				})).Return(tt.mockOrder, tt.mockErr)
			}

			handler := create.New(newNoopLogger(), svc)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(tt.body, tt.authenticated))

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
			if !tt.mockCalled {
				svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}
