package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/http/response"
)

func TestPaginated_TotalPages(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		total     int
		wantPages int
	}{
		{"exact division", 10, 30, 3},
		{"rounds up", 10, 31, 4},
		{"empty", 10, 0, 0},
		{"single partial page", 12, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := response.Paginated(nil, 1, tt.limit, tt.total)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.wantPages, resp.Meta.TotalPages)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.True(t, resp.Success)
		})
	}
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	err := validator.New().Struct(form{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.False(t, resp.Success)
	assert.Equal(t, "validation error", resp.Message)
	assert.Contains(t, resp.Errors, "field Email must be a valid email")
	assert.Contains(t, resp.Errors, "field Password is too short")
}

func TestRenderError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"email taken", errs.ErrEmailTaken, http.StatusConflict, "user with this email already exists"},
		{"invalid credentials", errs.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"wrong password", errs.ErrWrongPassword, http.StatusUnauthorized, "current password is incorrect"},
		{"user gone", errs.ErrUserGone, http.StatusUnauthorized, "user no longer exists"},
		{"not found", errs.ErrNotFound, http.StatusNotFound, ""},
		{"duplicate review", errs.ErrReviewExists, http.StatusBadRequest, "review already exists for this order"},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden, "insufficient permissions"},
		{"unknown error hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			response.RenderError(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
			// текст внутренней ошибки наружу не уходит
			assert.NotContains(t, rr.Body.String(), "connection refused")
		})
	}
}
