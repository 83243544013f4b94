package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
)

// RenderError единая точка маппинга доменных ошибок на HTTP-статус
// и конверт ответа. Неизвестные ошибки сворачиваются в 500 с
// общим сообщением, текст внутренней ошибки наружу не уходит.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	w.WriteHeader(status)
	render.JSON(w, r, Error(msg))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrEmailTaken):
		return http.StatusConflict, errs.ErrEmailTaken.Error()
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized, errs.ErrInvalidCredentials.Error()
	case errors.Is(err, errs.ErrWrongPassword):
		return http.StatusUnauthorized, errs.ErrWrongPassword.Error()
	case errors.Is(err, errs.ErrUserGone):
		return http.StatusUnauthorized, errs.ErrUserGone.Error()
	case errors.Is(err, errs.ErrUserNotFound):
		return http.StatusNotFound, errs.ErrUserNotFound.Error()
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errs.ErrNotFound.Error()
	case errors.Is(err, errs.ErrReviewExists):
		return http.StatusBadRequest, errs.ErrReviewExists.Error()
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, errs.ErrForbidden.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
