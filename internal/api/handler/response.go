// internal/api/handler/response.go
package handler

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"login-form-server/pkg/errors"
)

// Error wraps error messages for consistent JSON responses
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// WriteJSON sends a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// WriteError sends a JSON error response with the given status code
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, status int) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err), zap.Int("status", status))
	} else {
		logger.Debug("request rejected", zap.Error(err), zap.Int("status", status))
	}
	WriteJSON(w, r, Error{
		Status:  status,
		Message: err.Error(),
	}, status)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) (int, error) {
	switch e := err.(type) {
	case *errors.ValidationError:
		return http.StatusBadRequest, e
	case *errors.BadRequestError:
		return http.StatusBadRequest, e
	case *errors.StorageError:
		return http.StatusServiceUnavailable, e
	default:
		return http.StatusInternalServerError, errors.NewInternalError()
	}
}
