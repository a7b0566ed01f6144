package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error contract: callers match on Code, the
// message is human text.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// writeError maps a core error kind to its one fixed status and machine
// code. notFoundCode names the resource so TODO_NOT_FOUND and
// USER_NOT_FOUND stay distinct.
func writeError(c *gin.Context, err error, notFoundCode string) {
	if ve, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:      "VALIDATION_ERROR",
			Message:   "invalid input",
			Errors:    ve.Fields,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	var status int
	var code, message string

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status, code, message = http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument"
	case errors.Is(err, domain.ErrDuplicateEmail):
		status, code, message = http.StatusConflict, "EMAIL_ALREADY_EXISTS", "email already exists"
	case errors.Is(err, domain.ErrDuplicateUsername):
		status, code, message = http.StatusConflict, "USERNAME_ALREADY_EXISTS", "username already exists"
	case errors.Is(err, domain.ErrAuthenticationFailed):
		status, code, message = http.StatusUnauthorized, "AUTHENTICATION_FAILED", "authentication failed"
	case errors.Is(err, domain.ErrUnauthenticated):
		status, code, message = http.StatusUnauthorized, "UNAUTHENTICATED", "unauthenticated"
	case errors.Is(err, domain.ErrAccessDenied):
		status, code, message = http.StatusForbidden, "ACCESS_DENIED", "access denied"
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = http.StatusNotFound, notFoundCode, "resource not found"
	default:
		logger.Error("internal error", "error", err, "path", c.FullPath())
		status, code, message = http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}

	c.JSON(status, ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
