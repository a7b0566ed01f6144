package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sasazame/todo-app-backend/internal/domain"
)

func captureError(t *testing.T, err error, notFoundCode string) (int, ErrorResponse) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(c, err, notFoundCode)

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestWriteErrorStatusAndCode(t *testing.T) {
	cases := []struct {
		name         string
		err          error
		notFoundCode string
		wantStatus   int
		wantCode     string
	}{
		{"invalid argument", domain.ErrInvalidArgument, "TODO_NOT_FOUND", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"duplicate email", domain.ErrDuplicateEmail, "USER_NOT_FOUND", http.StatusConflict, "EMAIL_ALREADY_EXISTS"},
		{"duplicate username", domain.ErrDuplicateUsername, "USER_NOT_FOUND", http.StatusConflict, "USERNAME_ALREADY_EXISTS"},
		{"authentication failed", domain.ErrAuthenticationFailed, "USER_NOT_FOUND", http.StatusUnauthorized, "AUTHENTICATION_FAILED"},
		{"unauthenticated", domain.ErrUnauthenticated, "USER_NOT_FOUND", http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"access denied", domain.ErrAccessDenied, "TODO_NOT_FOUND", http.StatusForbidden, "ACCESS_DENIED"},
		{"todo not found", domain.ErrNotFound, "TODO_NOT_FOUND", http.StatusNotFound, "TODO_NOT_FOUND"},
		{"user not found", domain.ErrNotFound, "USER_NOT_FOUND", http.StatusNotFound, "USER_NOT_FOUND"},
		{"unknown error", errors.New("pg connection reset"), "TODO_NOT_FOUND", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := captureError(t, tc.err, tc.notFoundCode)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if body.Code != tc.wantCode {
				t.Errorf("code = %s, want %s", body.Code, tc.wantCode)
			}
			if body.Timestamp.IsZero() {
				t.Error("timestamp missing")
			}
		})
	}
}

func TestWriteErrorValidationListsFields(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("title", "must not be blank")
	ve.Add("priority", "must be one of HIGH, MEDIUM, LOW")

	status, body := captureError(t, ve, "TODO_NOT_FOUND")

	if status != http.StatusBadRequest || body.Code != "VALIDATION_ERROR" {
		t.Fatalf("got %d %s, want 400 VALIDATION_ERROR", status, body.Code)
	}
	if len(body.Errors) != 2 || body.Errors["title"] == "" || body.Errors["priority"] == "" {
		t.Errorf("field errors = %v, want title and priority entries", body.Errors)
	}
}

func TestWriteErrorWrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Join(errors.New("update todo"), domain.ErrAccessDenied)

	status, body := captureError(t, wrapped, "TODO_NOT_FOUND")

	if status != http.StatusForbidden || body.Code != "ACCESS_DENIED" {
		t.Errorf("got %d %s, want 403 ACCESS_DENIED", status, body.Code)
	}
}
