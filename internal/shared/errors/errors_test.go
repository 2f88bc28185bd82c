package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), ErrorTypeConflict, http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("no"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorTypeForbidden, http.StatusForbidden},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
		{"bad request", NewBadRequestError("bad"), ErrorTypeBadRequest, http.StatusBadRequest},
		{"invalid credentials", NewInvalidCredentialsError(), ErrorTypeInvalidCredentials, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestNewFieldValidationError(t *testing.T) {
	err := NewFieldValidationError(
		FieldError{Field: "name", Message: "name is required"},
		FieldError{Field: "message", Message: "message is required"},
	)

	require.Len(t, err.Fields, 2)
	assert.Equal(t, "name", err.Fields[0].Field)
	assert.Equal(t, "name is required; message is required", err.Details)
	assert.True(t, IsValidationError(err))
}

func TestGetAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("lead not found"))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, HasType(wrapped, ErrorTypeConflict))
	assert.Equal(t, "not_found: lead not found", appErr.Error())
	assert.Nil(t, GetAppError(stderrors.New("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", stderrors.New("Error 1062: Duplicate entry 'a@b.c' for key 'idx_users_email'"), true},
		{"postgres", stderrors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`), true},
		{"sqlite", stderrors.New("UNIQUE constraint failed: users.email"), true},
		{"other", stderrors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
