// Package errors is the error taxonomy shared by use cases and handlers.
// Every AppError carries the HTTP status it is rendered with.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Type    ErrorType    `json:"type"`
	Message string       `json:"message"`
	Code    int          `json:"code"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details == "" {
		return string(e.Type) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
}

// build takes at most one detail string; extra values are ignored.
func build(t ErrorType, code int, message string, details []string) *AppError {
	e := &AppError{Type: t, Code: code, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func NewValidationError(message string, details ...string) *AppError {
	return build(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewFieldValidationError reports every invalid field at once. Details joins
// the messages for log lines that do not print Fields.
func NewFieldValidationError(fields ...FieldError) *AppError {
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Message
	}
	e := build(ErrorTypeValidation, http.StatusBadRequest, "Validation failed", []string{strings.Join(msgs, "; ")})
	e.Fields = fields
	return e
}

func NewBadRequestError(message string, details ...string) *AppError {
	return build(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return build(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return build(ErrorTypeConflict, http.StatusConflict, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return build(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return build(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewInternalError also covers an unreachable database or a query timeout.
func NewInternalError(message string, details ...string) *AppError {
	return build(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// GetAppError returns the first AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// HasType reports whether err wraps an AppError of type t.
func HasType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool   { return HasType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool { return HasType(err, ErrorTypeValidation) }

// duplicateMarkers are matched against lower-cased driver messages.
var duplicateMarkers = []string{
	"duplicate entry",   // mysql
	"duplicate key",     // postgres
	"unique constraint", // postgres, sqlite
}

// IsDuplicateError is the message-text fallback behind the typed driver
// checks in the database package.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range duplicateMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
