package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/errors"
)

// APIResponse is the envelope used by lead detail endpoints and every
// error reply.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *ErrorInfo          `json:"error,omitempty"`
	Errors  []errors.FieldError `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// ErrorInfo describes why a request failed.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// RespondOK writes a 200 envelope carrying data.
func RespondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

// RespondStatus writes a failure envelope with a fixed status and message.
// Middleware uses it before aborting the chain.
func RespondStatus(c *gin.Context, status int, message string) {
	writeFailure(c, status, ErrorInfo{Type: "error", Message: message}, nil)
}

// RespondError maps err onto a failure envelope. AppErrors keep their code,
// type and field list; anything else becomes an opaque 500.
func RespondError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		writeFailure(c, http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: constants.ErrMsgInternalServerError,
		}, nil)
		return
	}

	writeFailure(c, appErr.Code, ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	}, appErr.Fields)
}

func writeFailure(c *gin.Context, status int, info ErrorInfo, fields []errors.FieldError) {
	c.JSON(status, APIResponse{
		Error:   &info,
		Errors:  fields,
		Message: info.Message,
	})
}
