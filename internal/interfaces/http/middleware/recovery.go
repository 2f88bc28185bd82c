package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Recovery converts a handler panic into the standard 500 envelope. When
// the client has already hung up nothing is written back.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := []any{
			"method", c.Request.Method,
			"route", routeOf(c),
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"panic", recovered,
		}

		if clientGone(recovered) {
			log.Warnw("client disconnected mid-response", fields...)
			c.Abort()
			return
		}

		log.Errorw("handler panicked", append(fields, "stack", string(debug.Stack()))...)
		abort(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
	})
}

func clientGone(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, http.ErrAbortHandler)
}
