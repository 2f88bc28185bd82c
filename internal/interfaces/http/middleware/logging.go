package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// quietPaths are polled by probes and scrapers; successful hits log at debug.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// AccessLog writes one line per request once the handler chain is done.
// The query string is left out because lead filters carry contact details.
func AccessLog(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"route", routeOf(c),
			"status", status,
			"duration", time.Since(began),
			"ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
			"request_id", c.GetString(constants.ContextKeyRequestID),
		}
		if adminID, ok := c.Get(constants.ContextKeyUserID); ok {
			fields = append(fields, "admin_id", adminID, "role", c.GetString(constants.ContextKeyUserRole))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		case isQuiet(c.Request.URL.Path):
			log.Debugw("request served", fields...)
		default:
			log.Infow("request served", fields...)
		}
	}
}

// routeOf prefers the registered pattern so lead ids do not fan out the log.
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}

func isQuiet(path string) bool {
	_, ok := quietPaths[path]
	return ok
}
