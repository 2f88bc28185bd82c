package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
)

var (
	corsAllowHeaders = strings.Join([]string{
		"Content-Type", "Accept", "Origin",
		constants.HeaderAcceptLanguage,
		constants.HeaderAuthorization,
		constants.HeaderAuthToken,
		constants.HeaderXRequestID,
	}, ", ")
	corsAllowMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")
)

// CORS lets the marketing site and the admin panel call the API. Listed
// origins are echoed back with credentials; a "*" entry opens the API to
// any origin without them. Preflights are answered here.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
			continue
		}
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")

		if _, ok := origins[origin]; ok && origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else if wildcard {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method != http.MethodOptions {
			h.Set("Access-Control-Expose-Headers", constants.HeaderXRequestID)
			c.Next()
			return
		}

		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Max-Age", "86400")
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// SecurityHeaders is applied to every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
