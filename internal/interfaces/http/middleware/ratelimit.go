package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/infrastructure/metrics"
	"github.com/keshevplus/leadhub/internal/infrastructure/ratelimit"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// RateLimiter throttles public endpoints per client IP. Every route group
// passes its own name so contact and login budgets never mix.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, log logger.Interface) *RateLimiter {
	return &RateLimiter{limiter: limiter, logger: log}
}

// Limit returns a middleware enforcing limits under name. A nil limiter or
// zero limits disable it. Redis errors let the request through.
func (rl *RateLimiter) Limit(name string, limits ratelimit.Limits) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil || limits.IsZero() {
			c.Next()
			return
		}

		ip := c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), name+":"+ip, limits)
		switch {
		case err != nil:
			rl.logger.Warnw("rate limiter unavailable, request let through", "limit", name, "error", err)
		case !allowed:
			metrics.RecordRateLimitRejection(name)
			rl.logger.Warnw("client throttled", "limit", name, "ip", ip)
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(limits)))
			abort(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}

		c.Next()
	}
}

// retryAfterSeconds points at the shortest window that is switched on.
func retryAfterSeconds(limits ratelimit.Limits) int {
	if limits.PerMinute > 0 {
		return 60
	}
	return 3600
}
