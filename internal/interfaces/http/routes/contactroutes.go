package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/infrastructure/ratelimit"
	contacthandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/contact"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
)

type ContactRouteConfig struct {
	ContactHandler *contacthandlers.Handler
	RateLimiter    *middleware.RateLimiter
	Limits         ratelimit.Limits
}

// SetupContactRoutes mounts the public contact form at /contact and its
// legacy /api/contact alias.
func SetupContactRoutes(engine *gin.Engine, config *ContactRouteConfig) {
	limit := config.RateLimiter.Limit("contact", config.Limits)

	engine.POST("/contact", limit, config.ContactHandler.Submit)
	engine.POST("/api/contact", limit, config.ContactHandler.Submit)
}
