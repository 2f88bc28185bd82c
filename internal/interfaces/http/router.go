package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/keshevplus/leadhub/internal/infrastructure/metrics"
	"github.com/keshevplus/leadhub/internal/infrastructure/ratelimit"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
	"github.com/keshevplus/leadhub/internal/interfaces/http/routes"

	_ "github.com/keshevplus/leadhub/docs"
)

// SetupRoutes installs the global middleware chain and every route group.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.AccessLog(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.Metrics())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.Check)
	c.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	if gin.Mode() != gin.ReleaseMode && c.cfg.Server.EnableSwagger {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	rl := c.cfg.RateLimit

	routes.SetupContactRoutes(c.engine, &routes.ContactRouteConfig{
		ContactHandler: c.hdlrs.contactHandler,
		RateLimiter:    c.rateLimiter,
		Limits:         ratelimit.Limits{PerMinute: rl.ContactPerMinute, PerHour: rl.ContactPerHour},
	})

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
		Limits:         ratelimit.Limits{PerMinute: rl.LoginPerMinute, PerHour: rl.LoginPerHour},
	})

	routes.SetupLeadRoutes(c.engine, &routes.LeadRouteConfig{
		LeadHandler:          c.hdlrs.leadHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	c.log.Infow("routes registered", "swagger", c.cfg.Server.EnableSwagger && gin.Mode() != gin.ReleaseMode)
}
