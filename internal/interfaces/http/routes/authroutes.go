package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/infrastructure/ratelimit"
	authhandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/auth"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds what the admin login routes need. Limits apply to
// login and reset requests, each under its own budget.
type AuthRouteConfig struct {
	AuthHandler    *authhandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	Limits         ratelimit.Limits
}

// SetupAuthRoutes mounts /auth. Login and reset are public; logout and me
// need a valid access token.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	h := cfg.AuthHandler
	limited := func(name string) gin.HandlerFunc {
		return cfg.RateLimiter.Limit(name, cfg.Limits)
	}

	public := engine.Group("/auth")
	public.POST("/login", limited("login"), h.Login)
	public.POST("/request-reset", limited("request-reset"), h.RequestReset)
	public.POST("/reset-password", h.ResetPassword)

	session := public.Group("", cfg.AuthMiddleware.RequireAuth())
	session.POST("/logout", h.Logout)
	session.GET("/me", h.Me)
}
