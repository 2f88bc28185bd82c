package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/infrastructure/permission"
	leadhandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/lead"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
)

type LeadRouteConfig struct {
	LeadHandler          *leadhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupLeadRoutes mounts the admin lead API under /leads and /api/leads.
func SetupLeadRoutes(engine *gin.Engine, config *LeadRouteConfig) {
	for _, prefix := range []string{"/leads", "/api/leads"} {
		registerLeadRoutes(engine.Group(prefix), config)
	}
}

func registerLeadRoutes(leads *gin.RouterGroup, config *LeadRouteConfig) {
	leads.Use(config.AuthMiddleware.RequireAuth())

	read := config.PermissionMiddleware.RequirePermission(permission.ResourceLeads, permission.ActionRead)
	write := config.PermissionMiddleware.RequirePermission(permission.ResourceLeads, permission.ActionWrite)

	// Collection operations
	leads.GET("", read, config.LeadHandler.List)

	// Must come BEFORE /:id
	leads.GET("/unread-count", read, config.LeadHandler.UnreadCount)

	leads.PUT("/:id/read", write, config.LeadHandler.MarkRead)

	leads.GET("/:id", read, config.LeadHandler.Get)
	leads.PUT("/:id", write, config.LeadHandler.Update)
	leads.DELETE("/:id", write, config.LeadHandler.Delete)
}
