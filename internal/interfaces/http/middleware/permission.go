package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// PolicyEnforcer decides whether a role may perform action on resource.
type PolicyEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	policies PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(policies PolicyEnforcer, log logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{policies: policies, logger: log}
}

// RequirePermission checks the role that RequireAuth stored, so it has to be
// mounted after it.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			abort(c, http.StatusUnauthorized, "user not authenticated")
			return
		}

		allowed, err := m.policies.Enforce(role, resource, action)
		switch {
		case err != nil:
			m.logger.Errorw("policy lookup failed", "role", role, "resource", resource, "action", action, "error", err)
			abort(c, http.StatusInternalServerError, "permission check failed")
		case !allowed:
			adminID, _ := AdminID(c)
			m.logger.Warnw("admin lacks permission", "admin_id", adminID, "role", role, "resource", resource, "action", action)
			abort(c, http.StatusForbidden, "insufficient permissions")
		default:
			c.Next()
		}
	}
}
