package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

// TokenVerifier checks an access token.
type TokenVerifier interface {
	Verify(tokenString string, want auth.TokenType) (*auth.Claims, error)
}

// AuthMiddleware guards the admin panel routes.
type AuthMiddleware struct {
	tokens TokenVerifier
	logger logger.Interface
}

func NewAuthMiddleware(tokens TokenVerifier, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: log}
}

// RequireAuth admits requests carrying a valid access token and stores the
// admin id and role on the context. Reset tokens are refused here.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != "" {
			abort(c, http.StatusUnauthorized, problem)
			return
		}

		claims, err := m.tokens.Verify(token, auth.TokenTypeAccess)
		if err != nil {
			m.logger.Warnw("rejected admin token", "route", routeOf(c), "error", err)
			abort(c, http.StatusUnauthorized, "Token is not valid")
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// bearerToken reads x-auth-token first, as the admin panel sends it, then
// an Authorization Bearer header. A non-empty problem explains a refusal.
func bearerToken(c *gin.Context) (token, problem string) {
	if t := c.GetHeader(constants.HeaderAuthToken); t != "" {
		return t, ""
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", "No token, authorization denied"
	}

	scheme, value, ok := strings.Cut(header, " ")
	value = strings.TrimSpace(value)
	if !ok || !strings.EqualFold(scheme, "Bearer") || value == "" {
		return "", "invalid authorization header format"
	}
	return value, ""
}

// AdminID returns the id RequireAuth stored.
func AdminID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func abort(c *gin.Context, status int, message string) {
	utils.RespondStatus(c, status, message)
	c.Abort()
}
