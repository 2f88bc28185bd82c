package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/application/notification"
	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
	"github.com/keshevplus/leadhub/internal/infrastructure/config"
	"github.com/keshevplus/leadhub/internal/infrastructure/permission"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases,
// handlers and middlewares, wires them together and releases them on
// Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Auth and notification services
	jwtSvc     *auth.JWTService
	hasher     *auth.BcryptPasswordHasher
	enforcer   *permission.Enforcer
	dispatcher *notification.Dispatcher
}

// NewContainer creates a Container with every dependency wired. db is the
// single pool shared by all repositories.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, auth, email
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine with routes installed by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases connections the container opened. The database pool
// belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
