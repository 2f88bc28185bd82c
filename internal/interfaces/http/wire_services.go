package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keshevplus/leadhub/internal/application/notification"
	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
	"github.com/keshevplus/leadhub/internal/infrastructure/config"
	"github.com/keshevplus/leadhub/internal/infrastructure/email"
	"github.com/keshevplus/leadhub/internal/infrastructure/permission"
	"github.com/keshevplus/leadhub/internal/infrastructure/ratelimit"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

const redisPingTimeout = 3 * time.Second

// initInfrastructure sets up Redis, repositories, auth services, the casbin
// enforcer and the email dispatcher.
func (c *Container) initInfrastructure() error {
	c.redis = initRedis(c.cfg, c.log)

	c.initRepositories()

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes, c.cfg.Auth.JWT.ResetExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.Allow(permission.LeadGrants...); err != nil {
		return fmt.Errorf("failed to seed lead permissions: %w", err)
	}
	c.enforcer = enforcer

	c.dispatcher = notification.NewDispatcher(
		email.NewSMTPSender(c.cfg.Email),
		email.NewRenderer(c.cfg.Email.Location()),
		c.cfg.Email,
		c.log.Named("notification"),
	)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)
	if c.redis != nil {
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), c.log)
	}

	return nil
}

// initRedis connects to Redis when a host is configured. Without Redis the
// service runs with rate limiting disabled.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled() {
		log.Warnw("redis not configured, rate limiting disabled")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, rate limiting disabled", "error", err, "addr", cfg.Redis.GetAddr())
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}
