package http

import (
	"context"

	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/infrastructure/database"
	authHandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/auth"
	contactHandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/contact"
	healthHandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/health"
	leadHandlers "github.com/keshevplus/leadhub/internal/interfaces/http/handlers/lead"
	"github.com/keshevplus/leadhub/internal/shared/version"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	contactHandler *contactHandlers.Handler
	leadHandler    *leadHandlers.Handler
	authHandler    *authHandlers.Handler
	healthHandler  *healthHandlers.Handler
}

func (c *Container) initHandlers() {
	u := c.ucs

	c.hdlrs = &allHandlers{
		contactHandler: contactHandlers.NewHandler(u.submitContactUC, c.log.Named("handler.contact")),
		leadHandler: leadHandlers.NewHandler(
			u.listSubmissionsUC,
			u.getSubmissionUC,
			u.updateSubmissionUC,
			u.deleteSubmissionUC,
			u.markReadUC,
			u.unreadCountUC,
			c.log.Named("handler.lead"),
		),
		authHandler: authHandlers.NewHandler(
			u.loginUC,
			u.logoutUC,
			u.currentAdminUC,
			u.requestResetUC,
			u.resetPasswordUC,
			c.log.Named("handler.auth"),
		),
		healthHandler: healthHandlers.NewHandler(sqlPinger{c.db}, version.Current(), c.log.Named("handler.health")),
	}
}

// sqlPinger lets the health handler ping the pool behind gorm.
type sqlPinger struct {
	db *gorm.DB
}

func (p sqlPinger) PingContext(ctx context.Context) error {
	return database.Ping(ctx, p.db)
}
