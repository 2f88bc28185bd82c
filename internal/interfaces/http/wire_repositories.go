package http

import (
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	identityRepo   identity.Repository
	submissionRepo submission.Repository
}

func (c *Container) initRepositories() {
	timeout := c.cfg.Database.GetQueryTimeout()
	c.repos = &repositories{
		identityRepo:   repository.NewIdentityRepository(c.db, timeout, c.log.Named("repository.identity")),
		submissionRepo: repository.NewSubmissionRepository(c.db, timeout, c.log.Named("repository.submission")),
	}
}
