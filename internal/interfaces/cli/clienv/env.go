// Package clienv loads configuration, logging and the database pool for
// one-shot CLI commands.
package clienv

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/config"
	"github.com/keshevplus/leadhub/internal/infrastructure/database"
	"github.com/keshevplus/leadhub/internal/infrastructure/repository"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Flags are the persistent flags every command accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

type Env struct {
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
}

// Load reads configuration and initializes logging without touching the
// database.
func Load(flags Flags) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(flags.Env, flags.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, !cfg.IsProduction()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Open is Load plus a connected database pool. Callers must Close it.
func Open(flags Flags) (*Env, error) {
	cfg, log, err := Load(flags)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Env{Config: cfg, Log: log, DB: db}, nil
}

func (e *Env) Close() {
	if err := database.Close(e.DB); err != nil {
		e.Log.Warnw("failed to close database", "error", err)
	}
}

func (e *Env) IdentityRepository() identity.Repository {
	return repository.NewIdentityRepository(e.DB, e.Config.Database.GetQueryTimeout(), e.Log.Named("repository.identity"))
}

func (e *Env) SubmissionRepository() submission.Repository {
	return repository.NewSubmissionRepository(e.DB, e.Config.Database.GetQueryTimeout(), e.Log.Named("repository.submission"))
}
