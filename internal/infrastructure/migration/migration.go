package migration

import (
	"fmt"
	"io"
	"io/fs"

	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/infrastructure/migration/scripts"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/shared/config"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Tool names accepted by database.migration_tool and `migrate --tool`.
const (
	ToolGoose         = "goose"
	ToolGolangMigrate = "golang-migrate"
)

// Default on-disk locations `migrate create` writes into.
const (
	DefaultGooseScriptsPath   = "./internal/infrastructure/migration/scripts/goose"
	DefaultMigrateScriptsPath = "./internal/infrastructure/migration/scripts/migrate"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for cfg. PostgreSQL uses the versioned SQL
// scripts with the configured tool; sqlite and mysql use AutoMigrate.
func NewManager(cfg *config.DatabaseConfig, tool, scriptsPath string, log logger.Interface) (*Manager, error) {
	if tool == "" {
		tool = cfg.MigrationTool
	}

	var strategy Strategy
	switch {
	case cfg.Driver != "postgres":
		strategy = NewGormAutoMigrateStrategy(log)
	case tool == ToolGolangMigrate:
		sub, err := fs.Sub(scripts.Migrate, scripts.MigrateDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open migrate scripts: %w", err)
		}
		if scriptsPath == "" {
			scriptsPath = DefaultMigrateScriptsPath
		}
		strategy = NewGolangMigrateStrategy(cfg.GetDSN(), sub, scriptsPath, log)
	case tool == ToolGoose || tool == "":
		sub, err := fs.Sub(scripts.Goose, scripts.GooseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open goose scripts: %w", err)
		}
		if scriptsPath == "" {
			scriptsPath = DefaultGooseScriptsPath
		}
		strategy = NewGooseStrategy(sub, scriptsPath, log)
	default:
		return nil, fmt.Errorf("unknown migration tool %q", tool)
	}

	return NewManagerWithStrategy(strategy, log), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(db *gorm.DB) error {
	all := models.All()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(all))

	if err := m.strategy.Migrate(db, all...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// Down rolls back steps migrations
func (m *Manager) Down(db *gorm.DB, steps int) error {
	v, err := m.versioned("down")
	if err != nil {
		return err
	}
	return v.MigrateDown(db, steps)
}

// Status writes the migration status to w
func (m *Manager) Status(db *gorm.DB, w io.Writer) error {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		_, err := fmt.Fprintf(w, "schema managed by %s\n", m.strategy.GetName())
		return err
	}
	return v.Status(db, w)
}

// Create writes a new migration file set
func (m *Manager) Create(name string) error {
	v, err := m.versioned("create")
	if err != nil {
		return err
	}
	return v.Create(name)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

func (m *Manager) versioned(op string) (VersionedStrategy, error) {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return nil, fmt.Errorf("%s is not supported with strategy %s", op, m.strategy.GetName())
	}
	return v, nil
}
