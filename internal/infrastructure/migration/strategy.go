package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// VersionedStrategy is a Strategy backed by numbered SQL scripts.
type VersionedStrategy interface {
	Strategy
	MigrateDown(db *gorm.DB, steps int) error
	Status(db *gorm.DB, w io.Writer) error
	Create(name string) error
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
// It serves sqlite and mysql development databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new AutoMigrate strategy
func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

// Migrate runs AutoMigrate over models
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm automigrate", "models_count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("automigrate failed", "error", err)
		return fmt.Errorf("failed to automigrate: %w", err)
	}
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GolangMigrateStrategy implements migration using golang-migrate over the
// pgx/v5 driver. It opens its own connection from dsn because closing a
// migrate instance closes the database handle it was given.
type GolangMigrateStrategy struct {
	dsn         string
	scripts     fs.FS
	scriptsPath string
	logger      logger.Interface
}

// NewGolangMigrateStrategy creates a new golang-migrate strategy. scripts
// holds NNNNNN_name.{up,down}.sql at its root; scriptsPath is the on-disk
// directory new pairs are generated into.
func NewGolangMigrateStrategy(dsn string, scripts fs.FS, scriptsPath string, log logger.Interface) VersionedStrategy {
	return &GolangMigrateStrategy{
		dsn:         dsn,
		scripts:     scripts,
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.golang-migrate"),
	}
}

// Migrate executes golang-migrate migration
func (s *GolangMigrateStrategy) Migrate(_ *gorm.DB, _ ...interface{}) error {
	m, err := s.createMigrateInstance()
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	// Get current version
	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		s.logger.Errorw("failed to get current migration version", "error", err)
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	s.logger.Infow("current migration status",
		"version", currentVersion,
		"dirty", dirty)

	// Check if database is dirty
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually")
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	// Run migrations
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

// GetName returns the strategy name
func (s *GolangMigrateStrategy) GetName() string {
	return "golang_migrate"
}

func (s *GolangMigrateStrategy) createMigrateInstance() (*migrate.Migrate, error) {
	src, err := iofs.New(s.scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded scripts: %w", err)
	}

	sqlDB, err := sql.Open("pgx", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create pgx driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateDown rolls back steps migrations
func (s *GolangMigrateStrategy) MigrateDown(_ *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	m, err := s.createMigrateInstance()
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// Status writes the current version and dirty flag
func (s *GolangMigrateStrategy) Status(_ *gorm.DB, w io.Writer) error {
	m, err := s.createMigrateInstance()
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(w, "no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get version: %w", err)
	}
	_, _ = fmt.Fprintf(w, "version %d (dirty: %t)\n", version, dirty)
	return nil
}

// Create writes a new up/down pair into scriptsPath
func (s *GolangMigrateStrategy) Create(name string) error {
	return NewGenerator(s.scriptsPath, s.logger).CreateMigration(name)
}

// GooseStrategy runs goose migrations from an embedded filesystem.
type GooseStrategy struct {
	scripts     fs.FS
	scriptsPath string
	logger      logger.Interface
}

// NewGooseStrategy creates a goose strategy. scripts holds NNNNN_name.sql at
// its root; scriptsPath is the on-disk directory `create` writes into.
func NewGooseStrategy(scripts fs.FS, scriptsPath string, log logger.Interface) VersionedStrategy {
	return &GooseStrategy{
		scripts:     scripts,
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p, err := goose.NewProvider(goose.DialectPostgres, sqlDB, s.scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

// Migrate applies all pending migrations
func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	ctx := context.Background()
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	currentVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	s.logger.Infow("current migration status", "version", currentVersion)

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Infow("applied migration",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration)
	}

	finalVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

// GetName returns the strategy name
func (s *GooseStrategy) GetName() string {
	return "goose"
}

// MigrateDown rolls back steps migrations
func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	ctx := context.Background()
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if _, err := p.Down(ctx); err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				break
			}
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// Status writes one line per known migration
func (s *GooseStrategy) Status(db *gorm.DB, w io.Writer) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	statuses, err := p.Status(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, st := range statuses {
		applied := "-"
		if !st.AppliedAt.IsZero() {
			applied = st.AppliedAt.Format("2006-01-02 15:04:05")
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", st.Source.Version, st.State, applied, st.Source.Path)
	}
	return tw.Flush()
}

// Create writes a new goose SQL file into scriptsPath
func (s *GooseStrategy) Create(name string) error {
	goose.SetSequential(true)
	if err := goose.Create(nil, s.scriptsPath, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name, "dir", s.scriptsPath)
	return nil
}
