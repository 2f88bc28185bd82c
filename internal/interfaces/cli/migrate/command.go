package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshevplus/leadhub/internal/infrastructure/migration"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/clienv"
)

var (
	flags     clienv.Flags
	tool      string
	targetDir string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or scaffold schema migrations",
		Long: `Schema changes for the users and submissions tables.

PostgreSQL runs the embedded SQL scripts with goose, or golang-migrate when
--tool says so. SQLite and MySQL development databases fall back to GORM
AutoMigrate.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Env, "env", "e", "", "Environment (development, test, production)")
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	pf.StringVar(&tool, "tool", "", "goose or golang-migrate (default: database.migration_tool)")
	pf.StringVar(&targetDir, "dir", "", "Where create writes new script files")

	cmd.AddCommand(upCommand(), downCommand(), statusCommand(), createCommand())
	return cmd
}

// withManager opens the configured database and hands fn a manager bound to it.
func withManager(fn func(env *clienv.Env, m *migration.Manager) error) error {
	env, err := clienv.Open(flags)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := migration.NewManager(&env.Config.Database, tool, targetDir, env.Log)
	if err != nil {
		return err
	}
	return fn(env, m)
}

func upCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(func(env *clienv.Env, m *migration.Manager) error {
				env.Log.Infow("applying migrations",
					"environment", env.Config.Environment,
					"tool", m.GetStrategy().GetName())
				if err := m.Migrate(env.DB); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				env.Log.Infow("schema is up to date")
				return nil
			})
		},
	}
}

func downCommand() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			return withManager(func(env *clienv.Env, m *migration.Manager) error {
				env.Log.Warnw("rolling back migrations", "environment", env.Config.Environment, "steps", steps)
				if err := m.Down(env.DB, steps); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "How many migrations to roll back")
	return cmd
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print applied and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(func(env *clienv.Env, m *migration.Manager) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "environment: %s\ntool:        %s\n\n", env.Config.Environment, m.GetStrategy().GetName())
				if err := m.Status(env.DB, out); err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				return nil
			})
		},
	}
}

func createCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write an empty up/down script pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No database connection is needed to scaffold files.
			cfg, log, err := clienv.Load(flags)
			if err != nil {
				return err
			}
			m, err := migration.NewManager(&cfg.Database, tool, targetDir, log)
			if err != nil {
				return err
			}
			if err := m.Create(name); err != nil {
				return fmt.Errorf("migrate create: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created migration %q\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Migration name, e.g. add_submission_source")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
