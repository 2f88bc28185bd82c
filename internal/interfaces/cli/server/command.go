package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/infrastructure/config"
	"github.com/keshevplus/leadhub/internal/infrastructure/database"
	"github.com/keshevplus/leadhub/internal/infrastructure/migration"
	httpRouter "github.com/keshevplus/leadhub/internal/interfaces/http"
	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/version"
)

const shutdownTimeout = 30 * time.Second

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the leadhub HTTP server serving the contact form, the admin lead API and admin authentication.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" && env == "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ginMode := mapEnvToGinMode(cfg.Environment)
	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, ginMode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", cfg.Environment,
		"version", version.Current(),
		"auto_migrate", autoMigrate)

	gin.SetMode(ginMode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	if err := handleMigrations(cfg, db, log); err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(db, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           container.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, db *gorm.DB, log logger.Interface) error {
	if !autoMigrate {
		log.Infow("auto-migration disabled, run `leadhub migrate up` to apply schema changes")
		return nil
	}

	if cfg.IsProduction() {
		log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
	}

	manager, err := migration.NewManager(&cfg.Database, "", "", log)
	if err != nil {
		return fmt.Errorf("failed to create migration manager: %w", err)
	}

	log.Infow("running auto-migration", "strategy", manager.GetStrategy().GetName())
	if err := manager.Migrate(db); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	log.Infow("auto-migration completed successfully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return gin.ReleaseMode
	case constants.EnvTest, "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
