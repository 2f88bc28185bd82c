// @title Leadhub API
// @version 1.0
// @description Contact intake and lead administration for the marketing site.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT, or send it in x-auth-token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/keshevplus/leadhub/internal/interfaces/cli/admin"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/contacts"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/migrate"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/seed"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/server"
	"github.com/keshevplus/leadhub/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "leadhub",
		Short:        "Leadhub - contact intake and lead administration",
		Long:         `Leadhub serves the marketing site's contact form and admin lead API, with migration, admin and maintenance commands.`,
		Version:      version.String(),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
		contacts.NewCommand(),
		seed.NewCommand(),
	)

	// The server installs its own signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
