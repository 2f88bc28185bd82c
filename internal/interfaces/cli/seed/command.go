package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keshevplus/leadhub/internal/application/contact/usecases"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/clienv"
)

var (
	flags clienv.Flags
	file  string
	count int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load test submissions",
		Long: `Store submissions from a YAML fixture (--file) or generate N sample submissions (--count).
Rows go through identity resolution like live intake. No email is sent.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture to load")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of sample submissions to generate")
	cmd.MarkFlagsMutuallyExclusive("file", "count")
	cmd.MarkFlagsOneRequired("file", "count")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	payloads, err := payloads()
	if err != nil {
		return err
	}

	env, err := clienv.Open(flags)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Config.IsProduction() {
		return fmt.Errorf("refusing to seed a production database")
	}

	log := env.Log.Named("seed")
	uc := usecases.NewSeedSubmissionsUseCase(
		usecases.NewResolveIdentityUseCase(env.IdentityRepository(), log),
		usecases.NewRecordSubmissionUseCase(env.SubmissionRepository(), log),
		log,
	)

	res, err := uc.Execute(cmd.Context(), usecases.SeedSubmissionsCommand{Payloads: payloads})
	if err != nil {
		return fmt.Errorf("seed interrupted: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d submissions (%d new identities, %d failed)\n",
		res.Created, res.Identities, res.Failed)
	return nil
}

func payloads() ([]usecases.ContactPayload, error) {
	if file == "" {
		if count <= 0 {
			return nil, fmt.Errorf("--count must be positive")
		}
		return usecases.SampleContacts(count), nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	return LoadFixture(f)
}
