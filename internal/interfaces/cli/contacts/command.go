package contacts

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keshevplus/leadhub/internal/application/contact/usecases"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/clienv"
)

var (
	flags     clienv.Flags
	dryRun    bool
	batchSize int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Contact identity maintenance",
		Long:  `Link stored submissions to contact identities and audit identities for duplicates.`,
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newLinkCommand(),
		newDuplicatesCommand(),
	)

	return cmd
}

func newLinkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Attach identities to unlinked submissions",
		Long: `Run identity resolution for every submission without an identity, oldest first.
Use it after importing legacy leads.`,
		RunE: runLink,
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be linked without writing")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Submissions loaded per batch")

	return cmd
}

func newDuplicatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "Report identities sharing an email or phone",
		RunE:  runDuplicates,
	}
}

func runLink(cmd *cobra.Command, args []string) error {
	env, err := clienv.Open(flags)
	if err != nil {
		return err
	}
	defer env.Close()

	log := env.Log.Named("contacts")
	identityRepo := env.IdentityRepository()
	uc := usecases.NewLinkContactsUseCase(
		env.SubmissionRepository(),
		identityRepo,
		usecases.NewResolveIdentityUseCase(identityRepo, log),
		log,
	)

	res, err := uc.Execute(cmd.Context(), usecases.LinkContactsCommand{DryRun: dryRun, BatchSize: batchSize})
	if err != nil {
		return fmt.Errorf("failed to link contacts: %w", err)
	}

	mode := ""
	if dryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d, linked %d, identities created %d, failed %d%s\n",
		res.Scanned, res.Linked, res.Created, res.Failed, mode)
	return nil
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	env, err := clienv.Open(flags)
	if err != nil {
		return err
	}
	defer env.Close()

	groups, err := usecases.NewDuplicateReportUseCase(env.IdentityRepository(), env.Log.Named("contacts")).Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build duplicate report: %w", err)
	}

	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No duplicate identities found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tVALUE\tIDENTITY IDS")
	for _, g := range groups {
		ids := make([]string, 0, len(g.IDs))
		for _, id := range g.IDs {
			ids = append(ids, fmt.Sprint(id))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.Column, g.Value, strings.Join(ids, ","))
	}
	return w.Flush()
}
