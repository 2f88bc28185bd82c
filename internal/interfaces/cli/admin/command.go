package admin

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keshevplus/leadhub/internal/application/auth/usecases"
	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
	"github.com/keshevplus/leadhub/internal/interfaces/cli/clienv"
	"github.com/keshevplus/leadhub/internal/shared/db"
	"github.com/keshevplus/leadhub/internal/shared/errors"
)

var (
	flags    clienv.Flags
	email    string
	username string
	name     string
	password string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
		Long:  `Create admin accounts and rotate admin passwords without going through the reset email.`,
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newCreateCommand(),
		newSetPasswordCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin",
		Long: `Create an admin account. When an identity with the email already exists
(for example a contact who used the form) it is promoted to admin and keeps its history.`,
		RunE: runCreate,
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email (required)")
	cmd.Flags().StringVar(&username, "username", "", "Login display name")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newSetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set an admin's password",
		RunE:  runSetPassword,
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email (required)")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	pw, err := resolvePassword(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	env, err := clienv.Open(flags)
	if err != nil {
		return err
	}
	defer env.Close()

	hasher := auth.NewBcryptPasswordHasher(env.Config.Auth.Password.BcryptCost)
	uc := usecases.NewCreateAdminUseCase(env.IdentityRepository(), hasher, db.NewTransactionManager(env.DB), env.Log.Named("admin"))

	res, err := uc.Execute(cmd.Context(), usecases.CreateAdminCommand{
		Email:    email,
		Username: username,
		Name:     name,
		Password: pw,
	})
	if err != nil {
		return describe(err)
	}

	action := "created"
	if res.Promoted {
		action = "promoted existing identity to admin"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Admin %s: id=%d username=%s email=%s\n",
		action, res.Admin.ID, res.Admin.Username, res.Admin.EmailOrEmpty())
	return nil
}

func runSetPassword(cmd *cobra.Command, args []string) error {
	pw, err := resolvePassword(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	env, err := clienv.Open(flags)
	if err != nil {
		return err
	}
	defer env.Close()

	hasher := auth.NewBcryptPasswordHasher(env.Config.Auth.Password.BcryptCost)
	uc := usecases.NewSetPasswordUseCase(env.IdentityRepository(), hasher, env.Log.Named("admin"))

	if err := uc.Execute(cmd.Context(), usecases.SetPasswordCommand{Email: email, Password: pw}); err != nil {
		return describe(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", strings.ToLower(strings.TrimSpace(email)))
	return nil
}

// resolvePassword returns --password, or asks for it twice on the terminal
// with echo disabled.
func resolvePassword(prompt io.Writer) (string, error) {
	if password != "" {
		return password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(prompt, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}

// describe turns a validation AppError into a readable CLI error.
func describe(err error) error {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return err
	}
	if len(appErr.Fields) == 0 {
		return fmt.Errorf("%s", appErr.Message)
	}

	parts := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Errorf("%s (%s)", appErr.Message, strings.Join(parts, "; "))
}
