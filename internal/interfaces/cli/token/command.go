// Package token issues access tokens for local development. Production
// tokens come from the account service.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutriplan/nutriplan/internal/infrastructure/auth"
	"github.com/nutriplan/nutriplan/internal/infrastructure/config"
	"github.com/nutriplan/nutriplan/internal/shared/authorization"
)

var (
	env    string
	userID uint
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access token tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token with the configured secret",
		RunE:  runIssue,
	}
	issue.Flags().UintVar(&userID, "user-id", 0, "User ID (required)")
	issue.Flags().StringVar(&role, "role", string(authorization.RoleUser), "Role: user or admin")
	_ = issue.MarkFlagRequired("user-id")

	cmd.AddCommand(issue)
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	parsed := authorization.UserRole(role)
	if !parsed.IsValid() {
		return fmt.Errorf("invalid role %q: use user or admin", role)
	}
	if userID == 0 {
		return fmt.Errorf("--user-id must be positive")
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	token, exp, err := Issue(cfg, userID, parsed)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", exp.Format(time.RFC3339))
	return nil
}

func Issue(cfg *config.Config, userID uint, role authorization.UserRole) (string, time.Time, error) {
	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	return svc.Generate(userID, role)
}
