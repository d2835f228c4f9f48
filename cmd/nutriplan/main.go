// @title NutriPlan API
// @version 1.0
// @description Subscription lifecycle and entitlement API for the NutriPlan service.
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nutriplan/nutriplan/internal/interfaces/cli/migrate"
	"github.com/nutriplan/nutriplan/internal/interfaces/cli/seed"
	"github.com/nutriplan/nutriplan/internal/interfaces/cli/server"
	"github.com/nutriplan/nutriplan/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "nutriplan",
		Short:        "NutriPlan - subscription and entitlement service",
		Long:         `NutriPlan serves the plan catalog, subscription approvals and nutrition plan quotas, with migration and seeding tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
