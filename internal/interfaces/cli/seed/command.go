// Package seed loads reference data such as the plan catalog.
package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	planusecases "github.com/nutriplan/nutriplan/internal/application/plan/usecases"
	"github.com/nutriplan/nutriplan/internal/infrastructure/config"
	"github.com/nutriplan/nutriplan/internal/infrastructure/database"
	"github.com/nutriplan/nutriplan/internal/infrastructure/repository"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

var (
	env      string
	filePath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	plans := &cobra.Command{
		Use:   "plans",
		Short: "Create catalog plans from a YAML file",
		Long:  `Create every plan listed in the file. Plans whose name already exists are left unchanged.`,
		RunE:  runPlans,
	}
	plans.Flags().StringVarP(&filePath, "file", "f", "configs/seed/plans.yaml", "Path to the plan file")

	cmd.AddCommand(plans)
	return cmd
}

func runPlans(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open plan file: %w", err)
	}
	defer f.Close()

	seeds, err := ParsePlanFile(f)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database, log); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	planRepo := repository.NewPlanRepository(database.Get(), log)
	renderer := markdown.NewRenderer()
	seeder := NewPlanSeeder(
		planusecases.NewCreatePlanUseCase(planRepo, renderer, log),
		planusecases.NewSetPlanStatusUseCase(planRepo, renderer, log),
		log,
	)

	res, err := seeder.Seed(cmd.Context(), seeds)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Plans created: %d, skipped: %d\n", res.Created, res.Skipped)
	return nil
}
