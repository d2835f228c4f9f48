package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	plandto "github.com/nutriplan/nutriplan/internal/application/plan/dto"
	planusecases "github.com/nutriplan/nutriplan/internal/application/plan/usecases"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// PlanFile is the YAML layout read by `seed plans`.
type PlanFile struct {
	Plans []PlanSeed `yaml:"plans"`
}

// PlanSeed is one catalog entry. Price is a decimal string; a missing
// nutrition_plan_limit means unlimited. Active defaults to true.
type PlanSeed struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description"`
	Features           []string `yaml:"features"`
	Price              string   `yaml:"price"`
	NutritionPlanLimit *int     `yaml:"nutrition_plan_limit"`
	Active             *bool    `yaml:"active"`
}

func ParsePlanFile(r io.Reader) ([]PlanSeed, error) {
	var f PlanFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if len(f.Plans) == 0 {
		return nil, fmt.Errorf("plan file has no plans")
	}
	return f.Plans, nil
}

type planCreator interface {
	Execute(ctx context.Context, cmd planusecases.CreatePlanCommand) (*plandto.PlanDTO, error)
}

type planDeactivator interface {
	Deactivate(ctx context.Context, planID uint) (*plandto.PlanDTO, error)
}

// Result counts what a seeding run did.
type Result struct {
	Created int
	Skipped int
}

// PlanSeeder creates catalog plans through the regular use cases, so names
// and limits are validated the same way as over HTTP. Plans whose name
// already exists are skipped, which makes reruns safe.
type PlanSeeder struct {
	creator     planCreator
	deactivator planDeactivator
	logger      logger.Interface
}

func NewPlanSeeder(creator planCreator, deactivator planDeactivator, log logger.Interface) *PlanSeeder {
	return &PlanSeeder{creator: creator, deactivator: deactivator, logger: log}
}

func (s *PlanSeeder) Seed(ctx context.Context, seeds []PlanSeed) (Result, error) {
	var res Result
	for _, seed := range seeds {
		price, err := decimal.NewFromString(seed.Price)
		if err != nil {
			return res, fmt.Errorf("plan %q: invalid price %q: %w", seed.Name, seed.Price, err)
		}

		created, err := s.creator.Execute(ctx, planusecases.CreatePlanCommand{
			Name:               seed.Name,
			Description:        seed.Description,
			Features:           seed.Features,
			Price:              price,
			NutritionPlanLimit: seed.NutritionPlanLimit,
		})
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Type == apperrors.ErrorTypeDuplicateName {
			s.logger.Infow("plan already exists, skipping", "name", seed.Name)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("plan %q: %w", seed.Name, err)
		}

		if seed.Active != nil && !*seed.Active {
			if _, err := s.deactivator.Deactivate(ctx, created.ID); err != nil {
				return res, fmt.Errorf("plan %q: failed to deactivate: %w", seed.Name, err)
			}
		}

		s.logger.Infow("plan seeded", "plan_id", created.ID, "name", seed.Name)
		res.Created++
	}
	return res, nil
}
