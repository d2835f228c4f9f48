package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plandto "github.com/nutriplan/nutriplan/internal/application/plan/dto"
	planusecases "github.com/nutriplan/nutriplan/internal/application/plan/usecases"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

const planYAML = `
plans:
  - name: Basic
    price: "9.99"
    features: ["5 nutrition plans"]
    nutrition_plan_limit: 5
  - name: Unlimited
    price: "29.00"
  - name: Legacy
    price: "4.50"
    nutrition_plan_limit: 1
    active: false
`

type fakeCreator struct {
	existing map[string]bool
	cmds     []planusecases.CreatePlanCommand
}

func (f *fakeCreator) Execute(ctx context.Context, cmd planusecases.CreatePlanCommand) (*plandto.PlanDTO, error) {
	if f.existing[cmd.Name] {
		return nil, apperrors.NewDuplicateNameError("plan name already exists")
	}
	f.cmds = append(f.cmds, cmd)
	return &plandto.PlanDTO{ID: uint(len(f.cmds)), Name: cmd.Name}, nil
}

type fakeDeactivator struct {
	ids []uint
}

func (f *fakeDeactivator) Deactivate(ctx context.Context, planID uint) (*plandto.PlanDTO, error) {
	f.ids = append(f.ids, planID)
	return &plandto.PlanDTO{ID: planID}, nil
}

func TestParsePlanFile(t *testing.T) {
	seeds, err := ParsePlanFile(strings.NewReader(planYAML))
	require.NoError(t, err)
	require.Len(t, seeds, 3)

	assert.Equal(t, "Basic", seeds[0].Name)
	require.NotNil(t, seeds[0].NutritionPlanLimit)
	assert.Equal(t, 5, *seeds[0].NutritionPlanLimit)
	assert.Nil(t, seeds[1].NutritionPlanLimit)
	require.NotNil(t, seeds[2].Active)
	assert.False(t, *seeds[2].Active)
}

func TestParsePlanFile_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"empty":         "plans: []\n",
		"unknown field": "plans:\n  - name: x\n    colour: red\n",
		"not yaml":      "plans: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlanFile(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestPlanSeeder_Seed(t *testing.T) {
	seeds, err := ParsePlanFile(strings.NewReader(planYAML))
	require.NoError(t, err)

	creator := &fakeCreator{existing: map[string]bool{"Unlimited": true}}
	deactivator := &fakeDeactivator{}

	res, err := NewPlanSeeder(creator, deactivator, logger.NewNop()).Seed(context.Background(), seeds)
	require.NoError(t, err)

	assert.Equal(t, Result{Created: 2, Skipped: 1}, res)
	require.Len(t, creator.cmds, 2)
	assert.Equal(t, "9.99", creator.cmds[0].Price.StringFixed(2))
	assert.Equal(t, []uint{2}, deactivator.ids)
}

func TestPlanSeeder_InvalidPrice(t *testing.T) {
	_, err := NewPlanSeeder(&fakeCreator{}, &fakeDeactivator{}, logger.NewNop()).
		Seed(context.Background(), []PlanSeed{{Name: "Bad", Price: "free"}})
	assert.ErrorContains(t, err, "invalid price")
}
