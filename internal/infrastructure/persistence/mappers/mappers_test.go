package mappers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
)

func TestPlanMapper_FeaturesAndLimit(t *testing.T) {
	limit := 3
	p, err := plan.NewPlan("Basic", decimal.RequireFromString("9.99"), &limit, "desc", []string{"macros", "recipes"})
	require.NoError(t, err)
	require.NoError(t, p.SetID(4))

	m := NewPlanMapper()
	model, err := m.ToModel(p)
	require.NoError(t, err)
	assert.JSONEq(t, `["macros","recipes"]`, string(model.Features))

	back, err := m.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, []string{"macros", "recipes"}, back.Features())
	assert.Equal(t, 3, *back.NutritionPlanLimit())
	assert.True(t, p.Price().Equal(back.Price()))
}

func TestPlanMapper_NullFeatures(t *testing.T) {
	back, err := NewPlanMapper().ToEntity(&models.PlanModel{ID: 1, Name: "Legacy", Price: decimal.Zero, IsActive: true})
	require.NoError(t, err)
	assert.Empty(t, back.Features())
	assert.True(t, back.IsUnlimited())
}

func TestSubscriptionMapper_ToDetail(t *testing.T) {
	m := NewSubscriptionMapper()

	detail, err := m.ToDetail(&models.SubscriptionDetailRow{
		ID:               1,
		UserID:           2,
		PlanID:           3,
		Amount:           decimal.NewFromInt(10),
		Status:           "APPROVED",
		SubscriptionDate: time.Now(),
		UserName:         "Ada",
		PlanName:         "",
		PlanPrice:        decimal.NullDecimal{},
	})
	require.NoError(t, err)
	assert.Nil(t, detail.PlanPrice)
	assert.Equal(t, "Ada", detail.UserName)

	_, err = m.ToDetail(&models.SubscriptionDetailRow{Status: "ACTIVE"})
	assert.Error(t, err)
}
