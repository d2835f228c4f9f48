package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
)

// PlanMapper converts between plan aggregates and persistence models.
type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*plan.Plan, error)
	ToModel(entity *plan.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*plan.Plan, error)
}

type planMapper struct{}

func NewPlanMapper() PlanMapper {
	return &planMapper{}
}

func (m *planMapper) ToEntity(model *models.PlanModel) (*plan.Plan, error) {
	if model == nil {
		return nil, nil
	}

	var features []string
	if len(model.Features) > 0 {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan features: %w", err)
		}
	}

	return plan.ReconstructPlan(
		model.ID,
		model.Name,
		model.Description,
		features,
		model.Price,
		model.IsActive,
		model.NutritionPlanLimit,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *planMapper) ToModel(entity *plan.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	features, err := json.Marshal(entity.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan features: %w", err)
	}

	return &models.PlanModel{
		ID:                 entity.ID(),
		Name:               entity.Name(),
		Description:        entity.Description(),
		Features:           datatypes.JSON(features),
		Price:              entity.Price(),
		IsActive:           entity.IsActive(),
		NutritionPlanLimit: entity.NutritionPlanLimit(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}, nil
}

func (m *planMapper) ToEntities(list []*models.PlanModel) ([]*plan.Plan, error) {
	entities := make([]*plan.Plan, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map plan %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
