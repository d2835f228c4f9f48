package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

type PlanDTO struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	DescriptionHTML    string          `json:"description_html,omitempty"`
	Features           []string        `json:"features"`
	Price              decimal.Decimal `json:"price"`
	IsActive           bool            `json:"is_active"`
	NutritionPlanLimit *int            `json:"nutrition_plan_limit"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToPlanDTO renders the markdown description when a renderer is given. A
// render failure leaves DescriptionHTML empty; the raw text is still sent.
func ToPlanDTO(p *plan.Plan, renderer markdown.Renderer) *PlanDTO {
	if p == nil {
		return nil
	}

	out := &PlanDTO{
		ID:                 p.ID(),
		Name:               p.Name(),
		Description:        p.Description(),
		Features:           p.Features(),
		Price:              p.Price().Round(2),
		IsActive:           p.IsActive(),
		NutritionPlanLimit: p.NutritionPlanLimit(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
	if renderer != nil && out.Description != "" {
		if html, err := renderer.Render(out.Description); err == nil {
			out.DescriptionHTML = html
		}
	}
	return out
}

func ToPlanDTOs(plans []*plan.Plan, renderer markdown.Renderer) []*PlanDTO {
	out := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, ToPlanDTO(p, renderer))
	}
	return out
}
