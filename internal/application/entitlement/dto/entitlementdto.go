package dto

import (
	plandto "github.com/nutriplan/nutriplan/internal/application/plan/dto"
)

// EntitlementDTO summarises the caller's active plan and quota usage.
// Limit and Remaining are null for unlimited plans.
type EntitlementDTO struct {
	Plan      *plandto.PlanDTO `json:"plan"`
	Limit     *int             `json:"nutrition_plan_limit"`
	Used      int64            `json:"nutrition_plans_used"`
	Remaining *int64           `json:"nutrition_plans_remaining"`
}
