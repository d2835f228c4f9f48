package handlers

import (
	entitlementdto "github.com/nutriplan/nutriplan/internal/application/entitlement/dto"
	nutritionplandto "github.com/nutriplan/nutriplan/internal/application/nutritionplan/dto"
	plandto "github.com/nutriplan/nutriplan/internal/application/plan/dto"
	subdto "github.com/nutriplan/nutriplan/internal/application/subscription/dto"
)

// Response bodies are the application DTOs. Replace an alias with its own
// struct if the API contract ever diverges.
type (
	PlanResponse          = plandto.PlanDTO
	SubscriptionResponse  = subdto.SubscriptionDTO
	NutritionPlanResponse = nutritionplandto.NutritionPlanDTO
	EntitlementResponse   = entitlementdto.EntitlementDTO
)

