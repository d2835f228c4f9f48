// Package models holds the gorm persistence models. Domain aggregates never
// reference these types; mappers translate in both directions.
package models

// All lists every model for gorm AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&PlanModel{},
		&SubscriptionModel{},
		&NutritionPlanModel{},
	}
}
