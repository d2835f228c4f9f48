// Package entitlement decides whether a user's active plan allows another
// unit of a quota-gated resource.
package entitlement

import (
	"errors"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
)

var (
	// ErrNoActivePlan means the user holds no APPROVED subscription.
	ErrNoActivePlan = errors.New("no active plan")

	// ErrEntitlementRequired is returned when a gated action needs an active plan.
	ErrEntitlementRequired = errors.New("an active subscription is required")

	ErrQuotaExceeded = errors.New("quota exceeded")
)

// QuotaExceededError carries the numbers shown to the user.
type QuotaExceededError struct {
	Limit   int
	Current int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("nutrition plan limit of %d reached (current: %d)", e.Limit, e.Current)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// CheckQuota returns nil when p allows one more unit on top of current.
// A nil plan means the user has no active plan.
func CheckQuota(p *plan.Plan, current int64) error {
	if p == nil {
		return ErrEntitlementRequired
	}
	if p.AllowsAnother(current) {
		return nil
	}
	return &QuotaExceededError{Limit: *p.NutritionPlanLimit(), Current: current}
}

// Usage summarises a user's consumption of their active plan.
type Usage struct {
	Plan *plan.Plan
	Used int64
}

// Remaining is nil for unlimited plans and never negative.
func (u Usage) Remaining() *int64 {
	limit := u.Plan.NutritionPlanLimit()
	if limit == nil {
		return nil
	}
	r := int64(*limit) - u.Used
	if r < 0 {
		r = 0
	}
	return &r
}
