package permission

import (
	"fmt"

	"github.com/nutriplan/nutriplan/internal/shared/authorization"
)

// Resources and actions checked by the HTTP layer.
const (
	ResourcePlan         = "plan"
	ResourceSubscription = "subscription"

	ActionManage  = "manage"
	ActionReview  = "review"
	ActionListAll = "list_all"
)

// DefaultPolicies are the admin-only operations. Regular users need no
// policy: their routes check ownership instead.
var DefaultPolicies = [][]string{
	{authorization.RoleAdmin.String(), ResourcePlan, ActionManage},
	{authorization.RoleAdmin.String(), ResourcePlan, ActionListAll},
	{authorization.RoleAdmin.String(), ResourceSubscription, ActionReview},
	{authorization.RoleAdmin.String(), ResourceSubscription, ActionListAll},
}

// EnsureDefaultPolicies adds any default policy that is missing. Existing
// rules are left alone.
func EnsureDefaultPolicies(e *Enforcer) error {
	for _, p := range DefaultPolicies {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to seed policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}
	e.logger.Infow("default permissions ensured", "count", len(DefaultPolicies))
	return nil
}
