package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/infrastructure/database/dbtest"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

func TestEnforcer_DefaultPolicies(t *testing.T) {
	db := dbtest.New(t)

	e, err := NewEnforcer(db, "does/not/exist.conf", logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, EnsureDefaultPolicies(e))
	// Seeding twice is harmless.
	require.NoError(t, EnsureDefaultPolicies(e))

	policies, err := e.Policies()
	require.NoError(t, err)
	assert.Len(t, policies, len(DefaultPolicies))

	ok, err := e.Enforce("admin", ResourceSubscription, ActionReview)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Enforce("user", ResourceSubscription, ActionReview)
	require.NoError(t, err)
	assert.False(t, ok)

	// Policies survive a reload from the database.
	reloaded, err := NewEnforcer(db, "", logger.NewNop())
	require.NoError(t, err)
	ok, err = reloaded.Enforce("admin", ResourcePlan, ActionManage)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforcer_RemovePolicy(t *testing.T) {
	e, err := NewEnforcer(dbtest.New(t), "", logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, e.AddPolicy("auditor", ResourceSubscription, ActionListAll))
	ok, err := e.Enforce("auditor", ResourceSubscription, ActionListAll)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.RemovePolicy("auditor", ResourceSubscription, ActionListAll))
	ok, err = e.Enforce("auditor", ResourceSubscription, ActionListAll)
	require.NoError(t, err)
	assert.False(t, ok)
}
