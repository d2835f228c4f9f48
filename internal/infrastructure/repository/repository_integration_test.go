package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/shared"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	"github.com/nutriplan/nutriplan/internal/infrastructure/database/dbtest"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

func newPlan(t *testing.T, name, price string, limit *int) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(name, decimal.RequireFromString(price), limit, "", []string{"macros"})
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }

func TestPlanRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewPlanRepository(db, logger.NewNop())
	ctx := context.Background()

	premium := newPlan(t, "Premium", "19.99", nil)
	basic := newPlan(t, "Basic", "9.99", intPtr(3))
	require.NoError(t, repo.Create(ctx, premium))
	require.NoError(t, repo.Create(ctx, basic))

	t.Run("duplicate name", func(t *testing.T) {
		err := repo.Create(ctx, newPlan(t, "Basic", "1", nil))
		assert.ErrorIs(t, err, plan.ErrDuplicateName)
	})

	t.Run("get by name is case sensitive", func(t *testing.T) {
		found, err := repo.GetByName(ctx, "Basic")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, basic.ID(), found.ID())
		assert.Equal(t, 3, *found.NutritionPlanLimit())
		assert.Equal(t, []string{"macros"}, found.Features())

		missing, err := repo.GetByName(ctx, "basic")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list active ordered by price", func(t *testing.T) {
		list, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Basic", list[0].Name())
		assert.Equal(t, "Premium", list[1].Name())
	})

	t.Run("update with version check", func(t *testing.T) {
		stale, err := repo.GetByID(ctx, premium.ID())
		require.NoError(t, err)

		premium.Deactivate()
		require.NoError(t, repo.Update(ctx, premium))
		assert.Equal(t, 2, premium.Version())

		stale.Deactivate()
		assert.ErrorIs(t, repo.Update(ctx, stale), shared.ErrConcurrentModification)

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 1)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		fresh, err := repo.GetByID(ctx, premium.ID())
		require.NoError(t, err)
		require.NoError(t, fresh.Update("Basic", fresh.Price(), nil, "", nil))
		assert.ErrorIs(t, repo.Update(ctx, fresh), plan.ErrDuplicateName)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, premium.ID()))
		assert.ErrorIs(t, repo.Delete(ctx, premium.ID()), plan.ErrPlanNotFound)

		gone, err := repo.GetByID(ctx, premium.ID())
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestSubscriptionRepository(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	log := logger.NewNop()
	plans := NewPlanRepository(db, log)
	repo := NewSubscriptionRepository(db, log)

	aliceID := dbtest.SeedUser(t, db, "Alice", "alice@example.com")
	bobID := dbtest.SeedUser(t, db, "Bob", "bob@example.com")

	basic := newPlan(t, "Basic", "9.99", intPtr(3))
	premium := newPlan(t, "Premium", "19.99", nil)
	require.NoError(t, plans.Create(ctx, basic))
	require.NoError(t, plans.Create(ctx, premium))

	create := func(userID uint, p *plan.Plan) *subscription.Subscription {
		s, err := subscription.NewSubscription(userID, p.ID(), p.Price())
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, s))
		return s
	}

	first := create(aliceID, basic)
	second := create(aliceID, premium)
	bobs := create(bobID, basic)

	require.NoError(t, first.Approve(99, time.Now()))
	require.NoError(t, repo.Update(ctx, first))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, first.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusApproved, got.Status())
		assert.Equal(t, uint(99), *got.ApprovedByUserID())
		assert.True(t, decimal.RequireFromString("9.99").Equal(got.Amount()))
		assert.Equal(t, 2, got.Version())

		missing, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("approved listing and count", func(t *testing.T) {
		approved, err := repo.ListApprovedByUser(ctx, aliceID)
		require.NoError(t, err)
		require.Len(t, approved, 1)
		assert.Equal(t, first.ID(), approved[0].ID())

		locked, err := repo.ListApprovedByUserForUpdate(ctx, aliceID)
		require.NoError(t, err)
		assert.Len(t, locked, 1)

		n, err := repo.CountByUserAndStatus(ctx, aliceID, vo.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.CountByUserAndStatus(ctx, bobID, vo.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("stale update rejected", func(t *testing.T) {
		stale, err := repo.GetByID(ctx, second.ID())
		require.NoError(t, err)

		require.NoError(t, second.Reject(99, time.Now()))
		require.NoError(t, repo.Update(ctx, second))

		require.NoError(t, stale.Approve(99, time.Now()))
		assert.ErrorIs(t, repo.Update(ctx, stale), shared.ErrConcurrentModification)
	})

	t.Run("detail joins user and plan", func(t *testing.T) {
		d, err := repo.GetDetailByID(ctx, first.ID())
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "Alice", d.UserName)
		assert.Equal(t, "alice@example.com", d.UserEmail)
		assert.Equal(t, "Basic", d.PlanName)
		require.NotNil(t, d.PlanPrice)
		assert.True(t, decimal.RequireFromString("9.99").Equal(*d.PlanPrice))

		missing, err := repo.GetDetailByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list details with filters", func(t *testing.T) {
		all, total, err := repo.ListDetails(ctx, subscription.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, all, 3)

		mine, total, err := repo.ListDetails(ctx, subscription.Filter{UserID: &aliceID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, d := range mine {
			assert.Equal(t, aliceID, d.UserID)
		}

		pending := vo.StatusPending
		list, total, err := repo.ListDetails(ctx, subscription.Filter{Status: &pending})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, bobs.ID(), list[0].ID)
		assert.Equal(t, "Bob", list[0].UserName)

		page, total, err := repo.ListDetails(ctx, subscription.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, page, 1)
	})

	t.Run("deleted plan still lists", func(t *testing.T) {
		require.NoError(t, plans.Delete(ctx, premium.ID()))

		d, err := repo.GetDetailByID(ctx, second.ID())
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Empty(t, d.PlanName)
		assert.Nil(t, d.PlanPrice)
	})
}

func TestUserRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db, logger.NewNop())
	ctx := context.Background()
	id := dbtest.SeedUser(t, db, "Carol", "carol@example.com")

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Carol", u.Name)

	missing, err := repo.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.NoError(t, repo.LockForUpdate(ctx, id))
	assert.ErrorIs(t, repo.LockForUpdate(ctx, 404), user.ErrUserNotFound)
}

func TestNutritionPlanRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewNutritionPlanRepository(db, logger.NewNop())
	ctx := context.Background()

	for _, title := range []string{"Bulk", "Cut"} {
		n, err := nutritionplan.NewNutritionPlan(1, title, "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, n))
		assert.NotZero(t, n.ID())
	}
	other, err := nutritionplan.NewNutritionPlan(2, "Maintain", "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	count, err := repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := repo.GetByID(ctx, other.ID())
	require.NoError(t, err)
	assert.Equal(t, "Maintain", got.Title())

	require.NoError(t, repo.Delete(ctx, list[0].ID()))
	assert.ErrorIs(t, repo.Delete(ctx, list[0].ID()), nutritionplan.ErrNutritionPlanNotFound)

	count, err = repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
