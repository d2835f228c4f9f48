package usecases

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
)

func TestCreateSubscription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("snapshots plan price", func(t *testing.T) {
		out, err := f.create.Execute(ctx, CreateSubscriptionCommand{UserID: f.aliceID, PlanID: f.basic.ID()})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusPending.String(), out.Status)
		assert.True(t, decimal.RequireFromString("9.99").Equal(out.Amount))
		assert.Equal(t, "Alice", out.UserName)
		assert.Equal(t, "Basic", out.PlanName)
		assert.Nil(t, out.ApprovedByUserID)

		require.NoError(t, f.basic.Update("Basic", decimal.RequireFromString("14.99"), f.basic.NutritionPlanLimit(), "", nil))
		require.NoError(t, f.plans.Update(ctx, f.basic))

		got, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: out.ID, CallerID: f.aliceID})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("9.99").Equal(got.Amount))
		require.NotNil(t, got.PlanPrice)
		assert.True(t, decimal.RequireFromString("14.99").Equal(*got.PlanPrice))
	})

	t.Run("inactive plan", func(t *testing.T) {
		legacy := f.seedPlan(t, "Legacy", "1.00", nil)
		legacy.Deactivate()
		require.NoError(t, f.plans.Update(ctx, legacy))

		_, err := f.create.Execute(ctx, CreateSubscriptionCommand{UserID: f.aliceID, PlanID: legacy.ID()})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePlanInactive))
	})

	t.Run("unknown plan or user is a bad request", func(t *testing.T) {
		for _, cmd := range []CreateSubscriptionCommand{
			{UserID: f.aliceID, PlanID: 9999},
			{UserID: 9999, PlanID: f.basic.ID()},
		} {
			_, err := f.create.Execute(ctx, cmd)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		}
	})

	t.Run("allowed while holding an approved subscription", func(t *testing.T) {
		f.approveID(t, f.request(t, f.bobID, f.basic))
		_, err := f.create.Execute(ctx, CreateSubscriptionCommand{UserID: f.bobID, PlanID: f.premium.ID()})
		assert.NoError(t, err)
	})
}

func TestApproveSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps approver and date", func(t *testing.T) {
		f := newFixture(t)
		id := f.request(t, f.aliceID, f.basic)

		out, err := f.approve.Execute(ctx, ApproveSubscriptionCommand{SubscriptionID: id, AdminUserID: f.adminID})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusApproved.String(), out.Status)
		require.NotNil(t, out.ApprovedByUserID)
		assert.Equal(t, f.adminID, *out.ApprovedByUserID)
		assert.NotNil(t, out.ApprovedDate)
		assert.Equal(t, 1, f.metrics.transitions["PENDING->APPROVED"])
	})

	t.Run("cancels the previously approved subscription", func(t *testing.T) {
		f := newFixture(t)
		first := f.request(t, f.aliceID, f.basic)
		f.approveID(t, first)

		second := f.request(t, f.aliceID, f.premium)
		f.approveID(t, second)

		prior, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: first, CallerID: f.aliceID})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusCancelled.String(), prior.Status)
		assert.NotNil(t, prior.CancelledAt)

		n, err := f.count.Execute(ctx, f.aliceID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 1, f.metrics.transitions["APPROVED->CANCELLED"])
	})

	t.Run("cancels every approved row when the data is already corrupt", func(t *testing.T) {
		f := newFixture(t)
		a := f.request(t, f.aliceID, f.basic)
		b := f.request(t, f.aliceID, f.basic)
		require.NoError(t, f.db.Model(&models.SubscriptionModel{}).
			Where("id IN ?", []uint{a, b}).
			Update("status", vo.StatusApproved.String()).Error)

		n, err := f.count.Execute(ctx, f.aliceID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		f.approveID(t, f.request(t, f.aliceID, f.premium))

		n, err = f.count.Execute(ctx, f.aliceID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.GreaterOrEqual(t, f.metrics.anomalies, 2)
	})

	t.Run("does not touch other users", func(t *testing.T) {
		f := newFixture(t)
		bobs := f.request(t, f.bobID, f.basic)
		f.approveID(t, bobs)
		f.approveID(t, f.request(t, f.aliceID, f.basic))

		got, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: bobs, CallerID: f.bobID})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusApproved.String(), got.Status)
	})

	t.Run("only pending can be approved", func(t *testing.T) {
		f := newFixture(t)
		id := f.request(t, f.aliceID, f.basic)
		f.approveID(t, id)

		_, err := f.approve.Execute(ctx, ApproveSubscriptionCommand{SubscriptionID: id, AdminUserID: f.adminID})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeInvalidTransition, appErr.Type)
		assert.Equal(t, http.StatusConflict, appErr.Code)

		rejected := f.request(t, f.aliceID, f.basic)
		_, err = f.reject.Execute(ctx, RejectSubscriptionCommand{SubscriptionID: rejected, AdminUserID: f.adminID})
		require.NoError(t, err)
		_, err = f.approve.Execute(ctx, ApproveSubscriptionCommand{SubscriptionID: rejected, AdminUserID: f.adminID})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
	})

	t.Run("missing subscription", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.approve.Execute(ctx, ApproveSubscriptionCommand{SubscriptionID: 404, AdminUserID: f.adminID})
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestApproveSubscription_ConcurrentApprovalsKeepOneActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 5
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = f.request(t, f.aliceID, f.basic)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, errs[i] = f.approve.Execute(ctx, ApproveSubscriptionCommand{SubscriptionID: id, AdminUserID: f.adminID})
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	count, err := f.count.Execute(ctx, f.aliceID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	res, err := f.list.ListByStatus(ctx, "cancelled", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(n-1), res.Total)
}

func TestRejectSubscription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active := f.request(t, f.aliceID, f.basic)
	f.approveID(t, active)
	pending := f.request(t, f.aliceID, f.premium)

	out, err := f.reject.Execute(ctx, RejectSubscriptionCommand{SubscriptionID: pending, AdminUserID: f.adminID})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusRejected.String(), out.Status)
	require.NotNil(t, out.ApprovedByUserID)
	assert.Equal(t, f.adminID, *out.ApprovedByUserID)

	// The approved subscription is untouched.
	got, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: active, CallerIsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusApproved.String(), got.Status)

	_, err = f.reject.Execute(ctx, RejectSubscriptionCommand{SubscriptionID: pending, AdminUserID: f.adminID})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
}

func TestCancelSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels approved", func(t *testing.T) {
		f := newFixture(t)
		id := f.request(t, f.aliceID, f.basic)
		f.approveID(t, id)

		out, err := f.cancel.Execute(ctx, CancelSubscriptionCommand{SubscriptionID: id, RequestingUserID: f.aliceID})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusCancelled.String(), out.Status)

		n, err := f.count.Execute(ctx, f.aliceID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		f := newFixture(t)
		id := f.request(t, f.aliceID, f.basic)
		f.approveID(t, id)

		_, err := f.cancel.Execute(ctx, CancelSubscriptionCommand{SubscriptionID: id, RequestingUserID: f.bobID})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

		got, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: id, CallerID: f.aliceID})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusApproved.String(), got.Status)
	})

	t.Run("pending and terminal cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		pending := f.request(t, f.aliceID, f.basic)

		_, err := f.cancel.Execute(ctx, CancelSubscriptionCommand{SubscriptionID: pending, RequestingUserID: f.aliceID})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))

		f.approveID(t, pending)
		_, err = f.cancel.Execute(ctx, CancelSubscriptionCommand{SubscriptionID: pending, RequestingUserID: f.aliceID})
		require.NoError(t, err)
		_, err = f.cancel.Execute(ctx, CancelSubscriptionCommand{SubscriptionID: pending, RequestingUserID: f.aliceID})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
	})

	t.Run("missing subscription", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.cancel.Execute(ctx, CancelSubscriptionCommand{SubscriptionID: 404, RequestingUserID: f.aliceID})
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestUpdateSubscriptionStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.request(t, f.aliceID, f.basic)

	out, err := f.status.Execute(ctx, UpdateSubscriptionStatusCommand{SubscriptionID: id, AdminUserID: f.adminID, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusApproved.String(), out.Status)

	t.Run("invalid transition is a bad request", func(t *testing.T) {
		_, err := f.status.Execute(ctx, UpdateSubscriptionStatusCommand{SubscriptionID: id, AdminUserID: f.adminID, Status: "REJECTED"})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeInvalidTransition, appErr.Type)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("pending is never a target", func(t *testing.T) {
		_, err := f.status.Execute(ctx, UpdateSubscriptionStatusCommand{SubscriptionID: id, AdminUserID: f.adminID, Status: "PENDING"})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("unknown status is an invalid transition", func(t *testing.T) {
		for _, status := range []string{"EXPIRED", "FOO", ""} {
			_, err := f.status.Execute(ctx, UpdateSubscriptionStatusCommand{SubscriptionID: id, AdminUserID: f.adminID, Status: status})
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr, status)
			assert.Equal(t, apperrors.ErrorTypeInvalidTransition, appErr.Type, status)
			assert.Equal(t, http.StatusBadRequest, appErr.Code, status)
		}
	})

	t.Run("admin cancel skips ownership", func(t *testing.T) {
		out, err := f.status.Execute(ctx, UpdateSubscriptionStatusCommand{SubscriptionID: id, AdminUserID: f.adminID, Status: "CANCELLED"})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusCancelled.String(), out.Status)
	})

	t.Run("missing subscription keeps 404", func(t *testing.T) {
		_, err := f.status.Execute(ctx, UpdateSubscriptionStatusCommand{SubscriptionID: 404, AdminUserID: f.adminID, Status: "APPROVED"})
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestGetAndListSubscriptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alices := f.request(t, f.aliceID, f.basic)
	f.request(t, f.aliceID, f.premium)
	f.request(t, f.bobID, f.basic)
	f.approveID(t, alices)

	t.Run("non-owner sees not found", func(t *testing.T) {
		_, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: alices, CallerID: f.bobID})
		assert.True(t, apperrors.IsNotFoundError(err))

		got, err := f.get.Execute(ctx, GetSubscriptionQuery{SubscriptionID: alices, CallerID: f.bobID, CallerIsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.UserEmail)
	})

	t.Run("list by user", func(t *testing.T) {
		res, err := f.list.ListByUser(ctx, f.aliceID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Total)
		for _, item := range res.Items {
			assert.Equal(t, f.aliceID, item.UserID)
		}
	})

	t.Run("list all and pending", func(t *testing.T) {
		all, err := f.list.ListAll(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), all.Total)

		pending, err := f.list.ListPending(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), pending.Total)
	})

	t.Run("list by status is case insensitive", func(t *testing.T) {
		res, err := f.list.ListByStatus(ctx, "approved", 1, 20)
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, alices, res.Items[0].ID)

		_, err = f.list.ListByStatus(ctx, "bogus", 1, 20)
		assert.True(t, apperrors.IsValidationError(err))
	})
}
