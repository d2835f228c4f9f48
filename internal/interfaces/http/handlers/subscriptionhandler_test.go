package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	subusecases "github.com/nutriplan/nutriplan/internal/application/subscription/usecases"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/handlers/testutil"
	"github.com/nutriplan/nutriplan/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateSubscriptionUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subusecases.CreateSubscriptionCommand
}

func (m *mockCreateSubscriptionUC) Execute(ctx context.Context, cmd subusecases.CreateSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetSubscriptionUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subusecases.GetSubscriptionQuery
}

func (m *mockGetSubscriptionUC) Execute(ctx context.Context, query subusecases.GetSubscriptionQuery) (*subdto.SubscriptionDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockListSubscriptionsUC struct {
	result *subdto.ListSubscriptionsResult
	err    error
	called string
	userID uint
	status string
	page   int
	size   int
}

func (m *mockListSubscriptionsUC) record(name string, page, pageSize int) (*subdto.ListSubscriptionsResult, error) {
	m.called, m.page, m.size = name, page, pageSize
	return m.result, m.err
}

func (m *mockListSubscriptionsUC) ListByUser(ctx context.Context, userID uint, page, pageSize int) (*subdto.ListSubscriptionsResult, error) {
	m.userID = userID
	return m.record("user", page, pageSize)
}

func (m *mockListSubscriptionsUC) ListAll(ctx context.Context, page, pageSize int) (*subdto.ListSubscriptionsResult, error) {
	return m.record("all", page, pageSize)
}

func (m *mockListSubscriptionsUC) ListByStatus(ctx context.Context, status string, page, pageSize int) (*subdto.ListSubscriptionsResult, error) {
	m.status = status
	return m.record("status", page, pageSize)
}

func (m *mockListSubscriptionsUC) ListPending(ctx context.Context, page, pageSize int) (*subdto.ListSubscriptionsResult, error) {
	return m.record("pending", page, pageSize)
}

type mockApproveUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subusecases.ApproveSubscriptionCommand
}

func (m *mockApproveUC) Execute(ctx context.Context, cmd subusecases.ApproveSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockRejectUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subusecases.RejectSubscriptionCommand
}

func (m *mockRejectUC) Execute(ctx context.Context, cmd subusecases.RejectSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCancelUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subusecases.CancelSubscriptionCommand
}

func (m *mockCancelUC) Execute(ctx context.Context, cmd subusecases.CancelSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateStatusUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subusecases.UpdateSubscriptionStatusCommand
}

func (m *mockUpdateStatusUC) Execute(ctx context.Context, cmd subusecases.UpdateSubscriptionStatusCommand) (*subdto.SubscriptionDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCountActiveUC struct {
	count int64
	err   error
}

func (m *mockCountActiveUC) Execute(ctx context.Context, userID uint) (int64, error) {
	return m.count, m.err
}

// =====================================================================
// Helpers
// =====================================================================

type subscriptionHandlerMocks struct {
	create  *mockCreateSubscriptionUC
	get     *mockGetSubscriptionUC
	list    *mockListSubscriptionsUC
	approve *mockApproveUC
	reject  *mockRejectUC
	cancel  *mockCancelUC
	update  *mockUpdateStatusUC
	count   *mockCountActiveUC
}

func newTestSubscriptionHandler() (*SubscriptionHandler, *subscriptionHandlerMocks) {
	m := &subscriptionHandlerMocks{
		create:  &mockCreateSubscriptionUC{},
		get:     &mockGetSubscriptionUC{},
		list:    &mockListSubscriptionsUC{},
		approve: &mockApproveUC{},
		reject:  &mockRejectUC{},
		cancel:  &mockCancelUC{},
		update:  &mockUpdateStatusUC{},
		count:   &mockCountActiveUC{},
	}
	h := NewSubscriptionHandler(m.create, m.get, m.list, m.approve, m.reject, m.cancel, m.update, m.count,
		testutil.NewMockLogger())
	return h, m
}

func createTestSubscriptionDTO(status string) *subdto.SubscriptionDTO {
	return &subdto.SubscriptionDTO{ID: 10, UserID: 2, PlanID: 1, Status: status, PlanName: "Basic"}
}

// =====================================================================
// Tests
// =====================================================================

func TestSubscriptionHandler_Create_Success(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.create.result = createTestSubscriptionDTO("PENDING")

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{"plan_id": 1})
	testutil.SetAuthContext(c, 2, "user")

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, subusecases.CreateSubscriptionCommand{UserID: 2, PlanID: 1}, mocks.create.got)
}

func TestSubscriptionHandler_Create_Unauthenticated(t *testing.T) {
	handler, _ := newTestSubscriptionHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{"plan_id": 1})

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptionHandler_Create_MissingPlanID(t *testing.T) {
	handler, _ := newTestSubscriptionHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{})
	testutil.SetAuthContext(c, 2, "user")

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_Create_InactivePlan(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.create.err = errors.NewPlanInactiveError("plan is not active")

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{"plan_id": 1})
	testutil.SetAuthContext(c, 2, "user")

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "plan_inactive", resp.Error.Type)
}

func TestSubscriptionHandler_Create_UnknownPlanIsBadRequest(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.create.err = errors.NewNotFoundError("plan not found").WithCode(http.StatusBadRequest)

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", map[string]any{"plan_id": 9999})
	testutil.SetAuthContext(c, 2, "user")

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "plan not found", resp.Error.Message)
}

func TestSubscriptionHandler_Get_PassesCallerRole(t *testing.T) {
	tests := []struct {
		role    string
		isAdmin bool
	}{
		{"user", false},
		{"admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			handler, mocks := newTestSubscriptionHandler()
			mocks.get.result = createTestSubscriptionDTO("PENDING")

			c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/10", nil)
			testutil.SetAuthContext(c, 5, tt.role)
			testutil.SetURLParam(c, "id", "10")

			handler.GetSubscription(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, subusecases.GetSubscriptionQuery{
				SubscriptionID: 10,
				CallerID:       5,
				CallerIsAdmin:  tt.isAdmin,
			}, mocks.get.got)
		})
	}
}

func TestSubscriptionHandler_ListMine_Paginates(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.list.result = &subdto.ListSubscriptionsResult{
		Items:    []*subdto.SubscriptionDTO{createTestSubscriptionDTO("APPROVED")},
		Total:    3,
		Page:     2,
		PageSize: 1,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions", nil)
	testutil.SetAuthContext(c, 2, "user")
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "1"})

	handler.ListMySubscriptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", mocks.list.called)
	assert.Equal(t, uint(2), mocks.list.userID)
	assert.Equal(t, 2, mocks.list.page)
	assert.Equal(t, 1, mocks.list.size)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data struct {
		Items      []*subdto.SubscriptionDTO `json:"items"`
		Total      int64                     `json:"total"`
		TotalPages int                       `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Items, 1)
	assert.Equal(t, int64(3), data.Total)
	assert.Equal(t, 3, data.TotalPages)
}

func TestSubscriptionHandler_AdminLists(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.list.result = &subdto.ListSubscriptionsResult{Items: []*subdto.SubscriptionDTO{}, Page: 1, PageSize: 20}

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/all", nil)
	handler.ListAllSubscriptions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "all", mocks.list.called)

	c, w = testutil.NewTestContext(http.MethodGet, "/subscriptions/pending", nil)
	handler.ListPendingSubscriptions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", mocks.list.called)

	c, w = testutil.NewTestContext(http.MethodGet, "/subscriptions/status/REJECTED", nil)
	testutil.SetURLParam(c, "status", "REJECTED")
	handler.ListSubscriptionsByStatus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "status", mocks.list.called)
	assert.Equal(t, "REJECTED", mocks.list.status)
}

func TestSubscriptionHandler_AdminLists_ReturnEveryRowByDefault(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.list.result = &subdto.ListSubscriptionsResult{Items: []*subdto.SubscriptionDTO{}, Page: 1}

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/all", nil)
	handler.ListAllSubscriptions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, mocks.list.size)

	c, w = testutil.NewTestContext(http.MethodGet, "/subscriptions/pending", nil)
	testutil.SetQueryParams(c, map[string]string{"page_size": "0"})
	handler.ListPendingSubscriptions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, mocks.list.size)

	c, w = testutil.NewTestContext(http.MethodGet, "/subscriptions/status/PENDING", nil)
	testutil.SetURLParam(c, "status", "PENDING")
	testutil.SetQueryParams(c, map[string]string{"page_size": "5"})
	handler.ListSubscriptionsByStatus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, mocks.list.size)
}

func TestSubscriptionHandler_ListByStatus_Invalid(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.list.err = errors.NewValidationError("invalid subscription status")

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/status/BOGUS", nil)
	testutil.SetURLParam(c, "status", "BOGUS")

	handler.ListSubscriptionsByStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_Approve(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.approve.result = createTestSubscriptionDTO("APPROVED")

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/approve", nil)
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "10")

	handler.ApproveSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, subusecases.ApproveSubscriptionCommand{SubscriptionID: 10, AdminUserID: 1}, mocks.approve.got)
}

func TestSubscriptionHandler_Approve_InvalidTransitionIsConflict(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.approve.err = errors.NewInvalidTransitionError("only pending subscriptions can be approved")

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/approve", nil)
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "10")

	handler.ApproveSubscription(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "invalid_transition", resp.Error.Type)
}

func TestSubscriptionHandler_Reject(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.reject.result = createTestSubscriptionDTO("REJECTED")

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/reject", nil)
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "10")

	handler.RejectSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), mocks.reject.got.SubscriptionID)
}

func TestSubscriptionHandler_Cancel_AdminSkipsOwnership(t *testing.T) {
	tests := []struct {
		role string
		skip bool
	}{
		{"user", false},
		{"admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			handler, mocks := newTestSubscriptionHandler()
			mocks.cancel.result = createTestSubscriptionDTO("CANCELLED")

			c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/cancel", nil)
			testutil.SetAuthContext(c, 2, tt.role)
			testutil.SetURLParam(c, "id", "10")

			handler.CancelSubscription(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, subusecases.CancelSubscriptionCommand{
				SubscriptionID:     10,
				RequestingUserID:   2,
				SkipOwnershipCheck: tt.skip,
			}, mocks.cancel.got)
		})
	}
}

func TestSubscriptionHandler_Cancel_NotOwner(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.cancel.err = errors.NewForbiddenError("you can only cancel your own subscription")

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/cancel", nil)
	testutil.SetAuthContext(c, 3, "user")
	testutil.SetURLParam(c, "id", "10")

	handler.CancelSubscription(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubscriptionHandler_UpdateStatus(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.update.result = createTestSubscriptionDTO("APPROVED")

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/status", map[string]any{"status": "APPROVED"})
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "10")

	handler.UpdateSubscriptionStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, subusecases.UpdateSubscriptionStatusCommand{
		SubscriptionID: 10,
		AdminUserID:    1,
		Status:         "APPROVED",
	}, mocks.update.got)
}

func TestSubscriptionHandler_UpdateStatus_InvalidTransitionIsBadRequest(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.update.err = errors.NewInvalidTransitionError("cannot move a subscription to PENDING").
		WithCode(http.StatusBadRequest)

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/status", map[string]any{"status": "PENDING"})
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "10")

	handler.UpdateSubscriptionStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_UpdateStatus_MissingBody(t *testing.T) {
	handler, _ := newTestSubscriptionHandler()

	c, w := testutil.NewTestContext(http.MethodPatch, "/subscriptions/10/status", map[string]any{})
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "10")

	handler.UpdateSubscriptionStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_CountActive_ReturnsPlainNumber(t *testing.T) {
	handler, mocks := newTestSubscriptionHandler()
	mocks.count.count = 1

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/count/active", nil)
	testutil.SetAuthContext(c, 2, "user")

	handler.CountActiveSubscriptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.JSONEq(t, "1", string(resp.Data))
}
