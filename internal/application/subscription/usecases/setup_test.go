package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	"github.com/nutriplan/nutriplan/internal/infrastructure/database/dbtest"
	"github.com/nutriplan/nutriplan/internal/infrastructure/repository"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type recordingMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
	anomalies   int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{transitions: map[string]int{}}
}

func (m *recordingMetrics) SubscriptionTransitioned(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[from+"->"+to]++
}

func (m *recordingMetrics) QuotaRejected(string) {}

func (m *recordingMetrics) IntegrityAnomaly(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anomalies++
}

type fixture struct {
	db      *gorm.DB
	subs    subscription.Repository
	plans   plan.Repository
	users   user.Repository
	metrics *recordingMetrics
	create  *CreateSubscriptionUseCase
	approve *ApproveSubscriptionUseCase
	reject  *RejectSubscriptionUseCase
	cancel  *CancelSubscriptionUseCase
	status  *UpdateSubscriptionStatusUseCase
	get     *GetSubscriptionUseCase
	list    *ListSubscriptionsUseCase
	count   *CountActiveSubscriptionsUseCase
	adminID uint
	aliceID uint
	bobID   uint
	basic   *plan.Plan
	premium *plan.Plan
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.New(t)
	log := logger.NewNop()
	tx := db.NewTransactionManager(gdb)

	f := &fixture{
		db:      gdb,
		subs:    repository.NewSubscriptionRepository(gdb, log),
		plans:   repository.NewPlanRepository(gdb, log),
		users:   repository.NewUserRepository(gdb, log),
		metrics: newRecordingMetrics(),
	}

	f.create = NewCreateSubscriptionUseCase(f.subs, f.plans, f.users, f.metrics, log)
	f.approve = NewApproveSubscriptionUseCase(f.subs, f.users, tx, f.metrics, log)
	f.reject = NewRejectSubscriptionUseCase(f.subs, tx, f.metrics, log)
	f.cancel = NewCancelSubscriptionUseCase(f.subs, tx, f.metrics, log)
	f.status = NewUpdateSubscriptionStatusUseCase(f.approve, f.reject, f.cancel)
	f.get = NewGetSubscriptionUseCase(f.subs, log)
	f.list = NewListSubscriptionsUseCase(f.subs, log)
	f.count = NewCountActiveSubscriptionsUseCase(f.subs, f.metrics, log)

	f.adminID = dbtest.SeedUser(t, gdb, "Admin", "admin@example.com")
	f.aliceID = dbtest.SeedUser(t, gdb, "Alice", "alice@example.com")
	f.bobID = dbtest.SeedUser(t, gdb, "Bob", "bob@example.com")

	three := 3
	f.basic = f.seedPlan(t, "Basic", "9.99", &three)
	f.premium = f.seedPlan(t, "Premium", "19.99", nil)
	return f
}

func (f *fixture) seedPlan(t *testing.T, name, price string, limit *int) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(name, decimal.RequireFromString(price), limit, "", nil)
	require.NoError(t, err)
	require.NoError(t, f.plans.Create(context.Background(), p))
	return p
}

func (f *fixture) request(t *testing.T, userID uint, p *plan.Plan) uint {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateSubscriptionCommand{UserID: userID, PlanID: p.ID()})
	require.NoError(t, err)
	return out.ID
}

func (f *fixture) approveID(t *testing.T, id uint) {
	t.Helper()
	_, err := f.approve.Execute(context.Background(), ApproveSubscriptionCommand{SubscriptionID: id, AdminUserID: f.adminID})
	require.NoError(t, err)
}
