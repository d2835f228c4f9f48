package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/nutriplan/nutriplan/internal/application/common"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.SubscriptionTransitioned("PENDING", "APPROVED")
	m.SubscriptionTransitioned("PENDING", "APPROVED")
	m.QuotaRejected(common.QuotaReasonLimitReached)
	m.IntegrityAnomaly(common.AnomalyMultipleApproved)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.subscriptionTransitions.WithLabelValues("PENDING", "APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotaRejections.WithLabelValues(common.QuotaReasonLimitReached)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.integrityAnomalies.WithLabelValues(common.AnomalyMultipleApproved)))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.QuotaRejected(common.QuotaReasonNoActivePlan)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `nutriplan_quota_rejections_total{reason="no_active_plan"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

// Two instances must not collide on registration.
func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
