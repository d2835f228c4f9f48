// Package common holds collaborators shared by every application package.
package common

// Metrics receives business events worth counting. The HTTP server wires
// the Prometheus implementation; tests use NopMetrics.
type Metrics interface {
	SubscriptionTransitioned(from, to string)
	QuotaRejected(reason string)
	IntegrityAnomaly(kind string)
}

type NopMetrics struct{}

func (NopMetrics) SubscriptionTransitioned(from, to string) {}
func (NopMetrics) QuotaRejected(reason string) {}
func (NopMetrics) IntegrityAnomaly(kind string) {}

// Metric label values.
const (
	QuotaReasonNoActivePlan = "no_active_plan"
	QuotaReasonLimitReached = "limit_reached"
	AnomalyMultipleApproved = "multiple_approved_subscriptions"
)
