package valueobjects

import (
	"fmt"
	"strings"
)

type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "PENDING"
	StatusApproved  SubscriptionStatus = "APPROVED"
	StatusRejected  SubscriptionStatus = "REJECTED"
	StatusCancelled SubscriptionStatus = "CANCELLED"
)

var transitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusRejected:  true,
	StatusCancelled: true,
}

// ParseStatus accepts any letter case.
func ParseStatus(s string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !ValidStatuses[status] {
		return "", fmt.Errorf("unknown subscription status %q", s)
	}
	return status, nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsActive reports whether the status grants entitlement.
func (s SubscriptionStatus) IsActive() bool {
	return s == StatusApproved
}

func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
