// Package subscription holds the subscription aggregate and its state
// machine: PENDING -> APPROVED | REJECTED, APPROVED -> CANCELLED.
package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
)

// Subscription is a user's request for, or holding of, a plan.
type Subscription struct {
	id               uint
	userID           uint
	planID           uint
	amount           decimal.Decimal
	status           vo.SubscriptionStatus
	subscriptionDate time.Time
	approvedByUserID *uint
	approvedDate     *time.Time
	cancelledAt      *time.Time
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSubscription creates a PENDING subscription. amount is the plan price at
// the time of the request and never follows later price changes.
func NewSubscription(userID, planID uint, amount decimal.Decimal) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must be non-negative")
	}

	now := time.Now()
	return &Subscription{
		userID:           userID,
		planID:           planID,
		amount:           amount,
		status:           vo.StatusPending,
		subscriptionDate: now,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id, userID, planID uint,
	amount decimal.Decimal,
	status vo.SubscriptionStatus,
	subscriptionDate time.Time,
	approvedByUserID *uint,
	approvedDate, cancelledAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		id:               id,
		userID:           userID,
		planID:           planID,
		amount:           amount,
		status:           status,
		subscriptionDate: subscriptionDate,
		approvedByUserID: approvedByUserID,
		approvedDate:     approvedDate,
		cancelledAt:      cancelledAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

// Approve moves a PENDING subscription to APPROVED and records the approver.
// Cancelling the owner's other approved subscriptions is the caller's job and
// must happen in the same transaction.
func (s *Subscription) Approve(adminUserID uint, at time.Time) error {
	return s.decide(vo.StatusApproved, adminUserID, at)
}

// Reject moves a PENDING subscription to REJECTED and records the reviewer.
func (s *Subscription) Reject(adminUserID uint, at time.Time) error {
	return s.decide(vo.StatusRejected, adminUserID, at)
}

func (s *Subscription) decide(target vo.SubscriptionStatus, adminUserID uint, at time.Time) error {
	if adminUserID == 0 {
		return fmt.Errorf("approver ID is required")
	}
	if err := s.transition(target, at); err != nil {
		return err
	}
	s.approvedByUserID = &adminUserID
	s.approvedDate = &at
	return nil
}

// Cancel ends an APPROVED subscription. Ownership is checked by the caller.
func (s *Subscription) Cancel(at time.Time) error {
	if err := s.transition(vo.StatusCancelled, at); err != nil {
		return err
	}
	s.cancelledAt = &at
	return nil
}

func (s *Subscription) transition(target vo.SubscriptionStatus, at time.Time) error {
	if !s.status.CanTransitionTo(target) {
		return newTransitionError(s.status, target)
	}
	s.status = target
	s.updatedAt = at
	return nil
}

// IsOwnedBy reports whether userID owns the subscription.
func (s *Subscription) IsOwnedBy(userID uint) bool {
	return s.userID == userID
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) PlanID() uint {
	return s.planID
}

// Amount is the price snapshot taken at creation.
func (s *Subscription) Amount() decimal.Decimal {
	return s.amount
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) SubscriptionDate() time.Time {
	return s.subscriptionDate
}

func (s *Subscription) ApprovedByUserID() *uint {
	return s.approvedByUserID
}

func (s *Subscription) ApprovedDate() *time.Time {
	return s.approvedDate
}

func (s *Subscription) CancelledAt() *time.Time {
	return s.cancelledAt
}

func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IncrementVersion is called by the repository after a successful update.
func (s *Subscription) IncrementVersion() {
	s.version++
}
