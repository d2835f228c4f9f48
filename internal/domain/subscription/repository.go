package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
)

// Repository persists subscriptions. Getters return (nil, nil) when no row
// matches. The ForUpdate variants take row locks and must be called inside a
// transaction.
type Repository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*Subscription, error)

	// ListApprovedByUser returns the user's APPROVED subscriptions, most
	// recently approved first.
	ListApprovedByUser(ctx context.Context, userID uint) ([]*Subscription, error)
	ListApprovedByUserForUpdate(ctx context.Context, userID uint) ([]*Subscription, error)

	// Update fails with shared.ErrConcurrentModification when the stored
	// version no longer matches.
	Update(ctx context.Context, subscription *Subscription) error

	CountByUserAndStatus(ctx context.Context, userID uint, status vo.SubscriptionStatus) (int64, error)

	GetDetailByID(ctx context.Context, id uint) (*Detail, error)
	ListDetails(ctx context.Context, filter Filter) ([]*Detail, int64, error)
}

// Filter narrows ListDetails. A zero PageSize returns every row.
type Filter struct {
	UserID   *uint
	Status   *vo.SubscriptionStatus
	Page     int
	PageSize int
}

// Detail is the read model returned by listings: the subscription joined
// with its owner's name and email and the plan's name and current price.
// PlanName is empty and PlanPrice nil when the plan has been deleted.
type Detail struct {
	ID               uint
	UserID           uint
	PlanID           uint
	Amount           decimal.Decimal
	Status           vo.SubscriptionStatus
	SubscriptionDate time.Time
	ApprovedByUserID *uint
	ApprovedDate     *time.Time
	CancelledAt      *time.Time
	UserName         string
	UserEmail        string
	PlanName         string
	PlanPrice        *decimal.Decimal
}
