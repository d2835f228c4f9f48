package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nutriplan/nutriplan/internal/domain/subscription"
)

// SubscriptionDTO is a subscription joined with its owner and plan. PlanName
// is empty and PlanPrice nil when the plan has since been deleted.
type SubscriptionDTO struct {
	ID               uint             `json:"id"`
	UserID           uint             `json:"user_id"`
	PlanID           uint             `json:"plan_id"`
	Amount           decimal.Decimal  `json:"amount"`
	Status           string           `json:"status"`
	SubscriptionDate time.Time        `json:"subscription_date"`
	ApprovedByUserID *uint            `json:"approved_by_user_id,omitempty"`
	ApprovedDate     *time.Time       `json:"approved_date,omitempty"`
	CancelledAt      *time.Time       `json:"cancelled_at,omitempty"`
	UserName         string           `json:"user_name"`
	UserEmail        string           `json:"user_email"`
	PlanName         string           `json:"plan_name"`
	PlanPrice        *decimal.Decimal `json:"plan_price"`
}

type ListSubscriptionsResult struct {
	Items    []*SubscriptionDTO
	Total    int64
	Page     int
	PageSize int
}

func FromDetail(d *subscription.Detail) *SubscriptionDTO {
	if d == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:               d.ID,
		UserID:           d.UserID,
		PlanID:           d.PlanID,
		Amount:           d.Amount,
		Status:           d.Status.String(),
		SubscriptionDate: d.SubscriptionDate,
		ApprovedByUserID: d.ApprovedByUserID,
		ApprovedDate:     d.ApprovedDate,
		CancelledAt:      d.CancelledAt,
		UserName:         d.UserName,
		UserEmail:        d.UserEmail,
		PlanName:         d.PlanName,
		PlanPrice:        d.PlanPrice,
	}
}

func FromDetails(details []*subscription.Detail) []*SubscriptionDTO {
	out := make([]*SubscriptionDTO, 0, len(details))
	for _, d := range details {
		out = append(out, FromDetail(d))
	}
	return out
}
