package mappers

import (
	"fmt"

	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
	ToDetail(row *models.SubscriptionDetailRow) (*subscription.Detail, error)
}

type subscriptionMapper struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapper{}
}

func (m *subscriptionMapper) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.PlanID,
		model.Amount,
		vo.SubscriptionStatus(model.Status),
		model.SubscriptionDate,
		model.ApprovedByUserID,
		model.ApprovedDate,
		model.CancelledAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *subscriptionMapper) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionModel{
		ID:               entity.ID(),
		UserID:           entity.UserID(),
		PlanID:           entity.PlanID(),
		Amount:           entity.Amount(),
		Status:           entity.Status().String(),
		SubscriptionDate: entity.SubscriptionDate(),
		ApprovedByUserID: entity.ApprovedByUserID(),
		ApprovedDate:     entity.ApprovedDate(),
		CancelledAt:      entity.CancelledAt(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *subscriptionMapper) ToEntities(list []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map subscription %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *subscriptionMapper) ToDetail(row *models.SubscriptionDetailRow) (*subscription.Detail, error) {
	status := vo.SubscriptionStatus(row.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", row.Status)
	}

	detail := &subscription.Detail{
		ID:               row.ID,
		UserID:           row.UserID,
		PlanID:           row.PlanID,
		Amount:           row.Amount,
		Status:           status,
		SubscriptionDate: row.SubscriptionDate,
		ApprovedByUserID: row.ApprovedByUserID,
		ApprovedDate:     row.ApprovedDate,
		CancelledAt:      row.CancelledAt,
		UserName:         row.UserName,
		UserEmail:        row.UserEmail,
		PlanName:         row.PlanName,
	}
	if row.PlanPrice.Valid {
		price := row.PlanPrice.Decimal
		detail.PlanPrice = &price
	}
	return detail, nil
}
