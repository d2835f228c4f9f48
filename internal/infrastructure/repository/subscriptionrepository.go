package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/domain/shared"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/mappers"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
	"github.com/nutriplan/nutriplan/internal/shared/constants"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// detailColumns is shared by every listing so each row carries the owner's
// name and email and the plan's name and price from one joined query.
const detailColumns = `s.id, s.user_id, s.plan_id, s.amount, s.status, s.subscription_date,
	s.approved_by_user_id, s.approved_date, s.cancelled_at,
	COALESCE(u.name, '') AS user_name, COALESCE(u.email, '') AS user_email,
	COALESCE(p.name, '') AS plan_name, p.price AS plan_price`

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "user_id", model.UserID, "plan_id", model.PlanID, "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "user_id", model.UserID, "plan_id", model.PlanID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.getByID(ctx, db.GetTxFromContext(ctx, r.db), id)
}

func (r *SubscriptionRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.getByID(ctx, db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *SubscriptionRepositoryImpl) getByID(_ context.Context, tx *gorm.DB, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ListApprovedByUser(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	return r.listApproved(db.GetTxFromContext(ctx, r.db), userID)
}

// ListApprovedByUserForUpdate is a locking read, so under REPEATABLE READ it
// sees rows committed after the transaction's snapshot was taken.
func (r *SubscriptionRepositoryImpl) ListApprovedByUserForUpdate(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	return r.listApproved(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), userID)
}

func (r *SubscriptionRepositoryImpl) listApproved(tx *gorm.DB, userID uint) ([]*subscription.Subscription, error) {
	var list []*models.SubscriptionModel
	if err := tx.
		Where("user_id = ? AND status = ?", userID, vo.StatusApproved.String()).
		Order("approved_date DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list approved subscriptions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list approved subscriptions: %w", err)
	}
	return r.mapper.ToEntities(list)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"status":              model.Status,
			"approved_by_user_id": model.ApprovedByUserID,
			"approved_date":       model.ApprovedDate,
			"cancelled_at":        model.CancelledAt,
			"version":             model.Version + 1,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription version conflict", "id", model.ID, "version", model.Version)
		return shared.ErrConcurrentModification
	}

	entity.IncrementVersion()
	r.logger.Infow("subscription updated", "id", model.ID, "status", model.Status)
	return nil
}

func (r *SubscriptionRepositoryImpl) CountByUserAndStatus(ctx context.Context, userID uint, status vo.SubscriptionStatus) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND status = ?", userID, status.String()).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "user_id", userID, "status", status, "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) detailQuery(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(constants.TableSubscriptions + " AS s").
		Select(detailColumns).
		Joins("LEFT JOIN " + constants.TableUsers + " u ON u.id = s.user_id").
		Joins("LEFT JOIN " + constants.TablePlans + " p ON p.id = s.plan_id")
}

func (r *SubscriptionRepositoryImpl) GetDetailByID(ctx context.Context, id uint) (*subscription.Detail, error) {
	var rows []models.SubscriptionDetailRow
	if err := r.detailQuery(ctx).Where("s.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to get subscription detail", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription detail: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return r.mapper.ToDetail(&rows[0])
}

func (r *SubscriptionRepositoryImpl) ListDetails(ctx context.Context, filter subscription.Filter) ([]*subscription.Detail, int64, error) {
	apply := func(q *gorm.DB, col string) *gorm.DB {
		if filter.UserID != nil {
			q = q.Where(col+"user_id = ?", *filter.UserID)
		}
		if filter.Status != nil {
			q = q.Where(col+"status = ?", filter.Status.String())
		}
		return q
	}

	var total int64
	if err := apply(db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}), "").
		Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * filter.PageSize
	}

	var rows []models.SubscriptionDetailRow
	if err := apply(r.detailQuery(ctx), "s.").
		Order("s.subscription_date DESC").Order("s.id DESC").
		Scopes(db.Paginate(offset, filter.PageSize)).
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	details := make([]*subscription.Detail, 0, len(rows))
	for i := range rows {
		d, err := r.mapper.ToDetail(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	return details, total, nil
}
