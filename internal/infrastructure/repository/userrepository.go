package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/domain/user"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{db: db, logger: logger}
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user.User{ID: model.ID, Name: model.Name, Email: model.Email, Role: model.Role}, nil
}

func (r *UserRepositoryImpl) LockForUpdate(ctx context.Context, id uint) error {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUpdate()).
		Select("id").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.ErrUserNotFound
		}
		r.logger.Errorw("failed to lock user row", "user_id", id, "error", err)
		return fmt.Errorf("failed to lock user: %w", err)
	}
	return nil
}
