package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the persistence models.
// It covers sqlite and postgres, which have no SQL scripts, and skips the
// MySQL generated column that backs the single-approved-subscription key.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.gorm")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("running gorm auto migrate", "models_count", len(all))

	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migrate failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return StrategyAutoMigrate
}
