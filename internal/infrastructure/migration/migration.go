// Package migration applies the database schema. MySQL deployments run the
// versioned SQL scripts in scripts/ (goose by default, golang-migrate as an
// alternative); sqlite and postgres fall back to gorm AutoMigrate.
package migration

import (
	"embed"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/shared/config"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// Scripts holds both script layouts.
//
//go:embed scripts
var Scripts embed.FS

const (
	GooseScriptsDir   = "scripts/goose"
	MigrateScriptsDir = "scripts/migrate"
)

// Status describes the schema version as reported by `migrate status`.
type Status struct {
	Strategy    string `json:"strategy"`
	Description string `json:"description"`
	Versioned   bool   `json:"versioned"`
	Version     int64  `json:"version"`
	Dirty       bool   `json:"dirty"`
}

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for the configured driver.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	strategy, err := strategyFor(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func strategyFor(cfg *config.DatabaseConfig, log logger.Interface) (Strategy, error) {
	if cfg.Driver != config.DriverMySQL && cfg.Driver != "" {
		return NewGormAutoMigrateStrategy(log), nil
	}

	switch cfg.MigrationStrategy {
	case StrategyGoose, "":
		return NewGooseStrategy(Scripts, GooseScriptsDir, log), nil
	case StrategyGolangMigrate:
		return NewGolangMigrateStrategy(Scripts, MigrateScriptsDir, log), nil
	case StrategyAutoMigrate:
		return NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", cfg.MigrationStrategy)
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Down rolls back steps versions. AutoMigrate cannot roll back.
func (m *Manager) Down(db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	versioned, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return fmt.Errorf("strategy %s does not support rollback", m.strategy.GetName())
	}
	return versioned.MigrateDown(db, steps)
}

// Status reports the current version when the strategy tracks one.
func (m *Manager) Status(db *gorm.DB) (*Status, error) {
	status := &Status{
		Strategy:    m.strategy.GetName(),
		Description: getStrategyDescription(m.strategy.GetName()),
	}

	versioned, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return status, nil
	}

	version, dirty, err := versioned.GetVersion(db)
	if err != nil {
		return nil, err
	}
	status.Versioned = true
	status.Version = version
	status.Dirty = dirty
	return status, nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case StrategyAutoMigrate:
		return "GORM AutoMigrate - schema derived from the persistence models"
	case StrategyGolangMigrate:
		return "golang-migrate - versioned up/down SQL scripts"
	case StrategyGoose:
		return "goose - versioned SQL scripts with up and down sections"
	default:
		return "Unknown migration strategy"
	}
}
