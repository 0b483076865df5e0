package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/shared/constants"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks gorm AutoMigrate for development and the versioned goose
// scripts everywhere else.
func NewManager(driver, environment string) (*Manager, error) {
	if strings.ToLower(environment) == constants.EnvDevelopment {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy()), nil
	}
	strategy, err := NewGooseStrategy(driver)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy), nil
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// Goose returns the versioned strategy, or an error when the manager runs
// AutoMigrate and has no version history.
func (m *Manager) Goose() (*GooseStrategy, error) {
	s, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s has no version history", m.strategy.GetName())
	}
	return s, nil
}
