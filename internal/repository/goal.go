package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wakewell/backend/internal/models"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Put(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	conflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "metric_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target", "enabled", "inverted", "updated_at",
		}),
	}
	if err := r.db.WithContext(ctx).Clauses(conflict).Create(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to put goal: %w", err)
	}
	return r.GetByMetricKey(ctx, goal.MetricKey)
}

func (r *goalRepository) Update(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	err := r.db.WithContext(ctx).Model(&models.Goal{}).
		Where("metric_key = ?", goal.MetricKey).
		Updates(map[string]interface{}{
			"target":   goal.Target,
			"enabled":  goal.Enabled,
			"inverted": goal.Inverted,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return r.GetByMetricKey(ctx, goal.MetricKey)
}

func (r *goalRepository) GetByMetricKey(ctx context.Context, key models.MetricKey) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.WithContext(ctx).Where("metric_key = ?", key).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

func (r *goalRepository) List(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.WithContext(ctx).Order("metric_key asc").Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) Delete(ctx context.Context, key models.MetricKey) error {
	result := r.db.WithContext(ctx).Where("metric_key = ?", key).Delete(&models.Goal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
