package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wakewell/backend/internal/models"
)

type insightCacheRepository struct {
	db *gorm.DB
}

// NewInsightCacheRepository creates a new insight cache repository
func NewInsightCacheRepository(db *gorm.DB) InsightCacheRepository {
	return &insightCacheRepository{db: db}
}

func (r *insightCacheRepository) Get(ctx context.Context, date models.Day) (*models.InsightCache, error) {
	var entry models.InsightCache
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached insight: %w", err)
	}
	return &entry, nil
}

func (r *insightCacheRepository) Put(ctx context.Context, entry *models.InsightCache) error {
	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "computed_at"}),
	}
	if err := r.db.WithContext(ctx).Clauses(conflict).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to cache insight: %w", err)
	}
	return nil
}

func (r *insightCacheRepository) Purge(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.InsightCache{}).Error; err != nil {
		return fmt.Errorf("failed to purge insight cache: %w", err)
	}
	return nil
}
