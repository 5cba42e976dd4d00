package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wakewell/backend/internal/models"
)

type reflectionRepository struct {
	db *gorm.DB
}

// NewReflectionRepository creates a new reflection repository
func NewReflectionRepository(db *gorm.DB) ReflectionRepository {
	return &reflectionRepository{db: db}
}

var reflectionConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "date"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"energy", "sleep_felt", "updated_at",
	}),
}

func (r *reflectionRepository) Upsert(ctx context.Context, reflection *models.MorningReflection) (*models.MorningReflection, error) {
	if err := r.db.WithContext(ctx).Clauses(reflectionConflict).Create(reflection).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert reflection: %w", err)
	}
	return r.GetByDate(ctx, reflection.Date)
}

func (r *reflectionRepository) GetByDate(ctx context.Context, date models.Day) (*models.MorningReflection, error) {
	var reflection models.MorningReflection
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&reflection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reflection: %w", err)
	}
	return &reflection, nil
}

func (r *reflectionRepository) GetRange(ctx context.Context, from, to models.Day) ([]models.MorningReflection, error) {
	var reflections []models.MorningReflection
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc").
		Find(&reflections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reflections in range: %w", err)
	}
	return reflections, nil
}
