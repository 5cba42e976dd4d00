package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wakewell/backend/internal/models"
)

type checkinRepository struct {
	db *gorm.DB
}

// NewCheckinRepository creates a new check-in repository
func NewCheckinRepository(db *gorm.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

var checkinConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "date"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"caffeine", "alcohol", "last_meal", "screen_time", "stress", "updated_at",
	}),
}

func (r *checkinRepository) Upsert(ctx context.Context, checkin *models.LifestyleCheckin) (*models.LifestyleCheckin, error) {
	if err := r.db.WithContext(ctx).Clauses(checkinConflict).Create(checkin).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert check-in: %w", err)
	}
	return r.GetByDate(ctx, checkin.Date)
}

func (r *checkinRepository) GetByDate(ctx context.Context, date models.Day) (*models.LifestyleCheckin, error) {
	var checkin models.LifestyleCheckin
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&checkin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return &checkin, nil
}

func (r *checkinRepository) GetRange(ctx context.Context, from, to models.Day) ([]models.LifestyleCheckin, error) {
	var checkins []models.LifestyleCheckin
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc").
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins in range: %w", err)
	}
	return checkins, nil
}

func (r *checkinRepository) GetAll(ctx context.Context) ([]models.LifestyleCheckin, error) {
	var checkins []models.LifestyleCheckin
	err := r.db.WithContext(ctx).Order("date asc").Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}
	return checkins, nil
}

func (r *checkinRepository) LastModified(ctx context.Context) (time.Time, error) {
	var checkin models.LifestyleCheckin
	err := r.db.WithContext(ctx).Order("updated_at desc").First(&checkin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last modified time: %w", err)
	}
	return checkin.UpdatedAt, nil
}
