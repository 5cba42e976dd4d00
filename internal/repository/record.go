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

type dailyRecordRepository struct {
	db *gorm.DB
}

// NewDailyRecordRepository creates a new daily record repository
func NewDailyRecordRepository(db *gorm.DB) DailyRecordRepository {
	return &dailyRecordRepository{db: db}
}

// recordConflict replaces the existing row for a date on re-import.
var recordConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "date"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"steps", "sleep_score", "readiness_score", "hrv",
		"deep_sleep", "rem_sleep", "sleep_efficiency", "sleep_duration",
		"resting_hr", "stress_minutes", "recovery_minutes", "sleep_latency",
		"workout", "updated_at",
	}),
}

func (r *dailyRecordRepository) Upsert(ctx context.Context, record *models.DailyRecord) (*models.DailyRecord, error) {
	if err := r.db.WithContext(ctx).Clauses(recordConflict).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert record: %w", err)
	}
	return r.GetByDate(ctx, record.Date)
}

func (r *dailyRecordRepository) BulkUpsert(ctx context.Context, records []models.DailyRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Clauses(recordConflict).Create(&records[i]).Error; err != nil {
				return fmt.Errorf("failed to upsert record for %s: %w", records[i].Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *dailyRecordRepository) GetByDate(ctx context.Context, date models.Day) (*models.DailyRecord, error) {
	var record models.DailyRecord
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &record, nil
}

func (r *dailyRecordRepository) GetRange(ctx context.Context, from, to models.Day) ([]models.DailyRecord, error) {
	var records []models.DailyRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get records in range: %w", err)
	}
	return records, nil
}

func (r *dailyRecordRepository) GetRecent(ctx context.Context, limit int) ([]models.DailyRecord, error) {
	var records []models.DailyRecord
	err := r.db.WithContext(ctx).
		Order("date desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent records: %w", err)
	}
	// Callers expect chronological order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (r *dailyRecordRepository) GetAll(ctx context.Context) ([]models.DailyRecord, error) {
	var records []models.DailyRecord
	err := r.db.WithContext(ctx).Order("date asc").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	return records, nil
}

func (r *dailyRecordRepository) LatestDate(ctx context.Context) (*models.Day, error) {
	var record models.DailyRecord
	err := r.db.WithContext(ctx).Order("date desc").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest date: %w", err)
	}
	return &record.Date, nil
}

func (r *dailyRecordRepository) LastWorkoutDate(ctx context.Context) (*models.Day, error) {
	var record models.DailyRecord
	err := r.db.WithContext(ctx).Where("workout = ?", true).Order("date desc").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last workout date: %w", err)
	}
	return &record.Date, nil
}

func (r *dailyRecordRepository) LastModified(ctx context.Context) (time.Time, error) {
	var record models.DailyRecord
	err := r.db.WithContext(ctx).Order("updated_at desc").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last modified time: %w", err)
	}
	return record.UpdatedAt, nil
}
