package repository

import (
	"context"
	"time"

	"github.com/wakewell/backend/internal/models"
)

// DailyRecordRepository defines the interface for wearable record data access.
// Records are keyed by calendar date; writes are upserts so re-imports of the
// same day replace the earlier row.
type DailyRecordRepository interface {
	Upsert(ctx context.Context, record *models.DailyRecord) (*models.DailyRecord, error)
	BulkUpsert(ctx context.Context, records []models.DailyRecord) (int, error)
	GetByDate(ctx context.Context, date models.Day) (*models.DailyRecord, error)
	GetRange(ctx context.Context, from, to models.Day) ([]models.DailyRecord, error)
	GetRecent(ctx context.Context, limit int) ([]models.DailyRecord, error)
	GetAll(ctx context.Context) ([]models.DailyRecord, error)
	LatestDate(ctx context.Context) (*models.Day, error)
	LastWorkoutDate(ctx context.Context) (*models.Day, error)
	LastModified(ctx context.Context) (time.Time, error)
}

// CheckinRepository defines the interface for lifestyle check-in data access.
type CheckinRepository interface {
	Upsert(ctx context.Context, checkin *models.LifestyleCheckin) (*models.LifestyleCheckin, error)
	GetByDate(ctx context.Context, date models.Day) (*models.LifestyleCheckin, error)
	GetRange(ctx context.Context, from, to models.Day) ([]models.LifestyleCheckin, error)
	GetAll(ctx context.Context) ([]models.LifestyleCheckin, error)
	LastModified(ctx context.Context) (time.Time, error)
}

// ReflectionRepository defines the interface for morning reflection data access.
type ReflectionRepository interface {
	Upsert(ctx context.Context, reflection *models.MorningReflection) (*models.MorningReflection, error)
	GetByDate(ctx context.Context, date models.Day) (*models.MorningReflection, error)
	GetRange(ctx context.Context, from, to models.Day) ([]models.MorningReflection, error)
}

// GoalRepository defines the interface for goal configuration access. One
// goal per metric key.
type GoalRepository interface {
	Put(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetByMetricKey(ctx context.Context, key models.MetricKey) (*models.Goal, error)
	List(ctx context.Context) ([]models.Goal, error)
	Delete(ctx context.Context, key models.MetricKey) error
}

// InsightCacheRepository defines the interface for the per-day insight
// cache.
type InsightCacheRepository interface {
	Get(ctx context.Context, date models.Day) (*models.InsightCache, error)
	Put(ctx context.Context, entry *models.InsightCache) error
	Purge(ctx context.Context) error
}
