package service

import (
	"context"

	"github.com/wakewell/backend/internal/models"
)

// RecordService defines the interface for daily record business logic
type RecordService interface {
	ImportRecords(ctx context.Context, req *models.ImportRecordsRequest) (int, error)
	UpsertRecord(ctx context.Context, record *models.DailyRecord) (*models.DailyRecord, error)
	GetRecord(ctx context.Context, date models.Day) (*models.DailyRecord, error)
	GetRecords(ctx context.Context, from, to models.Day) ([]models.DailyRecord, error)
}

// AnalyticsService defines the interface for aggregate and trend business logic
type AnalyticsService interface {
	RollingAverages(ctx context.Context, key models.MetricKey, window int, from, to models.Day) ([]models.RollingPoint, error)
	WeeklyAggregates(ctx context.Context, key models.MetricKey, from, to models.Day) ([]models.PeriodBucket, error)
	MonthlyAggregates(ctx context.Context, key models.MetricKey, from, to models.Day) ([]models.PeriodBucket, error)
	CompareWeeks(ctx context.Context, keys []models.MetricKey) ([]models.MetricComparison, error)
	Trend(ctx context.Context, key models.MetricKey, window int) (*models.TrendResult, error)
}

// AchievementService defines the interface for records, streaks, and
// milestone business logic
type AchievementService interface {
	PersonalRecords(ctx context.Context) (*models.PersonalRecords, error)
	ActivityStreak(ctx context.Context) (*models.StreakSummary, error)
	Milestones(ctx context.Context) (*models.MilestoneReport, error)
	Consistency(ctx context.Context, key models.MetricKey, windowDays int) (*models.ConsistencyResult, error)
}

// PatternService defines the interface for lagged pattern analysis
type PatternService interface {
	ComputePatterns(ctx context.Context) (*models.PatternsResponse, error)
}

// InsightService defines the interface for the composed daily insight
type InsightService interface {
	DailyInsight(ctx context.Context, date models.Day) (*models.DailyInsight, error)
	RefreshInsight(ctx context.Context, date models.Day) (*models.DailyInsight, error)
}

// CheckinService defines the interface for lifestyle check-in and morning
// reflection business logic
type CheckinService interface {
	UpsertCheckin(ctx context.Context, req *models.UpsertCheckinRequest) (*models.LifestyleCheckin, error)
	GetCheckin(ctx context.Context, date models.Day) (*models.LifestyleCheckin, error)
	CheckinStreak(ctx context.Context) (*models.StreakSummary, error)
	UpsertReflection(ctx context.Context, req *models.UpsertReflectionRequest) (*models.MorningReflection, error)
	GetReflection(ctx context.Context, date models.Day) (*models.MorningReflection, error)
}

// GoalService defines the interface for goal configuration and progress
type GoalService interface {
	PutGoal(ctx context.Context, req *models.PutGoalRequest) (*models.Goal, error)
	PatchGoal(ctx context.Context, key models.MetricKey, req *models.PatchGoalRequest) (*models.Goal, error)
	ListGoals(ctx context.Context) ([]models.Goal, error)
	DeleteGoal(ctx context.Context, key models.MetricKey) error
	GoalProgress(ctx context.Context, date models.Day) ([]models.GoalProgress, error)
}
