package service

import (
	"context"
	"fmt"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

type analyticsService struct {
	recordRepo repository.DailyRecordRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(recordRepo repository.DailyRecordRepository) AnalyticsService {
	return &analyticsService{
		recordRepo: recordRepo,
	}
}

func (s *analyticsService) RollingAverages(ctx context.Context, key models.MetricKey, window int, from, to models.Day) ([]models.RollingPoint, error) {
	if !models.ValidMetricKey(key) {
		return nil, fmt.Errorf("unknown metric key %q", key)
	}
	if window <= 0 {
		window = DefaultRollingWindow
	}

	// Fetch extra leading days so the first requested point has a full
	// trailing window behind it.
	records, err := s.recordRepo.GetRange(ctx, from.AddDays(-(window-1)), to)
	if err != nil {
		return nil, err
	}

	points := RollingAverage(records, key, window)
	trimmed := make([]models.RollingPoint, 0, len(points))
	for _, p := range points {
		if p.Date.Before(from) {
			continue
		}
		trimmed = append(trimmed, p)
	}
	return trimmed, nil
}

func (s *analyticsService) WeeklyAggregates(ctx context.Context, key models.MetricKey, from, to models.Day) ([]models.PeriodBucket, error) {
	if !models.ValidMetricKey(key) {
		return nil, fmt.Errorf("unknown metric key %q", key)
	}
	records, err := s.recordRepo.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return AggregateToWeekly(records, key), nil
}

func (s *analyticsService) MonthlyAggregates(ctx context.Context, key models.MetricKey, from, to models.Day) ([]models.PeriodBucket, error) {
	if !models.ValidMetricKey(key) {
		return nil, fmt.Errorf("unknown metric key %q", key)
	}
	records, err := s.recordRepo.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return AggregateToMonthly(records, key), nil
}

// CompareWeeks compares the 7 days ending at the latest record against the
// 7 days before that.
func (s *analyticsService) CompareWeeks(ctx context.Context, keys []models.MetricKey) ([]models.MetricComparison, error) {
	if len(keys) == 0 {
		keys = models.AllMetricKeys
	}
	for _, key := range keys {
		if !models.ValidMetricKey(key) {
			return nil, fmt.Errorf("unknown metric key %q", key)
		}
	}

	latest, err := s.recordRepo.LatestDate(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return ComparePeriods(nil, nil, keys), nil
	}

	current, err := s.recordRepo.GetRange(ctx, latest.AddDays(-6), *latest)
	if err != nil {
		return nil, err
	}
	previous, err := s.recordRepo.GetRange(ctx, latest.AddDays(-13), latest.AddDays(-7))
	if err != nil {
		return nil, err
	}

	return ComparePeriods(current, previous, keys), nil
}

func (s *analyticsService) Trend(ctx context.Context, key models.MetricKey, window int) (*models.TrendResult, error) {
	if !models.ValidMetricKey(key) {
		return nil, fmt.Errorf("unknown metric key %q", key)
	}
	if window <= 0 {
		window = DefaultTrendWindow
	}

	records, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := CalculateTrend(records, key, window)
	return &result, nil
}
