package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

type insightService struct {
	recordRepo  repository.DailyRecordRepository
	checkinRepo repository.CheckinRepository
	goalRepo    repository.GoalRepository
	cacheRepo   repository.InsightCacheRepository
	now         func() time.Time
}

// NewInsightService creates a new insight service
func NewInsightService(
	recordRepo repository.DailyRecordRepository,
	checkinRepo repository.CheckinRepository,
	goalRepo repository.GoalRepository,
	cacheRepo repository.InsightCacheRepository,
) InsightService {
	return &insightService{
		recordRepo:  recordRepo,
		checkinRepo: checkinRepo,
		goalRepo:    goalRepo,
		cacheRepo:   cacheRepo,
		now:         time.Now,
	}
}

// DailyInsight returns the composed insight for a date, serving from the
// cache when nothing has been written since it was computed. A zero date
// means the latest recorded day.
func (s *insightService) DailyInsight(ctx context.Context, date models.Day) (*models.DailyInsight, error) {
	if date.IsZero() {
		latest, err := s.recordRepo.LatestDate(ctx)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, fmt.Errorf("no records yet: %w", ErrNotFound)
		}
		date = *latest
	}

	if cached, err := s.fromCache(ctx, date); err == nil && cached != nil {
		return cached, nil
	}

	return s.composeAndCache(ctx, date)
}

// RefreshInsight recomputes the insight for a date, bypassing and
// overwriting any cached copy. A zero date means the latest recorded day.
func (s *insightService) RefreshInsight(ctx context.Context, date models.Day) (*models.DailyInsight, error) {
	if date.IsZero() {
		latest, err := s.recordRepo.LatestDate(ctx)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, fmt.Errorf("no records yet: %w", ErrNotFound)
		}
		date = *latest
	}

	return s.composeAndCache(ctx, date)
}

func (s *insightService) composeAndCache(ctx context.Context, date models.Day) (*models.DailyInsight, error) {
	insight, err := s.compose(ctx, date)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(insight)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize insight: %w", err)
	}
	if err := s.cacheRepo.Put(ctx, &models.InsightCache{
		Date:       date,
		Payload:    string(payload),
		ComputedAt: insight.ComputedAt,
	}); err != nil {
		// A cache write failure is not worth failing the read for.
		return insight, nil
	}

	return insight, nil
}

// fromCache returns the cached insight only when it postdates every write
// to the underlying tables.
func (s *insightService) fromCache(ctx context.Context, date models.Day) (*models.DailyInsight, error) {
	entry, err := s.cacheRepo.Get(ctx, date)
	if err != nil || entry == nil {
		return nil, err
	}

	recordsModified, err := s.recordRepo.LastModified(ctx)
	if err != nil {
		return nil, err
	}
	checkinsModified, err := s.checkinRepo.LastModified(ctx)
	if err != nil {
		return nil, err
	}
	if entry.ComputedAt.Before(recordsModified) || entry.ComputedAt.Before(checkinsModified) {
		return nil, nil
	}

	var insight models.DailyInsight
	if err := json.Unmarshal([]byte(entry.Payload), &insight); err != nil {
		return nil, nil
	}
	return &insight, nil
}

func (s *insightService) compose(ctx context.Context, date models.Day) (*models.DailyInsight, error) {
	latest, err := s.recordRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	recent, err := s.recordRepo.GetRange(ctx, date.AddDays(-6), date)
	if err != nil {
		return nil, err
	}
	previous, err := s.recordRepo.GetRange(ctx, date.AddDays(-13), date.AddDays(-7))
	if err != nil {
		return nil, err
	}
	baselineWindow, err := s.recordRepo.GetRange(ctx, date.AddDays(-(DefaultBaselineWindow-1)), date)
	if err != nil {
		return nil, err
	}

	baselines := make(map[models.MetricKey]float64)
	for _, key := range models.AllMetricKeys {
		if avg := weeklyAverage(baselineWindow, key); avg != nil {
			baselines[key] = *avg
		}
	}

	var daysSinceWorkout *int
	lastWorkout, err := s.recordRepo.LastWorkoutDate(ctx)
	if err != nil {
		return nil, err
	}
	if lastWorkout != nil {
		days := lastWorkout.DaysUntil(date)
		if days >= 0 {
			daysSinceWorkout = &days
		}
	}

	stepGoal, err := s.goalRepo.GetByMetricKey(ctx, models.MetricSteps)
	if err != nil {
		return nil, err
	}

	insight := ComposeDailyInsight(ComposerInput{
		Date:             date,
		Latest:           latest,
		Recent:           recent,
		Previous:         previous,
		Baselines:        baselines,
		StepGoal:         stepGoal,
		DaysSinceWorkout: daysSinceWorkout,
		Now:              s.now().UTC(),
	})
	return &insight, nil
}
