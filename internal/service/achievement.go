package service

import (
	"context"
	"fmt"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

// MinMeaningfulSteps filters trivially-low step counts (a day the watch
// barely got worn) out of the personal-record scan.
const MinMeaningfulSteps = 100

type achievementService struct {
	recordRepo repository.DailyRecordRepository
	goalRepo   repository.GoalRepository
}

// NewAchievementService creates a new achievement service
func NewAchievementService(recordRepo repository.DailyRecordRepository, goalRepo repository.GoalRepository) AchievementService {
	return &achievementService{
		recordRepo: recordRepo,
		goalRepo:   goalRepo,
	}
}

func (s *achievementService) PersonalRecords(ctx context.Context) (*models.PersonalRecords, error) {
	records, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.PersonalRecords{
		MostSteps:       FindExtremum(records, models.MetricSteps, ExtremumMax, MinMeaningfulSteps),
		BestSleepScore:  FindExtremum(records, models.MetricSleepScore, ExtremumMax, 0),
		HighestHRV:      FindExtremum(records, models.MetricHRV, ExtremumMax, 0),
		LowestRestingHR: FindExtremum(records, models.MetricRestingHR, ExtremumMin, 0),
		MostDeepSleep:   FindExtremum(records, models.MetricDeepSleep, ExtremumMax, 0),
	}, nil
}

func (s *achievementService) ActivityStreak(ctx context.Context) (*models.StreakSummary, error) {
	records, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	predicate, err := s.streakPredicate(ctx)
	if err != nil {
		return nil, err
	}

	streak := CalculateLongestStreak(records, predicate)
	return &streak, nil
}

func (s *achievementService) Milestones(ctx context.Context) (*models.MilestoneReport, error) {
	records, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var totalSteps float64
	totalWorkouts := 0
	for i := range records {
		if v := records[i].Steps; v != nil {
			totalSteps += *v
		}
		if records[i].Workout {
			totalWorkouts++
		}
	}

	predicate, err := s.streakPredicate(ctx)
	if err != nil {
		return nil, err
	}
	streak := CalculateLongestStreak(records, predicate)

	report := CalculateMilestones(totalSteps, totalWorkouts, streak.Current)
	return &report, nil
}

func (s *achievementService) Consistency(ctx context.Context, key models.MetricKey, windowDays int) (*models.ConsistencyResult, error) {
	if !models.ValidMetricKey(key) {
		return nil, fmt.Errorf("unknown metric key %q", key)
	}
	if windowDays <= 0 {
		windowDays = DefaultBaselineWindow
	}

	goal, err := s.goalRepo.GetByMetricKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if goal == nil || !goal.Enabled {
		return nil, fmt.Errorf("no enabled goal for %s: %w", key, ErrNotFound)
	}

	records, err := s.recordRepo.GetRecent(ctx, windowDays)
	if err != nil {
		return nil, err
	}

	result := CalculateConsistency(records, key, goal.Target, windowDays)
	return &result, nil
}

// streakPredicate uses the configured step goal when one is enabled and
// falls back to the built-in default otherwise.
func (s *achievementService) streakPredicate(ctx context.Context) (StreakPredicate, error) {
	goal, err := s.goalRepo.GetByMetricKey(ctx, models.MetricSteps)
	if err != nil {
		return nil, err
	}
	if goal != nil && goal.Enabled && goal.Target > 0 {
		target := goal.Target
		return func(r *models.DailyRecord) bool {
			return r.Workout || (r.Steps != nil && *r.Steps >= target)
		}, nil
	}
	return DefaultStreakPredicate, nil
}
