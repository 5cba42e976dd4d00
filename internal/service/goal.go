package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

type goalService struct {
	goalRepo   repository.GoalRepository
	recordRepo repository.DailyRecordRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo repository.GoalRepository, recordRepo repository.DailyRecordRepository) GoalService {
	return &goalService{
		goalRepo:   goalRepo,
		recordRepo: recordRepo,
	}
}

func (s *goalService) PutGoal(ctx context.Context, req *models.PutGoalRequest) (*models.Goal, error) {
	if !models.ValidMetricKey(req.MetricKey) {
		return nil, fmt.Errorf("unknown metric key %q", req.MetricKey)
	}

	return s.goalRepo.Put(ctx, &models.Goal{
		MetricKey: req.MetricKey,
		Target:    req.Target,
		Enabled:   req.Enabled,
		Inverted:  req.Inverted,
	})
}

func (s *goalService) PatchGoal(ctx context.Context, key models.MetricKey, req *models.PatchGoalRequest) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByMetricKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, fmt.Errorf("goal for %s: %w", key, ErrNotFound)
	}

	if req.Target.Set {
		if !req.Target.Valid || req.Target.Value <= 0 {
			return nil, fmt.Errorf("target must be a positive number")
		}
		goal.Target = req.Target.Value
	}
	if req.Enabled.Set {
		if !req.Enabled.Valid {
			return nil, fmt.Errorf("enabled cannot be null")
		}
		goal.Enabled = req.Enabled.Value
	}
	if req.Inverted.Set {
		if !req.Inverted.Valid {
			return nil, fmt.Errorf("inverted cannot be null")
		}
		goal.Inverted = req.Inverted.Value
	}

	return s.goalRepo.Update(ctx, goal)
}

func (s *goalService) ListGoals(ctx context.Context) ([]models.Goal, error) {
	return s.goalRepo.List(ctx)
}

func (s *goalService) DeleteGoal(ctx context.Context, key models.MetricKey) error {
	if !models.ValidMetricKey(key) {
		return fmt.Errorf("unknown metric key %q", key)
	}
	if err := s.goalRepo.Delete(ctx, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("goal for %s: %w", key, ErrNotFound)
		}
		return fmt.Errorf("failed to delete goal for %s: %w", key, err)
	}
	return nil
}

// GoalProgress evaluates every enabled goal against the record for a date.
// Goals with no observation that day report a nil percent rather than zero.
func (s *goalService) GoalProgress(ctx context.Context, date models.Day) ([]models.GoalProgress, error) {
	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	progress := make([]models.GoalProgress, 0, len(goals))
	for i := range goals {
		goal := &goals[i]
		if !goal.Enabled {
			continue
		}

		entry := models.GoalProgress{
			MetricKey: goal.MetricKey,
			Target:    goal.Target,
		}
		if record != nil {
			if v := record.Metric(goal.MetricKey); v != nil {
				entry.Observed = v
				pct := goalPercent(*v, goal.Target, goal.Inverted)
				entry.Percent = &pct
				if goal.Inverted {
					entry.Achieved = *v <= goal.Target
				} else {
					entry.Achieved = *v >= goal.Target
				}
			}
		}
		progress = append(progress, entry)
	}
	return progress, nil
}

// goalPercent reports progress toward a target, capped at 100. Inverted
// goals score by target/observed so staying under target reads as 100.
func goalPercent(observed, target float64, inverted bool) int {
	if target <= 0 {
		return 0
	}
	var pct float64
	if inverted {
		if observed <= 0 {
			return 100
		}
		pct = target / observed * 100
	} else {
		pct = observed / target * 100
	}
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(pct))
}
