package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

// ErrFutureDate signals a check-in or reflection dated after today.
// Handlers map it to a 400 problem response.
var ErrFutureDate = errors.New("date is in the future")

type checkinService struct {
	checkinRepo    repository.CheckinRepository
	reflectionRepo repository.ReflectionRepository
	now            func() time.Time
}

// NewCheckinService creates a new check-in service
func NewCheckinService(checkinRepo repository.CheckinRepository, reflectionRepo repository.ReflectionRepository) CheckinService {
	return &checkinService{
		checkinRepo:    checkinRepo,
		reflectionRepo: reflectionRepo,
		now:            time.Now,
	}
}

func (s *checkinService) UpsertCheckin(ctx context.Context, req *models.UpsertCheckinRequest) (*models.LifestyleCheckin, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("missing date")
	}
	if req.Date.Time().After(s.now()) {
		return nil, fmt.Errorf("check-in date %s: %w", req.Date, ErrFutureDate)
	}

	return s.checkinRepo.Upsert(ctx, &models.LifestyleCheckin{
		Date:       req.Date,
		Caffeine:   req.Caffeine,
		Alcohol:    req.Alcohol,
		LastMeal:   req.LastMeal,
		ScreenTime: req.ScreenTime,
		Stress:     req.Stress,
	})
}

func (s *checkinService) GetCheckin(ctx context.Context, date models.Day) (*models.LifestyleCheckin, error) {
	checkin, err := s.checkinRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if checkin == nil {
		return nil, fmt.Errorf("check-in for %s: %w", date, ErrNotFound)
	}
	return checkin, nil
}

func (s *checkinService) CheckinStreak(ctx context.Context) (*models.StreakSummary, error) {
	checkins, err := s.checkinRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]models.Day, 0, len(checkins))
	for i := range checkins {
		dates = append(dates, checkins[i].Date)
	}

	streak := CalculateCheckinStreak(dates, models.DayOf(s.now()))
	return &streak, nil
}

func (s *checkinService) UpsertReflection(ctx context.Context, req *models.UpsertReflectionRequest) (*models.MorningReflection, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("missing date")
	}
	if req.Date.Time().After(s.now()) {
		return nil, fmt.Errorf("reflection date %s: %w", req.Date, ErrFutureDate)
	}

	return s.reflectionRepo.Upsert(ctx, &models.MorningReflection{
		Date:      req.Date,
		Energy:    req.Energy,
		SleepFelt: req.SleepFelt,
	})
}

func (s *checkinService) GetReflection(ctx context.Context, date models.Day) (*models.MorningReflection, error) {
	reflection, err := s.reflectionRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if reflection == nil {
		return nil, fmt.Errorf("reflection for %s: %w", date, ErrNotFound)
	}
	return reflection, nil
}
