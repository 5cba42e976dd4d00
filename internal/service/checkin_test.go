package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wakewell/backend/internal/models"
)

func newCheckinServiceForTest(checkins *mockCheckinRepository, reflections *mockReflectionRepository, now time.Time) *checkinService {
	return &checkinService{
		checkinRepo:    checkins,
		reflectionRepo: reflections,
		now:            func() time.Time { return now },
	}
}

func TestCheckinService_RejectsFutureDate(t *testing.T) {
	svc := newCheckinServiceForTest(newMockCheckinRepository(), newMockReflectionRepository(), day(5).Time())

	_, err := svc.UpsertCheckin(context.Background(), &models.UpsertCheckinRequest{
		Date:       day(6),
		Caffeine:   models.CaffeineNone,
		Alcohol:    models.AlcoholNone,
		LastMeal:   models.MealNormal,
		ScreenTime: models.ScreenLow,
	})
	assert.ErrorIs(t, err, ErrFutureDate)

	_, err = svc.UpsertReflection(context.Background(), &models.UpsertReflectionRequest{
		Date:      day(6),
		SleepFelt: models.SleepFeltOkay,
	})
	assert.ErrorIs(t, err, ErrFutureDate)
}

func TestCheckinService_UpsertReplacesSameDay(t *testing.T) {
	checkins := newMockCheckinRepository()
	svc := newCheckinServiceForTest(checkins, newMockReflectionRepository(), day(10).Time())

	_, err := svc.UpsertCheckin(context.Background(), &models.UpsertCheckinRequest{
		Date:       day(3),
		Caffeine:   models.CaffeineMorning,
		Alcohol:    models.AlcoholNone,
		LastMeal:   models.MealNormal,
		ScreenTime: models.ScreenLow,
	})
	require.NoError(t, err)

	updated, err := svc.UpsertCheckin(context.Background(), &models.UpsertCheckinRequest{
		Date:       day(3),
		Caffeine:   models.CaffeineEvening,
		Alcohol:    models.AlcoholOne,
		LastMeal:   models.MealLate,
		ScreenTime: models.ScreenUntilBed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CaffeineEvening, updated.Caffeine)

	stored, err := svc.GetCheckin(context.Background(), day(3))
	require.NoError(t, err)
	assert.Equal(t, models.CaffeineEvening, stored.Caffeine)
}

func TestCheckinService_StreakAnchorsOnToday(t *testing.T) {
	checkins := newMockCheckinRepository()
	for i := 0; i < 4; i++ {
		checkins.Upsert(context.Background(), &models.LifestyleCheckin{
			Date:     day(i),
			Caffeine: models.CaffeineNone,
		})
	}
	// Checked in through day(3); today is day(4): yesterday's check-in
	// still counts via the one-day grace.
	svc := newCheckinServiceForTest(checkins, newMockReflectionRepository(), day(4).Time().Add(10*time.Hour))

	streak, err := svc.CheckinStreak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, streak.Current)
	assert.Equal(t, 4, streak.Longest)
}

func TestCheckinService_GetReflectionNotFound(t *testing.T) {
	svc := newCheckinServiceForTest(newMockCheckinRepository(), newMockReflectionRepository(), day(5).Time())

	_, err := svc.GetReflection(context.Background(), day(0))
	assert.ErrorIs(t, err, ErrNotFound)
}
