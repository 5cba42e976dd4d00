package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wakewell/backend/internal/models"
)

func TestFindExtremum_EmptyInputYieldsNilValueAndDate(t *testing.T) {
	result := FindExtremum(nil, models.MetricSteps, ExtremumMax, 0)

	assert.Nil(t, result.Value)
	assert.Nil(t, result.Date)
}

func TestFindExtremum_MaxSteps(t *testing.T) {
	records := recordsWithSteps([]*float64{f(8000), f(15000), nil, f(12000)})

	result := FindExtremum(records, models.MetricSteps, ExtremumMax, 0)

	require.NotNil(t, result.Value)
	assert.Equal(t, 15000.0, *result.Value)
	require.NotNil(t, result.Date)
	assert.True(t, result.Date.Equal(day(1)))
}

func TestFindExtremum_MinRestingHRWithThreshold(t *testing.T) {
	records := []models.DailyRecord{
		{Date: day(0), RestingHR: f(55)},
		{Date: day(1), RestingHR: f(0)}, // sensor glitch, below threshold
		{Date: day(2), RestingHR: f(48)},
	}

	result := FindExtremum(records, models.MetricRestingHR, ExtremumMin, 30)

	require.NotNil(t, result.Value)
	assert.Equal(t, 48.0, *result.Value)
	assert.True(t, result.Date.Equal(day(2)))
}

func TestCalculateLongestStreak_AllQualify(t *testing.T) {
	records := recordsWithSteps([]*float64{f(6000), f(7000), f(8000), f(9000)})

	streak := CalculateLongestStreak(records, nil)

	assert.Equal(t, 4, streak.Longest)
	assert.Equal(t, 4, streak.Current)
	require.NotNil(t, streak.StartDate)
	assert.True(t, streak.StartDate.Equal(day(0)))
}

func TestCalculateLongestStreak_NoneQualify(t *testing.T) {
	records := recordsWithSteps([]*float64{f(100), f(200), f(300)})

	streak := CalculateLongestStreak(records, nil)

	assert.Equal(t, 0, streak.Longest)
	assert.Equal(t, 0, streak.Current)
	assert.Nil(t, streak.StartDate)
}

func TestCalculateLongestStreak_WorkoutQualifiesWithoutSteps(t *testing.T) {
	records := []models.DailyRecord{
		{Date: day(0), Steps: f(1000), Workout: true},
		{Date: day(1), Steps: f(6000)},
	}

	streak := CalculateLongestStreak(records, nil)

	assert.Equal(t, 2, streak.Longest)
}

func TestCalculateLongestStreak_PositionAdjacencyIgnoresDateGaps(t *testing.T) {
	// A missing day in the series does not break a threshold streak.
	records := []models.DailyRecord{
		{Date: day(0), Steps: f(6000)},
		{Date: day(1), Steps: f(6000)},
		{Date: day(5), Steps: f(6000)}, // gap in tracked dates
	}

	streak := CalculateLongestStreak(records, nil)

	assert.Equal(t, 3, streak.Longest)
	assert.Equal(t, 3, streak.Current)
}

func TestCalculateLongestStreak_WeekScenario(t *testing.T) {
	// 7 days of steps, all above 10000 except day 4 at 9000.
	steps := []float64{12000, 11000, 13000, 9000, 10500, 12500, 14000}
	records := make([]models.DailyRecord, len(steps))
	for i, s := range steps {
		v := s
		records[i] = models.DailyRecord{Date: day(i), Steps: &v}
	}

	streak := CalculateLongestStreak(records, StepGoalPredicate(10000))

	assert.Equal(t, 3, streak.Current, "still-open run from the end")
	assert.Equal(t, 3, streak.Longest, "days 1-3 run")
	require.NotNil(t, streak.StartDate)
	assert.True(t, streak.StartDate.Equal(day(0)))

	consistency := CalculateConsistency(records, models.MetricSteps, 10000, 7)
	assert.Equal(t, 86, consistency.Percent)
	assert.Equal(t, 6, consistency.DaysMet)
}

func TestCalculateCheckinStreak_CurrentCountsBackFromToday(t *testing.T) {
	today := day(10)
	dates := []models.Day{day(8), day(9), day(10)}

	streak := CalculateCheckinStreak(dates, today)

	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
}

func TestCalculateCheckinStreak_OneDayGracePeriod(t *testing.T) {
	// No entry today; counting starts from yesterday.
	today := day(10)
	dates := []models.Day{day(7), day(8), day(9)}

	streak := CalculateCheckinStreak(dates, today)

	assert.Equal(t, 3, streak.Current)
}

func TestCalculateCheckinStreak_TwoDayGapEndsCurrent(t *testing.T) {
	today := day(10)
	dates := []models.Day{day(7), day(8)}

	streak := CalculateCheckinStreak(dates, today)

	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 2, streak.Longest)
}

func TestCalculateCheckinStreak_CalendarGapBreaksRun(t *testing.T) {
	// Unlike threshold streaks, a missing calendar day breaks the run.
	today := day(6)
	dates := []models.Day{day(0), day(1), day(2), day(4), day(5), day(6)}

	streak := CalculateCheckinStreak(dates, today)

	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
	require.NotNil(t, streak.StartDate)
	assert.True(t, streak.StartDate.Equal(day(0)), "first 3-day run keeps the record")
}

func TestCalculateCheckinStreak_UnbrokenAcrossDSTSwitch(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	restore := time.Local
	time.Local = loc
	defer func() { time.Local = restore }()

	// Five consecutive days around the 23-hour spring-forward day
	// (2026-03-08) still form one unbroken run.
	today := models.NewDay(2026, time.March, 10)
	dates := []models.Day{
		models.NewDay(2026, time.March, 6),
		models.NewDay(2026, time.March, 7),
		models.NewDay(2026, time.March, 8),
		models.NewDay(2026, time.March, 9),
		models.NewDay(2026, time.March, 10),
	}

	streak := CalculateCheckinStreak(dates, today)

	assert.Equal(t, 5, streak.Current)
	assert.Equal(t, 5, streak.Longest)
}

func TestCalculateCheckinStreak_DuplicateDatesCountOnce(t *testing.T) {
	today := day(1)
	dates := []models.Day{day(0), day(0), day(1)}

	streak := CalculateCheckinStreak(dates, today)

	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 2, streak.Longest)
}

func TestCalculateMilestones_ProgressAgainstNextThreshold(t *testing.T) {
	report := CalculateMilestones(750000, 30, 10)

	assert.Equal(t, []float64{100000, 500000}, report.Steps.Achieved)
	require.NotNil(t, report.Steps.Next)
	assert.Equal(t, 1000000.0, *report.Steps.Next)
	assert.Equal(t, 75, report.Steps.Progress)

	assert.Equal(t, []float64{10, 25}, report.Workouts.Achieved)
	require.NotNil(t, report.Workouts.Next)
	assert.Equal(t, 50.0, *report.Workouts.Next)
	assert.Equal(t, 60, report.Workouts.Progress)

	assert.Equal(t, []float64{7}, report.StreakDays.Achieved)
	require.NotNil(t, report.StreakDays.Next)
	assert.Equal(t, 14.0, *report.StreakDays.Next)
}

func TestCalculateMilestones_AllThresholdsCleared(t *testing.T) {
	report := CalculateMilestones(20000000, 2000, 400)

	assert.Nil(t, report.Steps.Next)
	assert.Equal(t, 100, report.Steps.Progress)
	assert.Nil(t, report.Workouts.Next)
	assert.Equal(t, 100, report.Workouts.Progress)
	assert.Nil(t, report.StreakDays.Next)
	assert.Equal(t, 100, report.StreakDays.Progress)
}

func TestCalculateMilestones_ZeroValues(t *testing.T) {
	report := CalculateMilestones(0, 0, 0)

	assert.Empty(t, report.Steps.Achieved)
	require.NotNil(t, report.Steps.Next)
	assert.Equal(t, 100000.0, *report.Steps.Next)
	assert.Equal(t, 0, report.Steps.Progress)
}

func TestCalculateConsistency_IgnoresDaysWithoutData(t *testing.T) {
	records := recordsWithSteps([]*float64{f(12000), nil, f(8000), f(11000)})

	result := CalculateConsistency(records, models.MetricSteps, 10000, 7)

	assert.Equal(t, 3, result.DaysTotal)
	assert.Equal(t, 2, result.DaysMet)
	assert.Equal(t, 67, result.Percent)
}
