package service

import (
	"math"
	"sort"

	"github.com/wakewell/backend/internal/models"
)

// ExtremumMode selects whether FindExtremum looks for the highest or
// lowest value.
type ExtremumMode int

const (
	ExtremumMax ExtremumMode = iota
	ExtremumMin
)

// DefaultStreakStepTarget is the step count that qualifies a day for the
// default activity streak predicate when no workout was logged.
const DefaultStreakStepTarget = 5000

// Milestone ladders. Fixed ascending thresholds; progress is measured
// against the first unmet entry.
var (
	StepMilestones    = []float64{100000, 500000, 1000000, 2500000, 5000000, 10000000}
	WorkoutMilestones = []float64{10, 25, 50, 100, 250, 500, 1000}
	StreakMilestones  = []float64{7, 14, 30, 60, 100, 180, 365}
)

// StreakPredicate decides whether a record counts toward a streak.
type StreakPredicate func(r *models.DailyRecord) bool

// DefaultStreakPredicate qualifies a day with at least 5000 steps or a
// logged workout.
func DefaultStreakPredicate(r *models.DailyRecord) bool {
	if r.Workout {
		return true
	}
	return r.Steps != nil && *r.Steps >= DefaultStreakStepTarget
}

// StepGoalPredicate qualifies a day whose step count meets target.
func StepGoalPredicate(target float64) StreakPredicate {
	return func(r *models.DailyRecord) bool {
		return r.Steps != nil && *r.Steps >= target
	}
}

// FindExtremum scans all records holding a non-nil value for the metric
// that satisfies the threshold and returns the best one with its date.
// With no qualifying record the result has nil Value and Date, meaning
// "no record yet" rather than zero.
func FindExtremum(records []models.DailyRecord, key models.MetricKey, mode ExtremumMode, threshold float64) models.ExtremumResult {
	result := models.ExtremumResult{MetricKey: key}

	for i := range records {
		v := records[i].Metric(key)
		if v == nil || *v < threshold {
			continue
		}

		if result.Value == nil {
			value := *v
			date := records[i].Date
			result.Value = &value
			result.Date = &date
			continue
		}

		better := *v > *result.Value
		if mode == ExtremumMin {
			better = *v < *result.Value
		}
		if better {
			value := *v
			date := records[i].Date
			result.Value = &value
			result.Date = &date
		}
	}

	return result
}

// CalculateLongestStreak walks the date-sorted series counting consecutive
// records, by array position rather than calendar gap, where the predicate
// holds. A day missing from the series does not break a streak unless the
// series itself is dense. The current streak is the still-open run at the
// end, found by scanning backward from the most recent record.
func CalculateLongestStreak(records []models.DailyRecord, predicate StreakPredicate) models.StreakSummary {
	if predicate == nil {
		predicate = DefaultStreakPredicate
	}

	sorted := SortRecordsByDate(records)
	summary := models.StreakSummary{}

	runLength := 0
	var runStart models.Day
	for i := range sorted {
		if !predicate(&sorted[i]) {
			runLength = 0
			continue
		}
		if runLength == 0 {
			runStart = sorted[i].Date
		}
		runLength++
		if runLength > summary.Longest {
			summary.Longest = runLength
			start := runStart
			summary.StartDate = &start
		}
	}

	for i := len(sorted) - 1; i >= 0; i-- {
		if !predicate(&sorted[i]) {
			break
		}
		summary.Current++
	}

	return summary
}

// CalculateCheckinStreak computes calendar-adjacency streaks over check-in
// dates: each successive day must be exactly one calendar day apart. The
// current streak counts back from today, or from yesterday when today has
// no entry (a grace period of exactly one day); any gap terminates it.
// This is a distinct notion from CalculateLongestStreak and the two must
// not be conflated.
func CalculateCheckinStreak(dates []models.Day, today models.Day) models.StreakSummary {
	summary := models.StreakSummary{}
	if len(dates) == 0 {
		return summary
	}

	// De-duplicate; a date can only count once.
	seen := make(map[string]models.Day, len(dates))
	for _, d := range dates {
		seen[d.String()] = d
	}
	unique := make([]models.Day, 0, len(seen))
	for _, d := range seen {
		unique = append(unique, d)
	}
	models.SortDaysAscending(unique)

	// Longest: chronological walk, run breaks on any gap != 1 day.
	runLength := 0
	var runStart models.Day
	for i, d := range unique {
		if i == 0 || unique[i-1].DaysUntil(d) != 1 {
			runLength = 1
			runStart = d
		} else {
			runLength++
		}
		if runLength > summary.Longest {
			summary.Longest = runLength
			start := runStart
			summary.StartDate = &start
		}
	}

	// Current: count back from today, falling back to yesterday.
	descending := make([]models.Day, len(unique))
	copy(descending, unique)
	sort.Slice(descending, func(i, j int) bool { return descending[j].Before(descending[i]) })

	anchor := today
	if !descending[0].Equal(today) {
		if !descending[0].Equal(today.AddDays(-1)) {
			return summary
		}
		anchor = today.AddDays(-1)
	}

	expected := anchor
	for _, d := range descending {
		if !d.Equal(expected) {
			break
		}
		summary.Current++
		expected = expected.AddDays(-1)
	}

	return summary
}

// CalculateConsistency reports the share of the trailing window's records
// whose metric met the threshold, as a whole percent of days with data.
func CalculateConsistency(records []models.DailyRecord, key models.MetricKey, threshold float64, windowDays int) models.ConsistencyResult {
	if windowDays < 1 {
		windowDays = DefaultBaselineWindow
	}

	sorted := SortRecordsByDate(records)
	if len(sorted) > windowDays {
		sorted = sorted[len(sorted)-windowDays:]
	}

	result := models.ConsistencyResult{
		MetricKey:  key,
		WindowDays: windowDays,
	}
	for i := range sorted {
		v := sorted[i].Metric(key)
		if v == nil {
			continue
		}
		result.DaysTotal++
		if *v >= threshold {
			result.DaysMet++
		}
	}
	if result.DaysTotal > 0 {
		result.Percent = roundPercent(float64(result.DaysMet) / float64(result.DaysTotal) * 100)
	}

	return result
}

// CalculateMilestones reports progress against the three fixed threshold
// ladders. For each ladder the achieved prefix, the next unmet threshold,
// and progress = min(100, round(value/next*100)) are computed; a fully
// cleared ladder has a nil next and progress 100.
func CalculateMilestones(totalSteps float64, totalWorkouts, currentStreak int) models.MilestoneReport {
	return models.MilestoneReport{
		TotalSteps:    totalSteps,
		TotalWorkouts: totalWorkouts,
		CurrentStreak: currentStreak,
		Steps:         ladderProgress(totalSteps, StepMilestones),
		Workouts:      ladderProgress(float64(totalWorkouts), WorkoutMilestones),
		StreakDays:    ladderProgress(float64(currentStreak), StreakMilestones),
	}
}

func ladderProgress(value float64, ladder []float64) models.MilestoneLadder {
	result := models.MilestoneLadder{Achieved: []float64{}}

	for _, threshold := range ladder {
		if value >= threshold {
			result.Achieved = append(result.Achieved, threshold)
			continue
		}
		next := threshold
		result.Next = &next
		break
	}

	if result.Next == nil {
		result.Progress = 100
		return result
	}

	progress := int(math.Round(value / *result.Next * 100))
	if progress > 100 {
		progress = 100
	}
	result.Progress = progress
	return result
}
