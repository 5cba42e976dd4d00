package service

import (
	"math"
	"sort"

	"github.com/wakewell/backend/internal/models"
)

// Default window sizes for the aggregation functions.
const (
	DefaultTrendWindow    = 7
	DefaultRollingWindow  = 7
	DefaultBaselineWindow = 30

	// TrendDeadbandPercent is the +/- band inside which a window-over-window
	// change is reported as stable rather than a trend. Keeps day-to-day
	// noise from being flagged as movement.
	TrendDeadbandPercent = 5.0
)

// lowerIsBetterDefaults are the metrics where a smaller observed value is
// an improvement. Callers can extend the set per comparison.
var lowerIsBetterDefaults = map[models.MetricKey]bool{
	models.MetricRestingHR:     true,
	models.MetricStressMinutes: true,
	models.MetricSleepLatency:  true,
}

// SortRecordsByDate sorts records ascending by calendar date. Input series
// may arrive unsorted; every window operation that depends on order
// (streaks, lagged pairs, trailing windows) sorts first.
func SortRecordsByDate(records []models.DailyRecord) []models.DailyRecord {
	sorted := make([]models.DailyRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundPercent rounds to the nearest whole percent.
func roundPercent(v float64) int {
	return int(math.Round(v))
}

// RollingAverage computes, for each record, the mean of the trailing window
// of up to windowSize values of the metric ending at that record. Missing
// values are excluded from both the window membership and the divisor. An
// all-missing window yields a nil value for that index, never zero and
// never a carried-forward previous value. Output length equals input
// length; values are rounded to one decimal place.
func RollingAverage(records []models.DailyRecord, key models.MetricKey, windowSize int) []models.RollingPoint {
	if windowSize < 1 {
		windowSize = 1
	}

	sorted := SortRecordsByDate(records)
	points := make([]models.RollingPoint, len(sorted))

	for i := range sorted {
		start := i - windowSize + 1
		if start < 0 {
			start = 0
		}

		var sum float64
		count := 0
		for j := start; j <= i; j++ {
			if v := sorted[j].Metric(key); v != nil {
				sum += *v
				count++
			}
		}

		point := models.RollingPoint{Date: sorted[i].Date}
		if count > 0 {
			avg := round1(sum / float64(count))
			point.Value = &avg
		}
		points[i] = point
	}

	return points
}

// AggregateToWeekly groups a metric by ISO week start (Monday, local
// calendar time) and emits one bucket per week present in the series,
// sorted ascending by period start. A week whose records all lack the
// metric still produces a bucket with Count 0 and a nil mean.
func AggregateToWeekly(records []models.DailyRecord, key models.MetricKey) []models.PeriodBucket {
	return aggregateByPeriod(records, key, func(d models.Day) (string, models.Day) {
		start := d.WeekStart()
		return start.String(), start
	})
}

// AggregateToMonthly groups a metric by year-month, with the same empty
// bucket and ordering behavior as AggregateToWeekly.
func AggregateToMonthly(records []models.DailyRecord, key models.MetricKey) []models.PeriodBucket {
	return aggregateByPeriod(records, key, func(d models.Day) (string, models.Day) {
		start := models.NewDay(d.Time().Year(), d.Time().Month(), 1)
		return d.MonthKey(), start
	})
}

func aggregateByPeriod(records []models.DailyRecord, key models.MetricKey, periodOf func(models.Day) (string, models.Day)) []models.PeriodBucket {
	byKey := make(map[string]*models.PeriodBucket)

	for i := range records {
		periodKey, start := periodOf(records[i].Date)
		bucket, ok := byKey[periodKey]
		if !ok {
			bucket = &models.PeriodBucket{PeriodKey: periodKey, Start: start}
			byKey[periodKey] = bucket
		}
		if v := records[i].Metric(key); v != nil {
			bucket.Sum += *v
			bucket.Count++
		}
	}

	buckets := make([]models.PeriodBucket, 0, len(byKey))
	for _, bucket := range byKey {
		if bucket.Count > 0 {
			mean := round1(bucket.Sum / float64(bucket.Count))
			bucket.Mean = &mean
		}
		buckets = append(buckets, *bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return buckets
}

// ComparePeriods computes per-metric means over two periods and the change
// between them. Missing values are ignored within a period; an empty
// period yields a mean of 0 (not nil) because the result feeds directly
// into percent-change math. PercentChange is 0 when the previous mean is
// 0. Improved follows the polarity table: for lower-is-better metrics a
// negative delta is an improvement, otherwise a positive one; a delta of
// exactly 0 is never an improvement.
func ComparePeriods(current, previous []models.DailyRecord, keys []models.MetricKey, extraLowerIsBetter ...models.MetricKey) []models.MetricComparison {
	lowerIsBetter := make(map[models.MetricKey]bool, len(lowerIsBetterDefaults)+len(extraLowerIsBetter))
	for k := range lowerIsBetterDefaults {
		lowerIsBetter[k] = true
	}
	for _, k := range extraLowerIsBetter {
		lowerIsBetter[k] = true
	}

	comparisons := make([]models.MetricComparison, 0, len(keys))
	for _, key := range keys {
		cur := meanOrZero(current, key)
		prev := meanOrZero(previous, key)
		delta := cur - prev

		var percentChange float64
		if prev != 0 {
			percentChange = delta / prev * 100
		}

		improved := delta > 0
		if lowerIsBetter[key] {
			improved = delta < 0
		}

		comparisons = append(comparisons, models.MetricComparison{
			MetricKey:     key,
			Current:       round1(cur),
			Previous:      round1(prev),
			Delta:         round1(delta),
			PercentChange: round1(percentChange),
			Improved:      improved,
		})
	}

	return comparisons
}

func meanOrZero(records []models.DailyRecord, key models.MetricKey) float64 {
	var sum float64
	count := 0
	for i := range records {
		if v := records[i].Metric(key); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// CalculateTrend compares the mean of the most recent windowSize
// non-missing values of a metric against the mean of the windowSize
// non-missing values immediately preceding them. Fewer than 2*windowSize
// usable values yields direction "insufficient". Changes inside the
// +/-TrendDeadbandPercent band are reported as stable.
func CalculateTrend(records []models.DailyRecord, key models.MetricKey, windowSize int) models.TrendResult {
	if windowSize < 1 {
		windowSize = DefaultTrendWindow
	}

	result := models.TrendResult{MetricKey: key, WindowSize: windowSize}

	sorted := SortRecordsByDate(records)
	values := make([]float64, 0, len(sorted))
	for i := range sorted {
		if v := sorted[i].Metric(key); v != nil {
			values = append(values, *v)
		}
	}

	if len(values) < 2*windowSize {
		result.Direction = models.TrendInsufficient
		return result
	}

	recent := values[len(values)-windowSize:]
	prior := values[len(values)-2*windowSize : len(values)-windowSize]

	recentMean := mean(recent)
	priorMean := mean(prior)

	// Classify on the raw means; rounding is for the reported fields only,
	// so a change sitting at the deadband edge cannot flip direction.
	var change float64
	if priorMean != 0 {
		change = (recentMean - priorMean) / priorMean * 100
	}

	recentRounded := round1(recentMean)
	priorRounded := round1(priorMean)
	changeRounded := round1(change)
	result.CurrentMean = &recentRounded
	result.PreviousMean = &priorRounded
	result.ChangePercent = &changeRounded

	switch {
	case change > TrendDeadbandPercent:
		result.Direction = models.TrendImproving
	case change < -TrendDeadbandPercent:
		result.Direction = models.TrendDeclining
	default:
		result.Direction = models.TrendStable
	}

	return result
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
