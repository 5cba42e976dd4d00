package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wakewell/backend/internal/models"
)

// f is a test helper for optional metric values.
func f(v float64) *float64 {
	return &v
}

// day builds a Day offset from a fixed base date.
func day(offset int) models.Day {
	return models.NewDay(2026, time.March, 2).AddDays(offset)
}

// recordsWithSteps builds one record per day with the given step values;
// a nil entry produces a record with no steps observation.
func recordsWithSteps(values []*float64) []models.DailyRecord {
	records := make([]models.DailyRecord, len(values))
	for i, v := range values {
		records[i] = models.DailyRecord{Date: day(i), Steps: v}
	}
	return records
}

func TestRollingAverage_OutputLengthMatchesInput(t *testing.T) {
	records := recordsWithSteps([]*float64{f(1000), nil, f(3000), f(5000), nil})

	points := RollingAverage(records, models.MetricSteps, 3)

	assert.Len(t, points, len(records))
}

func TestRollingAverage_ConstantSeriesYieldsConstant(t *testing.T) {
	records := recordsWithSteps([]*float64{f(8000), f(8000), f(8000), f(8000), f(8000)})

	points := RollingAverage(records, models.MetricSteps, 3)

	for i, p := range points {
		require.NotNil(t, p.Value, "index %d", i)
		assert.Equal(t, 8000.0, *p.Value, "index %d", i)
	}
}

func TestRollingAverage_AllMissingWindowYieldsNil(t *testing.T) {
	records := recordsWithSteps([]*float64{nil, nil, nil, f(4000)})

	points := RollingAverage(records, models.MetricSteps, 2)

	assert.Nil(t, points[0].Value)
	assert.Nil(t, points[1].Value)
	assert.Nil(t, points[2].Value)
	require.NotNil(t, points[3].Value)
	assert.Equal(t, 4000.0, *points[3].Value)
}

func TestRollingAverage_ExcludesMissingFromDivisor(t *testing.T) {
	// Window of [1000, nil, 3000]: mean over present values is 2000,
	// not 1333.3.
	records := recordsWithSteps([]*float64{f(1000), nil, f(3000)})

	points := RollingAverage(records, models.MetricSteps, 3)

	require.NotNil(t, points[2].Value)
	assert.Equal(t, 2000.0, *points[2].Value)
}

func TestRollingAverage_HandlesUnsortedInput(t *testing.T) {
	records := []models.DailyRecord{
		{Date: day(2), Steps: f(3000)},
		{Date: day(0), Steps: f(1000)},
		{Date: day(1), Steps: f(2000)},
	}

	points := RollingAverage(records, models.MetricSteps, 2)

	assert.True(t, points[0].Date.Equal(day(0)))
	require.NotNil(t, points[2].Value)
	assert.Equal(t, 2500.0, *points[2].Value)
}

func TestAggregateToWeekly_BucketCountsSumToNonMissingValues(t *testing.T) {
	// 10 days spanning two ISO weeks, 2 missing observations.
	values := []*float64{f(1), f(2), nil, f(4), f(5), f(6), f(7), nil, f(9), f(10)}
	records := recordsWithSteps(values)

	buckets := AggregateToWeekly(records, models.MetricSteps)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 8, total)
}

func TestAggregateToWeekly_WeekStartsMonday(t *testing.T) {
	// 2026-03-02 is a Monday; 2026-03-08 is the following Sunday.
	records := []models.DailyRecord{
		{Date: models.NewDay(2026, time.March, 8), Steps: f(100)},
		{Date: models.NewDay(2026, time.March, 9), Steps: f(200)},
	}

	buckets := AggregateToWeekly(records, models.MetricSteps)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-03-02", buckets[0].PeriodKey)
	assert.Equal(t, "2026-03-09", buckets[1].PeriodKey)
}

func TestAggregateToWeekly_EmptyBucketStillEmitted(t *testing.T) {
	records := []models.DailyRecord{
		{Date: day(0), Steps: f(500)},
		{Date: day(7)}, // next week, no steps observation
	}

	buckets := AggregateToWeekly(records, models.MetricSteps)

	require.Len(t, buckets, 2)
	assert.Equal(t, 0, buckets[1].Count)
	assert.Nil(t, buckets[1].Mean)
}

func TestAggregateToWeekly_SortedAscending(t *testing.T) {
	records := []models.DailyRecord{
		{Date: day(21), Steps: f(3)},
		{Date: day(0), Steps: f(1)},
		{Date: day(7), Steps: f(2)},
	}

	buckets := AggregateToWeekly(records, models.MetricSteps)

	require.Len(t, buckets, 3)
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i-1].Start.Before(buckets[i].Start))
	}
}

func TestAggregateToMonthly_GroupsByYearMonth(t *testing.T) {
	records := []models.DailyRecord{
		{Date: models.NewDay(2026, time.January, 15), Steps: f(100)},
		{Date: models.NewDay(2026, time.January, 20), Steps: f(300)},
		{Date: models.NewDay(2026, time.February, 1), Steps: f(500)},
	}

	buckets := AggregateToMonthly(records, models.MetricSteps)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-01", buckets[0].PeriodKey)
	require.NotNil(t, buckets[0].Mean)
	assert.Equal(t, 200.0, *buckets[0].Mean)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, "2026-02", buckets[1].PeriodKey)
}

func TestComparePeriods_ZeroPreviousMeansZeroPercentChange(t *testing.T) {
	current := recordsWithSteps([]*float64{f(5000)})
	previous := []models.DailyRecord{} // empty period: mean 0, not nil

	comparisons := ComparePeriods(current, previous, []models.MetricKey{models.MetricSteps})

	require.Len(t, comparisons, 1)
	assert.Equal(t, 0.0, comparisons[0].Previous)
	assert.Equal(t, 0.0, comparisons[0].PercentChange)
	assert.Equal(t, 5000.0, comparisons[0].Delta)
}

func TestComparePeriods_PolarityTable(t *testing.T) {
	tests := []struct {
		name         string
		key          models.MetricKey
		current      float64
		previous     float64
		wantImproved bool
	}{
		{"higher steps improve", models.MetricSteps, 9000, 8000, true},
		{"lower steps regress", models.MetricSteps, 7000, 8000, false},
		{"lower resting HR improves", models.MetricRestingHR, 52, 55, true},
		{"higher resting HR regresses", models.MetricRestingHR, 58, 55, false},
		{"lower stress minutes improve", models.MetricStressMinutes, 200, 300, true},
		{"lower sleep latency improves", models.MetricSleepLatency, 10, 20, true},
		{"zero delta never improves (higher-better)", models.MetricSteps, 8000, 8000, false},
		{"zero delta never improves (lower-better)", models.MetricRestingHR, 55, 55, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := []models.DailyRecord{{Date: day(7)}}
			previous := []models.DailyRecord{{Date: day(0)}}
			cur, prev := tt.current, tt.previous
			setMetric(&current[0], tt.key, &cur)
			setMetric(&previous[0], tt.key, &prev)

			comparisons := ComparePeriods(current, previous, []models.MetricKey{tt.key})

			require.Len(t, comparisons, 1)
			assert.Equal(t, tt.wantImproved, comparisons[0].Improved)
		})
	}
}

func TestComparePeriods_CallerExtendsLowerIsBetter(t *testing.T) {
	current := []models.DailyRecord{{Date: day(7), DeepSleep: f(40)}}
	previous := []models.DailyRecord{{Date: day(0), DeepSleep: f(60)}}

	comparisons := ComparePeriods(current, previous,
		[]models.MetricKey{models.MetricDeepSleep}, models.MetricDeepSleep)

	require.Len(t, comparisons, 1)
	assert.True(t, comparisons[0].Improved)
}

func TestCalculateTrend_InsufficientData(t *testing.T) {
	// 13 values < 2*7 required.
	values := make([]*float64, 13)
	for i := range values {
		values[i] = f(float64(1000 + i))
	}

	trend := CalculateTrend(recordsWithSteps(values), models.MetricSteps, 7)

	assert.Equal(t, models.TrendInsufficient, trend.Direction)
	assert.Nil(t, trend.CurrentMean)
}

func TestCalculateTrend_Directions(t *testing.T) {
	tests := []struct {
		name   string
		prior  float64
		recent float64
		want   models.TrendDirection
	}{
		{"improving above deadband", 1000, 1100, models.TrendImproving},
		{"declining below deadband", 1000, 900, models.TrendDeclining},
		{"stable inside deadband", 1000, 1030, models.TrendStable},
		{"stable at exactly +5%", 1000, 1050, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]*float64, 14)
			for i := 0; i < 7; i++ {
				values[i] = f(tt.prior)
			}
			for i := 7; i < 14; i++ {
				values[i] = f(tt.recent)
			}

			trend := CalculateTrend(recordsWithSteps(values), models.MetricSteps, 7)

			assert.Equal(t, tt.want, trend.Direction)
		})
	}
}

func TestCalculateTrend_ClassifiesOnUnroundedMeans(t *testing.T) {
	// Raw change is 5.04% (improving); the means round to 105.0 vs 100.0,
	// which would read as exactly 5% and fall inside the deadband.
	values := make([]*float64, 14)
	for i := 0; i < 7; i++ {
		values[i] = f(100)
	}
	for i := 7; i < 14; i++ {
		values[i] = f(105.04)
	}

	trend := CalculateTrend(recordsWithSteps(values), models.MetricSteps, 7)

	assert.Equal(t, models.TrendImproving, trend.Direction)
	require.NotNil(t, trend.CurrentMean)
	assert.Equal(t, 105.0, *trend.CurrentMean)
	require.NotNil(t, trend.ChangePercent)
	assert.Equal(t, 5.0, *trend.ChangePercent)
}

func TestCalculateTrend_SkipsMissingValues(t *testing.T) {
	// 14 present values interleaved with gaps still qualifies.
	values := make([]*float64, 0, 21)
	for i := 0; i < 7; i++ {
		values = append(values, f(1000), nil)
	}
	for i := 0; i < 7; i++ {
		values = append(values, f(1200))
	}

	trend := CalculateTrend(recordsWithSteps(values), models.MetricSteps, 7)

	assert.Equal(t, models.TrendImproving, trend.Direction)
	require.NotNil(t, trend.CurrentMean)
	assert.Equal(t, 1200.0, *trend.CurrentMean)
}

func TestAggregatorIdempotence(t *testing.T) {
	values := []*float64{f(1200), nil, f(3400), f(800), f(9100), nil, f(4400)}
	records := recordsWithSteps(values)

	first := RollingAverage(records, models.MetricSteps, 3)
	second := RollingAverage(records, models.MetricSteps, 3)
	assert.Equal(t, first, second)

	firstBuckets := AggregateToWeekly(records, models.MetricSteps)
	secondBuckets := AggregateToWeekly(records, models.MetricSteps)
	assert.Equal(t, firstBuckets, secondBuckets)
}

// setMetric assigns a metric value on a record for table tests.
func setMetric(r *models.DailyRecord, key models.MetricKey, v *float64) {
	switch key {
	case models.MetricSteps:
		r.Steps = v
	case models.MetricSleepScore:
		r.SleepScore = v
	case models.MetricReadinessScore:
		r.ReadinessScore = v
	case models.MetricHRV:
		r.HRV = v
	case models.MetricDeepSleep:
		r.DeepSleep = v
	case models.MetricRemSleep:
		r.RemSleep = v
	case models.MetricSleepEfficiency:
		r.SleepEfficiency = v
	case models.MetricSleepDuration:
		r.SleepDuration = v
	case models.MetricRestingHR:
		r.RestingHR = v
	case models.MetricStressMinutes:
		r.StressMinutes = v
	case models.MetricRecoveryMinutes:
		r.RecoveryMinutes = v
	case models.MetricSleepLatency:
		r.SleepLatency = v
	}
}
