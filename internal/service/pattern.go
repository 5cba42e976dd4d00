package service

import (
	"fmt"
	"math"

	"github.com/wakewell/backend/internal/models"
)

// Pattern-analysis thresholds. These are empirically chosen constants
// carried over from the product's tuning; they are deliberately exposed in
// AnalysisConfig rather than replaced by a formal statistical test, and no
// multiple-comparison correction is applied across the factor x metric
// grid.
const (
	// MinLaggedPairs is the minimum number of (day N, day N+1) pairs
	// before any pattern can be reported.
	MinLaggedPairs = 10

	// MinPartitionSize is the minimum number of pairs on each side of the
	// factor cutoff.
	MinPartitionSize = 3

	// LifestyleImpactThreshold is the minimum absolute impact percent for
	// a lifestyle-factor pattern to be significant.
	LifestyleImpactThreshold = 10

	// PhysiologyImpactThreshold is the minimum absolute impact percent
	// for a generic next-day physiology pattern.
	PhysiologyImpactThreshold = 3

	// ConfidenceCap keeps pattern confidence strictly below certainty.
	ConfidenceCap = 0.95

	// Stress-balance bucket cutoffs on the recovery/stress minute ratio.
	BalancedRatioMin   = 0.8
	HighStressRatioMax = 0.5

	// StressBalanceDeltaPoints is the minimum percentage-point difference
	// in stressful-day share between the two buckets.
	StressBalanceDeltaPoints = 15

	// StressfulRatingCutoff is the check-in stress rating (1-5) at or
	// above which a day counts as subjectively stressful.
	StressfulRatingCutoff = 4
)

// AnalysisConfig carries the tunable pattern thresholds. Zero fields fall
// back to the package defaults via Normalize.
type AnalysisConfig struct {
	MinPairs                 int     `mapstructure:"min_pairs"`
	MinPartition             int     `mapstructure:"min_partition"`
	LifestyleImpactPercent   int     `mapstructure:"lifestyle_impact_percent"`
	PhysiologyImpactPercent  int     `mapstructure:"physiology_impact_percent"`
	ConfidenceCap            float64 `mapstructure:"confidence_cap"`
	StressBalanceDeltaPoints int     `mapstructure:"stress_balance_delta_points"`
}

// Normalize fills unset fields with the package default constants.
func (c AnalysisConfig) Normalize() AnalysisConfig {
	if c.MinPairs == 0 {
		c.MinPairs = MinLaggedPairs
	}
	if c.MinPartition == 0 {
		c.MinPartition = MinPartitionSize
	}
	if c.LifestyleImpactPercent == 0 {
		c.LifestyleImpactPercent = LifestyleImpactThreshold
	}
	if c.PhysiologyImpactPercent == 0 {
		c.PhysiologyImpactPercent = PhysiologyImpactThreshold
	}
	if c.ConfidenceCap == 0 {
		c.ConfidenceCap = ConfidenceCap
	}
	if c.StressBalanceDeltaPoints == 0 {
		c.StressBalanceDeltaPoints = StressBalanceDeltaPoints
	}
	return c
}

// LaggedPair is one (day N factor, day N+offset outcome) tuple.
type LaggedPair struct {
	Factor  float64
	Outcome float64
	Date    models.Day
}

// FactorExtractor pulls the day-N input value for a date, nil when there
// is no usable observation.
type FactorExtractor func(date models.Day) *float64

// BuildLaggedPairs walks the sorted record dates and, for each day with a
// factor value, looks up the record dated exactly offsetDays later for the
// outcome metric. Pairing is by calendar date, never by array adjacency:
// a gap in tracked dates produces no pair across it.
func BuildLaggedPairs(records []models.DailyRecord, factor FactorExtractor, outcome models.MetricKey, offsetDays int) []LaggedPair {
	if offsetDays < 1 {
		offsetDays = 1
	}

	byDate := make(map[string]*models.DailyRecord, len(records))
	for i := range records {
		byDate[records[i].Date.String()] = &records[i]
	}

	sorted := SortRecordsByDate(records)
	pairs := make([]LaggedPair, 0, len(sorted))
	for i := range sorted {
		in := factor(sorted[i].Date)
		if in == nil {
			continue
		}
		next, ok := byDate[sorted[i].Date.AddDays(offsetDays).String()]
		if !ok {
			continue
		}
		out := next.Metric(outcome)
		if out == nil {
			continue
		}
		pairs = append(pairs, LaggedPair{Factor: *in, Outcome: *out, Date: sorted[i].Date})
	}

	return pairs
}

// MetricFactor adapts a DailyRecord metric into a FactorExtractor.
func MetricFactor(records []models.DailyRecord, key models.MetricKey) FactorExtractor {
	byDate := make(map[string]*models.DailyRecord, len(records))
	for i := range records {
		byDate[records[i].Date.String()] = &records[i]
	}
	return func(date models.Day) *float64 {
		r, ok := byDate[date.String()]
		if !ok {
			return nil
		}
		return r.Metric(key)
	}
}

// analyzePairs partitions pairs by the cutoff into "bad" (at/above) and
// "good" (below) groups and compares mean outcomes. Returns nil whenever
// the evidence is too thin: fewer than minPairs overall, fewer than
// minPartition on either side, a zero good-group mean, or an impact under
// minImpact. Impact = round((meanBad - meanGood) / meanGood * 100).
func analyzePairs(pairs []LaggedPair, cutoff float64, minPairs, minPartition, minImpact int) (impact int, bad, good int, ok bool) {
	if len(pairs) < minPairs {
		return 0, 0, 0, false
	}

	var badSum, goodSum float64
	for _, p := range pairs {
		if p.Factor >= cutoff {
			badSum += p.Outcome
			bad++
		} else {
			goodSum += p.Outcome
			good++
		}
	}
	if bad < minPartition || good < minPartition {
		return 0, bad, good, false
	}

	meanBad := badSum / float64(bad)
	meanGood := goodSum / float64(good)
	if meanGood == 0 {
		return 0, bad, good, false
	}

	impact = roundPercent((meanBad - meanGood) / meanGood * 100)
	if impact > -minImpact && impact < minImpact {
		return impact, bad, good, false
	}
	return impact, bad, good, true
}

// patternConfidence blends evidence volume and effect size, capped below
// certainty: min(cap, 0.5 + n/50 + |impact|/100).
func patternConfidence(sampleSize, impact int, cap float64) float64 {
	c := 0.5 + float64(sampleSize)/50 + math.Abs(float64(impact))/100
	if c > cap {
		c = cap
	}
	return c
}

// LifestyleFactorKey names a check-in factor used in pattern analysis.
type LifestyleFactorKey string

const (
	FactorCaffeine   LifestyleFactorKey = "caffeine"
	FactorAlcohol    LifestyleFactorKey = "alcohol"
	FactorLateMeal   LifestyleFactorKey = "late_meal"
	FactorScreenTime LifestyleFactorKey = "screen_time"
	FactorStress     LifestyleFactorKey = "stress"
)

// Ordinal severity scales for the categorical check-in factors. The
// boolean "isBad" cutoff is applied on this scale.
var (
	caffeineSeverity = map[models.CaffeineLevel]float64{
		models.CaffeineNone:      0,
		models.CaffeineMorning:   1,
		models.CaffeineAfternoon: 2,
		models.CaffeineEvening:   3,
	}
	alcoholSeverity = map[models.AlcoholLevel]float64{
		models.AlcoholNone:     0,
		models.AlcoholOne:      1,
		models.AlcoholTwoThree: 2,
		models.AlcoholFourPlus: 3,
	}
	mealSeverity = map[models.MealTiming]float64{
		models.MealEarly:    0,
		models.MealNormal:   1,
		models.MealLate:     2,
		models.MealVeryLate: 3,
	}
	screenSeverity = map[models.ScreenTimeLevel]float64{
		models.ScreenNone:     0,
		models.ScreenLow:      1,
		models.ScreenModerate: 2,
		models.ScreenUntilBed: 3,
	}
)

// lifestyleFactor describes one factor's extraction and cutoff.
type lifestyleFactor struct {
	key     LifestyleFactorKey
	label   string
	cutoff  float64
	extract func(c *models.LifestyleCheckin) *float64
}

func lifestyleFactors() []lifestyleFactor {
	severityOf := func(f func(c *models.LifestyleCheckin) (float64, bool)) func(c *models.LifestyleCheckin) *float64 {
		return func(c *models.LifestyleCheckin) *float64 {
			v, ok := f(c)
			if !ok {
				return nil
			}
			return &v
		}
	}

	return []lifestyleFactor{
		{
			key: FactorCaffeine, label: "afternoon or later caffeine", cutoff: 2,
			extract: severityOf(func(c *models.LifestyleCheckin) (float64, bool) {
				v, ok := caffeineSeverity[c.Caffeine]
				return v, ok
			}),
		},
		{
			key: FactorAlcohol, label: "alcohol", cutoff: 1,
			extract: severityOf(func(c *models.LifestyleCheckin) (float64, bool) {
				v, ok := alcoholSeverity[c.Alcohol]
				return v, ok
			}),
		},
		{
			key: FactorLateMeal, label: "late meals", cutoff: 2,
			extract: severityOf(func(c *models.LifestyleCheckin) (float64, bool) {
				v, ok := mealSeverity[c.LastMeal]
				return v, ok
			}),
		},
		{
			key: FactorScreenTime, label: "heavy evening screen time", cutoff: 2,
			extract: severityOf(func(c *models.LifestyleCheckin) (float64, bool) {
				v, ok := screenSeverity[c.ScreenTime]
				return v, ok
			}),
		},
		{
			key: FactorStress, label: "high self-reported stress", cutoff: StressfulRatingCutoff,
			extract: func(c *models.LifestyleCheckin) *float64 {
				return c.Stress
			},
		},
	}
}

// lifestyleOutcomes are the next-day metrics each factor is tested against.
var lifestyleOutcomes = []models.MetricKey{
	models.MetricDeepSleep,
	models.MetricRemSleep,
	models.MetricSleepEfficiency,
	models.MetricHRV,
}

// AnalyzeLifestylePatterns runs the lagged pairing-and-partition algorithm
// for every check-in factor against every next-day outcome metric. Only
// findings that pass both the sample-size and magnitude thresholds are
// returned; each carries a confidence score.
func AnalyzeLifestylePatterns(records []models.DailyRecord, checkins []models.LifestyleCheckin, cfg AnalysisConfig) []models.Pattern {
	cfg = cfg.Normalize()

	checkinByDate := make(map[string]*models.LifestyleCheckin, len(checkins))
	for i := range checkins {
		checkinByDate[checkins[i].Date.String()] = &checkins[i]
	}

	patterns := make([]models.Pattern, 0)
	for _, factor := range lifestyleFactors() {
		extractor := func(date models.Day) *float64 {
			c, ok := checkinByDate[date.String()]
			if !ok {
				return nil
			}
			return factor.extract(c)
		}

		for _, outcome := range lifestyleOutcomes {
			pairs := BuildLaggedPairs(records, extractor, outcome, 1)
			impact, bad, _, ok := analyzePairs(pairs, factor.cutoff, cfg.MinPairs, cfg.MinPartition, cfg.LifestyleImpactPercent)
			if !ok {
				continue
			}

			patterns = append(patterns, models.Pattern{
				FactorKey:     string(factor.key),
				MetricKey:     outcome,
				ImpactPercent: impact,
				Confidence:    patternConfidence(len(pairs), impact, cfg.ConfidenceCap),
				SampleSize:    len(pairs),
				HumanText:     lifestylePatternText(factor.label, outcome, impact, bad),
			})
		}
	}

	return patterns
}

// physiologyProbe is one concrete physiology-to-next-day correlation.
type physiologyProbe struct {
	factorKey string
	factor    models.MetricKey
	outcome   models.MetricKey
	cutoff    float64
}

func physiologyProbes() []physiologyProbe {
	return []physiologyProbe{
		{factorKey: "deep_sleep_over_50m", factor: models.MetricDeepSleep, outcome: models.MetricSleepEfficiency, cutoff: 50},
		{factorKey: "efficiency_over_85", factor: models.MetricSleepEfficiency, outcome: models.MetricHRV, cutoff: 85},
		{factorKey: "sleep_over_7h", factor: models.MetricSleepDuration, outcome: models.MetricSleepEfficiency, cutoff: 420},
		{factorKey: "recovery_over_2h", factor: models.MetricRecoveryMinutes, outcome: models.MetricReadinessScore, cutoff: 120},
	}
}

// AnalyzePhysiologyPatterns applies the same pairing-and-partition
// algorithm to day-over-day physiology: deep sleep against next-day
// efficiency, efficiency against next-day HRV, sleep duration against the
// next night's efficiency, and recovery minutes against next-day
// readiness. The magnitude threshold is the lower generic one and no
// confidence score is attached.
func AnalyzePhysiologyPatterns(records []models.DailyRecord, cfg AnalysisConfig) []models.Pattern {
	cfg = cfg.Normalize()

	patterns := make([]models.Pattern, 0)
	for _, probe := range physiologyProbes() {
		pairs := BuildLaggedPairs(records, MetricFactor(records, probe.factor), probe.outcome, 1)
		impact, above, _, ok := analyzePairs(pairs, probe.cutoff, cfg.MinPairs, cfg.MinPartition, cfg.PhysiologyImpactPercent)
		if !ok {
			continue
		}

		patterns = append(patterns, models.Pattern{
			FactorKey:     probe.factorKey,
			MetricKey:     probe.outcome,
			ImpactPercent: impact,
			SampleSize:    len(pairs),
			HumanText:     physiologyPatternText(probe, impact, above),
		})
	}

	return patterns
}

// AnalyzeStressBalance buckets days by the recovery/stress minute ratio
// into balanced (ratio >= 0.8) and high-stress (ratio < 0.5) groups, then
// compares the share of days the evening check-in rated as stressful
// (rating >= 4). Days between the cutoffs belong to neither bucket.
// Returns nil when either bucket is smaller than the minimum partition or
// the difference is under the points threshold.
func AnalyzeStressBalance(records []models.DailyRecord, checkins []models.LifestyleCheckin, cfg AnalysisConfig) *models.StressBalanceFinding {
	cfg = cfg.Normalize()

	stressRating := make(map[string]*float64, len(checkins))
	for i := range checkins {
		stressRating[checkins[i].Date.String()] = checkins[i].Stress
	}

	var balancedDays, balancedStressful, highDays, highStressful int
	for i := range records {
		r := &records[i]
		if r.StressMinutes == nil || r.RecoveryMinutes == nil || *r.StressMinutes == 0 {
			continue
		}
		rating := stressRating[r.Date.String()]
		if rating == nil {
			continue
		}
		stressful := *rating >= StressfulRatingCutoff

		ratio := *r.RecoveryMinutes / *r.StressMinutes
		switch {
		case ratio >= BalancedRatioMin:
			balancedDays++
			if stressful {
				balancedStressful++
			}
		case ratio < HighStressRatioMax:
			highDays++
			if stressful {
				highStressful++
			}
		}
	}

	if balancedDays < cfg.MinPartition || highDays < cfg.MinPartition {
		return nil
	}

	balancedPct := roundPercent(float64(balancedStressful) / float64(balancedDays) * 100)
	highPct := roundPercent(float64(highStressful) / float64(highDays) * 100)
	delta := highPct - balancedPct
	if delta < cfg.StressBalanceDeltaPoints && delta > -cfg.StressBalanceDeltaPoints {
		return nil
	}

	return &models.StressBalanceFinding{
		BalancedStressfulPct:   balancedPct,
		HighStressStressfulPct: highPct,
		DeltaPoints:            delta,
		BalancedDays:           balancedDays,
		HighStressDays:         highDays,
		HumanText: fmt.Sprintf(
			"On high-stress days (recovery/stress ratio under %.1f) you rated %d%% of days as stressful, versus %d%% on balanced days",
			HighStressRatioMax, highPct, balancedPct),
	}
}

func metricLabel(key models.MetricKey) string {
	switch key {
	case models.MetricDeepSleep:
		return "deep sleep"
	case models.MetricRemSleep:
		return "REM sleep"
	case models.MetricSleepEfficiency:
		return "sleep efficiency"
	case models.MetricHRV:
		return "HRV"
	case models.MetricReadinessScore:
		return "readiness"
	case models.MetricSleepScore:
		return "sleep score"
	case models.MetricSleepDuration:
		return "sleep duration"
	case models.MetricRestingHR:
		return "resting heart rate"
	case models.MetricSteps:
		return "steps"
	default:
		return string(key)
	}
}

func lifestylePatternText(factorLabel string, outcome models.MetricKey, impact, badDays int) string {
	direction := "lower"
	magnitude := impact
	if impact > 0 {
		direction = "higher"
	} else {
		magnitude = -impact
	}
	return fmt.Sprintf("On the %d days after %s, your %s averaged %d%% %s",
		badDays, factorLabel, metricLabel(outcome), magnitude, direction)
}

func physiologyPatternText(probe physiologyProbe, impact, aboveDays int) string {
	direction := "lower"
	magnitude := impact
	if impact > 0 {
		direction = "higher"
	} else {
		magnitude = -impact
	}
	return fmt.Sprintf("After days with %s above %.0f, next-day %s averaged %d%% %s (%d days)",
		metricLabel(probe.factor), probe.cutoff, metricLabel(probe.outcome), magnitude, direction, aboveDays)
}
