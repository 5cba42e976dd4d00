package service

import (
	"fmt"
	"math"
	"time"

	"github.com/wakewell/backend/internal/models"
)

// Rule-cascade thresholds. Absolute cutoffs on the latest day's data and
// the trailing week, evaluated in strict priority order.
const (
	CriticalHRVBaselinePct  = 70.0
	LowHRVBaselinePct       = 85.0
	CriticalReadinessScore  = 50.0
	CriticalSleepScore      = 50.0
	DeepSleepDeficitMinutes = 60.0
	HighStressMinutes       = 300.0
	LowRecoveryMinutes      = 120.0
	WorkoutDeficitDays      = 3
	SleepDebtScore          = 70.0
	StepDeficitGoalPct      = 50.0
)

// Recovery-score factor weights. Renormalized over the factors actually
// present for a given day.
const (
	weightHRV       = 0.35
	weightReadiness = 0.25
	weightSleep     = 0.20
	weightDeepRatio = 0.10
	weightStress    = 0.10
)

// ComposerInput is everything the insight composer consumes for one day.
// Latest is the most recent record; Recent is the trailing week sorted
// ascending; Baselines are long-window rolling means per metric. Optional
// inputs may be nil or empty and each rule degrades rather than failing.
type ComposerInput struct {
	Date             models.Day
	Latest           *models.DailyRecord
	Recent           []models.DailyRecord // trailing 7 days
	Previous         []models.DailyRecord // 7 days before Recent
	Baselines        map[models.MetricKey]float64
	StepGoal         *models.Goal
	DaysSinceWorkout *int // nil when no workout has ever been logged
	Now              time.Time
}

// insightRule is one cascade entry. check returns whether the rule fires
// given the input; rules are evaluated in order and the first hit sets the
// headline severity, while later hits still contribute secondary actions.
type insightRule struct {
	name     string
	severity models.Severity
	check    func(in *ComposerInput) (bool, string, string) // fired, headline, action
}

// composerRules is the fixed-priority cascade. Order matters and is part
// of the product behavior: critical recovery always wins the headline.
func composerRules() []insightRule {
	return []insightRule{
		{
			name:     "critical_recovery",
			severity: models.SeverityCritical,
			check: func(in *ComposerInput) (bool, string, string) {
				if in.Latest == nil {
					return false, "", ""
				}
				hrvCritical := false
				if in.Latest.HRV != nil {
					if baseline, ok := in.Baselines[models.MetricHRV]; ok && baseline > 0 {
						hrvCritical = *in.Latest.HRV < baseline*CriticalHRVBaselinePct/100
					}
				}
				readinessCritical := in.Latest.ReadinessScore != nil && *in.Latest.ReadinessScore < CriticalReadinessScore
				sleepCritical := in.Latest.SleepScore != nil && *in.Latest.SleepScore < CriticalSleepScore
				if !hrvCritical && !readinessCritical && !sleepCritical {
					return false, "", ""
				}
				return true,
					"Your body is flagging for recovery: key signals are well below normal",
					"Take a full rest day and prioritize an early night"
			},
		},
		{
			name:     "hrv_below_baseline",
			severity: models.SeverityCaution,
			check: func(in *ComposerInput) (bool, string, string) {
				// No HRV data at all suppresses this rule; unknown is not zero.
				if in.Latest == nil || in.Latest.HRV == nil {
					return false, "", ""
				}
				baseline, ok := in.Baselines[models.MetricHRV]
				if !ok || baseline <= 0 {
					return false, "", ""
				}
				pct := *in.Latest.HRV / baseline * 100
				if pct < CriticalHRVBaselinePct || pct >= LowHRVBaselinePct {
					return false, "", ""
				}
				return true,
					fmt.Sprintf("HRV is at %.0f%% of your baseline", pct),
					"Keep intensity light and watch tonight's sleep"
			},
		},
		{
			name:     "deep_sleep_deficit",
			severity: models.SeverityCaution,
			check: func(in *ComposerInput) (bool, string, string) {
				avg := weeklyAverage(in.Recent, models.MetricDeepSleep)
				if avg == nil || *avg >= DeepSleepDeficitMinutes {
					return false, "", ""
				}
				return true,
					fmt.Sprintf("Deep sleep has averaged %.0f minutes over the past week", *avg),
					"Move your bedtime earlier and cut late screens to rebuild deep sleep"
			},
		},
		{
			name:     "high_stress_low_recovery",
			severity: models.SeverityCaution,
			check: func(in *ComposerInput) (bool, string, string) {
				if in.Latest == nil || in.Latest.StressMinutes == nil || in.Latest.RecoveryMinutes == nil {
					return false, "", ""
				}
				if *in.Latest.StressMinutes <= HighStressMinutes || *in.Latest.RecoveryMinutes >= LowRecoveryMinutes {
					return false, "", ""
				}
				return true,
					"Yesterday ran high on stress with little recovery time",
					"Schedule deliberate downtime today: a walk, breathing, or a nap"
			},
		},
		{
			name:     "workout_deficit",
			severity: models.SeverityAttention,
			check: func(in *ComposerInput) (bool, string, string) {
				// Never having logged a workout reads as zero for streak
				// math, so the rule fires then too.
				if in.DaysSinceWorkout != nil && *in.DaysSinceWorkout < WorkoutDeficitDays {
					return false, "", ""
				}
				return true,
					"It's been a few days since your last workout",
					"Fit in any movement today, even a short session counts"
			},
		},
		{
			name:     "sleep_debt",
			severity: models.SeverityAttention,
			check: func(in *ComposerInput) (bool, string, string) {
				if in.Latest == nil || in.Latest.SleepScore == nil {
					return false, "", ""
				}
				if *in.Latest.SleepScore >= SleepDebtScore {
					return false, "", ""
				}
				return true,
					fmt.Sprintf("Last night's sleep scored %.0f", *in.Latest.SleepScore),
					"Protect tonight's sleep window to pay down the debt"
			},
		},
		{
			name:     "step_deficit",
			severity: models.SeverityAttention,
			check: func(in *ComposerInput) (bool, string, string) {
				if in.StepGoal == nil || !in.StepGoal.Enabled || in.StepGoal.Target <= 0 {
					return false, "", ""
				}
				avg := weeklyAverage(in.Recent, models.MetricSteps)
				if avg == nil || *avg >= in.StepGoal.Target*StepDeficitGoalPct/100 {
					return false, "", ""
				}
				return true,
					fmt.Sprintf("Steps are averaging %.0f, under half your %.0f goal", *avg, in.StepGoal.Target),
					"Add a walk or two to close the gap on your step goal"
			},
		},
		{
			name:     "all_clear",
			severity: models.SeverityMaintenance,
			check: func(in *ComposerInput) (bool, string, string) {
				return true,
					"Everything looks steady",
					"Keep doing what you're doing"
			},
		},
	}
}

// ComposeDailyInsight runs the fixed-priority rule cascade and assembles
// the full insight object. The first firing rule supplies the headline and
// top action; lower-priority rules that also fire contribute secondary
// actions. The composite recovery score is computed independently of the
// cascade: they answer different questions and are deliberately separate
// code paths.
func ComposeDailyInsight(in ComposerInput) models.DailyInsight {
	insight := models.DailyInsight{
		Date:       in.Date,
		ComputedAt: in.Now,
	}

	var fired []models.PriorityAction
	for _, rule := range composerRules() {
		hit, headline, action := rule.check(&in)
		if !hit {
			continue
		}
		if len(fired) == 0 {
			insight.ReadinessAssessment = models.ReadinessAssessment{
				Severity: rule.severity,
				Rule:     rule.name,
				Headline: headline,
			}
		}
		fired = append(fired, models.PriorityAction{Rule: rule.name, Action: action})
	}

	if len(fired) > 0 {
		insight.TopPriorityAction = fired[0]
		if len(fired) > 1 {
			// The all-clear fallback is not a useful secondary action.
			for _, action := range fired[1:] {
				if action.Rule != "all_clear" {
					insight.SecondaryActions = append(insight.SecondaryActions, action)
				}
			}
		}
	}

	insight.RecoveryBreakdown = CalculateRecoveryScore(in.Latest, in.Baselines)
	insight.WorkoutRecommendation = recommendWorkout(insight.ReadinessAssessment.Severity, insight.RecoveryBreakdown.Composite)
	insight.WeeklySummary = ComparePeriods(in.Recent, in.Previous, []models.MetricKey{
		models.MetricSteps,
		models.MetricSleepScore,
		models.MetricReadinessScore,
		models.MetricHRV,
	})

	return insight
}

// CalculateRecoveryScore blends up to five weighted factors into a single
// 0-100 composite and reports the lowest-scoring factor as the limiting
// one. Absent factors are skipped and the remaining weights renormalized;
// with no usable factors the composite is nil.
func CalculateRecoveryScore(latest *models.DailyRecord, baselines map[models.MetricKey]float64) models.RecoveryBreakdown {
	breakdown := models.RecoveryBreakdown{Factors: []models.RecoveryFactor{}}
	if latest == nil {
		return breakdown
	}

	type candidate struct {
		name   string
		weight float64
		score  *float64
	}

	candidates := []candidate{
		{"hrv", weightHRV, hrvFactorScore(latest, baselines)},
		{"readiness", weightReadiness, clampedScore(latest.ReadinessScore)},
		{"sleep", weightSleep, clampedScore(latest.SleepScore)},
		{"deep_sleep_ratio", weightDeepRatio, deepRatioScore(latest)},
		{"stress", weightStress, stressFactorScore(latest)},
	}

	var totalWeight float64
	for _, c := range candidates {
		if c.score != nil {
			totalWeight += c.weight
		}
	}
	if totalWeight == 0 {
		return breakdown
	}

	var composite float64
	var limiting string
	lowest := math.MaxFloat64
	for _, c := range candidates {
		if c.score == nil {
			continue
		}
		normalized := c.weight / totalWeight
		composite += *c.score * normalized
		breakdown.Factors = append(breakdown.Factors, models.RecoveryFactor{
			Name:   c.name,
			Score:  round1(*c.score),
			Weight: round1(normalized*100) / 100,
		})
		if *c.score < lowest {
			lowest = *c.score
			limiting = c.name
		}
	}

	compositeRounded := round1(composite)
	breakdown.Composite = &compositeRounded
	breakdown.LimitingFactor = limiting
	return breakdown
}

// hrvFactorScore scores HRV as percent-of-baseline, capped at 100. With
// no baseline the raw HRV cannot be placed on a 0-100 scale, so the
// factor is skipped.
func hrvFactorScore(latest *models.DailyRecord, baselines map[models.MetricKey]float64) *float64 {
	if latest.HRV == nil {
		return nil
	}
	baseline, ok := baselines[models.MetricHRV]
	if !ok || baseline <= 0 {
		return nil
	}
	score := *latest.HRV / baseline * 100
	if score > 100 {
		score = 100
	}
	return &score
}

func clampedScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	score := *v
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return &score
}

// deepRatioScore scores the deep-sleep share of total sleep against a 20%
// ideal.
func deepRatioScore(latest *models.DailyRecord) *float64 {
	if latest.DeepSleep == nil || latest.SleepDuration == nil || *latest.SleepDuration == 0 {
		return nil
	}
	ratio := *latest.DeepSleep / *latest.SleepDuration
	score := ratio / 0.20 * 100
	if score > 100 {
		score = 100
	}
	return &score
}

// stressFactorScore maps stress-minute load to a banded 0-100 score.
func stressFactorScore(latest *models.DailyRecord) *float64 {
	if latest.StressMinutes == nil {
		return nil
	}
	var score float64
	switch m := *latest.StressMinutes; {
	case m < 150:
		score = 100
	case m < 300:
		score = 70
	case m < 450:
		score = 40
	default:
		score = 20
	}
	return &score
}

// recommendWorkout maps headline severity and the composite score to a
// training-intensity suggestion.
func recommendWorkout(severity models.Severity, composite *float64) models.WorkoutRecommendation {
	switch severity {
	case models.SeverityCritical:
		return models.WorkoutRecommendation{
			Intensity: "rest",
			Reason:    "Recovery signals are critically low; training would dig the hole deeper",
		}
	case models.SeverityCaution:
		return models.WorkoutRecommendation{
			Intensity: "light",
			Reason:    "Recovery is below normal; keep movement easy today",
		}
	}

	if composite != nil && *composite >= 80 {
		return models.WorkoutRecommendation{
			Intensity: "full",
			Reason:    "Recovery looks strong; a hard session is well supported",
		}
	}
	return models.WorkoutRecommendation{
		Intensity: "moderate",
		Reason:    "Recovery is adequate for a normal training day",
	}
}

// weeklyAverage is the mean of present values, nil when the window has no
// data for the metric.
func weeklyAverage(records []models.DailyRecord, key models.MetricKey) *float64 {
	var sum float64
	count := 0
	for i := range records {
		if v := records[i].Metric(key); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
