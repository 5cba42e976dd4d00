package models

import "time"

// TrendDirection classifies how a metric is moving.
type TrendDirection string

const (
	TrendImproving    TrendDirection = "improving"
	TrendDeclining    TrendDirection = "declining"
	TrendStable       TrendDirection = "stable"
	TrendInsufficient TrendDirection = "insufficient"
)

// TrendResult compares the most recent window of a metric against the
// window immediately preceding it.
type TrendResult struct {
	MetricKey     MetricKey      `json:"metric_key"`
	Direction     TrendDirection `json:"direction"`
	CurrentMean   *float64       `json:"current_mean,omitempty"`
	PreviousMean  *float64       `json:"previous_mean,omitempty"`
	ChangePercent *float64       `json:"change_percent,omitempty"`
	WindowSize    int            `json:"window_size"`
}

// RollingPoint is one entry in a rolling-average series. Value is nil when
// every observation in the trailing window was missing.
type RollingPoint struct {
	Date  Day      `json:"date"`
	Value *float64 `json:"value"`
}

// PeriodBucket is one weekly or monthly aggregation bucket. Mean is nil
// when no values contributed; the bucket is still emitted with Count 0.
type PeriodBucket struct {
	PeriodKey string   `json:"period_key"`
	Start     Day      `json:"start"`
	Mean      *float64 `json:"mean"`
	Sum       float64  `json:"sum"`
	Count     int      `json:"count"`
}

// MetricComparison is the period-over-period result for one metric.
// Means here are never nil: an empty period contributes 0 so the percent
// change math stays total.
type MetricComparison struct {
	MetricKey     MetricKey `json:"metric_key"`
	Current       float64   `json:"current"`
	Previous      float64   `json:"previous"`
	Delta         float64   `json:"delta"`
	PercentChange float64   `json:"percent_change"`
	Improved      bool      `json:"improved"`
}

// ExtremumResult is a personal best or worst for one metric. Value and
// Date are nil when no qualifying record exists yet.
type ExtremumResult struct {
	MetricKey MetricKey `json:"metric_key"`
	Value     *float64  `json:"value"`
	Date      *Day      `json:"date"`
}

// PersonalRecords groups the tracked extremes.
type PersonalRecords struct {
	MostSteps       ExtremumResult `json:"most_steps"`
	BestSleepScore  ExtremumResult `json:"best_sleep_score"`
	HighestHRV      ExtremumResult `json:"highest_hrv"`
	LowestRestingHR ExtremumResult `json:"lowest_resting_hr"`
	MostDeepSleep   ExtremumResult `json:"most_deep_sleep"`
}

// StreakSummary describes a run of qualifying days. StartDate is nil when
// no day has ever qualified.
type StreakSummary struct {
	Current   int  `json:"current"`
	Longest   int  `json:"longest"`
	StartDate *Day `json:"start_date,omitempty"`
}

// MilestoneLadder reports progress against one fixed ascending threshold
// ladder. Next is nil once every threshold is cleared.
type MilestoneLadder struct {
	Achieved []float64 `json:"achieved"`
	Next     *float64  `json:"next"`
	Progress int       `json:"progress"` // 0-100
}

// MilestoneReport covers the three tracked ladders.
type MilestoneReport struct {
	TotalSteps    float64         `json:"total_steps"`
	TotalWorkouts int             `json:"total_workouts"`
	CurrentStreak int             `json:"current_streak"`
	Steps         MilestoneLadder `json:"steps"`
	Workouts      MilestoneLadder `json:"workouts"`
	StreakDays    MilestoneLadder `json:"streak_days"`
}

// ConsistencyResult is the share of recent days that met a goal threshold.
type ConsistencyResult struct {
	MetricKey  MetricKey `json:"metric_key"`
	WindowDays int       `json:"window_days"`
	DaysMet    int       `json:"days_met"`
	DaysTotal  int       `json:"days_total"`
	Percent    int       `json:"percent"`
}

// Pattern is a derived lagged-correlation finding: days where the factor
// crossed its cutoff, compared against days where it did not, on the next
// day's outcome metric. Immutable once computed; recomputed wholesale on
// each analysis run.
type Pattern struct {
	FactorKey     string    `json:"factor_key"`
	MetricKey     MetricKey `json:"metric_key"`
	ImpactPercent int       `json:"impact_percent"`
	Confidence    float64   `json:"confidence"` // 0-1, 0 when not scored
	SampleSize    int       `json:"sample_size"`
	HumanText     string    `json:"human_text"`
}

// StressBalanceFinding is the stress-day-quality comparison: the share of
// subjectively stressful days under balanced versus high-stress recovery
// ratios. Nil when either bucket is too small.
type StressBalanceFinding struct {
	BalancedStressfulPct   int    `json:"balanced_stressful_pct"`
	HighStressStressfulPct int    `json:"high_stress_stressful_pct"`
	DeltaPoints            int    `json:"delta_points"`
	BalancedDays           int    `json:"balanced_days"`
	HighStressDays         int    `json:"high_stress_days"`
	HumanText              string `json:"human_text"`
}

// PatternsResponse is the full pattern-analysis output.
type PatternsResponse struct {
	Lifestyle     []Pattern             `json:"lifestyle"`
	Physiology    []Pattern             `json:"physiology"`
	StressBalance *StressBalanceFinding `json:"stress_balance,omitempty"`
	ComputedAt    time.Time             `json:"computed_at"`
}

// Severity ranks the headline insight rules, most urgent first.
type Severity string

const (
	SeverityCritical    Severity = "critical"
	SeverityCaution     Severity = "caution"
	SeverityAttention   Severity = "attention"
	SeverityMaintenance Severity = "maintenance"
)

// ReadinessAssessment is the headline produced by the rule cascade.
type ReadinessAssessment struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Headline string   `json:"headline"`
}

// PriorityAction is one recommended action; the first is the headline
// rule's action, the rest are secondary contributions from lower rules.
type PriorityAction struct {
	Rule   string `json:"rule"`
	Action string `json:"action"`
}

// WorkoutRecommendation advises today's training intensity.
type WorkoutRecommendation struct {
	Intensity string `json:"intensity"` // "rest", "light", "moderate", "full"
	Reason    string `json:"reason"`
}

// RecoveryFactor is one weighted contributor to the composite score.
type RecoveryFactor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`  // 0-100
	Weight float64 `json:"weight"` // normalized over present factors
}

// RecoveryBreakdown is the composite readiness score with its weighted
// factors and the single lowest-scoring ("limiting") factor. This is
// informational context, computed independently of the rule cascade.
type RecoveryBreakdown struct {
	Composite      *float64         `json:"composite"` // 0-100, nil with no inputs
	Factors        []RecoveryFactor `json:"factors"`
	LimitingFactor string           `json:"limiting_factor,omitempty"`
}

// DailyInsight is the composed output for one calendar day.
type DailyInsight struct {
	Date                  Day                   `json:"date"`
	ReadinessAssessment   ReadinessAssessment   `json:"readiness_assessment"`
	TopPriorityAction     PriorityAction        `json:"top_priority_action"`
	SecondaryActions      []PriorityAction      `json:"secondary_actions,omitempty"`
	WorkoutRecommendation WorkoutRecommendation `json:"workout_recommendation"`
	WeeklySummary         []MetricComparison    `json:"weekly_summary"`
	RecoveryBreakdown     RecoveryBreakdown     `json:"recovery_breakdown"`
	ComputedAt            time.Time             `json:"computed_at"`
}

// GoalProgress is the caller-facing view of one goal against a day's
// observation.
type GoalProgress struct {
	MetricKey MetricKey `json:"metric_key"`
	Target    float64   `json:"target"`
	Observed  *float64  `json:"observed"`
	Percent   *int      `json:"percent"` // nil when no observation
	Achieved  bool      `json:"achieved"`
}
