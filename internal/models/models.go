package models

import "time"

// MetricKey identifies a numeric metric on a DailyRecord.
type MetricKey string

const (
	MetricSteps           MetricKey = "steps"
	MetricSleepScore      MetricKey = "sleep_score"
	MetricReadinessScore  MetricKey = "readiness_score"
	MetricHRV             MetricKey = "hrv"
	MetricDeepSleep       MetricKey = "deep_sleep"
	MetricRemSleep        MetricKey = "rem_sleep"
	MetricSleepEfficiency MetricKey = "sleep_efficiency"
	MetricSleepDuration   MetricKey = "sleep_duration"
	MetricRestingHR       MetricKey = "resting_hr"
	MetricStressMinutes   MetricKey = "stress_minutes"
	MetricRecoveryMinutes MetricKey = "recovery_minutes"
	MetricSleepLatency    MetricKey = "sleep_latency"
)

// AllMetricKeys lists every metric a DailyRecord can carry.
var AllMetricKeys = []MetricKey{
	MetricSteps,
	MetricSleepScore,
	MetricReadinessScore,
	MetricHRV,
	MetricDeepSleep,
	MetricRemSleep,
	MetricSleepEfficiency,
	MetricSleepDuration,
	MetricRestingHR,
	MetricStressMinutes,
	MetricRecoveryMinutes,
	MetricSleepLatency,
}

// ValidMetricKey reports whether key names a known metric.
func ValidMetricKey(key MetricKey) bool {
	for _, k := range AllMetricKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DailyRecord holds one calendar day's wearable observations. Every metric
// is optional: a nil pointer means "no data", which is distinct from an
// observed zero and must never be coerced for averaging.
type DailyRecord struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	Date            Day       `json:"date" gorm:"uniqueIndex;type:text"`
	Steps           *float64  `json:"steps,omitempty" binding:"omitempty,min=0"`
	SleepScore      *float64  `json:"sleep_score,omitempty" binding:"omitempty,min=0,max=100"`
	ReadinessScore  *float64  `json:"readiness_score,omitempty" binding:"omitempty,min=0,max=100"`
	HRV             *float64  `json:"hrv,omitempty" binding:"omitempty,min=0"`
	DeepSleep       *float64  `json:"deep_sleep,omitempty" binding:"omitempty,min=0"`
	RemSleep        *float64  `json:"rem_sleep,omitempty" binding:"omitempty,min=0"`
	SleepEfficiency *float64  `json:"sleep_efficiency,omitempty" binding:"omitempty,min=0,max=100"`
	SleepDuration   *float64  `json:"sleep_duration,omitempty" binding:"omitempty,min=0"`
	RestingHR       *float64  `json:"resting_hr,omitempty" binding:"omitempty,min=0"`
	StressMinutes   *float64  `json:"stress_minutes,omitempty" binding:"omitempty,min=0"`
	RecoveryMinutes *float64  `json:"recovery_minutes,omitempty" binding:"omitempty,min=0"`
	SleepLatency    *float64  `json:"sleep_latency,omitempty" binding:"omitempty,min=0"`
	Workout         bool      `json:"workout"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Metric returns the value for a metric key, or nil when the record has no
// observation for it (or the key is unknown).
func (r *DailyRecord) Metric(key MetricKey) *float64 {
	switch key {
	case MetricSteps:
		return r.Steps
	case MetricSleepScore:
		return r.SleepScore
	case MetricReadinessScore:
		return r.ReadinessScore
	case MetricHRV:
		return r.HRV
	case MetricDeepSleep:
		return r.DeepSleep
	case MetricRemSleep:
		return r.RemSleep
	case MetricSleepEfficiency:
		return r.SleepEfficiency
	case MetricSleepDuration:
		return r.SleepDuration
	case MetricRestingHR:
		return r.RestingHR
	case MetricStressMinutes:
		return r.StressMinutes
	case MetricRecoveryMinutes:
		return r.RecoveryMinutes
	case MetricSleepLatency:
		return r.SleepLatency
	default:
		return nil
	}
}

// CaffeineLevel describes the latest caffeine intake reported for a day.
type CaffeineLevel string

const (
	CaffeineNone      CaffeineLevel = "none"
	CaffeineMorning   CaffeineLevel = "morning"
	CaffeineAfternoon CaffeineLevel = "afternoon"
	CaffeineEvening   CaffeineLevel = "evening"
)

// AlcoholLevel describes reported alcohol consumption for a day.
type AlcoholLevel string

const (
	AlcoholNone     AlcoholLevel = "none"
	AlcoholOne      AlcoholLevel = "one"
	AlcoholTwoThree AlcoholLevel = "two_three"
	AlcoholFourPlus AlcoholLevel = "four_plus"
)

// MealTiming describes how late the last meal of the day was.
type MealTiming string

const (
	MealEarly    MealTiming = "early"
	MealNormal   MealTiming = "normal"
	MealLate     MealTiming = "late"
	MealVeryLate MealTiming = "very_late"
)

// ScreenTimeLevel describes evening screen exposure.
type ScreenTimeLevel string

const (
	ScreenNone     ScreenTimeLevel = "none"
	ScreenLow      ScreenTimeLevel = "low"
	ScreenModerate ScreenTimeLevel = "moderate"
	ScreenUntilBed ScreenTimeLevel = "until_bed"
)

// LifestyleCheckin is one evening's self-reported factors. At most one
// check-in exists per calendar date; a new submission for a date already
// seen replaces the old one.
type LifestyleCheckin struct {
	ID         uint            `json:"-" gorm:"primaryKey"`
	Date       Day             `json:"date" gorm:"uniqueIndex;type:text"`
	Caffeine   CaffeineLevel   `json:"caffeine"`
	Alcohol    AlcoholLevel    `json:"alcohol"`
	LastMeal   MealTiming      `json:"last_meal"`
	ScreenTime ScreenTimeLevel `json:"screen_time"`
	Stress     *float64        `json:"stress,omitempty"` // 1-5 self rating
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`
}

// SleepFeel is the subjective morning tag for how sleep felt.
type SleepFeel string

const (
	SleepFeltRefreshed SleepFeel = "refreshed"
	SleepFeltOkay      SleepFeel = "okay"
	SleepFeltGroggy    SleepFeel = "groggy"
	SleepFeltExhausted SleepFeel = "exhausted"
)

// MorningReflection is one morning's subjective state, upserted by date
// like check-ins.
type MorningReflection struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Date      Day       `json:"date" gorm:"uniqueIndex;type:text"`
	Energy    *float64  `json:"energy,omitempty"` // 1-5 self rating
	SleepFelt SleepFeel `json:"sleep_felt"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Goal is a target configuration for a single metric. Inverted goals treat
// lower observed values as better (e.g. resting heart rate).
type Goal struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	MetricKey MetricKey `json:"metric_key" gorm:"uniqueIndex;type:text"`
	Target    float64   `json:"target"`
	Enabled   bool      `json:"enabled"`
	Inverted  bool      `json:"inverted"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// InsightCache stores one day's composed insight as JSON so repeat reads
// skip recomputation. A cached row is valid until the underlying records
// or check-ins change; the service compares ComputedAt against the data's
// last write to decide.
type InsightCache struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	Date       Day       `json:"date" gorm:"uniqueIndex;type:text"`
	Payload    string    `json:"-"`
	ComputedAt time.Time `json:"computed_at"`
}

// ImportRecordsRequest is the bulk record import payload.
type ImportRecordsRequest struct {
	Records []DailyRecord `json:"records" binding:"required,min=1,dive"`
}

// UpsertCheckinRequest creates or replaces the check-in for a date.
type UpsertCheckinRequest struct {
	Date       Day             `json:"date"`
	Caffeine   CaffeineLevel   `json:"caffeine" binding:"required,oneof=none morning afternoon evening"`
	Alcohol    AlcoholLevel    `json:"alcohol" binding:"required,oneof=none one two_three four_plus"`
	LastMeal   MealTiming      `json:"last_meal" binding:"required,oneof=early normal late very_late"`
	ScreenTime ScreenTimeLevel `json:"screen_time" binding:"required,oneof=none low moderate until_bed"`
	Stress     *float64        `json:"stress" binding:"omitempty,min=1,max=5"`
}

// UpsertReflectionRequest creates or replaces the reflection for a date.
type UpsertReflectionRequest struct {
	Date      Day       `json:"date"`
	Energy    *float64  `json:"energy" binding:"omitempty,min=1,max=5"`
	SleepFelt SleepFeel `json:"sleep_felt" binding:"required,oneof=refreshed okay groggy exhausted"`
}

// PutGoalRequest creates or replaces the goal for a metric.
type PutGoalRequest struct {
	MetricKey MetricKey `json:"metric_key" binding:"required"`
	Target    float64   `json:"target" binding:"required,gt=0"`
	Enabled   bool      `json:"enabled"`
	Inverted  bool      `json:"inverted"`
}

// PatchGoalRequest partially updates a goal. Nullable fields distinguish
// "leave unchanged" (absent) from an explicit new value.
type PatchGoalRequest struct {
	Target   NullableFloat `json:"target"`
	Enabled  NullableBool  `json:"enabled"`
	Inverted NullableBool  `json:"inverted"`
}
