package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wakewell/backend/internal/apierror"
	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/service"
)

type AnalyticsHandler struct {
	analyticsService   service.AnalyticsService
	achievementService service.AchievementService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService, achievementService service.AchievementService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:   analyticsService,
		achievementService: achievementService,
	}
}

// GetRollingAverages handles GET /api/v1/analytics/rolling?metric=...&window=7&from=...&to=...
func (h *AnalyticsHandler) GetRollingAverages(c *gin.Context) {
	key, ok := metricQuery(c)
	if !ok {
		return
	}
	window, _ := strconv.Atoi(c.DefaultQuery("window", "7"))

	today := models.DayOf(timeNow())
	from, ok := dateQuery(c, "from", today.AddDays(-29))
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", today)
	if !ok {
		return
	}

	points, err := h.analyticsService.RollingAverages(c.Request.Context(), key, window, from, to)
	if err != nil {
		writeServiceError(c, err, "Rolling averages", string(key))
		return
	}

	c.JSON(http.StatusOK, points)
}

// GetAggregates handles GET /api/v1/analytics/aggregates?metric=...&period=weekly&from=...&to=...
func (h *AnalyticsHandler) GetAggregates(c *gin.Context) {
	key, ok := metricQuery(c)
	if !ok {
		return
	}

	today := models.DayOf(timeNow())
	from, ok := dateQuery(c, "from", today.AddDays(-89))
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", today)
	if !ok {
		return
	}

	var buckets []models.PeriodBucket
	var err error
	switch c.DefaultQuery("period", "weekly") {
	case "weekly":
		buckets, err = h.analyticsService.WeeklyAggregates(c.Request.Context(), key, from, to)
	case "monthly":
		buckets, err = h.analyticsService.MonthlyAggregates(c.Request.Context(), key, from, to)
	default:
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "period", Message: "must be weekly or monthly", Code: "invalid_value"},
		}))
		return
	}
	if err != nil {
		writeServiceError(c, err, "Aggregates", string(key))
		return
	}

	c.JSON(http.StatusOK, buckets)
}

// GetComparison handles GET /api/v1/analytics/comparison?metrics=steps,hrv
func (h *AnalyticsHandler) GetComparison(c *gin.Context) {
	var keys []models.MetricKey
	if raw := c.Query("metrics"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			key := models.MetricKey(strings.TrimSpace(part))
			if !models.ValidMetricKey(key) {
				requestID := apierror.GetRequestID(c)
				apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
					{Field: "metrics", Message: "must be known metric keys", Code: "unknown_metric"},
				}))
				return
			}
			keys = append(keys, key)
		}
	}

	comparisons, err := h.analyticsService.CompareWeeks(c.Request.Context(), keys)
	if err != nil {
		writeServiceError(c, err, "Comparison", "")
		return
	}

	c.JSON(http.StatusOK, comparisons)
}

// GetTrend handles GET /api/v1/analytics/trend?metric=...&window=7
func (h *AnalyticsHandler) GetTrend(c *gin.Context) {
	key, ok := metricQuery(c)
	if !ok {
		return
	}
	window, _ := strconv.Atoi(c.DefaultQuery("window", "7"))

	trend, err := h.analyticsService.Trend(c.Request.Context(), key, window)
	if err != nil {
		writeServiceError(c, err, "Trend", string(key))
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetPersonalRecords handles GET /api/v1/analytics/records
func (h *AnalyticsHandler) GetPersonalRecords(c *gin.Context) {
	records, err := h.achievementService.PersonalRecords(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Personal records", "")
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetStreak handles GET /api/v1/analytics/streak
func (h *AnalyticsHandler) GetStreak(c *gin.Context) {
	streak, err := h.achievementService.ActivityStreak(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Streak", "")
		return
	}

	c.JSON(http.StatusOK, streak)
}

// GetMilestones handles GET /api/v1/analytics/milestones
func (h *AnalyticsHandler) GetMilestones(c *gin.Context) {
	milestones, err := h.achievementService.Milestones(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Milestones", "")
		return
	}

	c.JSON(http.StatusOK, milestones)
}

// GetConsistency handles GET /api/v1/analytics/consistency?metric=...&window=30
func (h *AnalyticsHandler) GetConsistency(c *gin.Context) {
	key, ok := metricQuery(c)
	if !ok {
		return
	}
	window, _ := strconv.Atoi(c.DefaultQuery("window", "30"))

	result, err := h.achievementService.Consistency(c.Request.Context(), key, window)
	if err != nil {
		writeServiceError(c, err, "Consistency goal", string(key))
		return
	}

	c.JSON(http.StatusOK, result)
}
