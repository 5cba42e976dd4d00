package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/service"
)

// InsightsHandler handles composed-insight and pattern HTTP requests
type InsightsHandler struct {
	insightService service.InsightService
	patternService service.PatternService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightService service.InsightService, patternService service.PatternService) *InsightsHandler {
	return &InsightsHandler{
		insightService: insightService,
		patternService: patternService,
	}
}

// GetDailyInsight handles GET /api/v1/insights/daily?date=...
// With no date it serves the latest recorded day.
func (h *InsightsHandler) GetDailyInsight(c *gin.Context) {
	date, ok := dateQuery(c, "date", models.Day{})
	if !ok {
		return
	}

	insight, err := h.insightService.DailyInsight(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err, "Insight", date.String())
		return
	}

	c.JSON(http.StatusOK, insight)
}

// RefreshInsight handles POST /api/v1/insights/refresh?date=...
// It recomputes the insight and replaces any cached copy.
func (h *InsightsHandler) RefreshInsight(c *gin.Context) {
	date, ok := dateQuery(c, "date", models.Day{})
	if !ok {
		return
	}

	insight, err := h.insightService.RefreshInsight(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err, "Insight", date.String())
		return
	}

	c.JSON(http.StatusOK, insight)
}

// GetPatterns handles GET /api/v1/insights/patterns
func (h *InsightsHandler) GetPatterns(c *gin.Context) {
	patterns, err := h.patternService.ComputePatterns(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Patterns", "")
		return
	}

	c.JSON(http.StatusOK, patterns)
}
