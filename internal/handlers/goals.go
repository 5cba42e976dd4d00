package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wakewell/backend/internal/apierror"
	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/service"
)

type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// metricParam parses the :metric path parameter.
func metricParam(c *gin.Context) (models.MetricKey, bool) {
	key := models.MetricKey(c.Param("metric"))
	if !models.ValidMetricKey(key) {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "metric", Message: "must be a known metric key", Code: "unknown_metric"},
		}))
		return "", false
	}
	return key, true
}

// PutGoal handles PUT /api/v1/goals/:metric
func (h *GoalHandler) PutGoal(c *gin.Context) {
	key, ok := metricParam(c)
	if !ok {
		return
	}

	var req models.PutGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid goal payload"))
		return
	}
	req.MetricKey = key

	goal, err := h.goalService.PutGoal(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Goal", string(key))
		return
	}

	c.JSON(http.StatusOK, goal)
}

// PatchGoal handles PATCH /api/v1/goals/:metric
func (h *GoalHandler) PatchGoal(c *gin.Context) {
	key, ok := metricParam(c)
	if !ok {
		return
	}

	var req models.PatchGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid goal patch"))
		return
	}

	goal, err := h.goalService.PatchGoal(c.Request.Context(), key, &req)
	if err != nil {
		if strings.Contains(err.Error(), "must be") || strings.Contains(err.Error(), "cannot be null") {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid goal patch"))
			return
		}
		writeServiceError(c, err, "Goal", string(key))
		return
	}

	c.JSON(http.StatusOK, goal)
}

// ListGoals handles GET /api/v1/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Goals", "")
		return
	}

	c.JSON(http.StatusOK, goals)
}

// DeleteGoal handles DELETE /api/v1/goals/:metric
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	key, ok := metricParam(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), key); err != nil {
		writeServiceError(c, err, "Goal", string(key))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetGoalProgress handles GET /api/v1/goals/progress?date=...
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	date, ok := dateQuery(c, "date", models.DayOf(timeNow()))
	if !ok {
		return
	}

	progress, err := h.goalService.GoalProgress(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err, "Goal progress", date.String())
		return
	}

	c.JSON(http.StatusOK, progress)
}
