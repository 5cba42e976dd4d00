package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wakewell/backend/internal/apierror"
	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/service"
)

type CheckinHandler struct {
	checkinService service.CheckinService
}

// NewCheckinHandler creates a new check-in handler
func NewCheckinHandler(checkinService service.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

// UpsertCheckin handles PUT /api/v1/checkins/:date
func (h *CheckinHandler) UpsertCheckin(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req models.UpsertCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid check-in payload"))
		return
	}
	req.Date = date

	checkin, err := h.checkinService.UpsertCheckin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFutureDate) {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewFutureDateError(requestID, "date"))
			return
		}
		writeServiceError(c, err, "Check-in", date.String())
		return
	}

	c.JSON(http.StatusOK, checkin)
}

// GetCheckin handles GET /api/v1/checkins/:date
func (h *CheckinHandler) GetCheckin(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	checkin, err := h.checkinService.GetCheckin(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err, "Check-in", date.String())
		return
	}

	c.JSON(http.StatusOK, checkin)
}

// GetCheckinStreak handles GET /api/v1/checkins/streak
func (h *CheckinHandler) GetCheckinStreak(c *gin.Context) {
	streak, err := h.checkinService.CheckinStreak(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Check-in streak", "")
		return
	}

	c.JSON(http.StatusOK, streak)
}

// UpsertReflection handles PUT /api/v1/reflections/:date
func (h *CheckinHandler) UpsertReflection(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req models.UpsertReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid reflection payload"))
		return
	}
	req.Date = date

	reflection, err := h.checkinService.UpsertReflection(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFutureDate) {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewFutureDateError(requestID, "date"))
			return
		}
		writeServiceError(c, err, "Reflection", date.String())
		return
	}

	c.JSON(http.StatusOK, reflection)
}

// GetReflection handles GET /api/v1/reflections/:date
func (h *CheckinHandler) GetReflection(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	reflection, err := h.checkinService.GetReflection(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err, "Reflection", date.String())
		return
	}

	c.JSON(http.StatusOK, reflection)
}
