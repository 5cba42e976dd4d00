// Package handlers wires HTTP routes to the service layer. Handlers own
// request parsing and error mapping; all business logic lives in services.
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wakewell/backend/internal/apierror"
	"github.com/wakewell/backend/internal/logger"
	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/service"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// dateParam parses the :date path parameter. On failure it writes a 400
// problem and reports false.
func dateParam(c *gin.Context) (models.Day, bool) {
	day, err := models.ParseDay(c.Param("date"))
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "date", Message: "must be a YYYY-MM-DD date", Code: "invalid_format"},
		}))
		return models.Day{}, false
	}
	return day, true
}

// dateQuery parses an optional query parameter as a date, falling back to
// the given default when absent.
func dateQuery(c *gin.Context, name string, fallback models.Day) (models.Day, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: name, Message: "must be a YYYY-MM-DD date", Code: "invalid_format"},
		}))
		return models.Day{}, false
	}
	return day, true
}

// metricQuery parses the required metric query parameter.
func metricQuery(c *gin.Context) (models.MetricKey, bool) {
	key := models.MetricKey(c.Query("metric"))
	if !models.ValidMetricKey(key) {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "metric", Message: "must be a known metric key", Code: "unknown_metric"},
		}))
		return "", false
	}
	return key, true
}

// writeServiceError maps service-layer failures onto problem responses.
func writeServiceError(c *gin.Context, err error, resource, id string) {
	requestID := apierror.GetRequestID(c)
	if errors.Is(err, service.ErrNotFound) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, id))
		return
	}
	logger.WithContext(c.Request.Context()).Error("request failed",
		logger.String("resource", resource),
		logger.Err(err))
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}
