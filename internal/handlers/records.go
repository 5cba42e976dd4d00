package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wakewell/backend/internal/apierror"
	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/service"
)

type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// ImportRecords handles POST /api/v1/records/import
func (h *RecordHandler) ImportRecords(c *gin.Context) {
	var req models.ImportRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid import payload"))
		return
	}

	count, err := h.recordService.ImportRecords(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Record", "import")
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// UpsertRecord handles PUT /api/v1/records/:date
func (h *RecordHandler) UpsertRecord(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var record models.DailyRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid record payload"))
		return
	}
	// Path wins over any date in the body.
	record.Date = date

	saved, err := h.recordService.UpsertRecord(c.Request.Context(), &record)
	if err != nil {
		writeServiceError(c, err, "Record", date.String())
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetRecord handles GET /api/v1/records/:date
func (h *RecordHandler) GetRecord(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	record, err := h.recordService.GetRecord(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err, "Record", date.String())
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetRecords handles GET /api/v1/records?from=...&to=...
func (h *RecordHandler) GetRecords(c *gin.Context) {
	today := models.DayOf(timeNow())
	from, ok := dateQuery(c, "from", today.AddDays(-29))
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", today)
	if !ok {
		return
	}

	records, err := h.recordService.GetRecords(c.Request.Context(), from, to)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid date range"))
		return
	}

	c.JSON(http.StatusOK, records)
}
