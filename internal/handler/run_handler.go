package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecomload/internal/service"
)

// RunHandler serves the ingest run ledger.
type RunHandler struct {
	reportService service.ReportService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(reportService service.ReportService) *RunHandler {
	return &RunHandler{reportService: reportService}
}

// List handles GET /api/v1/runs
func (h *RunHandler) List(c *gin.Context) {
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 || n > maxReportLimit {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'limit': must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.reportService.ListRuns(c.Request.Context(), c.Query("dataset"), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, runs, ListMeta{Count: len(runs), Limit: limit})
}
