package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecomload/internal/csvexport"
	"ecomload/internal/domain"
	"ecomload/internal/middleware"
	"ecomload/internal/service"
)

// maxReportLimit caps the limit query parameter.
const maxReportLimit = 1000

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseReportFilters extracts common report filter parameters from query params.
func parseReportFilters(c *gin.Context) (domain.ReportFilters, error) {
	var filters domain.ReportFilters
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxReportLimit {
			return filters, fmt.Errorf("invalid 'limit': must be an integer between 1 and %d", maxReportLimit)
		}
		filters.Limit = limit
	}
	return filters, nil
}

// States handles GET /api/v1/reports/states
func (h *ReportHandler) States(c *gin.Context) {
	h.report(c, domain.ReportStates, "")
}

// Orders handles GET /api/v1/reports/orders
func (h *ReportHandler) Orders(c *gin.Context) {
	h.report(c, domain.ReportOrders, "")
}

// Delivery handles GET /api/v1/reports/delivery
func (h *ReportHandler) Delivery(c *gin.Context) {
	h.report(c, domain.ReportDelivery, "")
}

// Collection handles GET /api/v1/reports/collections/:name
func (h *ReportHandler) Collection(c *gin.Context) {
	name := c.Param("name")
	if c.Query("format") == "csv" {
		h.report(c, domain.ReportCollection, name)
		return
	}

	overview, err := h.reportService.CollectionOverview(c.Request.Context(), name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, overview)
}

func (h *ReportHandler) report(c *gin.Context, name, collection string) {
	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'format': must be json or csv")
		return
	}

	rows, err := h.reportService.Rows(c.Request.Context(), name, collection, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	if format == "csv" {
		filename := name
		if collection != "" {
			filename = collection + "_overview"
		}
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(filename)))
		c.Status(http.StatusOK)
		if err := csvexport.Encode(c.Writer, rows, true); err != nil {
			middleware.GetLogger(c).WithError(err).Error("writing csv report")
		}
		return
	}

	RespondList(c, rows, ListMeta{Count: rowCount(rows), Limit: filters.Limit})
}

func rowCount(rows interface{}) int {
	switch r := rows.(type) {
	case []domain.StateRevenueRow:
		return len(r)
	case []domain.OrderValueRow:
		return len(r)
	case []domain.DeliveryTimeRow:
		return len(r)
	case []domain.FieldNullCount:
		return len(r)
	}
	return 0
}
