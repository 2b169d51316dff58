package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
	"github.com/rentledger/rentledger/internal/middleware"
)

// reportingHandler handles the read-only rollup routes.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/properties", h.propertyReport)
		reports.GET("/dashboard", h.dashboard)
	}
}

// referenceDateParam reads the optional as_of query param (YYYY-MM-DD),
// defaulting to today.
func referenceDateParam(c *gin.Context) (time.Time, bool) {
	asOf := c.Query("as_of")
	if asOf == "" {
		return time.Now().UTC(), true
	}
	ref, err := time.Parse("2006-01-02", asOf)
	if err != nil {
		return time.Time{}, false
	}
	return ref, true
}

// propertyReport godoc
// @Summary Property rollup report
// @Description Groups all accruals by property (address fallback for contracts without one) with sums, status counts and a rollup status as of the reference date
// @Tags reports
// @Produce json
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.PropertyReportResponse
// @Failure 400 {object} map[string]string "Invalid reference date"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/properties [get]
func (h *reportingHandler) propertyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref, ok := referenceDateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid as_of date, expected YYYY-MM-DD"})
		return
	}

	groups, err := h.reportingService.PropertyReport(c.Request.Context(), ref)
	if err != nil {
		logger.Error("Failed to build property report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.PropertyReportResponse{Groups: dto.ToPropertyGroupResponses(groups)})
}

// dashboard godoc
// @Summary Dashboard KPI rollup
// @Description Computes the global totals, overdue figures and collection rate as of the reference date
// @Tags reports
// @Produce json
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid reference date"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref, ok := referenceDateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid as_of date, expected YYYY-MM-DD"})
		return
	}

	kpi, err := h.reportingService.DashboardKPI(c.Request.Context(), ref)
	if err != nil {
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(*kpi))
}
