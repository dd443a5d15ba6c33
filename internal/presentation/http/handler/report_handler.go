package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafepos-api/internal/application/service"
	"github.com/sangkips/cafepos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily handles the daily sales report
// @Summary Daily Sales Report
// @Description Sales totals, tender breakdown, category breakdown, and top items for one business day
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param date query string false "Business date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.APIResponse
// @Router /reports/daily [get]
func (h *ReportHandler) Daily(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date format, use YYYY-MM-DD")
			return
		}
		date = parsed
	}

	report, err := h.reportService.DailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", gin.H{"report": report})
}

// Monthly handles the monthly sales report
// @Summary Monthly Sales Report
// @Description Per-day sales rows and month totals
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} response.APIResponse
// @Router /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(c, "Invalid year")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.BadRequest(c, "Invalid month")
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), year, time.Month(month))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report retrieved successfully", gin.H{"report": report})
}
