// controllers/report.go
package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"printshop-backend/services"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultReportDays = 7

// ReportController handles all reporting functions
type ReportController struct {
	reports *services.ReportingEngine
	log     *zap.Logger
}

func NewReportController(reports *services.ReportingEngine, log *zap.Logger) *ReportController {
	return &ReportController{reports: reports, log: log}
}

// reportDays reads ?days=, defaulting to a week. Range checks happen in the
// reporting engine.
func reportDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return defaultReportDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "days must be a whole number")
		return 0, false
	}
	return days, true
}

// GetDailyRevenue returns one point per day, oldest first
func (rc *ReportController) GetDailyRevenue(c *gin.Context) {
	days, ok := reportDays(c)
	if !ok {
		return
	}

	series, err := rc.reports.DailyRevenue(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, rc.log, err, "Report")
		return
	}

	c.JSON(http.StatusOK, series)
}

func (rc *ReportController) GetServiceDistribution(c *gin.Context) {
	dist, err := rc.reports.ServiceDistribution(c.Request.Context())
	if err != nil {
		respondServiceError(c, rc.log, err, "Report")
		return
	}

	c.JSON(http.StatusOK, dist)
}

func (rc *ReportController) GetRevenueSummary(c *gin.Context) {
	days, ok := reportDays(c)
	if !ok {
		return
	}

	summary, err := rc.reports.RevenueSummary(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, rc.log, err, "Report")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportDailyRevenue serves the daily series as a CSV download
func (rc *ReportController) ExportDailyRevenue(c *gin.Context) {
	days, ok := reportDays(c)
	if !ok {
		return
	}

	series, err := rc.reports.DailyRevenue(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, rc.log, err, "Report")
		return
	}

	var buf bytes.Buffer
	if err := services.WriteDailyCSV(&buf, series); err != nil {
		respondServiceError(c, rc.log, err, "Report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="revenue-report.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
