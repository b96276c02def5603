package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns today's headline figures
func (rc *ReportController) GetDashboard(c *gin.Context) {
	metrics, err := rc.reports.DashboardMetrics(c.Request.Context())
	if err != nil {
		respondServiceError(c, rc.log, err, "Dashboard")
		return
	}

	c.JSON(http.StatusOK, metrics)
}
