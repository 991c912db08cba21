package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
)

// reportingHandler handles the aggregate reporting endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/occupancy-trend", h.occupancyTrend)
		reports.GET("/statistics", h.statistics)
	}
}

func (h *reportingHandler) occupancyTrend(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	trend, err := h.reportingService.OccupancyTrend(c.Request.Context(), userID, months)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Occupancy trend", trend)
}

func (h *reportingHandler) statistics(c *gin.Context) {
	stats, err := h.reportingService.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Statistics", stats)
}
