package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/usecase/analytics"
	"shipping-management/pkg/utils"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/shipments", h.Report)
}

// Report returns the shipment report grouped by the comma separated group_by dimensions.
func (h *AnalyticsHandler) Report(c *gin.Context) {
	var req analytics.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	report, err := h.service.Report(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report generated", report)
}
