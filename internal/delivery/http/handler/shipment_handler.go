package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/usecase/shipment"
	"shipping-management/pkg/utils"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

type ShipmentHandler struct {
	service *shipment.Service
}

func NewShipmentHandler(service *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.GET("", h.ListShipments)
		shipments.GET("/statistics", h.GetStatistics)
		shipments.GET("/:id", h.GetShipment)
		shipments.GET("/:id/labels", h.ListLabels)
		shipments.GET("/:id/tracking", h.GetTracking)
	}
}

// RegisterDispatcherRoutes mounts the routes that change shipment state.
func (h *ShipmentHandler) RegisterDispatcherRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.POST("", h.CreateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)
		shipments.POST("/actions", h.ApplyAction)
		shipments.POST("/:id/reprint-label", h.ReprintLabel)
		shipments.POST("/:id/return", h.GenerateReturn)
		shipments.POST("/:id/refresh-tracking", h.RefreshTracking)
	}
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req shipment.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.TrackingRef = utils.SanitizeString(req.TrackingRef)

	sh, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", shipment.ToShipmentResponse(sh, h.service.Now()))
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sh, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", shipment.ToShipmentResponse(sh, h.service.Now()))
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	var req shipment.ShipmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if req.Page == 0 {
		req.Page = defaultPage
	}
	if req.PageSize == 0 {
		req.PageSize = defaultPageSize
	}
	if err := shipment.ValidateFilter(&req); err != nil {
		respondWithError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), shipment.ToDomainFilter(&req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := shipment.ToShipmentListResponse(items, total, req.Page, req.PageSize, h.service.Now())
	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", resp)
}

func (h *ShipmentHandler) GetStatistics(c *gin.Context) {
	var req shipment.ShipmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if err := shipment.ValidateFilter(&req); err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), shipment.ToDomainFilter(&req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", shipment.ToStatisticsResponse(stats))
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment deleted successfully", nil)
}

func (h *ShipmentHandler) ApplyAction(c *gin.Context) {
	var req shipment.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ApplyAction(c.Request.Context(), req.Action, req.ShipmentIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Action applied", shipment.ToActionResponse(result, h.service.Now()))
}

func (h *ShipmentHandler) ListLabels(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	labels, err := h.service.Labels(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*shipment.LabelResponse, len(labels))
	for i, l := range labels {
		resp[i] = shipment.ToLabelResponse(l)
	}
	utils.SuccessResponse(c, http.StatusOK, "Labels retrieved successfully", resp)
}

func (h *ShipmentHandler) ReprintLabel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	label, err := h.service.ReprintLabel(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Label reprinted", shipment.ToLabelResponse(label))
}

func (h *ShipmentHandler) GenerateReturn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ret, err := h.service.GenerateReturn(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Return shipment created", shipment.ToShipmentResponse(ret, h.service.Now()))
}

func (h *ShipmentHandler) GetTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sh, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tracking retrieved successfully", shipment.ToTrackingResponse(sh))
}

func (h *ShipmentHandler) RefreshTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sh, err := h.service.RefreshTrackingByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tracking refreshed", shipment.ToTrackingResponse(sh))
}
