package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/usecase/dispatch"
	"shipping-management/internal/usecase/shipment"
	"shipping-management/pkg/utils"
)

// DispatchHandler exposes the delivery order operations that talk to a carrier.
type DispatchHandler struct {
	service   *dispatch.Service
	shipments *shipment.Service
}

func NewDispatchHandler(service *dispatch.Service, shipments *shipment.Service) *DispatchHandler {
	return &DispatchHandler{service: service, shipments: shipments}
}

func (h *DispatchHandler) RegisterRoutes(router *gin.RouterGroup) {
	pickings := router.Group("/pickings")
	{
		pickings.POST("/batch-send", h.BatchSend)
		pickings.POST("/:id/send", h.SendToShipper)
		pickings.POST("/:id/cancel-shipment", h.CancelShipment)
		pickings.POST("/:id/pickup", h.Pickup)
		pickings.GET("/:id/rates", h.CompareRates)
		pickings.POST("/:id/rates/select", h.SelectRate)
	}
}

func (h *DispatchHandler) SendToShipper(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sh, err := h.service.SendToShipper(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Delivery order sent to carrier", shipment.ToShipmentResponse(sh, h.shipments.Now()))
}

func (h *DispatchHandler) BatchSend(c *gin.Context) {
	var req dispatch.BatchSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.BatchSend(c.Request.Context(), req.PickingIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Batch send finished", result)
}

func (h *DispatchHandler) CancelShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.CancelPickingShipment(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment cancelled", nil)
}

func (h *DispatchHandler) Pickup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dispatch.PickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	for i := range req.Fields {
		req.Fields[i].Value = utils.SingleLine(req.Fields[i].Value)
	}

	answer, err := h.service.Pickup(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pickup scheduled", &dispatch.PickupResponse{Answer: answer})
}

func (h *DispatchHandler) CompareRates(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	options, err := h.service.CompareRates(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rates compared", options)
}

func (h *DispatchHandler) SelectRate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dispatch.SelectRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SelectRate(c.Request.Context(), id, req.Selected); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rate selected", nil)
}
