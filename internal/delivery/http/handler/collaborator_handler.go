package handler

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/domain/record"
	"shipping-management/internal/usecase/collaborator"
	"shipping-management/pkg/utils"
)

// CollaboratorHandler serves the records the shipping flow depends on: partners, sale orders,
// delivery orders, their attachments, and the chatter around them.
type CollaboratorHandler struct {
	service *collaborator.Service
}

func NewCollaboratorHandler(service *collaborator.Service) *CollaboratorHandler {
	return &CollaboratorHandler{service: service}
}

func (h *CollaboratorHandler) RegisterRoutes(router *gin.RouterGroup) {
	partners := router.Group("/partners")
	{
		partners.GET("", h.ListPartners)
		partners.POST("", h.CreatePartner)
		partners.GET("/:id", h.GetPartner)
		partners.PUT("/:id", h.UpdatePartner)
	}

	orders := router.Group("/sale-orders")
	{
		orders.POST("", h.CreateSaleOrder)
		orders.GET("/:id", h.GetSaleOrder)
	}

	pickings := router.Group("/pickings")
	{
		pickings.GET("", h.ListPickings)
		pickings.POST("", h.CreatePicking)
		pickings.GET("/:id", h.GetPicking)
		pickings.PUT("/:id", h.UpdatePicking)
		pickings.POST("/:id/attachments", h.AttachToPicking)
	}

	records := router.Group("/records/:model/:id")
	{
		records.GET("/attachments", h.ListAttachments)
		records.GET("/messages", h.Thread)
		records.GET("/activities", h.Activities)
	}

	attachments := router.Group("/attachments")
	{
		attachments.GET("/:id/download", h.DownloadAttachment)
	}

	me := router.Group("/me")
	{
		me.GET("/messages", h.Inbox)
		me.GET("/activities", h.MyActivities)
		me.POST("/activities/:id/done", h.CompleteActivity)
	}
}

func (h *CollaboratorHandler) CreatePartner(c *gin.Context) {
	var req collaborator.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.CreatePartner(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Partner created successfully", collaborator.ToPartnerResponse(p))
}

func (h *CollaboratorHandler) UpdatePartner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req collaborator.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.UpdatePartner(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Partner updated successfully", collaborator.ToPartnerResponse(p))
}

func (h *CollaboratorHandler) GetPartner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPartner(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Partner retrieved successfully", collaborator.ToPartnerResponse(p))
}

func (h *CollaboratorHandler) ListPartners(c *gin.Context) {
	partners, err := h.service.ListPartners(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.PartnerResponse, len(partners))
	for i, p := range partners {
		resp[i] = collaborator.ToPartnerResponse(p)
	}
	utils.SuccessResponse(c, http.StatusOK, "Partners retrieved successfully", resp)
}

func (h *CollaboratorHandler) CreateSaleOrder(c *gin.Context) {
	var req collaborator.SaleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.service.CreateSaleOrder(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Sale order created successfully", collaborator.ToSaleOrderResponse(o))
}

func (h *CollaboratorHandler) GetSaleOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetSaleOrder(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sale order retrieved successfully", collaborator.ToSaleOrderResponse(o))
}

func (h *CollaboratorHandler) CreatePicking(c *gin.Context) {
	var req collaborator.PickingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Note = utils.SanitizeString(req.Note)

	p, err := h.service.CreatePicking(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Delivery order created successfully", collaborator.ToPickingResponse(p))
}

func (h *CollaboratorHandler) UpdatePicking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req collaborator.PickingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Note = utils.SanitizeString(req.Note)

	p, err := h.service.UpdatePicking(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery order updated successfully", collaborator.ToPickingResponse(p))
}

func (h *CollaboratorHandler) GetPicking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPicking(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Delivery order retrieved successfully", collaborator.ToPickingResponse(p))
}

func (h *CollaboratorHandler) ListPickings(c *gin.Context) {
	pickings, err := h.service.ListPickings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.PickingResponse, len(pickings))
	for i, p := range pickings {
		resp[i] = collaborator.ToPickingResponse(p)
	}
	utils.SuccessResponse(c, http.StatusOK, "Delivery orders retrieved successfully", resp)
}

func (h *CollaboratorHandler) AttachToPicking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req collaborator.AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := h.service.AttachToPicking(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Attachment stored", collaborator.ToAttachmentResponse(a))
}

func (h *CollaboratorHandler) DownloadAttachment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetAttachment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	c.Data(http.StatusOK, a.MimeType, a.Data)
}

func (h *CollaboratorHandler) ListAttachments(c *gin.Context) {
	ref, ok := recordRef(c)
	if !ok {
		return
	}

	items, err := h.service.ListAttachments(c.Request.Context(), ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.AttachmentResponse, len(items))
	for i, a := range items {
		resp[i] = collaborator.ToAttachmentResponse(a)
	}
	utils.SuccessResponse(c, http.StatusOK, "Attachments retrieved successfully", resp)
}

func (h *CollaboratorHandler) Thread(c *gin.Context) {
	ref, ok := recordRef(c)
	if !ok {
		return
	}

	msgs, err := h.service.Thread(c.Request.Context(), ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.MessageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = collaborator.ToMessageResponse(m)
	}
	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", resp)
}

func (h *CollaboratorHandler) Activities(c *gin.Context) {
	ref, ok := recordRef(c)
	if !ok {
		return
	}

	items, err := h.service.Activities(c.Request.Context(), ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.ActivityResponse, len(items))
	for i, a := range items {
		resp[i] = collaborator.ToActivityResponse(a)
	}
	utils.SuccessResponse(c, http.StatusOK, "Activities retrieved successfully", resp)
}

func (h *CollaboratorHandler) Inbox(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	msgs, err := h.service.Inbox(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.MessageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = collaborator.ToMessageResponse(m)
	}
	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", resp)
}

func (h *CollaboratorHandler) MyActivities(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.service.MyActivities(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*collaborator.ActivityResponse, len(items))
	for i, a := range items {
		resp[i] = collaborator.ToActivityResponse(a)
	}
	utils.SuccessResponse(c, http.StatusOK, "Activities retrieved successfully", resp)
}

func (h *CollaboratorHandler) CompleteActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.CompleteActivity(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Activity completed", collaborator.ToActivityResponse(a))
}

func recordRef(c *gin.Context) (record.Ref, bool) {
	model := record.Model(c.Param("model"))
	switch model {
	case record.ModelShipment, record.ModelPicking, record.ModelSaleOrder:
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown record model")
		return record.Ref{}, false
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return record.Ref{}, false
	}
	return record.Ref{Model: model, ID: id}, true
}
