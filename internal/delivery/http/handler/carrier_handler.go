package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/usecase/carrier"
	"shipping-management/pkg/utils"
)

type CarrierHandler struct {
	service *carrier.Service
}

func NewCarrierHandler(service *carrier.Service) *CarrierHandler {
	return &CarrierHandler{service: service}
}

func (h *CarrierHandler) RegisterRoutes(router *gin.RouterGroup) {
	carriers := router.Group("/carriers")
	{
		carriers.GET("", h.ListCarriers)
		carriers.GET("/nacex/services", h.NacexServices)
		carriers.GET("/:id", h.GetCarrier)
		carriers.GET("/:id/cities", h.Cities)
	}
}

// RegisterManagerRoutes mounts carrier configuration and credential management.
func (h *CarrierHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	carriers := router.Group("/carriers")
	{
		carriers.POST("", h.CreateCarrier)
		carriers.PUT("/:id", h.UpdateCarrier)
		carriers.POST("/:id/test-connection", h.TestConnection)
	}

	credentials := router.Group("/carrier-credentials")
	{
		credentials.GET("", h.ListCredentials)
		credentials.POST("", h.CreateCredential)
		credentials.PUT("/:id", h.UpdateCredential)
	}
}

func (h *CarrierHandler) CreateCarrier(c *gin.Context) {
	var req carrier.CarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Carrier created successfully", carrier.ToCarrierResponse(created))
}

func (h *CarrierHandler) UpdateCarrier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req carrier.CarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Carrier updated successfully", carrier.ToCarrierResponse(updated))
}

func (h *CarrierHandler) GetCarrier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Carrier retrieved successfully", carrier.ToCarrierResponse(found))
}

func (h *CarrierHandler) ListCarriers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	carriers, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*carrier.CarrierResponse, len(carriers))
	for i, item := range carriers {
		resp[i] = carrier.ToCarrierResponse(item)
	}
	utils.SuccessResponse(c, http.StatusOK, "Carriers retrieved successfully", resp)
}

func (h *CarrierHandler) NacexServices(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "NACEX services", h.service.NacexServices())
}

func (h *CarrierHandler) TestConnection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req carrier.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.TestConnection(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Connection successful", resp)
}

func (h *CarrierHandler) Cities(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req carrier.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.Cities(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cities retrieved successfully", resp)
}

func (h *CarrierHandler) CreateCredential(c *gin.Context) {
	var req carrier.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cred, err := h.service.CreateCredential(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Credential created successfully", carrier.ToCredentialResponse(cred))
}

func (h *CarrierHandler) UpdateCredential(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req carrier.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cred, err := h.service.UpdateCredential(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Credential updated successfully", carrier.ToCredentialResponse(cred))
}

func (h *CarrierHandler) ListCredentials(c *gin.Context) {
	creds, err := h.service.ListCredentials(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]*carrier.CredentialResponse, len(creds))
	for i, cred := range creds {
		resp[i] = carrier.ToCredentialResponse(cred)
	}
	utils.SuccessResponse(c, http.StatusOK, "Credentials retrieved successfully", resp)
}
