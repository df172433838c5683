package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/user"
	"shipping-management/internal/logger"
	"shipping-management/internal/middleware"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, user.ErrUserAlreadyExists),
		errors.Is(err, shipment.ErrShipmentAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrUserInactive),
		errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, shipment.ErrShipmentNotFound),
		errors.Is(err, shipment.ErrLabelNotFound),
		errors.Is(err, carrier.ErrCarrierNotFound),
		errors.Is(err, carrier.ErrCredentialNotFound),
		errors.Is(err, partner.ErrPartnerNotFound),
		errors.Is(err, partner.ErrSaleOrderNotFound),
		errors.Is(err, picking.ErrPickingNotFound),
		errors.Is(err, attachment.ErrAttachmentNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, shipment.ErrInvalidState),
		errors.Is(err, shipment.ErrCarrierRequired),
		errors.Is(err, shipment.ErrReturnNotAllowed),
		errors.Is(err, shipment.ErrNoExpeditionCode),
		errors.Is(err, shipment.ErrNoTrackingReference),
		errors.Is(err, picking.ErrNoCarrier),
		errors.Is(err, picking.ErrNoSaleOrder),
		errors.Is(err, carrier.ErrInvalidKind),
		errors.Is(err, carrier.ErrInvalidService),
		errors.Is(err, user.ErrInvalidUserRole):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case appErrors.IsCarrierAPIError(err):
		utils.ErrorResponse(c, http.StatusBadGateway, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case appErrors.CodeNotFound:
				utils.ErrorResponse(c, http.StatusNotFound, appErr.Message)
			case appErrors.CodeUnauthorized:
				utils.ErrorResponse(c, http.StatusUnauthorized, appErr.Message)
			default:
				utils.ErrorResponse(c, http.StatusBadRequest, appErr.Error())
			}
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
	}
	return id, ok
}
