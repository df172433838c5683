package shipment

import (
	"fmt"

	domainShipment "shipping-management/internal/domain/shipment"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

// ValidateFilter checks the list filter before it reaches the repository.
func ValidateFilter(req *ShipmentFilterRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	if req.State != nil && !req.State.Valid() {
		return appErrors.NewAppError(
			appErrors.CodeValidation,
			fmt.Sprintf("Unknown shipment state: %s", *req.State),
			domainShipment.ErrInvalidState,
		)
	}
	if req.ShipDateFrom != nil && req.ShipDateTo != nil && req.ShipDateTo.Before(*req.ShipDateFrom) {
		return appErrors.NewAppError(appErrors.CodeValidation, "ship_date_to must not be before ship_date_from", nil)
	}
	return nil
}

func validAction(action domainShipment.Action) bool {
	switch action {
	case domainShipment.ActionConfirm, domainShipment.ActionCancel, domainShipment.ActionMarkInTransit,
		domainShipment.ActionMarkDelivered, domainShipment.ActionMarkReturned,
		domainShipment.ActionResetToDraft:
		return true
	}
	return false
}
