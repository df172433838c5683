package dispatch

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainCarrier "shipping-management/internal/domain/carrier"
)

// Request DTOs
type BatchSendRequest struct {
	PickingIDs []uuid.UUID `json:"picking_ids" validate:"required,min=1,dive,required"`
}

type SelectRateRequest struct {
	Selected []RateOption `json:"selected"`
}

type PickupField struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type PickupRequest struct {
	Fields []PickupField `json:"fields" validate:"required,min=1,dive"`
}

// Response DTOs
type BatchError struct {
	PickingID   uuid.UUID `json:"picking_id"`
	PickingName string    `json:"picking_name"`
	Message     string    `json:"message"`
}

type BatchResult struct {
	Succeeded int          `json:"succeeded"`
	Errors    []BatchError `json:"errors"`
	Skipped   int          `json:"skipped"`
}

type RateOption struct {
	CarrierID      uuid.UUID                  `json:"carrier_id"`
	CarrierName    string                     `json:"carrier_name"`
	Kind           domainCarrier.ProviderKind `json:"kind"`
	Success        bool                       `json:"success"`
	Price          decimal.Decimal            `json:"price"`
	ErrorMessage   string                     `json:"error_message,omitempty"`
	WarningMessage string                     `json:"warning_message,omitempty"`
}

type PickupResponse struct {
	Answer string `json:"answer"`
}
