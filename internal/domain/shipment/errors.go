package shipment

import "errors"

var (
	ErrShipmentNotFound      = errors.New("shipment not found")
	ErrShipmentAlreadyExists = errors.New("shipment already exists")
	ErrLabelNotFound         = errors.New("label not found")
	ErrInvalidState          = errors.New("invalid shipment state")
	ErrCarrierRequired       = errors.New("carrier is required")
	ErrReturnNotAllowed      = errors.New("a return cannot be generated for this shipment")
	ErrNoExpeditionCode      = errors.New("shipment has no expedition code")
	ErrNoTrackingReference   = errors.New("shipment has no tracking reference")
)
