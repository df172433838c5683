package picking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateDraft    State = "draft"
	StateWaiting  State = "waiting"
	StateAssigned State = "assigned"
	StateDone     State = "done"
	StateCancel   State = "cancel"
)

// Picking is an outbound delivery order. Shipments attach to it.
type Picking struct {
	ID    uuid.UUID
	Name  string
	State State

	PartnerID          uuid.UUID
	WarehousePartnerID uuid.UUID
	SaleID             *uuid.UUID
	CompanyID          uuid.UUID

	Origin           string
	Note             string
	ShippingWeight   decimal.Decimal
	NumberOfPackages int

	CarrierID          *uuid.UUID
	CarrierPrice       decimal.Decimal
	CarrierTrackingRef string
	ExpeditionCode     string
	// AgencyRef is the external reference of the carrier agency serving the picking, if any.
	AgencyRef string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDispatchReady reports whether the picking may be handed to a carrier.
func (p *Picking) IsDispatchReady() bool {
	return p.State == StateAssigned || p.State == StateDone
}

// ClientReference is the reference printed on carrier documents.
func (p *Picking) ClientReference() string {
	if p.Origin != "" {
		return p.Origin
	}
	return p.Name
}

// PackageCount returns the package hint, defaulting to one.
func (p *Picking) PackageCount() int {
	if p.NumberOfPackages > 0 {
		return p.NumberOfPackages
	}
	return 1
}
