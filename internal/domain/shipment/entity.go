package shipment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State represents the lifecycle state of a shipment
type State string

const (
	StateDraft     State = "draft"
	StateConfirmed State = "confirmed"
	StateInTransit State = "in_transit"
	StateIncident  State = "incident"
	StateDelivered State = "delivered"
	StateCancelled State = "cancelled"
	StateReturned  State = "returned"
)

func (s State) Valid() bool {
	switch s {
	case StateDraft, StateConfirmed, StateInTransit, StateIncident,
		StateDelivered, StateCancelled, StateReturned:
		return true
	}
	return false
}

// SLAStatus is derived from the state, ship/delivery dates and the carrier SLA days.
type SLAStatus string

const (
	SLAOnTime  SLAStatus = "on_time"
	SLAWarning SLAStatus = "warning"
	SLAOverdue SLAStatus = "overdue"
	SLANA      SLAStatus = "na"
)

type LabelKind string

const (
	LabelShipping LabelKind = "shipping"
	LabelReturn   LabelKind = "return"
	LabelReprint  LabelKind = "reprint"
)

// PlaceholderName is carried by a shipment until the sequence assigns its real name.
const PlaceholderName = "New"

// Shipment is the core aggregate: one dispatch of a delivery order through a carrier.
type Shipment struct {
	ID        uuid.UUID
	Name      string
	State     State
	CompanyID uuid.UUID

	PickingID   *uuid.UUID
	CarrierID   uuid.UUID
	CarrierKind string
	PartnerID   *uuid.UUID

	// Tracking
	TrackingRef         string
	TrackingURL         string
	ExpeditionCode      string
	LastTrackingUpdate  *time.Time
	TrackingStatusRaw   string
	TrackingHistoryHTML string

	// Goods
	Origin           string
	ShippingWeight   decimal.Decimal
	NumberOfPackages int
	ShippingCost     decimal.Decimal

	// Timing
	ShipDate     *time.Time
	DeliveryDate *time.Time

	// SLA, cached from the carrier when the shipment is written
	SLADays     int
	SLADeadline *time.Time

	// Returns
	ReturnShipmentID   *uuid.UUID
	OriginalShipmentID *uuid.UUID
	IsReturn           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label is a PDF document identifying an expedition. The binary lives in the attachment store.
type Label struct {
	ID           uuid.UUID
	Name         string
	ShipmentID   uuid.UUID
	AttachmentID uuid.UUID
	Kind         LabelKind
	CreatedAt    time.Time
}

// LabelName builds the display name of a label from its shipment, tracking reference and kind.
func LabelName(shipmentName, trackingRef string, kind LabelKind) string {
	if trackingRef == "" {
		return fmt.Sprintf("%s (%s)", shipmentName, kind)
	}
	return fmt.Sprintf("%s - %s (%s)", shipmentName, trackingRef, kind)
}

// LabelFileName is the attachment file name used for labels; downstream printing matches "Label*".
func LabelFileName(shipmentName, trackingRef string, kind LabelKind) string {
	ref := trackingRef
	if ref == "" {
		ref = shipmentName
	}
	return fmt.Sprintf("Label-%s-%s.pdf", sanitizeFileName(ref), kind)
}

func sanitizeFileName(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == '/' || r == '\\' || r == ' ' {
			out[i] = '_'
		}
	}
	return string(out)
}

// IsActive reports whether the shipment is still travelling and subject to SLA monitoring.
func (s *Shipment) IsActive() bool {
	return s.State == StateConfirmed || s.State == StateInTransit || s.State == StateIncident
}

// CanGenerateReturn reports whether a reverse shipment may be created for s.
func (s *Shipment) CanGenerateReturn() bool {
	if s.IsReturn || s.ReturnShipmentID != nil {
		return false
	}
	switch s.State {
	case StateInTransit, StateDelivered, StateIncident:
		return true
	}
	return false
}

// ApplySLA caches the carrier SLA days and recomputes the deadline.
func (s *Shipment) ApplySLA(slaDays int) {
	s.SLADays = slaDays
	s.SLADeadline = SLADeadline(s.ShipDate, slaDays)
}

// Statistics is a small in-service summary used by the dashboard endpoint.
type Statistics struct {
	TotalShipments int
	ByState        map[string]int
	Active         int
	Overdue        int
}
