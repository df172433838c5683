package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for shipment repository operations
type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	Update(ctx context.Context, shipment *Shipment) error
	Delete(ctx context.Context, shipmentID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Shipment, int64, error)

	// FindByPickingAndTracking returns ErrShipmentNotFound when no shipment matches.
	FindByPickingAndTracking(ctx context.Context, pickingID uuid.UUID, trackingRef string) (*Shipment, error)
	ListByPicking(ctx context.Context, pickingID uuid.UUID) ([]*Shipment, error)

	// ListTrackable returns shipments in one of states carrying both a carrier and a tracking reference.
	ListTrackable(ctx context.Context, states []State) ([]*Shipment, error)
	// ListPastDeadline returns shipments in one of states whose SLA deadline is strictly before day.
	ListPastDeadline(ctx context.Context, states []State, day time.Time) ([]*Shipment, error)

	// NextName allocates the next unique shipment name from the sequence.
	NextName(ctx context.Context, prefix string, year int) (string, error)

	CreateLabel(ctx context.Context, label *Label) error
	GetLabel(ctx context.Context, labelID uuid.UUID) (*Label, error)
	ListLabels(ctx context.Context, shipmentID uuid.UUID) ([]*Label, error)
}

// Filter represents filtering options for listing shipments
type Filter struct {
	State       *State
	CarrierID   *uuid.UUID
	CarrierKind string
	PickingID   *uuid.UUID
	PartnerID   *uuid.UUID
	CompanyID   *uuid.UUID
	IsReturn    *bool

	// Date range filters
	ShipDateFrom *time.Time
	ShipDateTo   *time.Time

	// Search matches name, tracking reference and origin
	Search string

	// Pagination
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
