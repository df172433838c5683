package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentModel represents the database model for Shipments
type ShipmentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	State     string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	CompanyID uuid.UUID `gorm:"type:uuid;index"`

	// A picking records one shipment per tracking reference.
	PickingID   *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_shipments_picking_tracking,where:tracking_ref <> ''"`
	CarrierID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CarrierKind string     `gorm:"type:varchar(20);not null"`
	PartnerID   *uuid.UUID `gorm:"type:uuid;index"`

	TrackingRef         string     `gorm:"type:varchar(128);index;uniqueIndex:idx_shipments_picking_tracking"`
	TrackingURL         string     `gorm:"type:text"`
	ExpeditionCode      string     `gorm:"type:varchar(128)"`
	LastTrackingUpdate  *time.Time `gorm:"type:timestamptz"`
	TrackingStatusRaw   string     `gorm:"type:text"`
	TrackingHistoryHTML string     `gorm:"type:text"`

	Origin           string          `gorm:"type:varchar(255)"`
	ShippingWeight   decimal.Decimal `gorm:"type:numeric(10,3);not null;default:0"`
	NumberOfPackages int             `gorm:"type:integer;not null;default:1"`
	ShippingCost     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	ShipDate     *time.Time `gorm:"type:timestamptz;index"`
	DeliveryDate *time.Time `gorm:"type:timestamptz"`

	SLADays     int        `gorm:"column:sla_days;type:integer;not null;default:0"`
	SLADeadline *time.Time `gorm:"column:sla_deadline;type:timestamptz;index"`

	ReturnShipmentID   *uuid.UUID `gorm:"type:uuid"`
	OriginalShipmentID *uuid.UUID `gorm:"type:uuid"`
	IsReturn           bool       `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// LabelModel points a shipment at a stored label attachment
type LabelModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	ShipmentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AttachmentID uuid.UUID `gorm:"type:uuid;not null"`
	Kind         string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (LabelModel) TableName() string {
	return "shipment_labels"
}

// SequenceModel backs gap-tolerant name allocation, one row per prefix and year
type SequenceModel struct {
	Key   string `gorm:"type:varchar(64);primary_key"`
	Value int    `gorm:"type:integer;not null"`
}

func (SequenceModel) TableName() string {
	return "name_sequences"
}
