package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportRowModel maps one row of the shipment_report view
type ReportRowModel struct {
	ShipmentID   uuid.UUID
	ShipmentName string
	PickingID    *uuid.UUID
	SaleID       *uuid.UUID
	CarrierID    uuid.UUID
	CarrierKind  string
	PartnerID    *uuid.UUID
	State        string
	CompanyID    uuid.UUID
	CountryCode  string
	Region       string
	City         string
	Zip          string
	ShipDate     *time.Time
	ShipDay      *time.Time
	ShippingCost decimal.Decimal
	Packages     int
	Weight       decimal.Decimal
	DeliveryDays *float64
	SLADays      int `gorm:"column:sla_days"`
	Count        int
	IsIncident   int
	IsDelivered  int
	IsReturn     int
	IsOnTime     int
	IsOverdue    int
}

func (ReportRowModel) TableName() string {
	return "shipment_report"
}
