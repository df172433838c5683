package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
)

// Row is the read-only report projection of one shipment.
type Row struct {
	ShipmentID   uuid.UUID  `json:"shipment_id"`
	ShipmentName string     `json:"shipment_name"`
	PickingID    *uuid.UUID `json:"picking_id,omitempty"`
	SaleID       *uuid.UUID `json:"sale_id,omitempty"`
	CarrierID    uuid.UUID  `json:"carrier_id"`
	CarrierKind  string     `json:"carrier_kind"`
	PartnerID    *uuid.UUID `json:"partner_id,omitempty"`
	State        string     `json:"state"`
	CompanyID    uuid.UUID  `json:"company_id"`

	CountryCode string `json:"country_code"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Zip         string `json:"zip"`

	ShipDate *time.Time `json:"ship_date,omitempty"`
	ShipDay  *time.Time `json:"ship_day,omitempty"`

	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Packages     int             `json:"packages"`
	Weight       decimal.Decimal `json:"weight"`
	DeliveryDays *float64        `json:"delivery_days,omitempty"`
	SLADays      int             `json:"sla_days"`

	Count       int `json:"count"`
	IsIncident  int `json:"is_incident"`
	IsDelivered int `json:"is_delivered"`
	IsReturn    int `json:"is_return"`
	IsOnTime    int `json:"is_on_time"`
	IsOverdue   int `json:"is_overdue"`
}

// BuildRow projects a shipment with its picking and recipient. p and recipient may be nil.
func BuildRow(s *shipment.Shipment, p *picking.Picking, recipient *partner.Partner, today time.Time) Row {
	row := Row{
		ShipmentID:   s.ID,
		ShipmentName: s.Name,
		PickingID:    s.PickingID,
		CarrierID:    s.CarrierID,
		CarrierKind:  s.CarrierKind,
		PartnerID:    s.PartnerID,
		State:        string(s.State),
		CompanyID:    s.CompanyID,
		ShippingCost: s.ShippingCost,
		Packages:     s.NumberOfPackages,
		Weight:       s.ShippingWeight,
		SLADays:      s.SLADays,
		Count:        1,
		IsIncident:   boolInt(s.State == shipment.StateIncident),
		IsDelivered:  boolInt(s.State == shipment.StateDelivered),
		IsReturn:     boolInt(s.IsReturn),
	}
	if p != nil {
		row.SaleID = p.SaleID
	}
	if recipient != nil {
		row.CountryCode = recipient.CountryCode
		row.Region = recipient.StateName
		row.City = recipient.City
		row.Zip = recipient.Zip
	}
	if s.ShipDate != nil {
		shipDate := *s.ShipDate
		day := shipment.DateOf(shipDate)
		row.ShipDate = &shipDate
		row.ShipDay = &day
	}
	if s.ShipDate != nil && s.DeliveryDate != nil {
		days := s.DeliveryDate.Sub(*s.ShipDate).Hours() / 24
		row.DeliveryDays = &days
	}

	if s.State == shipment.StateDelivered && s.DeliveryDate != nil && s.SLADeadline != nil &&
		!shipment.DateOf(*s.DeliveryDate).After(*s.SLADeadline) {
		row.IsOnTime = 1
	}
	if s.IsActive() && s.SLADeadline != nil && s.SLADeadline.Before(shipment.DateOf(today)) {
		row.IsOverdue = 1
	}
	return row
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
