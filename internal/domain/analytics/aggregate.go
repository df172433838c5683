package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dimension is a column rows can be grouped by.
type Dimension string

const (
	DimCarrier     Dimension = "carrier"
	DimCarrierKind Dimension = "carrier_kind"
	DimPartner     Dimension = "partner"
	DimSale        Dimension = "sale"
	DimPicking     Dimension = "picking"
	DimState       Dimension = "state"
	DimCompany     Dimension = "company"
	DimCountry     Dimension = "country"
	DimRegion      Dimension = "region"
	DimCity        Dimension = "city"
	DimZip         Dimension = "zip"
	DimShipDay     Dimension = "ship_day"
)

var dimensions = map[Dimension]func(Row) string{
	DimCarrier:     func(r Row) string { return r.CarrierID.String() },
	DimCarrierKind: func(r Row) string { return r.CarrierKind },
	DimPartner:     func(r Row) string { return uuidString(r.PartnerID) },
	DimSale:        func(r Row) string { return uuidString(r.SaleID) },
	DimPicking:     func(r Row) string { return uuidString(r.PickingID) },
	DimState:       func(r Row) string { return r.State },
	DimCompany:     func(r Row) string { return r.CompanyID.String() },
	DimCountry:     func(r Row) string { return r.CountryCode },
	DimRegion:      func(r Row) string { return r.Region },
	DimCity:        func(r Row) string { return r.City },
	DimZip:         func(r Row) string { return r.Zip },
	DimShipDay: func(r Row) string {
		if r.ShipDay == nil {
			return ""
		}
		return r.ShipDay.Format("2006-01-02")
	},
}

// ParseDimensions parses a comma separated group_by list.
func ParseDimensions(groupBy string) ([]Dimension, error) {
	var dims []Dimension
	for _, part := range strings.Split(groupBy, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d := Dimension(part)
		if _, ok := dimensions[d]; !ok {
			return nil, fmt.Errorf("unknown dimension %q", part)
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// Group holds the measures of the rows sharing the same dimension values.
// DeliveryDays is averaged over rows that have it; every other measure is summed.
type Group struct {
	Key          map[Dimension]string `json:"key"`
	ShippingCost decimal.Decimal      `json:"shipping_cost"`
	Packages     int                  `json:"packages"`
	Weight       decimal.Decimal      `json:"weight"`
	DeliveryDays float64              `json:"delivery_days"`
	Incidents    int                  `json:"incidents"`
	Count        int                  `json:"count"`
	SLADays      int                  `json:"sla_days"`
	OnTime       int                  `json:"on_time"`
	Overdue      int                  `json:"overdue"`
	Delivered    int                  `json:"delivered"`
	Returns      int                  `json:"returns"`

	deliveryDaysSum   float64
	deliveryDaysCount int
}

// Aggregate groups rows by dims. With no dims a single total group is returned.
// Groups are ordered by their key.
func Aggregate(rows []Row, dims []Dimension) []*Group {
	groups := make(map[string]*Group)
	var order []string

	for _, r := range rows {
		key := make(map[Dimension]string, len(dims))
		parts := make([]string, len(dims))
		for i, d := range dims {
			v := dimensions[d](r)
			key[d] = v
			parts[i] = v
		}
		k := strings.Join(parts, "\x00")

		g, ok := groups[k]
		if !ok {
			g = &Group{Key: key}
			groups[k] = g
			order = append(order, k)
		}
		g.add(r)
	}

	sort.Strings(order)
	out := make([]*Group, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if g.deliveryDaysCount > 0 {
			g.DeliveryDays = g.deliveryDaysSum / float64(g.deliveryDaysCount)
		}
		out = append(out, g)
	}
	return out
}

func (g *Group) add(r Row) {
	g.ShippingCost = g.ShippingCost.Add(r.ShippingCost)
	g.Packages += r.Packages
	g.Weight = g.Weight.Add(r.Weight)
	g.Incidents += r.IsIncident
	g.Count += r.Count
	g.SLADays += r.SLADays
	g.OnTime += r.IsOnTime
	g.Overdue += r.IsOverdue
	g.Delivered += r.IsDelivered
	g.Returns += r.IsReturn
	if r.DeliveryDays != nil {
		g.deliveryDaysSum += *r.DeliveryDays
		g.deliveryDaysCount++
	}
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
