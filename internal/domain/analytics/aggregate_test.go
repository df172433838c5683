package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/shipment"
)

func TestReportProjection(t *testing.T) {
	today := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	ptr := func(t time.Time) *time.Time { return &t }

	Convey("Given delivered and overdue shipments", t, func() {
		delivered := &shipment.Shipment{
			ID: uuid.New(), State: shipment.StateDelivered, CarrierKind: "nacex",
			ShippingCost: decimal.RequireFromString("7.50"), NumberOfPackages: 2,
			ShippingWeight: decimal.RequireFromString("1.5"),
			ShipDate:       ptr(today.AddDate(0, 0, -4)), DeliveryDate: ptr(today.AddDate(0, 0, -2)),
		}
		delivered.ApplySLA(3)

		late := &shipment.Shipment{
			ID: uuid.New(), State: shipment.StateInTransit, CarrierKind: "nacex",
			ShippingCost: decimal.RequireFromString("5"), NumberOfPackages: 1,
			ShippingWeight: decimal.RequireFromString("2"),
			ShipDate:       ptr(today.AddDate(0, 0, -6)),
		}
		late.ApplySLA(3)

		fixed := &shipment.Shipment{ID: uuid.New(), State: shipment.StateIncident, CarrierKind: "fixed", NumberOfPackages: 1}

		recipient := &partner.Partner{City: "MADRID", Zip: "28001", CountryCode: "ES"}
		rows := []Row{
			BuildRow(delivered, nil, recipient, today),
			BuildRow(late, nil, recipient, today),
			BuildRow(fixed, nil, nil, today),
		}

		Convey("rows carry the KPI indicators", func() {
			So(rows[0].IsOnTime, ShouldEqual, 1)
			So(rows[0].IsDelivered, ShouldEqual, 1)
			So(*rows[0].DeliveryDays, ShouldAlmostEqual, 2.0)
			So(rows[1].IsOverdue, ShouldEqual, 1)
			So(rows[1].IsOnTime, ShouldEqual, 0)
			So(rows[2].IsIncident, ShouldEqual, 1)
			So(rows[0].City, ShouldEqual, "MADRID")
		})

		Convey("grouping by carrier kind sums measures and averages delivery days", func() {
			dims, err := ParseDimensions("carrier_kind")
			So(err, ShouldBeNil)

			groups := Aggregate(rows, dims)
			So(len(groups), ShouldEqual, 2)
			So(groups[0].Key[DimCarrierKind], ShouldEqual, "fixed")

			nacex := groups[1]
			So(nacex.Count, ShouldEqual, 2)
			So(nacex.Packages, ShouldEqual, 3)
			So(nacex.ShippingCost.String(), ShouldEqual, "12.5")
			So(nacex.Weight.String(), ShouldEqual, "3.5")
			So(nacex.DeliveryDays, ShouldAlmostEqual, 2.0)
			So(nacex.OnTime, ShouldEqual, 1)
			So(nacex.Overdue, ShouldEqual, 1)
		})

		Convey("no dimensions yields one total", func() {
			groups := Aggregate(rows, nil)
			So(len(groups), ShouldEqual, 1)
			So(groups[0].Count, ShouldEqual, 3)
			So(groups[0].Incidents, ShouldEqual, 1)
		})

		Convey("unknown dimensions are rejected", func() {
			_, err := ParseDimensions("carrier,colour")
			So(err, ShouldNotBeNil)
		})
	})
}
