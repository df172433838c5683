package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zoobzio/clockz"

	domainAnalytics "shipping-management/internal/domain/analytics"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/infrastructure/memory"
	appErrors "shipping-management/pkg/errors"
)

func TestReport(t *testing.T) {
	Convey("Given shipments of two carrier kinds", t, func() {
		ctx := context.Background()
		clock := clockz.NewFakeClock()
		store := memory.NewStore()
		shipments := memory.NewShipmentRepository(store)
		service := NewService(memory.NewAnalyticsRepository(store, clock))

		shipped := clock.Now().Add(-48 * time.Hour)
		for _, s := range []*domainShipment.Shipment{
			{Name: "A", State: domainShipment.StateDelivered, CarrierID: uuid.New(), CarrierKind: "nacex", ShippingCost: decimal.NewFromInt(5), NumberOfPackages: 1, ShipDate: &shipped},
			{Name: "B", State: domainShipment.StateIncident, CarrierID: uuid.New(), CarrierKind: "nacex", ShippingCost: decimal.NewFromInt(7), NumberOfPackages: 2, ShipDate: &shipped},
			{Name: "C", State: domainShipment.StateConfirmed, CarrierID: uuid.New(), CarrierKind: "fixed", ShippingCost: decimal.NewFromInt(3), NumberOfPackages: 1, ShipDate: &shipped},
		} {
			So(shipments.Create(ctx, s), ShouldBeNil)
		}

		Convey("grouping by carrier kind sums the measures", func() {
			resp, err := service.Report(ctx, &ReportRequest{GroupBy: "carrier_kind"})
			So(err, ShouldBeNil)
			So(resp.Rows, ShouldEqual, 3)
			So(resp.Groups, ShouldHaveLength, 2)

			fixed, nacex := resp.Groups[0], resp.Groups[1]
			So(fixed.Key[domainAnalytics.DimCarrierKind], ShouldEqual, "fixed")
			So(nacex.Count, ShouldEqual, 2)
			So(nacex.Packages, ShouldEqual, 3)
			So(nacex.Incidents, ShouldEqual, 1)
			So(nacex.ShippingCost.Equal(decimal.NewFromInt(12)), ShouldBeTrue)
		})

		Convey("no grouping yields a single total", func() {
			resp, err := service.Report(ctx, &ReportRequest{})
			So(err, ShouldBeNil)
			So(resp.Groups, ShouldHaveLength, 1)
			So(resp.Groups[0].Count, ShouldEqual, 3)
		})

		Convey("unknown dimensions are rejected", func() {
			_, err := service.Report(ctx, &ReportRequest{GroupBy: "colour"})
			So(appErrors.HasCode(err, appErrors.CodeValidation), ShouldBeTrue)
		})
	})
}
