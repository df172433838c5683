package postgres

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm/schema"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/analytics"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/uow"
	"shipping-management/internal/domain/user"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

var (
	_ shipment.Repository   = (*ShipmentRepository)(nil)
	_ carrier.Repository    = (*CarrierRepository)(nil)
	_ partner.Repository    = (*PartnerRepository)(nil)
	_ picking.Repository    = (*PickingRepository)(nil)
	_ attachment.Repository = (*AttachmentRepository)(nil)
	_ message.Repository    = (*MessageRepository)(nil)
	_ activity.Repository   = (*ActivityRepository)(nil)
	_ user.Repository       = (*UserRepository)(nil)
	_ analytics.Repository  = (*AnalyticsRepository)(nil)
	_ uow.UnitOfWork        = (*DB)(nil)
)

func TestModels(t *testing.T) {
	Convey("Table names match the report view joins", t, func() {
		So(models.ShipmentModel{}.TableName(), ShouldEqual, "shipments")
		So(models.PickingModel{}.TableName(), ShouldEqual, "pickings")
		So(models.PartnerModel{}.TableName(), ShouldEqual, "partners")
		So(models.CarrierModel{}.TableName(), ShouldEqual, "carriers")
		So(models.ReportRowModel{}.TableName(), ShouldEqual, "shipment_report")
		So(reportView, ShouldContainSubstring, "CREATE OR REPLACE VIEW shipment_report")
	})
}

func TestShipmentUniqueness(t *testing.T) {
	Convey("Given the shipment model schema", t, func() {
		sch, err := schema.Parse(&models.ShipmentModel{}, &sync.Map{}, schema.NamingStrategy{})
		So(err, ShouldBeNil)

		Convey("picking and tracking reference share a partial unique index", func() {
			idx := sch.LookIndex("idx_shipments_picking_tracking")
			So(idx, ShouldNotBeNil)
			So(idx.Class, ShouldEqual, "UNIQUE")
			So(idx.Where, ShouldEqual, "tracking_ref <> ''")

			var columns []string
			for _, f := range idx.Fields {
				columns = append(columns, f.DBName)
			}
			So(columns, ShouldResemble, []string{"picking_id", "tracking_ref"})
		})

		Convey("duplicate key errors are recognised through wrapping", func() {
			dup := fmt.Errorf("failed to create shipment: %w", &pgconn.PgError{Code: "23505"})
			So(isUniqueViolation(dup), ShouldBeTrue)
			So(isUniqueViolation(&pgconn.PgError{Code: "23503"}), ShouldBeFalse)
			So(isUniqueViolation(errors.New("connection reset")), ShouldBeFalse)
		})
	})
}
