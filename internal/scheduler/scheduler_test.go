package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zoobzio/clockz"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/user"
	"shipping-management/internal/infrastructure/memory"
)

type fakeClock interface {
	clockz.Clock
	Advance(d time.Duration)
}

type stubTracker struct {
	shipments *memory.ShipmentRepository
	fail      map[uuid.UUID]bool
	calls     int
}

func (s *stubTracker) ListTrackable(ctx context.Context) ([]*domainShipment.Shipment, error) {
	return s.shipments.ListTrackable(ctx, []domainShipment.State{domainShipment.StateConfirmed, domainShipment.StateInTransit})
}

func (s *stubTracker) RefreshTracking(ctx context.Context, sh *domainShipment.Shipment) error {
	s.calls++
	sh.State = domainShipment.StateInTransit
	sh.TrackingStatusRaw = "EN REPARTO"
	if err := s.shipments.Update(ctx, sh); err != nil {
		return err
	}
	if s.fail[sh.ID] {
		return errors.New("carrier api getEstadoExpedicion failed with status 503")
	}
	return nil
}

func TestTrackingRefreshJob(t *testing.T) {
	Convey("Given two confirmed shipments with tracking references", t, func() {
		ctx := context.Background()
		store := memory.NewStore()
		shipments := memory.NewShipmentRepository(store)

		ok := &domainShipment.Shipment{Name: "SHP/2026/00001", State: domainShipment.StateConfirmed, CarrierID: uuid.New(), TrackingRef: "TRK001"}
		broken := &domainShipment.Shipment{Name: "SHP/2026/00002", State: domainShipment.StateConfirmed, CarrierID: uuid.New(), TrackingRef: "TRK002"}
		draft := &domainShipment.Shipment{Name: "SHP/2026/00003", State: domainShipment.StateDraft, CarrierID: uuid.New(), TrackingRef: "TRK003"}
		for _, sh := range []*domainShipment.Shipment{ok, broken, draft} {
			So(shipments.Create(ctx, sh), ShouldBeNil)
		}

		tracker := &stubTracker{shipments: shipments, fail: map[uuid.UUID]bool{broken.ID: true}}
		job := NewTrackingRefreshJob(tracker, store)

		Convey("a failing shipment is rolled back and the others still refresh", func() {
			So(RunJob(ctx, job), ShouldBeNil)
			So(tracker.calls, ShouldEqual, 2)

			got, err := shipments.GetByID(ctx, ok.ID)
			So(err, ShouldBeNil)
			So(got.State, ShouldEqual, domainShipment.StateInTransit)

			got, err = shipments.GetByID(ctx, broken.ID)
			So(err, ShouldBeNil)
			So(got.State, ShouldEqual, domainShipment.StateConfirmed)
			So(got.TrackingStatusRaw, ShouldBeEmpty)
		})
	})
}

func TestSLAAlertJob(t *testing.T) {
	Convey("Given an in-transit shipment shipped five days ago on a three-day SLA", t, func() {
		ctx := context.Background()
		clock := fakeClock(clockz.NewFakeClock())
		store := memory.NewStore()
		shipments := memory.NewShipmentRepository(store)
		pickings := memory.NewPickingRepository(store)
		partners := memory.NewPartnerRepository(store)
		users := memory.NewUserRepository(store)
		activities := memory.NewActivityRepository(store)

		seller := &user.User{Email: "seller@example.com", FullName: "Seller", Role: user.RoleSalesperson, IsActive: true}
		system := &user.User{Email: "system@example.com", FullName: "System", Role: user.RoleAdmin, IsActive: true}
		So(users.Create(ctx, seller), ShouldBeNil)
		So(users.Create(ctx, system), ShouldBeNil)

		customer := &partner.Partner{Name: "Ana", Zip: "28001", CountryCode: "ES"}
		So(partners.Create(ctx, customer), ShouldBeNil)
		sale := &partner.SaleOrder{Name: "S00042", PartnerID: customer.ID, SalespersonID: &seller.ID}
		So(partners.CreateSaleOrder(ctx, sale), ShouldBeNil)
		p := &picking.Picking{Name: "WH/OUT/00001", State: picking.StateDone, PartnerID: customer.ID, SaleID: &sale.ID}
		So(pickings.Create(ctx, p), ShouldBeNil)

		today := domainShipment.DateOf(clock.Now())
		shipDate := today.AddDate(0, 0, -5)
		late := &domainShipment.Shipment{
			Name:        "SHP/2026/00001",
			State:       domainShipment.StateInTransit,
			PickingID:   &p.ID,
			CarrierID:   uuid.New(),
			TrackingRef: "TRK001",
			ShipDate:    &shipDate,
		}
		late.ApplySLA(3)
		So(shipments.Create(ctx, late), ShouldBeNil)

		recent := today.AddDate(0, 0, -1)
		onTime := &domainShipment.Shipment{Name: "SHP/2026/00002", State: domainShipment.StateInTransit, CarrierID: uuid.New(), ShipDate: &recent}
		onTime.ApplySLA(3)
		So(shipments.Create(ctx, onTime), ShouldBeNil)

		job := NewSLAAlertJob(SLAAlertDeps{
			Shipments:       shipments,
			Pickings:        pickings,
			Partners:        partners,
			Users:           users,
			Activities:      activities,
			UnitOfWork:      store,
			Clock:           clock,
			SystemUserEmail: "system@example.com",
		})

		Convey("the deadline is two days ago and the status overdue", func() {
			So(*late.SLADeadline, ShouldEqual, today.AddDate(0, 0, -2))
			So(late.SLAStatus(clock.Now()), ShouldEqual, domainShipment.SLAOverdue)
		})

		Convey("one activity is opened for the salesperson", func() {
			So(job.Run(ctx), ShouldBeNil)

			got, err := activities.ListByTarget(ctx, record.ShipmentRef(late.ID))
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Summary, ShouldEqual, "SLA superado (2 día(s) de retraso)")
			So(got[0].UserID, ShouldEqual, seller.ID)
			So(got[0].Kind, ShouldEqual, activity.KindSLAAlert)

			none, err := activities.ListByTarget(ctx, record.ShipmentRef(onTime.ID))
			So(err, ShouldBeNil)
			So(none, ShouldBeEmpty)

			Convey("and a later run does not duplicate it while it is open", func() {
				clock.Advance(24 * time.Hour)
				So(job.Run(ctx), ShouldBeNil)

				again, err := activities.ListByTarget(ctx, record.ShipmentRef(late.ID))
				So(err, ShouldBeNil)
				So(again, ShouldHaveLength, 1)
			})
		})

		Convey("without a sale the system user is assigned", func() {
			late.PickingID = nil
			So(shipments.Update(ctx, late), ShouldBeNil)

			So(job.Run(ctx), ShouldBeNil)

			got, err := activities.ListOpenByUser(ctx, system.ID)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
		})

		Convey("delivered shipments are not alerted", func() {
			late.State = domainShipment.StateDelivered
			So(shipments.Update(ctx, late), ShouldBeNil)

			So(job.Run(ctx), ShouldBeNil)

			got, err := activities.ListByTarget(ctx, record.ShipmentRef(late.ID))
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}

func TestOrchestrator(t *testing.T) {
	Convey("An invalid schedule is refused at start", t, func() {
		o := NewOrchestrator(Entry{Schedule: "every now and then", Job: NewTrackingRefreshJob(nil, nil)})
		So(o.Start(context.Background()), ShouldNotBeNil)
		o.Stop()
	})
}
