package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/shipment"
)

func TestStoreTransactions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with one shipment", t, func() {
		store := NewStore()
		repo := NewShipmentRepository(store)
		pickingID := uuid.New()
		s := &shipment.Shipment{Name: "SHP/2026/00001", State: shipment.StateDraft, PickingID: &pickingID, TrackingRef: "TRK001"}
		So(repo.Create(ctx, s), ShouldBeNil)

		Convey("a failing unit of work rolls its writes back", func() {
			err := store.WithinTransaction(ctx, func(ctx context.Context) error {
				s.State = shipment.StateCancelled
				So(repo.Update(ctx, s), ShouldBeNil)
				return errors.New("abort")
			})
			So(err, ShouldNotBeNil)

			got, _ := repo.GetByID(ctx, s.ID)
			So(got.State, ShouldEqual, shipment.StateDraft)
		})

		Convey("a failing savepoint keeps the outer writes", func() {
			err := store.WithinTransaction(ctx, func(ctx context.Context) error {
				So(repo.Create(ctx, &shipment.Shipment{Name: "outer"}), ShouldBeNil)
				inner := store.WithinTransaction(ctx, func(ctx context.Context) error {
					So(repo.Create(ctx, &shipment.Shipment{Name: "inner"}), ShouldBeNil)
					return errors.New("inner failure")
				})
				So(inner, ShouldNotBeNil)
				return nil
			})
			So(err, ShouldBeNil)

			all, total, _ := repo.List(ctx, nil)
			So(total, ShouldEqual, 2)
			So(all[1].Name, ShouldEqual, "outer")
		})

		Convey("picking and tracking reference are unique together", func() {
			dup := &shipment.Shipment{PickingID: &pickingID, TrackingRef: "TRK001"}
			So(repo.Create(ctx, dup), ShouldEqual, shipment.ErrShipmentAlreadyExists)
		})

		Convey("sequence names are unique and do not roll back", func() {
			_ = store.WithinTransaction(ctx, func(ctx context.Context) error {
				name, _ := repo.NextName(ctx, "SHP", 2026)
				So(name, ShouldEqual, "SHP/2026/00001")
				return errors.New("abort")
			})
			name, _ := repo.NextName(ctx, "SHP", 2026)
			So(name, ShouldEqual, "SHP/2026/00002")
		})

		Convey("returned records are copies", func() {
			got, _ := repo.GetByID(ctx, s.ID)
			got.State = shipment.StateDelivered
			again, _ := repo.GetByID(ctx, s.ID)
			So(again.State, ShouldEqual, shipment.StateDraft)
		})
	})
}

func TestStoreConcurrentRollback(t *testing.T) {
	ctx := context.Background()

	Convey("Given a transaction that fails while other callers write", t, func() {
		store := NewStore()
		partners := NewPartnerRepository(store)

		started := make(chan struct{})
		release := make(chan struct{})
		failed := make(chan error, 1)
		go func() {
			failed <- store.WithinTransaction(ctx, func(ctx context.Context) error {
				if err := partners.Create(ctx, &partner.Partner{Name: "rolled back"}); err != nil {
					return err
				}
				close(started)
				<-release
				return errors.New("abort")
			})
		}()
		<-started

		standalone := &partner.Partner{Name: "standalone"}
		inTx := &partner.Partner{Name: "committed"}
		done := make(chan struct{}, 2)
		go func() {
			_ = partners.Create(ctx, standalone)
			done <- struct{}{}
		}()
		go func() {
			_ = store.WithinTransaction(ctx, func(ctx context.Context) error {
				return partners.Create(ctx, inTx)
			})
			done <- struct{}{}
		}()

		close(release)
		So(<-failed, ShouldNotBeNil)
		<-done
		<-done

		Convey("writes from other callers survive the rollback", func() {
			got, err := partners.GetByID(ctx, standalone.ID)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "standalone")

			got, err = partners.GetByID(ctx, inTx.ID)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "committed")

			all, _ := partners.List(ctx)
			So(all, ShouldHaveLength, 2)
		})
	})
}
