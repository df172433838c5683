package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/record"
	"shipping-management/internal/domain/user"
	"shipping-management/internal/events"
	"shipping-management/internal/infrastructure/memory"
)

func TestNotifications(t *testing.T) {
	Convey("Given the notification handlers on a bus", t, func() {
		ctx := context.Background()
		store := memory.NewStore()
		messages := memory.NewMessageRepository(store)
		partners := memory.NewPartnerRepository(store)
		users := memory.NewUserRepository(store)

		seller := &user.User{Email: "seller@example.com", Role: user.RoleSalesperson, IsActive: true}
		manager := &user.User{Email: "wh1@example.com", Role: user.RoleWarehouseManager, IsActive: true}
		other := &user.User{Email: "wh2@example.com", Role: user.RoleWarehouseManager, IsActive: true}
		gone := &user.User{Email: "wh3@example.com", Role: user.RoleWarehouseManager, IsActive: false}
		for _, u := range []*user.User{seller, manager, other, gone} {
			So(users.Create(ctx, u), ShouldBeNil)
		}

		customer := &partner.Partner{Name: "Ana"}
		So(partners.Create(ctx, customer), ShouldBeNil)
		sale := &partner.SaleOrder{Name: "S00042", PartnerID: customer.ID, SalespersonID: &seller.ID}
		So(partners.CreateSaleOrder(ctx, sale), ShouldBeNil)

		bus := events.NewBus(store, nil)
		NewService(messages, partners, users).Register(bus)

		pickingID := uuid.New()
		shipmentID := uuid.New()
		base := events.Event{
			ShipmentID:   shipmentID,
			ShipmentName: "SHP/2026/00001",
			PickingID:    &pickingID,
			PickingName:  "WH/OUT/00001",
			SaleID:       &sale.ID,
			CarrierName:  "NACEX",
			TrackingRef:  "TRK001",
			TrackingURL:  "https://track.example/TRK001",
		}

		Convey("a created shipment is posted on the picking and the sale order", func() {
			e := base
			e.Name = events.ShipmentCreated
			bus.Publish(ctx, e)

			onPicking, err := messages.ListByThread(ctx, record.PickingRef(pickingID))
			So(err, ShouldBeNil)
			So(onPicking, ShouldHaveLength, 1)
			So(onPicking[0].Body, ShouldContainSubstring, "SHP/2026/00001")
			So(onPicking[0].Body, ShouldContainSubstring, `href="https://track.example/TRK001"`)

			onSale, err := messages.ListByThread(ctx, record.SaleOrderRef(sale.ID))
			So(err, ShouldBeNil)
			So(onSale, ShouldHaveLength, 1)
		})

		Convey("a created shipment without sale order is posted on the picking only", func() {
			e := base
			e.Name = events.ShipmentCreated
			e.SaleID = nil
			bus.Publish(ctx, e)

			onSale, err := messages.ListByThread(ctx, record.SaleOrderRef(sale.ID))
			So(err, ShouldBeNil)
			So(onSale, ShouldBeEmpty)
		})

		Convey("an incident notifies the salesperson and the active warehouse managers", func() {
			e := base
			e.Name = events.IncidentDetected
			e.FromState = "in_transit"
			e.ToState = "incident"
			e.RawStatus = "INCIDENCIA"
			bus.Publish(ctx, e)

			for _, u := range []*user.User{seller, manager, other} {
				got, err := messages.ListByRecipient(ctx, u.ID)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Subject, ShouldContainSubstring, "WH/OUT/00001")
				So(got[0].Body, ShouldContainSubstring, "WH/OUT/00001")
			}
			got, err := messages.ListByRecipient(ctx, gone.ID)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("a state change is posted on the shipment thread", func() {
			e := base
			e.Name = events.ShipmentStateChanged
			e.FromState = "confirmed"
			e.ToState = "delivered"
			bus.Publish(ctx, e)

			got, err := messages.ListByThread(ctx, record.ShipmentRef(shipmentID))
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Body, ShouldContainSubstring, "delivered")
		})
	})
}
