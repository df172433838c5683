package collaborator

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zoobzio/clockz"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	"shipping-management/internal/infrastructure/memory"
	appErrors "shipping-management/pkg/errors"
)

func TestCollaborators(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := memory.NewStore()
		activities := memory.NewActivityRepository(store)
		service := NewService(Deps{
			Partners:    memory.NewPartnerRepository(store),
			Pickings:    memory.NewPickingRepository(store),
			Attachments: memory.NewAttachmentRepository(store),
			Messages:    memory.NewMessageRepository(store),
			Activities:  activities,
			Clock:       clockz.NewFakeClock(),
		})

		customer, err := service.CreatePartner(ctx, &PartnerRequest{Name: "Ana Garcia", City: "MADRID", Zip: "28001", CountryCode: "ES"})
		So(err, ShouldBeNil)
		warehouse, err := service.CreatePartner(ctx, &PartnerRequest{Name: "Warehouse", Zip: "28901", CountryCode: "ES"})
		So(err, ShouldBeNil)

		Convey("a delivery order is created in draft", func() {
			sale, err := service.CreateSaleOrder(ctx, &SaleOrderRequest{Name: "S00042", PartnerID: customer.ID})
			So(err, ShouldBeNil)

			p, err := service.CreatePicking(ctx, &PickingRequest{
				Name:               "WH/OUT/00001",
				PartnerID:          customer.ID,
				WarehousePartnerID: warehouse.ID,
				SaleID:             &sale.ID,
			})
			So(err, ShouldBeNil)
			So(p.State, ShouldEqual, picking.StateDraft)

			Convey("and accepts document uploads", func() {
				a, err := service.AttachToPicking(ctx, p.ID, &AttachmentRequest{Name: "Label-TRK001-shipping.pdf", MimeType: attachment.MimePDF, Data: []byte("%PDF")})
				So(err, ShouldBeNil)
				So(ToAttachmentResponse(a).DownloadURL, ShouldContainSubstring, a.ID.String())

				docs, err := service.ListAttachments(ctx, record.PickingRef(p.ID))
				So(err, ShouldBeNil)
				So(docs, ShouldHaveLength, 1)
			})
		})

		Convey("an unknown recipient is refused", func() {
			_, err := service.CreatePicking(ctx, &PickingRequest{
				Name:               "WH/OUT/00002",
				PartnerID:          uuid.New(),
				WarehousePartnerID: warehouse.ID,
			})
			So(err, ShouldEqual, partner.ErrPartnerNotFound)
		})

		Convey("an invalid email fails validation", func() {
			_, err := service.CreatePartner(ctx, &PartnerRequest{Name: "Bob", Email: "not-an-email"})
			So(appErrors.HasCode(err, appErrors.CodeValidation), ShouldBeTrue)
		})

		Convey("activities are completed by their owner only", func() {
			owner := uuid.New()
			a := &activity.Activity{
				Kind:     activity.KindSLAAlert,
				Summary:  "SLA superado (2 día(s) de retraso)",
				Deadline: time.Now(),
				UserID:   owner,
				Target:   record.ShipmentRef(uuid.New()),
			}
			So(activities.Create(ctx, a), ShouldBeNil)

			_, err := service.CompleteActivity(ctx, uuid.New(), a.ID)
			So(err, ShouldEqual, appErrors.ErrInsufficientPermissions)

			done, err := service.CompleteActivity(ctx, owner, a.ID)
			So(err, ShouldBeNil)
			So(done.State, ShouldEqual, activity.StateDone)
			So(done.DoneAt, ShouldNotBeNil)

			open, err := service.MyActivities(ctx, owner)
			So(err, ShouldBeNil)
			So(open, ShouldBeEmpty)
		})
	})
}
