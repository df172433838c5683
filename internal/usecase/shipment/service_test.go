package shipment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zoobzio/clockz"
	"go.uber.org/mock/gomock"

	"shipping-management/internal/carrier"
	"shipping-management/internal/carrier/mock"
	"shipping-management/internal/domain/attachment"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/events"
	"shipping-management/internal/infrastructure/memory"
	appErrors "shipping-management/pkg/errors"
)

type fakeClock interface {
	clockz.Clock
	Advance(d time.Duration)
}

type harness struct {
	ctx         context.Context
	clock       fakeClock
	adapter     *mock.MockAdapter
	shipments   *memory.ShipmentRepository
	pickings    *memory.PickingRepository
	attachments *memory.AttachmentRepository
	carrier     *domainCarrier.Carrier
	picking     *picking.Picking
	published   []events.Event
	deps        Deps
	service     *Service
}

func newHarness(t *testing.T) *harness {
	h := &harness{ctx: context.Background(), clock: clockz.NewFakeClock()}

	store := memory.NewStore()
	carriers := memory.NewCarrierRepository(store)
	partners := memory.NewPartnerRepository(store)
	h.shipments = memory.NewShipmentRepository(store)
	h.pickings = memory.NewPickingRepository(store)
	h.attachments = memory.NewAttachmentRepository(store)

	ctrl := gomock.NewController(t)
	h.adapter = mock.NewMockAdapter(ctrl)
	h.adapter.EXPECT().Kind().Return(domainCarrier.KindNacex).AnyTimes()
	h.adapter.EXPECT().TrackingURL(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ carrier.Account, _ string, ref string) string {
			return "https://track.example/" + ref
		}).AnyTimes()

	bus := events.NewBus(store, nil)
	bus.Subscribe("recorder", func(_ context.Context, e events.Event) error {
		h.published = append(h.published, e)
		return nil
	}, events.ShipmentCreated, events.LabelAttached, events.ShipmentStateChanged, events.IncidentDetected)

	h.carrier = &domainCarrier.Carrier{Name: "NACEX", Kind: domainCarrier.KindNacex, Active: true, SLADeliveryDays: 3}
	So(carriers.Create(h.ctx, h.carrier), ShouldBeNil)

	recipient := &partner.Partner{Name: "Ana", Street: "Gran Via 1", City: "MADRID", Zip: "28001", CountryCode: "ES"}
	warehouse := &partner.Partner{Name: "Warehouse", Street: "Poligono 3", City: "GETAFE", Zip: "28901", CountryCode: "ES"}
	So(partners.Create(h.ctx, recipient), ShouldBeNil)
	So(partners.Create(h.ctx, warehouse), ShouldBeNil)

	h.picking = &picking.Picking{
		Name:               "WH/OUT/00001",
		State:              picking.StateAssigned,
		PartnerID:          recipient.ID,
		WarehousePartnerID: warehouse.ID,
		Origin:             "S00042",
		ShippingWeight:     decimal.NewFromFloat(1.5),
		CarrierID:          &h.carrier.ID,
		CarrierPrice:       decimal.NewFromInt(7),
		CarrierTrackingRef: "TRK001",
		ExpeditionCode:     "EXP001",
	}
	So(h.pickings.Create(h.ctx, h.picking), ShouldBeNil)

	h.deps = Deps{
		Shipments:   h.shipments,
		Carriers:    carriers,
		Pickings:    h.pickings,
		Attachments: h.attachments,
		Registry:    carrier.NewRegistry(h.adapter),
		Orders:      carrier.NewOrderBuilder(carriers, partners),
		UnitOfWork:  store,
		Events:      bus,
		Clock:       h.clock,
	}
	h.service = NewService(h.deps)
	return h
}

// staleLookup misses the first picking lookup, as if another dispatcher inserted the
// shipment right after it.
type staleLookup struct {
	*memory.ShipmentRepository
	missed bool
}

func (r *staleLookup) FindByPickingAndTracking(ctx context.Context, pickingID uuid.UUID, trackingRef string) (*domainShipment.Shipment, error) {
	if !r.missed {
		r.missed = true
		return nil, domainShipment.ErrShipmentNotFound
	}
	return r.ShipmentRepository.FindByPickingAndTracking(ctx, pickingID, trackingRef)
}

func (h *harness) eventNames() []events.Name {
	out := make([]events.Name, 0, len(h.published))
	for _, e := range h.published {
		out = append(out, e.Name)
	}
	return out
}

func TestCreate(t *testing.T) {
	Convey("Given a carrier", t, func() {
		h := newHarness(t)

		Convey("manual shipments get unique sequence names", func() {
			first, err := h.service.Create(h.ctx, &CreateShipmentRequest{CarrierID: h.carrier.ID})
			So(err, ShouldBeNil)
			second, err := h.service.Create(h.ctx, &CreateShipmentRequest{CarrierID: h.carrier.ID})
			So(err, ShouldBeNil)

			So(first.Name, ShouldNotEqual, domainShipment.PlaceholderName)
			So(first.Name, ShouldStartWith, "SHP/")
			So(second.Name, ShouldNotEqual, first.Name)
			So(first.State, ShouldEqual, domainShipment.StateDraft)
			So(first.NumberOfPackages, ShouldEqual, 1)
			So(first.SLADeadline, ShouldBeNil)
		})

		Convey("a missing carrier id fails validation", func() {
			_, err := h.service.Create(h.ctx, &CreateShipmentRequest{})
			So(appErrors.HasCode(err, appErrors.CodeValidation), ShouldBeTrue)
		})
	})
}

func TestCreateFromPicking(t *testing.T) {
	Convey("Given a delivery order with a label PDF", t, func() {
		h := newHarness(t)
		label := &attachment.Attachment{
			Name:     "Label-TRK001-shipping.pdf",
			MimeType: attachment.MimePDF,
			Data:     []byte("%PDF"),
			Owner:    record.PickingRef(h.picking.ID),
		}
		So(h.attachments.Create(h.ctx, label), ShouldBeNil)

		Convey("auto-creation records a confirmed shipment", func() {
			sh, err := h.service.CreateFromPicking(h.ctx, h.picking)
			So(err, ShouldBeNil)
			So(sh.State, ShouldEqual, domainShipment.StateConfirmed)
			So(sh.TrackingRef, ShouldEqual, "TRK001")
			So(sh.ExpeditionCode, ShouldEqual, "EXP001")
			So(sh.Origin, ShouldEqual, "S00042")
			So(sh.ShipDate.Equal(h.clock.Now()), ShouldBeTrue)
			So(sh.SLADeadline, ShouldNotBeNil)
			So(sh.TrackingURL, ShouldEqual, "https://track.example/TRK001")
			So(sh.ShippingCost.Equal(decimal.NewFromInt(7)), ShouldBeTrue)

			Convey("and links the picking label to it", func() {
				labels, err := h.service.Labels(h.ctx, sh.ID)
				So(err, ShouldBeNil)
				So(labels, ShouldHaveLength, 1)
				So(labels[0].Name, ShouldContainSubstring, sh.Name)
				So(labels[0].Name, ShouldContainSubstring, "TRK001")
				So(labels[0].Kind, ShouldEqual, domainShipment.LabelShipping)

				resp := ToLabelResponse(labels[0])
				So(resp.DownloadURL, ShouldContainSubstring, labels[0].AttachmentID.String())

				stored, err := h.attachments.GetByID(h.ctx, labels[0].AttachmentID)
				So(err, ShouldBeNil)
				So(stored.Owner, ShouldResemble, record.ShipmentRef(sh.ID))

				onPicking, err := h.attachments.ListByOwner(h.ctx, record.PickingRef(h.picking.ID))
				So(err, ShouldBeNil)
				So(onPicking, ShouldHaveLength, 1)
			})

			Convey("and emits creation and label events", func() {
				So(h.eventNames(), ShouldContain, events.ShipmentCreated)
				So(h.eventNames(), ShouldContain, events.LabelAttached)
			})
		})

		Convey("auto-creation twice yields a single shipment", func() {
			first, err := h.service.CreateFromPicking(h.ctx, h.picking)
			So(err, ShouldBeNil)
			second, err := h.service.CreateFromPicking(h.ctx, h.picking)
			So(err, ShouldBeNil)
			So(second.ID, ShouldResemble, first.ID)

			_, total, err := h.service.List(h.ctx, &domainShipment.Filter{PickingID: &h.picking.ID})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
		})

		Convey("a shipment inserted concurrently is returned instead of failing", func() {
			first, err := h.service.CreateFromPicking(h.ctx, h.picking)
			So(err, ShouldBeNil)

			deps := h.deps
			deps.Shipments = &staleLookup{ShipmentRepository: h.shipments}
			second, err := NewService(deps).CreateFromPicking(h.ctx, h.picking)
			So(err, ShouldBeNil)
			So(second.ID, ShouldResemble, first.ID)

			_, total, err := h.service.List(h.ctx, &domainShipment.Filter{PickingID: &h.picking.ID})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
		})

		Convey("a picking without tracking reference yields no shipment", func() {
			h.picking.CarrierTrackingRef = ""
			sh, err := h.service.CreateFromPicking(h.ctx, h.picking)
			So(err, ShouldBeNil)
			So(sh, ShouldBeNil)

			_, total, err := h.service.List(h.ctx, nil)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 0)
		})
	})
}

func TestRefreshTracking(t *testing.T) {
	Convey("Given a confirmed shipment", t, func() {
		h := newHarness(t)
		sh, err := h.service.CreateFromPicking(h.ctx, h.picking)
		So(err, ShouldBeNil)
		h.published = nil
		h.clock.Advance(48 * time.Hour)

		Convey("a delivered status is applied exactly once", func() {
			h.adapter.EXPECT().RefreshStatus(gomock.Any(), gomock.Any(), "EXP001").
				Return(&carrier.TrackingStatus{Raw: "OK", Label: "Delivered", State: domainShipment.StateDelivered}, nil).
				Times(2)

			So(h.service.RefreshTracking(h.ctx, sh), ShouldBeNil)
			So(sh.State, ShouldEqual, domainShipment.StateDelivered)
			So(sh.DeliveryDate, ShouldNotBeNil)
			So(sh.DeliveryDate.Before(*sh.ShipDate), ShouldBeFalse)
			So(sh.TrackingStatusRaw, ShouldEqual, "Delivered (OK)")
			So(sh.LastTrackingUpdate, ShouldNotBeNil)
			delivered := *sh.DeliveryDate

			h.clock.Advance(24 * time.Hour)
			So(h.service.RefreshTracking(h.ctx, sh), ShouldBeNil)
			So(sh.State, ShouldEqual, domainShipment.StateDelivered)
			So(sh.DeliveryDate.Equal(delivered), ShouldBeTrue)
			So(h.eventNames(), ShouldResemble, []events.Name{events.ShipmentStateChanged})

			stored, err := h.shipments.GetByID(h.ctx, sh.ID)
			So(err, ShouldBeNil)
			So(stored.State, ShouldEqual, domainShipment.StateDelivered)
		})

		Convey("an incident status from transit raises an incident event", func() {
			sh.State = domainShipment.StateInTransit
			So(h.shipments.Update(h.ctx, sh), ShouldBeNil)
			h.adapter.EXPECT().RefreshStatus(gomock.Any(), gomock.Any(), "EXP001").
				Return(&carrier.TrackingStatus{Raw: "INCIDENCIA", Label: "Incident", State: domainShipment.StateIncident}, nil)

			So(h.service.RefreshTracking(h.ctx, sh), ShouldBeNil)
			So(sh.State, ShouldEqual, domainShipment.StateIncident)
			So(h.eventNames(), ShouldResemble, []events.Name{events.ShipmentStateChanged, events.IncidentDetected})

			incident := h.published[1]
			So(incident.PickingName, ShouldEqual, "WH/OUT/00001")
			So(incident.RawStatus, ShouldEqual, "INCIDENCIA")
			So(incident.FromState, ShouldEqual, string(domainShipment.StateInTransit))
		})

		Convey("a cancelled shipment is never refreshed", func() {
			h.adapter.EXPECT().Cancel(gomock.Any(), gomock.Any(), "EXP001").Return(nil)
			_, err := h.service.ApplyAction(h.ctx, domainShipment.ActionCancel, []uuid.UUID{sh.ID})
			So(err, ShouldBeNil)
			h.published = nil
			h.adapter.EXPECT().RefreshStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err = h.service.RefreshTrackingByID(h.ctx, sh.ID)
			So(errors.Is(err, domainShipment.ErrInvalidState), ShouldBeTrue)

			stored, err := h.shipments.GetByID(h.ctx, sh.ID)
			So(err, ShouldBeNil)
			So(h.service.RefreshTracking(h.ctx, stored), ShouldBeNil)

			stored, _ = h.shipments.GetByID(h.ctx, sh.ID)
			So(stored.State, ShouldEqual, domainShipment.StateCancelled)
			So(stored.TrackingStatusRaw, ShouldBeEmpty)
			So(stored.LastTrackingUpdate, ShouldBeNil)
			So(h.published, ShouldBeEmpty)
		})

		Convey("carrier errors leave the shipment unchanged", func() {
			h.adapter.EXPECT().RefreshStatus(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, &appErrors.CarrierAPIError{Method: "getEstadoExpedicion", StatusCode: 503})

			err := h.service.RefreshTracking(h.ctx, sh)
			So(appErrors.IsCarrierAPIError(err), ShouldBeTrue)
			So(sh.State, ShouldEqual, domainShipment.StateConfirmed)
			So(h.published, ShouldBeEmpty)
		})
	})
}

func TestApplyAction(t *testing.T) {
	Convey("Given a draft and a dispatched shipment", t, func() {
		h := newHarness(t)
		draft, err := h.service.Create(h.ctx, &CreateShipmentRequest{CarrierID: h.carrier.ID})
		So(err, ShouldBeNil)
		sent, err := h.service.CreateFromPicking(h.ctx, h.picking)
		So(err, ShouldBeNil)
		h.published = nil

		Convey("mark_in_transit skips the draft", func() {
			res, err := h.service.ApplyAction(h.ctx, domainShipment.ActionMarkInTransit, []uuid.UUID{draft.ID, sent.ID})
			So(err, ShouldBeNil)
			So(res.Skipped, ShouldResemble, []uuid.UUID{draft.ID})
			So(res.Changed, ShouldHaveLength, 1)

			stored, _ := h.shipments.GetByID(h.ctx, draft.ID)
			So(stored.State, ShouldEqual, domainShipment.StateDraft)
		})

		Convey("cancel reaches the carrier for dispatched shipments only", func() {
			h.adapter.EXPECT().Cancel(gomock.Any(), gomock.Any(), "EXP001").Return(nil).Times(1)

			res, err := h.service.ApplyAction(h.ctx, domainShipment.ActionCancel, []uuid.UUID{draft.ID, sent.ID})
			So(err, ShouldBeNil)
			So(res.Changed, ShouldHaveLength, 2)
			So(h.eventNames(), ShouldResemble, []events.Name{events.ShipmentStateChanged, events.ShipmentStateChanged})

			stored, _ := h.shipments.GetByID(h.ctx, sent.ID)
			So(stored.ExpeditionCode, ShouldBeEmpty)
			So(stored.TrackingRef, ShouldEqual, "TRK001")
		})

		Convey("a carrier cancel failure does not block the local cancel", func() {
			h.adapter.EXPECT().Cancel(gomock.Any(), gomock.Any(), "EXP001").Return(errors.New("timeout"))

			res, err := h.service.ApplyAction(h.ctx, domainShipment.ActionCancel, []uuid.UUID{sent.ID})
			So(err, ShouldBeNil)
			So(res.Changed[0].State, ShouldEqual, domainShipment.StateCancelled)
			So(res.Changed[0].ExpeditionCode, ShouldEqual, "EXP001")
		})

		Convey("cancel then reset_to_draft returns to draft", func() {
			_, err := h.service.ApplyAction(h.ctx, domainShipment.ActionCancel, []uuid.UUID{draft.ID})
			So(err, ShouldBeNil)
			_, err = h.service.ApplyAction(h.ctx, domainShipment.ActionResetToDraft, []uuid.UUID{draft.ID})
			So(err, ShouldBeNil)

			stored, _ := h.shipments.GetByID(h.ctx, draft.ID)
			So(stored.State, ShouldEqual, domainShipment.StateDraft)
		})

		Convey("incident is reached through tracking only", func() {
			_, err := h.service.ApplyAction(h.ctx, domainShipment.Action("incident"), []uuid.UUID{sent.ID})
			So(appErrors.HasCode(err, appErrors.CodeUser), ShouldBeTrue)

			stored, _ := h.shipments.GetByID(h.ctx, sent.ID)
			So(stored.State, ShouldEqual, domainShipment.StateConfirmed)
			So(h.published, ShouldBeEmpty)
		})

		Convey("unknown actions are user errors", func() {
			_, err := h.service.ApplyAction(h.ctx, domainShipment.Action("explode"), []uuid.UUID{draft.ID})
			So(appErrors.HasCode(err, appErrors.CodeUser), ShouldBeTrue)
		})
	})
}

func TestGenerateReturn(t *testing.T) {
	Convey("Given a shipment in transit", t, func() {
		h := newHarness(t)
		sh, err := h.service.CreateFromPicking(h.ctx, h.picking)
		So(err, ShouldBeNil)

		Convey("a confirmed shipment cannot be returned", func() {
			_, err := h.service.GenerateReturn(h.ctx, sh.ID)
			So(appErrors.HasCode(err, appErrors.CodeUser), ShouldBeTrue)
			So(errors.Is(err, domainShipment.ErrReturnNotAllowed), ShouldBeTrue)
		})

		Convey("the return expedition becomes a linked return shipment", func() {
			sh.State = domainShipment.StateInTransit
			So(h.shipments.Update(h.ctx, sh), ShouldBeNil)

			h.adapter.EXPECT().ReturnLabel(gomock.Any(), gomock.Any(), sh.Name).
				DoAndReturn(func(_ context.Context, order *carrier.Order, _ string) (*carrier.SendResult, error) {
					So(order.Recipient.City, ShouldEqual, "MADRID")
					return &carrier.SendResult{
						ExpeditionCode: "EXP002",
						TrackingRef:    "TRK002",
						Labels:         []carrier.LabelPayload{{Data: []byte("%PDF")}},
					}, nil
				})

			ret, err := h.service.GenerateReturn(h.ctx, sh.ID)
			So(err, ShouldBeNil)
			So(ret.IsReturn, ShouldBeTrue)
			So(ret.State, ShouldEqual, domainShipment.StateConfirmed)
			So(*ret.OriginalShipmentID, ShouldResemble, sh.ID)
			So(strings.HasPrefix(ret.Origin, "DEV-"), ShouldBeTrue)

			labels, err := h.service.Labels(h.ctx, ret.ID)
			So(err, ShouldBeNil)
			So(labels, ShouldHaveLength, 1)
			So(labels[0].Kind, ShouldEqual, domainShipment.LabelReturn)

			original, _ := h.shipments.GetByID(h.ctx, sh.ID)
			So(*original.ReturnShipmentID, ShouldResemble, ret.ID)

			onPicking, err := h.attachments.ListByOwner(h.ctx, record.PickingRef(h.picking.ID))
			So(err, ShouldBeNil)
			var names []string
			for _, a := range onPicking {
				names = append(names, a.Name)
			}
			So(names, ShouldContain, "Label-TRK002-return.pdf")

			Convey("and a second return is refused", func() {
				_, err := h.service.GenerateReturn(h.ctx, sh.ID)
				So(errors.Is(err, domainShipment.ErrReturnNotAllowed), ShouldBeTrue)
			})
		})
	})
}

func TestReprintLabel(t *testing.T) {
	Convey("Given a dispatched shipment", t, func() {
		h := newHarness(t)
		sh, err := h.service.CreateFromPicking(h.ctx, h.picking)
		So(err, ShouldBeNil)

		Convey("a reprint is attached to the shipment and the picking", func() {
			h.adapter.EXPECT().ReprintLabel(gomock.Any(), gomock.Any(), "EXP001").
				Return(&carrier.LabelPayload{Data: []byte("%PDF-reprint")}, nil)

			label, err := h.service.ReprintLabel(h.ctx, sh.ID)
			So(err, ShouldBeNil)
			So(label.Kind, ShouldEqual, domainShipment.LabelReprint)

			onPicking, err := h.attachments.ListByOwner(h.ctx, record.PickingRef(h.picking.ID))
			So(err, ShouldBeNil)
			So(onPicking, ShouldHaveLength, 1)
			So(onPicking[0].Name, ShouldEqual, "Label-TRK001-reprint.pdf")
		})
	})
}
