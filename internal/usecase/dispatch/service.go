// Package dispatch hands delivery orders to carriers: single and batch send, rate comparison,
// cancellation and pickup scheduling.
package dispatch

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shipping-management/internal/carrier"
	"shipping-management/internal/domain/attachment"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/uow"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
)

// ShipmentRecorder is the part of the lifecycle engine dispatch relies on.
type ShipmentRecorder interface {
	CreateFromPicking(ctx context.Context, p *picking.Picking) (*domainShipment.Shipment, error)
	CancelLocal(ctx context.Context, shipments []*domainShipment.Shipment) error
}

type Service struct {
	pickingRepo    picking.Repository
	carrierRepo    domainCarrier.Repository
	shipmentRepo   domainShipment.Repository
	attachmentRepo attachment.Repository
	messageRepo    message.Repository
	registry       *carrier.Registry
	orders         *carrier.OrderBuilder
	shipments      ShipmentRecorder
	uow            uow.UnitOfWork
}

type Deps struct {
	Pickings    picking.Repository
	Carriers    domainCarrier.Repository
	Shipments   domainShipment.Repository
	Attachments attachment.Repository
	Messages    message.Repository
	Registry    *carrier.Registry
	Orders      *carrier.OrderBuilder
	Recorder    ShipmentRecorder
	UnitOfWork  uow.UnitOfWork
}

func NewService(d Deps) *Service {
	return &Service{
		pickingRepo:    d.Pickings,
		carrierRepo:    d.Carriers,
		shipmentRepo:   d.Shipments,
		attachmentRepo: d.Attachments,
		messageRepo:    d.Messages,
		registry:       d.Registry,
		orders:         d.Orders,
		shipments:      d.Recorder,
		uow:            d.UnitOfWork,
	}
}

// SendToShipper dispatches the delivery order through its carrier and records the shipment.
func (s *Service) SendToShipper(ctx context.Context, pickingID uuid.UUID) (*domainShipment.Shipment, error) {
	var sh *domainShipment.Shipment
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.pickingRepo.GetByID(ctx, pickingID)
		if err != nil {
			return err
		}
		sh, err = s.send(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *Service) send(ctx context.Context, p *picking.Picking) (*domainShipment.Shipment, error) {
	c, adapter, err := s.carrierOf(ctx, p)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.Build(ctx, c, p)
	if err != nil {
		return nil, err
	}

	res, err := adapter.Send(ctx, order)
	if err != nil {
		logger.Warn("Dispatch failed",
			zap.String("picking_id", p.ID.String()),
			zap.String("picking", p.Name),
			zap.String("carrier", c.Name),
			zap.Error(err),
			zap.String("event", "dispatch_failed"),
		)
		return nil, err
	}

	p.CarrierTrackingRef = res.TrackingRef
	p.ExpeditionCode = res.ExpeditionCode
	p.CarrierPrice = res.Price
	if err := s.pickingRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	for _, label := range res.Labels {
		name := label.Name
		if !strings.HasPrefix(name, "Label") {
			name = domainShipment.LabelFileName(p.Name, res.TrackingRef, label.Kind)
		}
		a := &attachment.Attachment{
			Name:     name,
			MimeType: attachment.MimePDF,
			Data:     label.Data,
			Owner:    record.PickingRef(p.ID),
		}
		if err := s.attachmentRepo.Create(ctx, a); err != nil {
			return nil, err
		}
	}

	for _, warning := range res.Warnings {
		s.postWarning(ctx, p, warning)
	}

	logger.Info("Delivery order dispatched",
		zap.String("picking_id", p.ID.String()),
		zap.String("picking", p.Name),
		zap.String("carrier", c.Name),
		zap.String("tracking_ref", res.TrackingRef),
		zap.String("expedition_code", res.ExpeditionCode),
		zap.Int("labels", len(res.Labels)),
		zap.String("event", "picking_dispatched"),
	)

	return s.shipments.CreateFromPicking(ctx, p)
}

// carrierOf resolves the carrier set on the picking and its adapter.
func (s *Service) carrierOf(ctx context.Context, p *picking.Picking) (*domainCarrier.Carrier, carrier.Adapter, error) {
	if p.CarrierID == nil {
		return nil, nil, appErrors.NewAppError(appErrors.CodeConfig,
			fmt.Sprintf("delivery order %s has no carrier", p.Name), picking.ErrNoCarrier)
	}
	c, err := s.carrierRepo.GetByID(ctx, *p.CarrierID)
	if err != nil {
		return nil, nil, err
	}
	adapter, err := s.registry.For(c)
	if err != nil {
		return nil, nil, err
	}
	return c, adapter, nil
}

// postWarning leaves a non-blocking note on the delivery order thread.
func (s *Service) postWarning(ctx context.Context, p *picking.Picking, warning string) {
	thread := record.PickingRef(p.ID)
	msg := &message.Message{
		Kind:    message.KindComment,
		Thread:  &thread,
		Subject: "Carrier warning",
		Body:    "<p>" + html.EscapeString(warning) + "</p>",
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		logger.Warn("Failed to post dispatch warning",
			zap.String("picking_id", p.ID.String()),
			zap.Error(err),
			zap.String("event", "dispatch_warning_failed"),
		)
	}
}

// CancelPickingShipment cancels the expedition at the carrier, clears the picking's carrier
// references and cancels the linked draft and confirmed shipments.
func (s *Service) CancelPickingShipment(ctx context.Context, pickingID uuid.UUID) error {
	return s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.pickingRepo.GetByID(ctx, pickingID)
		if err != nil {
			return err
		}
		if p.CarrierTrackingRef == "" && p.ExpeditionCode == "" {
			return appErrors.NewUserError("delivery order %s has not been sent to a carrier", p.Name)
		}

		c, adapter, err := s.carrierOf(ctx, p)
		if err != nil {
			return err
		}
		account, err := s.orders.Account(ctx, c)
		if err != nil {
			return err
		}
		code := p.ExpeditionCode
		if code == "" {
			code = p.CarrierTrackingRef
		}
		if err := adapter.Cancel(ctx, account, code); err != nil {
			return err
		}

		linked, err := s.shipmentRepo.ListByPicking(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := s.shipments.CancelLocal(ctx, linked); err != nil {
			return err
		}

		p.CarrierTrackingRef = ""
		p.ExpeditionCode = ""
		if err := s.pickingRepo.Update(ctx, p); err != nil {
			return err
		}

		logger.Info("Delivery order shipment cancelled",
			zap.String("picking_id", p.ID.String()),
			zap.String("expedition_code", code),
			zap.String("event", "picking_shipment_cancelled"),
		)
		return nil
	})
}

// Pickup schedules a carrier pickup for the delivery order's carrier account.
func (s *Service) Pickup(ctx context.Context, pickingID uuid.UUID, req *PickupRequest) (string, error) {
	p, err := s.pickingRepo.GetByID(ctx, pickingID)
	if err != nil {
		return "", err
	}
	c, adapter, err := s.carrierOf(ctx, p)
	if err != nil {
		return "", err
	}
	account, err := s.orders.Account(ctx, c)
	if err != nil {
		return "", err
	}

	fields := make([]carrier.Field, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, carrier.Field{Key: f.Key, Value: f.Value})
	}
	answer, err := adapter.SchedulePickup(ctx, account, &carrier.PickupRequest{Fields: fields})
	if err != nil {
		return "", err
	}

	logger.Info("Pickup scheduled",
		zap.String("picking_id", p.ID.String()),
		zap.String("carrier", c.Name),
		zap.String("event", "pickup_scheduled"),
	)
	return answer, nil
}
