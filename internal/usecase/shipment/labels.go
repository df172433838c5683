package shipment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shipping-management/internal/carrier"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/events"
	"shipping-management/internal/logger"
)

// AttachLabel stores payload as a shipment-owned attachment and registers the label.
// With duplicateOnPicking the document is also attached to the delivery order.
func (s *Service) AttachLabel(ctx context.Context, sh *domainShipment.Shipment, payload carrier.LabelPayload, duplicateOnPicking bool) (*domainShipment.Label, error) {
	kind := payload.Kind
	if kind == "" {
		kind = domainShipment.LabelShipping
	}

	a := &attachment.Attachment{
		Name:     domainShipment.LabelFileName(sh.Name, sh.TrackingRef, kind),
		MimeType: attachment.MimePDF,
		Data:     payload.Data,
		Owner:    record.ShipmentRef(sh.ID),
	}
	if err := s.attachmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	label, err := s.registerLabel(ctx, sh, a.ID, kind)
	if err != nil {
		return nil, err
	}

	if duplicateOnPicking && sh.PickingID != nil {
		dup := &attachment.Attachment{
			Name:     a.Name,
			MimeType: attachment.MimePDF,
			Data:     payload.Data,
			Owner:    record.PickingRef(*sh.PickingID),
		}
		if err := s.attachmentRepo.Create(ctx, dup); err != nil {
			return nil, err
		}
	}
	return label, nil
}

func (s *Service) registerLabel(ctx context.Context, sh *domainShipment.Shipment, attachmentID uuid.UUID, kind domainShipment.LabelKind) (*domainShipment.Label, error) {
	label := &domainShipment.Label{
		Name:         domainShipment.LabelName(sh.Name, sh.TrackingRef, kind),
		ShipmentID:   sh.ID,
		AttachmentID: attachmentID,
		Kind:         kind,
	}
	if err := s.shipmentRepo.CreateLabel(ctx, label); err != nil {
		return nil, err
	}

	logger.Info("Label attached",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("label_id", label.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("event", "label_attached"),
	)
	labelID := label.ID
	s.publish(ctx, events.LabelAttached, sh, func(e *events.Event) {
		e.LabelID = &labelID
		e.LabelKind = string(kind)
	})
	return label, nil
}

// ReprintLabel fetches a fresh copy of the label from the carrier.
func (s *Service) ReprintLabel(ctx context.Context, id uuid.UUID) (*domainShipment.Label, error) {
	sh, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	code := sh.ExpeditionCode
	if code == "" {
		return nil, domainShipment.ErrNoExpeditionCode
	}

	adapter, account, err := s.account(ctx, sh)
	if err != nil {
		return nil, err
	}
	payload, err := adapter.ReprintLabel(ctx, account, code)
	if err != nil {
		return nil, err
	}
	payload.Kind = domainShipment.LabelReprint

	var label *domainShipment.Label
	err = s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		label, err = s.AttachLabel(ctx, sh, *payload, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return label, nil
}

// CreateFromPicking records the shipment of a delivery order that received a tracking
// reference. It returns nil when the picking has no tracking reference and the existing
// shipment when one was already recorded for the same picking and reference.
func (s *Service) CreateFromPicking(ctx context.Context, p *picking.Picking) (*domainShipment.Shipment, error) {
	if p.CarrierTrackingRef == "" || p.CarrierID == nil {
		return nil, nil
	}

	existing, err := s.shipmentRepo.FindByPickingAndTracking(ctx, p.ID, p.CarrierTrackingRef)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainShipment.ErrShipmentNotFound) {
		return nil, err
	}

	c, err := s.carrierRepo.GetByID(ctx, *p.CarrierID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sh := &domainShipment.Shipment{
		State:            domainShipment.StateConfirmed,
		CarrierID:        c.ID,
		CarrierKind:      string(c.Kind),
		TrackingRef:      p.CarrierTrackingRef,
		ExpeditionCode:   p.ExpeditionCode,
		ShippingCost:     p.CarrierPrice,
		NumberOfPackages: p.PackageCount(),
		ShipDate:         &now,
	}
	s.derivePicking(sh, p)

	err = s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.insert(ctx, sh, c); err != nil {
			return err
		}
		if err := s.linkPickingLabels(ctx, sh, p); err != nil {
			return err
		}
		s.publish(ctx, events.ShipmentCreated, sh, nil)
		return nil
	})
	if errors.Is(err, domainShipment.ErrShipmentAlreadyExists) {
		// A concurrent dispatch recorded it between the lookup and the insert.
		return s.shipmentRepo.FindByPickingAndTracking(ctx, p.ID, p.CarrierTrackingRef)
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// linkPickingLabels copies the label PDFs of the delivery order onto the shipment. Attachments
// named "Label*" are preferred; otherwise any PDF mentioning the tracking reference is used.
func (s *Service) linkPickingLabels(ctx context.Context, sh *domainShipment.Shipment, p *picking.Picking) error {
	docs, err := s.attachmentRepo.ListByOwner(ctx, record.PickingRef(p.ID))
	if err != nil {
		return err
	}

	var labels []*attachment.Attachment
	for _, a := range docs {
		if a.IsLabel() {
			labels = append(labels, a)
		}
	}
	if len(labels) == 0 {
		for _, a := range docs {
			if a.IsPDF() && strings.Contains(a.Name, sh.TrackingRef) {
				labels = append(labels, a)
			}
		}
	}

	for _, a := range labels {
		if _, err := s.AttachLabel(ctx, sh, carrier.LabelPayload{Data: a.Data, Kind: domainShipment.LabelShipping}, false); err != nil {
			return err
		}
	}
	return nil
}
