package shipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/events"
	"shipping-management/internal/logger"
)

// RefreshTracking queries the carrier for the current status of sh and moves it to the
// mapped state. Draft, cancelled and returned shipments are left unchanged, as are
// shipments without a tracking reference or carrier.
func (s *Service) RefreshTracking(ctx context.Context, sh *domainShipment.Shipment) error {
	if !sh.Trackable() || sh.TrackingRef == "" || sh.CarrierID == uuid.Nil {
		return nil
	}

	adapter, account, err := s.account(ctx, sh)
	if err != nil {
		return err
	}
	code := sh.ExpeditionCode
	if code == "" {
		code = sh.TrackingRef
	}
	status, err := adapter.RefreshStatus(ctx, account, code)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	from := sh.State
	sh.TrackingStatusRaw = status.Text()
	if status.HistoryHTML != "" {
		sh.TrackingHistoryHTML = status.HistoryHTML
	}
	sh.LastTrackingUpdate = &now
	changed := sh.ApplyTrackedState(status.State, now)

	if err := s.shipmentRepo.Update(ctx, sh); err != nil {
		return err
	}

	logger.Info("Tracking refreshed",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("raw_status", status.Raw),
		zap.String("from_state", string(from)),
		zap.String("to_state", string(sh.State)),
		zap.String("event", "tracking_refreshed"),
	)

	if !changed {
		return nil
	}
	s.publish(ctx, events.ShipmentStateChanged, sh, func(e *events.Event) {
		e.FromState = string(from)
		e.RawStatus = status.Raw
	})
	if sh.State == domainShipment.StateIncident {
		s.publish(ctx, events.IncidentDetected, sh, func(e *events.Event) {
			e.FromState = string(from)
			e.RawStatus = status.Raw
		})
	}
	return nil
}

// RefreshTrackingByID loads the shipment and refreshes it inside a transaction.
func (s *Service) RefreshTrackingByID(ctx context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	sh, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.TrackingRef == "" {
		return nil, domainShipment.ErrNoTrackingReference
	}
	if !sh.Trackable() {
		return nil, fmt.Errorf("%w: %s shipments are no longer tracked", domainShipment.ErrInvalidState, sh.State)
	}
	err = s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.RefreshTracking(ctx, sh)
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// ListTrackable returns the shipments the periodic refresh should query.
func (s *Service) ListTrackable(ctx context.Context) ([]*domainShipment.Shipment, error) {
	return s.shipmentRepo.ListTrackable(ctx, []domainShipment.State{
		domainShipment.StateConfirmed,
		domainShipment.StateInTransit,
	})
}
