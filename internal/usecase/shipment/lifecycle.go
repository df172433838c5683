package shipment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/events"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
)

// ActionResult reports which of the requested shipments changed.
type ActionResult struct {
	Changed []*domainShipment.Shipment
	Skipped []uuid.UUID
}

// ApplyAction applies action to every shipment in ids. Shipments whose current state does not
// allow the action are skipped untouched. Cancelling a shipment that was already handed to the
// carrier also cancels the expedition, best effort.
func (s *Service) ApplyAction(ctx context.Context, action domainShipment.Action, ids []uuid.UUID) (*ActionResult, error) {
	if !validAction(action) {
		return nil, appErrors.NewUserError("unknown shipment action %q", action)
	}

	shipments := make([]*domainShipment.Shipment, 0, len(ids))
	for _, id := range ids {
		sh, err := s.shipmentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, sh)
	}

	result := &ActionResult{}
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, sh := range shipments {
			if !sh.CanApply(action) {
				result.Skipped = append(result.Skipped, sh.ID)
				continue
			}
			if action == domainShipment.ActionCancel {
				s.cancelAtCarrier(ctx, sh)
			}
			if err := s.transition(ctx, sh, action); err != nil {
				return err
			}
			result.Changed = append(result.Changed, sh)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CancelLocal cancels the given shipments without contacting the carrier. Shipments that
// cannot be cancelled are left alone.
func (s *Service) CancelLocal(ctx context.Context, shipments []*domainShipment.Shipment) error {
	for _, sh := range shipments {
		if !sh.CanApply(domainShipment.ActionCancel) {
			continue
		}
		if err := s.transition(ctx, sh, domainShipment.ActionCancel); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) transition(ctx context.Context, sh *domainShipment.Shipment, action domainShipment.Action) error {
	from := sh.State
	if !sh.Apply(action, s.clock.Now()) {
		return nil
	}
	if err := s.shipmentRepo.Update(ctx, sh); err != nil {
		return err
	}

	logger.Info("Shipment state changed",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("action", string(action)),
		zap.String("from_state", string(from)),
		zap.String("to_state", string(sh.State)),
		zap.String("event", "shipment_state_changed"),
	)
	s.publish(ctx, events.ShipmentStateChanged, sh, func(e *events.Event) {
		e.FromState = string(from)
	})
	return nil
}

// cancelAtCarrier cancels the expedition of sh when it was sent through an adapter and
// clears the stored expedition code on success. Failures are logged; the local
// cancellation proceeds regardless.
func (s *Service) cancelAtCarrier(ctx context.Context, sh *domainShipment.Shipment) {
	if sh.PickingID == nil || sh.TrackingRef == "" {
		return
	}
	adapter, account, err := s.account(ctx, sh)
	if err != nil {
		logger.Warn("Carrier cancellation skipped",
			zap.String("shipment_id", sh.ID.String()),
			zap.Error(err),
			zap.String("event", "carrier_cancel_skipped"),
		)
		return
	}
	code := sh.ExpeditionCode
	if code == "" {
		code = sh.TrackingRef
	}
	if err := adapter.Cancel(ctx, account, code); err != nil {
		logger.Warn("Carrier cancellation failed",
			zap.String("shipment_id", sh.ID.String()),
			zap.String("expedition_code", code),
			zap.Error(err),
			zap.String("event", "carrier_cancel_failed"),
		)
		return
	}
	sh.ExpeditionCode = ""
}
