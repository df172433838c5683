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

// GenerateReturn asks the carrier for a reverse expedition and records it as a return
// shipment linked to the original.
func (s *Service) GenerateReturn(ctx context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	original, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !original.CanGenerateReturn() {
		return nil, appErrors.NewAppError(appErrors.CodeUser, domainShipment.ErrReturnNotAllowed.Error(), domainShipment.ErrReturnNotAllowed)
	}
	if original.PickingID == nil {
		return nil, appErrors.NewUserError("shipment %s has no delivery order to return", original.Name)
	}

	c, err := s.carrierRepo.GetByID(ctx, original.CarrierID)
	if err != nil {
		return nil, err
	}
	p, err := s.pickingRepo.GetByID(ctx, *original.PickingID)
	if err != nil {
		return nil, err
	}
	adapter, err := s.registry.For(c)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.Build(ctx, c, p)
	if err != nil {
		return nil, err
	}

	res, err := adapter.ReturnLabel(ctx, order, original.Name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	originalID := original.ID
	ret := &domainShipment.Shipment{
		State:              domainShipment.StateConfirmed,
		CarrierID:          c.ID,
		CarrierKind:        string(c.Kind),
		TrackingRef:        res.TrackingRef,
		ExpeditionCode:     res.ExpeditionCode,
		ShippingCost:       res.Price,
		NumberOfPackages:   original.NumberOfPackages,
		ShipDate:           &now,
		IsReturn:           true,
		OriginalShipmentID: &originalID,
	}
	s.derivePicking(ret, p)
	ret.Origin = "DEV-" + original.Name

	err = s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.insert(ctx, ret, c); err != nil {
			return err
		}
		for _, payload := range res.Labels {
			payload.Kind = domainShipment.LabelReturn
			if _, err := s.AttachLabel(ctx, ret, payload, true); err != nil {
				return err
			}
		}
		original.ReturnShipmentID = &ret.ID
		if err := s.shipmentRepo.Update(ctx, original); err != nil {
			return err
		}
		s.publish(ctx, events.ShipmentCreated, ret, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Return shipment generated",
		zap.String("shipment_id", original.ID.String()),
		zap.String("return_shipment_id", ret.ID.String()),
		zap.String("tracking_ref", ret.TrackingRef),
		zap.String("event", "return_generated"),
	)
	return ret, nil
}
