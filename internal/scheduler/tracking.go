package scheduler

import (
	"context"

	"go.uber.org/zap"

	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/uow"
	"shipping-management/internal/logger"
)

// ShipmentTracker is the slice of the shipment service the refresh job needs.
type ShipmentTracker interface {
	ListTrackable(ctx context.Context) ([]*domainShipment.Shipment, error)
	RefreshTracking(ctx context.Context, sh *domainShipment.Shipment) error
}

// TrackingRefreshJob polls the carrier for every travelling shipment. Each shipment is
// refreshed in its own savepoint; a failure is logged and the next tick retries it.
type TrackingRefreshJob struct {
	tracker ShipmentTracker
	uow     uow.UnitOfWork
}

func NewTrackingRefreshJob(tracker ShipmentTracker, unitOfWork uow.UnitOfWork) *TrackingRefreshJob {
	return &TrackingRefreshJob{tracker: tracker, uow: unitOfWork}
}

func (j *TrackingRefreshJob) Name() string { return "tracking-refresh" }

func (j *TrackingRefreshJob) Run(ctx context.Context) error {
	shipments, err := j.tracker.ListTrackable(ctx)
	if err != nil {
		return err
	}

	var refreshed, failed int
	for _, sh := range shipments {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := j.uow.WithinTransaction(ctx, func(ctx context.Context) error {
			return j.tracker.RefreshTracking(ctx, sh)
		})
		if err != nil {
			failed++
			logger.Warn("Tracking refresh failed",
				zap.String("shipment_id", sh.ID.String()),
				zap.String("shipment", sh.Name),
				zap.String("tracking_ref", sh.TrackingRef),
				zap.Error(err),
				zap.String("event", "tracking_refresh_failed"),
			)
			continue
		}
		refreshed++
	}

	logger.Info("Tracking refresh completed",
		zap.Int("total", len(shipments)),
		zap.Int("refreshed", refreshed),
		zap.Int("failed", failed),
		zap.String("event", "tracking_refresh_completed"),
	)
	return nil
}
