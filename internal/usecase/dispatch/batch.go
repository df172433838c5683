package dispatch

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shipping-management/internal/domain/picking"
	"shipping-management/internal/logger"
)

// BatchSend dispatches every eligible delivery order of ids independently. A failing order
// is rolled back on its own and reported; the others still commit.
func (s *Service) BatchSend(ctx context.Context, ids []uuid.UUID) (*BatchResult, error) {
	pickings, err := s.pickingRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Errors: []BatchError{}}
	for _, p := range pickings {
		if !s.eligible(ctx, p) {
			result.Skipped++
			continue
		}

		err := s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
			_, err := s.send(ctx, p)
			return err
		})
		if err != nil {
			logger.Warn("Batch dispatch item failed",
				zap.String("picking_id", p.ID.String()),
				zap.String("picking", p.Name),
				zap.Error(err),
				zap.String("event", "batch_send_item_failed"),
			)
			result.Errors = append(result.Errors, BatchError{
				PickingID:   p.ID,
				PickingName: p.Name,
				Message:     err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	logger.Info("Batch dispatch finished",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Errors)),
		zap.Int("skipped", result.Skipped),
		zap.String("event", "batch_send_finished"),
	)
	return result, nil
}

// eligible keeps dispatch-ready orders of a real carrier that have not been sent yet.
func (s *Service) eligible(ctx context.Context, p *picking.Picking) bool {
	if !p.IsDispatchReady() || p.CarrierTrackingRef != "" || p.CarrierID == nil {
		return false
	}
	c, err := s.carrierRepo.GetByID(ctx, *p.CarrierID)
	if err != nil {
		return false
	}
	return c.Kind.IsReal()
}
