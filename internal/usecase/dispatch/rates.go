package dispatch

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shipping-management/internal/domain/picking"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
)

// CompareRates asks every active real carrier for a quote on the delivery order. Quotes
// without error come first, cheapest first.
func (s *Service) CompareRates(ctx context.Context, pickingID uuid.UUID) ([]RateOption, error) {
	p, err := s.pickingRepo.GetByID(ctx, pickingID)
	if err != nil {
		return nil, err
	}
	if p.SaleID == nil {
		return nil, appErrors.NewAppError(appErrors.CodeConfig,
			fmt.Sprintf("delivery order %s has no sale order to quote", p.Name), picking.ErrNoSaleOrder)
	}

	carriers, err := s.carrierRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	options := make([]RateOption, 0, len(carriers))
	for _, c := range carriers {
		if !c.Kind.IsReal() {
			continue
		}
		opt := RateOption{CarrierID: c.ID, CarrierName: c.Name, Kind: c.Kind}

		adapter, err := s.registry.For(c)
		if err != nil {
			opt.ErrorMessage = err.Error()
			options = append(options, opt)
			continue
		}
		order, err := s.orders.Build(ctx, c, p)
		if err != nil {
			opt.ErrorMessage = err.Error()
			options = append(options, opt)
			continue
		}
		rate, err := adapter.Rate(ctx, order)
		if err != nil {
			opt.ErrorMessage = err.Error()
			options = append(options, opt)
			continue
		}
		opt.Success = rate.Success
		opt.Price = rate.Price
		opt.ErrorMessage = rate.ErrorMessage
		opt.WarningMessage = rate.WarningMessage
		options = append(options, opt)
	}

	sort.SliceStable(options, func(i, j int) bool {
		ei, ej := options[i].ErrorMessage != "", options[j].ErrorMessage != ""
		if ei != ej {
			return !ei
		}
		return options[i].Price.LessThan(options[j].Price)
	})

	logger.Info("Rates compared",
		zap.String("picking_id", p.ID.String()),
		zap.Int("carriers", len(options)),
		zap.String("event", "rates_compared"),
	)
	return options, nil
}

// SelectRate assigns the single selected quote to the delivery order.
func (s *Service) SelectRate(ctx context.Context, pickingID uuid.UUID, selected []RateOption) error {
	if len(selected) != 1 {
		return appErrors.NewUserError("select exactly one rate, got %d", len(selected))
	}
	choice := selected[0]

	return s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.pickingRepo.GetByID(ctx, pickingID)
		if err != nil {
			return err
		}
		c, err := s.carrierRepo.GetByID(ctx, choice.CarrierID)
		if err != nil {
			return err
		}
		p.CarrierID = &c.ID
		p.CarrierPrice = choice.Price
		if err := s.pickingRepo.Update(ctx, p); err != nil {
			return err
		}

		logger.Info("Rate selected",
			zap.String("picking_id", p.ID.String()),
			zap.String("carrier", c.Name),
			zap.String("price", choice.Price.String()),
			zap.String("event", "rate_selected"),
		)
		return nil
	})
}
