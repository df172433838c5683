package memory

import (
	"context"
	"sort"

	"github.com/zoobzio/clockz"

	"shipping-management/internal/domain/analytics"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
)

// AnalyticsRepository computes the report projection on the fly.
type AnalyticsRepository struct {
	store *Store
	clock clockz.Clock
}

func NewAnalyticsRepository(store *Store, clock clockz.Clock) *AnalyticsRepository {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &AnalyticsRepository{store: store, clock: clock}
}

func (r *AnalyticsRepository) Rows(_ context.Context, filter *analytics.Filter) ([]analytics.Row, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if filter == nil {
		filter = &analytics.Filter{}
	}
	today := r.clock.Now()

	var rows []analytics.Row
	for _, s := range r.store.data.shipments {
		s := s
		switch {
		case filter.CarrierID != nil && s.CarrierID != *filter.CarrierID:
			continue
		case filter.CompanyID != nil && s.CompanyID != *filter.CompanyID:
			continue
		case filter.DateFrom != nil && (s.ShipDate == nil || s.ShipDate.Before(*filter.DateFrom)):
			continue
		case filter.DateTo != nil && (s.ShipDate == nil || s.ShipDate.After(*filter.DateTo)):
			continue
		}

		var p *picking.Picking
		if s.PickingID != nil {
			if found, ok := r.store.data.pickings[*s.PickingID]; ok {
				p = &found
			}
		}
		var recipient *partner.Partner
		if s.PartnerID != nil {
			if found, ok := r.store.data.partners[*s.PartnerID]; ok {
				recipient = &found
			}
		}
		rows = append(rows, analytics.BuildRow(&s, p, recipient, today))
	}

	sort.Slice(rows, func(i, j int) bool { return r.store.rank(rows[i].ShipmentID) < r.store.rank(rows[j].ShipmentID) })
	return rows, nil
}
