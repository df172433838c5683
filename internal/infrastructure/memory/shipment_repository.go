package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/shipment"
)

type ShipmentRepository struct {
	store *Store
}

func NewShipmentRepository(store *Store) *ShipmentRepository {
	return &ShipmentRepository{store: store}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	defer r.store.lockWrite(ctx)()

	if s.PickingID != nil && s.TrackingRef != "" {
		for _, existing := range r.store.data.shipments {
			if existing.PickingID != nil && *existing.PickingID == *s.PickingID && existing.TrackingRef == s.TrackingRef {
				return shipment.ErrShipmentAlreadyExists
			}
		}
	}
	r.store.track(&s.ID)
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.store.data.shipments[s.ID] = *s
	return nil
}

func (r *ShipmentRepository) GetByID(_ context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.data.shipments[shipmentID]
	if !ok {
		return nil, shipment.ErrShipmentNotFound
	}
	return &s, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.shipments[s.ID]; !ok {
		return shipment.ErrShipmentNotFound
	}
	s.UpdatedAt = time.Now()
	r.store.data.shipments[s.ID] = *s
	return nil
}

// Delete removes the shipment with its labels and their attachments.
func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.shipments[shipmentID]; !ok {
		return shipment.ErrShipmentNotFound
	}
	for id, l := range r.store.data.labels {
		if l.ShipmentID == shipmentID {
			delete(r.store.data.attachments, l.AttachmentID)
			delete(r.store.data.labels, id)
		}
	}
	for id, a := range r.store.data.attachments {
		if a.Owner.ID == shipmentID {
			delete(r.store.data.attachments, id)
		}
	}
	delete(r.store.data.shipments, shipmentID)
	return nil
}

func (r *ShipmentRepository) collect(match func(*shipment.Shipment) bool) []*shipment.Shipment {
	var out []*shipment.Shipment
	for _, s := range r.store.data.shipments {
		s := s
		if match(&s) {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out
}

func (r *ShipmentRepository) List(_ context.Context, filter *shipment.Filter) ([]*shipment.Shipment, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if filter == nil {
		filter = &shipment.Filter{}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	all := r.collect(func(s *shipment.Shipment) bool {
		switch {
		case filter.State != nil && s.State != *filter.State:
			return false
		case filter.CarrierID != nil && s.CarrierID != *filter.CarrierID:
			return false
		case filter.CarrierKind != "" && s.CarrierKind != filter.CarrierKind:
			return false
		case filter.PickingID != nil && (s.PickingID == nil || *s.PickingID != *filter.PickingID):
			return false
		case filter.PartnerID != nil && (s.PartnerID == nil || *s.PartnerID != *filter.PartnerID):
			return false
		case filter.CompanyID != nil && s.CompanyID != *filter.CompanyID:
			return false
		case filter.IsReturn != nil && s.IsReturn != *filter.IsReturn:
			return false
		case filter.ShipDateFrom != nil && (s.ShipDate == nil || s.ShipDate.Before(*filter.ShipDateFrom)):
			return false
		case filter.ShipDateTo != nil && (s.ShipDate == nil || s.ShipDate.After(*filter.ShipDateTo)):
			return false
		}
		if search != "" {
			hay := strings.ToLower(s.Name + " " + s.TrackingRef + " " + s.Origin)
			return strings.Contains(hay, search)
		}
		return true
	})

	total := int64(len(all))
	if filter.SortOrder == "desc" {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	return paginate(all, filter.Page, filter.PageSize), total, nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (r *ShipmentRepository) FindByPickingAndTracking(_ context.Context, pickingID uuid.UUID, trackingRef string) (*shipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	found := r.collect(func(s *shipment.Shipment) bool {
		return s.PickingID != nil && *s.PickingID == pickingID && s.TrackingRef == trackingRef
	})
	if len(found) == 0 {
		return nil, shipment.ErrShipmentNotFound
	}
	return found[0], nil
}

func (r *ShipmentRepository) ListByPicking(_ context.Context, pickingID uuid.UUID) ([]*shipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.collect(func(s *shipment.Shipment) bool {
		return s.PickingID != nil && *s.PickingID == pickingID
	}), nil
}

func inStates(state shipment.State, states []shipment.State) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

func (r *ShipmentRepository) ListTrackable(_ context.Context, states []shipment.State) ([]*shipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.collect(func(s *shipment.Shipment) bool {
		return inStates(s.State, states) && s.TrackingRef != "" && s.CarrierID != uuid.Nil
	}), nil
}

func (r *ShipmentRepository) ListPastDeadline(_ context.Context, states []shipment.State, day time.Time) ([]*shipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.collect(func(s *shipment.Shipment) bool {
		return inStates(s.State, states) && s.SLADeadline != nil && s.SLADeadline.Before(day)
	}), nil
}

func (r *ShipmentRepository) NextName(_ context.Context, prefix string, year int) (string, error) {
	n := r.store.nextSequence(fmt.Sprintf("%s/%d", prefix, year))
	return sequenceName(prefix, year, n), nil
}

func (r *ShipmentRepository) CreateLabel(ctx context.Context, label *shipment.Label) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.shipments[label.ShipmentID]; !ok {
		return shipment.ErrShipmentNotFound
	}
	r.store.track(&label.ID)
	stamp(&label.CreatedAt, nil)
	r.store.data.labels[label.ID] = *label
	return nil
}

func (r *ShipmentRepository) GetLabel(_ context.Context, labelID uuid.UUID) (*shipment.Label, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.data.labels[labelID]
	if !ok {
		return nil, shipment.ErrLabelNotFound
	}
	return &l, nil
}

func (r *ShipmentRepository) ListLabels(_ context.Context, shipmentID uuid.UUID) ([]*shipment.Label, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*shipment.Label
	for _, l := range r.store.data.labels {
		l := l
		if l.ShipmentID == shipmentID {
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out, nil
}
