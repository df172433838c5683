package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/picking"
)

type PickingRepository struct {
	store *Store
}

func NewPickingRepository(store *Store) *PickingRepository {
	return &PickingRepository{store: store}
}

func (r *PickingRepository) Create(ctx context.Context, p *picking.Picking) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&p.ID)
	stamp(&p.CreatedAt, &p.UpdatedAt)
	r.store.data.pickings[p.ID] = *p
	return nil
}

func (r *PickingRepository) GetByID(_ context.Context, pickingID uuid.UUID) (*picking.Picking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.data.pickings[pickingID]
	if !ok {
		return nil, picking.ErrPickingNotFound
	}
	return &p, nil
}

// GetByIDs returns the pickings found, in the order requested. Unknown ids are skipped.
func (r *PickingRepository) GetByIDs(_ context.Context, pickingIDs []uuid.UUID) ([]*picking.Picking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*picking.Picking
	for _, id := range pickingIDs {
		if p, ok := r.store.data.pickings[id]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *PickingRepository) Update(ctx context.Context, p *picking.Picking) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.pickings[p.ID]; !ok {
		return picking.ErrPickingNotFound
	}
	p.UpdatedAt = time.Now()
	r.store.data.pickings[p.ID] = *p
	return nil
}

func (r *PickingRepository) List(_ context.Context) ([]*picking.Picking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*picking.Picking
	for _, p := range r.store.data.pickings {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out, nil
}
