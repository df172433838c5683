package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/partner"
)

type PartnerRepository struct {
	store *Store
}

func NewPartnerRepository(store *Store) *PartnerRepository {
	return &PartnerRepository{store: store}
}

func (r *PartnerRepository) Create(ctx context.Context, p *partner.Partner) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&p.ID)
	stamp(&p.CreatedAt, &p.UpdatedAt)
	r.store.data.partners[p.ID] = *p
	return nil
}

func (r *PartnerRepository) GetByID(_ context.Context, partnerID uuid.UUID) (*partner.Partner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.data.partners[partnerID]
	if !ok {
		return nil, partner.ErrPartnerNotFound
	}
	return &p, nil
}

func (r *PartnerRepository) Update(ctx context.Context, p *partner.Partner) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.partners[p.ID]; !ok {
		return partner.ErrPartnerNotFound
	}
	p.UpdatedAt = time.Now()
	r.store.data.partners[p.ID] = *p
	return nil
}

func (r *PartnerRepository) List(_ context.Context) ([]*partner.Partner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*partner.Partner
	for _, p := range r.store.data.partners {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out, nil
}

func (r *PartnerRepository) CreateSaleOrder(ctx context.Context, o *partner.SaleOrder) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&o.ID)
	stamp(&o.CreatedAt, nil)
	r.store.data.saleOrders[o.ID] = *o
	return nil
}

func (r *PartnerRepository) GetSaleOrder(_ context.Context, orderID uuid.UUID) (*partner.SaleOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.data.saleOrders[orderID]
	if !ok {
		return nil, partner.ErrSaleOrderNotFound
	}
	return &o, nil
}
