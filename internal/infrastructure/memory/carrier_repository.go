package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/carrier"
)

type CarrierRepository struct {
	store *Store
}

func NewCarrierRepository(store *Store) *CarrierRepository {
	return &CarrierRepository{store: store}
}

func (r *CarrierRepository) Create(ctx context.Context, c *carrier.Carrier) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&c.ID)
	stamp(&c.CreatedAt, &c.UpdatedAt)
	r.store.data.carriers[c.ID] = *c
	return nil
}

func (r *CarrierRepository) GetByID(_ context.Context, carrierID uuid.UUID) (*carrier.Carrier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.data.carriers[carrierID]
	if !ok {
		return nil, carrier.ErrCarrierNotFound
	}
	return &c, nil
}

func (r *CarrierRepository) Update(ctx context.Context, c *carrier.Carrier) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.carriers[c.ID]; !ok {
		return carrier.ErrCarrierNotFound
	}
	c.UpdatedAt = time.Now()
	r.store.data.carriers[c.ID] = *c
	return nil
}

func (r *CarrierRepository) List(_ context.Context, activeOnly bool) ([]*carrier.Carrier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*carrier.Carrier
	for _, c := range r.store.data.carriers {
		c := c
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out, nil
}

func (r *CarrierRepository) CreateCredential(ctx context.Context, cred *carrier.Credential) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&cred.ID)
	stamp(&cred.CreatedAt, &cred.UpdatedAt)
	r.store.data.credentials[cred.ID] = *cred
	return nil
}

func (r *CarrierRepository) GetCredential(_ context.Context, credentialID uuid.UUID) (*carrier.Credential, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.data.credentials[credentialID]
	if !ok {
		return nil, carrier.ErrCredentialNotFound
	}
	return &c, nil
}

func (r *CarrierRepository) UpdateCredential(ctx context.Context, cred *carrier.Credential) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.credentials[cred.ID]; !ok {
		return carrier.ErrCredentialNotFound
	}
	cred.UpdatedAt = time.Now()
	r.store.data.credentials[cred.ID] = *cred
	return nil
}

func (r *CarrierRepository) ListCredentials(_ context.Context) ([]*carrier.Credential, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*carrier.Credential
	for _, c := range r.store.data.credentials {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out, nil
}
