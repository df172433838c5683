package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/record"
)

type AttachmentRepository struct {
	store *Store
}

func NewAttachmentRepository(store *Store) *AttachmentRepository {
	return &AttachmentRepository{store: store}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&a.ID)
	stamp(&a.CreatedAt, nil)
	stored := *a
	stored.Data = append([]byte(nil), a.Data...)
	r.store.data.attachments[a.ID] = stored
	return nil
}

func (r *AttachmentRepository) GetByID(_ context.Context, attachmentID uuid.UUID) (*attachment.Attachment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.data.attachments[attachmentID]
	if !ok {
		return nil, attachment.ErrAttachmentNotFound
	}
	return &a, nil
}

func (r *AttachmentRepository) ListByOwner(_ context.Context, owner record.Ref) ([]*attachment.Attachment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*attachment.Attachment
	for _, a := range r.store.data.attachments {
		a := a
		if a.Owner == owner {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out, nil
}

func (r *AttachmentRepository) DeleteByOwner(ctx context.Context, owner record.Ref) error {
	defer r.store.lockWrite(ctx)()

	for id, a := range r.store.data.attachments {
		if a.Owner == owner {
			delete(r.store.data.attachments, id)
		}
	}
	return nil
}
