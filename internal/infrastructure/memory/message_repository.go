package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/record"
)

type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) *MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&m.ID)
	stamp(&m.CreatedAt, nil)
	stored := *m
	stored.RecipientIDs = append([]uuid.UUID(nil), m.RecipientIDs...)
	r.store.data.messages[m.ID] = stored
	return nil
}

func (r *MessageRepository) list(match func(*message.Message) bool) []*message.Message {
	var out []*message.Message
	for _, m := range r.store.data.messages {
		m := m
		if match(&m) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out
}

func (r *MessageRepository) ListByThread(_ context.Context, thread record.Ref) ([]*message.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(m *message.Message) bool { return m.Thread != nil && *m.Thread == thread }), nil
}

func (r *MessageRepository) ListByRecipient(_ context.Context, userID uuid.UUID) ([]*message.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(m *message.Message) bool {
		for _, id := range m.RecipientIDs {
			if id == userID {
				return true
			}
		}
		return false
	}), nil
}
