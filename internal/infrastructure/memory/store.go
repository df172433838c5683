// Package memory keeps every aggregate in process memory. It backs the "memory" database
// driver for local runs and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/user"
)

type dataset struct {
	shipments   map[uuid.UUID]shipment.Shipment
	labels      map[uuid.UUID]shipment.Label
	carriers    map[uuid.UUID]carrier.Carrier
	credentials map[uuid.UUID]carrier.Credential
	pickings    map[uuid.UUID]picking.Picking
	partners    map[uuid.UUID]partner.Partner
	saleOrders  map[uuid.UUID]partner.SaleOrder
	attachments map[uuid.UUID]attachment.Attachment
	users       map[uuid.UUID]user.User
	activities  map[uuid.UUID]activity.Activity
	messages    map[uuid.UUID]message.Message
	// order keeps insertion order so listings are stable.
	order map[uuid.UUID]int64
}

func newDataset() *dataset {
	return &dataset{
		shipments:   make(map[uuid.UUID]shipment.Shipment),
		labels:      make(map[uuid.UUID]shipment.Label),
		carriers:    make(map[uuid.UUID]carrier.Carrier),
		credentials: make(map[uuid.UUID]carrier.Credential),
		pickings:    make(map[uuid.UUID]picking.Picking),
		partners:    make(map[uuid.UUID]partner.Partner),
		saleOrders:  make(map[uuid.UUID]partner.SaleOrder),
		attachments: make(map[uuid.UUID]attachment.Attachment),
		users:       make(map[uuid.UUID]user.User),
		activities:  make(map[uuid.UUID]activity.Activity),
		messages:    make(map[uuid.UUID]message.Message),
		order:       make(map[uuid.UUID]int64),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *dataset) clone() *dataset {
	return &dataset{
		shipments:   cloneMap(d.shipments),
		labels:      cloneMap(d.labels),
		carriers:    cloneMap(d.carriers),
		credentials: cloneMap(d.credentials),
		pickings:    cloneMap(d.pickings),
		partners:    cloneMap(d.partners),
		saleOrders:  cloneMap(d.saleOrders),
		attachments: cloneMap(d.attachments),
		users:       cloneMap(d.users),
		activities:  cloneMap(d.activities),
		messages:    cloneMap(d.messages),
		order:       cloneMap(d.order),
	}
}

// Store holds the dataset. Sequences live outside it and never roll back.
type Store struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	data      *dataset
	counter   int64
	sequences map[string]int
}

func NewStore() *Store {
	return &Store{data: newDataset(), sequences: make(map[string]int)}
}

type txKey struct{}

func inTransaction(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// WithinTransaction snapshots the dataset and restores it when fn fails.
// Top-level transactions hold txMu until they finish, so a rollback never discards
// writes made by other callers. Nested calls take their own snapshot and behave as savepoints.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !inTransaction(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
		ctx = context.WithValue(ctx, txKey{}, true)
	}

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// lockWrite locks the dataset for a write. Writes outside a transaction also wait for
// any running transaction to finish. The returned func releases both locks.
func (s *Store) lockWrite(ctx context.Context) func() {
	standalone := !inTransaction(ctx)
	if standalone {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if standalone {
			s.txMu.Unlock()
		}
	}
}

// track assigns an id and insertion rank to a new record. Callers hold s.mu.
func (s *Store) track(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	s.counter++
	s.data.order[*id] = s.counter
}

func (s *Store) rank(id uuid.UUID) int64 {
	return s.data.order[id]
}

func (s *Store) nextSequence(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[key]++
	return s.sequences[key]
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil && updated.IsZero() {
		*updated = now
	}
}

func sequenceName(prefix string, year, n int) string {
	return fmt.Sprintf("%s/%d/%05d", prefix, year, n)
}
