package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/record"
)

type ActivityRepository struct {
	store *Store
}

func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	defer r.store.lockWrite(ctx)()

	r.store.track(&a.ID)
	stamp(&a.CreatedAt, nil)
	if a.State == "" {
		a.State = activity.StateOpen
	}
	r.store.data.activities[a.ID] = *a
	return nil
}

func (r *ActivityRepository) GetByID(_ context.Context, activityID uuid.UUID) (*activity.Activity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.data.activities[activityID]
	if !ok {
		return nil, activity.ErrActivityNotFound
	}
	return &a, nil
}

func (r *ActivityRepository) HasOpen(_ context.Context, kind activity.Kind, target record.Ref) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, a := range r.store.data.activities {
		if a.Kind == kind && a.Target == target && a.State == activity.StateOpen {
			return true, nil
		}
	}
	return false, nil
}

func (r *ActivityRepository) list(match func(*activity.Activity) bool) []*activity.Activity {
	var out []*activity.Activity
	for _, a := range r.store.data.activities {
		a := a
		if match(&a) {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out
}

func (r *ActivityRepository) ListByTarget(_ context.Context, target record.Ref) ([]*activity.Activity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(a *activity.Activity) bool { return a.Target == target }), nil
}

func (r *ActivityRepository) ListOpenByUser(_ context.Context, userID uuid.UUID) ([]*activity.Activity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(a *activity.Activity) bool {
		return a.UserID == userID && a.State == activity.StateOpen
	}), nil
}

func (r *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.activities[a.ID]; !ok {
		return activity.ErrActivityNotFound
	}
	r.store.data.activities[a.ID] = *a
	return nil
}
