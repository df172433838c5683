package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	defer r.store.lockWrite(ctx)()

	for _, existing := range r.store.data.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrUserAlreadyExists
		}
	}
	r.store.track(&u.ID)
	stamp(&u.CreatedAt, &u.UpdatedAt)
	r.store.data.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.data.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) GetByID(_ context.Context, userID uuid.UUID) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.data.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) list(match func(*user.User) bool) []*user.User {
	var out []*user.User
	for _, u := range r.store.data.users {
		u := u
		if match(&u) {
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.store.rank(out[i].ID) < r.store.rank(out[j].ID) })
	return out
}

func (r *UserRepository) GetAll(_ context.Context) ([]*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(*user.User) bool { return true }), nil
}

func (r *UserRepository) ListByRole(_ context.Context, role user.Role) ([]*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(u *user.User) bool { return u.Role == role && u.IsActive }), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	defer r.store.lockWrite(ctx)()

	if _, ok := r.store.data.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	r.store.data.users[u.ID] = *u
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	defer r.store.lockWrite(ctx)()

	u, ok := r.store.data.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHashed = passwordHash
	u.UpdatedAt = time.Now()
	r.store.data.users[userID] = u
	return nil
}
