package picking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, picking *Picking) error
	GetByID(ctx context.Context, pickingID uuid.UUID) (*Picking, error)
	GetByIDs(ctx context.Context, pickingIDs []uuid.UUID) ([]*Picking, error)
	Update(ctx context.Context, picking *Picking) error
	List(ctx context.Context) ([]*Picking, error)
}
