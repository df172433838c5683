package activity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shipping-management/internal/domain/record"
)

var ErrActivityNotFound = errors.New("activity not found")

type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, activityID uuid.UUID) (*Activity, error)
	// HasOpen reports whether target already carries an open activity of kind.
	HasOpen(ctx context.Context, kind Kind, target record.Ref) (bool, error)
	ListByTarget(ctx context.Context, target record.Ref) ([]*Activity, error)
	ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]*Activity, error)
	Update(ctx context.Context, activity *Activity) error
}
