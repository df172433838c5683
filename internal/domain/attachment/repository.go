package attachment

import (
	"context"

	"github.com/google/uuid"

	"shipping-management/internal/domain/record"
)

type Repository interface {
	Create(ctx context.Context, attachment *Attachment) error
	GetByID(ctx context.Context, attachmentID uuid.UUID) (*Attachment, error)
	ListByOwner(ctx context.Context, owner record.Ref) ([]*Attachment, error)
	DeleteByOwner(ctx context.Context, owner record.Ref) error
}
