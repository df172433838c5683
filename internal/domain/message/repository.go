package message

import (
	"context"

	"github.com/google/uuid"

	"shipping-management/internal/domain/record"
)

type Repository interface {
	Create(ctx context.Context, message *Message) error
	ListByThread(ctx context.Context, thread record.Ref) ([]*Message, error)
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*Message, error)
}
