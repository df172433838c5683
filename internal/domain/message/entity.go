package message

import (
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/record"
)

type Kind string

const (
	// KindComment is posted on a record's thread.
	KindComment Kind = "comment"
	// KindNotification is addressed to users without a thread.
	KindNotification Kind = "notification"
)

// Message is a user-visible HTML post.
type Message struct {
	ID           uuid.UUID
	Kind         Kind
	Thread       *record.Ref
	Subject      string
	Body         string
	RecipientIDs []uuid.UUID
	CreatedAt    time.Time
}
