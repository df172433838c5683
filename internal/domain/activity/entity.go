package activity

import (
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/record"
)

type Kind string

const (
	KindTodo     Kind = "todo"
	KindSLAAlert Kind = "sla_alert"
)

type State string

const (
	StateOpen State = "open"
	StateDone State = "done"
)

// Activity is a follow-up task scheduled for a user on a record.
type Activity struct {
	ID        uuid.UUID
	Kind      Kind
	Summary   string
	Note      string
	Deadline  time.Time
	UserID    uuid.UUID
	Target    record.Ref
	State     State
	CreatedAt time.Time
	DoneAt    *time.Time
}
