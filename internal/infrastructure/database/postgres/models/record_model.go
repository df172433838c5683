package models

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentModel stores document binaries owned by any record
type AttachmentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	MimeType   string    `gorm:"type:varchar(128);not null"`
	Data       []byte    `gorm:"type:bytea"`
	OwnerModel string    `gorm:"type:varchar(32);not null;index:idx_attachment_owner"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attachment_owner"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (AttachmentModel) TableName() string {
	return "attachments"
}

type MessageModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind        string     `gorm:"type:varchar(20);not null"`
	ThreadModel *string    `gorm:"type:varchar(32);index:idx_message_thread"`
	ThreadID    *uuid.UUID `gorm:"type:uuid;index:idx_message_thread"`
	Subject     string     `gorm:"type:varchar(255)"`
	Body        string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null;index"`

	Recipients []MessageRecipientModel `gorm:"foreignKey:MessageID"`
}

func (MessageModel) TableName() string {
	return "messages"
}

type MessageRecipientModel struct {
	MessageID uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;primary_key;index"`
}

func (MessageRecipientModel) TableName() string {
	return "message_recipients"
}

type ActivityModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind        string     `gorm:"type:varchar(20);not null"`
	Summary     string     `gorm:"type:varchar(255);not null"`
	Note        string     `gorm:"type:text"`
	Deadline    time.Time  `gorm:"type:date;not null"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TargetModel string     `gorm:"type:varchar(32);not null;index:idx_activity_target"`
	TargetID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_target"`
	State       string     `gorm:"type:varchar(10);not null;default:'open'"`
	CreatedAt   time.Time  `gorm:"not null"`
	DoneAt      *time.Time `gorm:"type:timestamptz"`
}

func (ActivityModel) TableName() string {
	return "activities"
}
