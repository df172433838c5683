package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/record"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

// AttachmentRepository stores document binaries in the attachments table.
type AttachmentRepository struct {
	db *DB
}

func NewAttachmentRepository(db *DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	dbModel := &models.AttachmentModel{
		ID:         a.ID,
		Name:       a.Name,
		MimeType:   a.MimeType,
		Data:       a.Data,
		OwnerModel: string(a.Owner.Model),
		OwnerID:    a.Owner.ID,
		CreatedAt:  a.CreatedAt,
	}
	if err := r.db.conn(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) GetByID(ctx context.Context, attachmentID uuid.UUID) (*attachment.Attachment, error) {
	var dbModel models.AttachmentModel
	err := r.db.conn(ctx).Where("id = ?", attachmentID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, attachment.ErrAttachmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return toAttachmentEntity(&dbModel), nil
}

func (r *AttachmentRepository) ListByOwner(ctx context.Context, owner record.Ref) ([]*attachment.Attachment, error) {
	var dbModels []models.AttachmentModel
	err := r.db.conn(ctx).
		Where("owner_model = ? AND owner_id = ?", string(owner.Model), owner.ID).
		Order("created_at").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	out := make([]*attachment.Attachment, len(dbModels))
	for i := range dbModels {
		out[i] = toAttachmentEntity(&dbModels[i])
	}
	return out, nil
}

func (r *AttachmentRepository) DeleteByOwner(ctx context.Context, owner record.Ref) error {
	err := r.db.conn(ctx).
		Where("owner_model = ? AND owner_id = ?", string(owner.Model), owner.ID).
		Delete(&models.AttachmentModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}

func toAttachmentEntity(m *models.AttachmentModel) *attachment.Attachment {
	return &attachment.Attachment{
		ID:        m.ID,
		Name:      m.Name,
		MimeType:  m.MimeType,
		Data:      m.Data,
		Owner:     record.Ref{Model: record.Model(m.OwnerModel), ID: m.OwnerID},
		CreatedAt: m.CreatedAt,
	}
}

// MessageRepository keeps threaded comments and user notifications.
type MessageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	dbModel := &models.MessageModel{
		ID:        m.ID,
		Kind:      string(m.Kind),
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
	if m.Thread != nil {
		threadModel := string(m.Thread.Model)
		threadID := m.Thread.ID
		dbModel.ThreadModel = &threadModel
		dbModel.ThreadID = &threadID
	}
	for _, userID := range m.RecipientIDs {
		dbModel.Recipients = append(dbModel.Recipients, models.MessageRecipientModel{MessageID: m.ID, UserID: userID})
	}

	if err := r.db.conn(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByThread(ctx context.Context, thread record.Ref) ([]*message.Message, error) {
	return r.find(r.db.conn(ctx).Where("thread_model = ? AND thread_id = ?", string(thread.Model), thread.ID))
}

func (r *MessageRepository) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*message.Message, error) {
	db := r.db.conn(ctx)
	return r.find(db.Where("id IN (?)",
		db.Model(&models.MessageRecipientModel{}).Select("message_id").Where("user_id = ?", userID),
	))
}

func (r *MessageRepository) find(db *gorm.DB) ([]*message.Message, error) {
	var dbModels []models.MessageModel
	if err := db.Preload("Recipients").Order("created_at").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	out := make([]*message.Message, len(dbModels))
	for i, m := range dbModels {
		msg := &message.Message{
			ID:        m.ID,
			Kind:      message.Kind(m.Kind),
			Subject:   m.Subject,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		}
		if m.ThreadModel != nil && m.ThreadID != nil {
			msg.Thread = &record.Ref{Model: record.Model(*m.ThreadModel), ID: *m.ThreadID}
		}
		for _, rcpt := range m.Recipients {
			msg.RecipientIDs = append(msg.RecipientIDs, rcpt.UserID)
		}
		out[i] = msg
	}
	return out, nil
}

// ActivityRepository keeps follow-up tasks scheduled on records.
type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.State == "" {
		a.State = activity.StateOpen
	}

	if err := r.db.conn(ctx).Create(toActivityModel(a)).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, activityID uuid.UUID) (*activity.Activity, error) {
	var dbModel models.ActivityModel
	err := r.db.conn(ctx).Where("id = ?", activityID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, activity.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return toActivityEntity(&dbModel), nil
}

func (r *ActivityRepository) HasOpen(ctx context.Context, kind activity.Kind, target record.Ref) (bool, error) {
	var count int64
	err := r.db.conn(ctx).Model(&models.ActivityModel{}).
		Where("kind = ? AND target_model = ? AND target_id = ? AND state = ?",
			string(kind), string(target.Model), target.ID, string(activity.StateOpen)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check activities: %w", err)
	}
	return count > 0, nil
}

func (r *ActivityRepository) ListByTarget(ctx context.Context, target record.Ref) ([]*activity.Activity, error) {
	return r.find(r.db.conn(ctx).Where("target_model = ? AND target_id = ?", string(target.Model), target.ID))
}

func (r *ActivityRepository) ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]*activity.Activity, error) {
	return r.find(r.db.conn(ctx).Where("user_id = ? AND state = ?", userID, string(activity.StateOpen)))
}

func (r *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	result := r.db.conn(ctx).Model(&models.ActivityModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"summary":  a.Summary,
			"note":     a.Note,
			"deadline": a.Deadline,
			"user_id":  a.UserID,
			"state":    string(a.State),
			"done_at":  a.DoneAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return activity.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) find(db *gorm.DB) ([]*activity.Activity, error) {
	var dbModels []models.ActivityModel
	if err := db.Order("created_at").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	out := make([]*activity.Activity, len(dbModels))
	for i := range dbModels {
		out[i] = toActivityEntity(&dbModels[i])
	}
	return out, nil
}

func toActivityModel(a *activity.Activity) *models.ActivityModel {
	return &models.ActivityModel{
		ID:          a.ID,
		Kind:        string(a.Kind),
		Summary:     a.Summary,
		Note:        a.Note,
		Deadline:    a.Deadline,
		UserID:      a.UserID,
		TargetModel: string(a.Target.Model),
		TargetID:    a.Target.ID,
		State:       string(a.State),
		CreatedAt:   a.CreatedAt,
		DoneAt:      a.DoneAt,
	}
}

func toActivityEntity(m *models.ActivityModel) *activity.Activity {
	return &activity.Activity{
		ID:        m.ID,
		Kind:      activity.Kind(m.Kind),
		Summary:   m.Summary,
		Note:      m.Note,
		Deadline:  m.Deadline,
		UserID:    m.UserID,
		Target:    record.Ref{Model: record.Model(m.TargetModel), ID: m.TargetID},
		State:     activity.State(m.State),
		CreatedAt: m.CreatedAt,
		DoneAt:    m.DoneAt,
	}
}
