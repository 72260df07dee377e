// Package outboxrepo stores domain events in the outbox_messages table, in the
// same transaction as the state change that recorded them.
package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType     string     `gorm:"size:100"`
	AggregateType string     `gorm:"size:50"`
	AggregateID   uuid.UUID  `gorm:"type:uuid;index"`
	Payload       []byte     `gorm:"type:jsonb"`
	OccurredAt    time.Time  `gorm:"index"`
	PublishedAt   *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.Type, err)
		}
		dtos = append(dtos, MessageDTO{
			ID:            e.ID.Bytes(),
			EventType:     e.Type,
			AggregateType: e.AggregateType,
			AggregateID:   e.AggregateID.Bytes(),
			Payload:       payload,
			OccurredAt:    e.OccurredAt,
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListUnpublished locks the returned rows and skips rows locked by another
// relay, so concurrent relays never publish the same message twice.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY occurred_at, id
		LIMIT ?
		FOR UPDATE SKIP LOCKED
	`, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromGoogle(dto.ID)
		if err != nil {
			return nil, err
		}
		aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, ports.OutboxMessage{
			ID:            id,
			EventType:     dto.EventType,
			AggregateType: dto.AggregateType,
			AggregateID:   aggregateID,
			Payload:       dto.Payload,
			OccurredAt:    dto.OccurredAt,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", kernel.UUIDs(ids)).
		Update("published_at", at).Error
}

func (r *GormOutboxRepository) DeletePublishedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at < ?", before).
		Delete(&MessageDTO{})
	return result.RowsAffected, result.Error
}
