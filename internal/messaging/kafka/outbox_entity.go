package kafka

import (
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending   = "PENDING"
	OutboxStatusPublished = "PUBLISHED"
	OutboxStatusFailed    = "FAILED"
)

// OutboxEvent is a domain event staged in the same transaction as the state
// change that produced it. The producer worker drains pending rows to kafka.
type OutboxEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	Topic     string    `gorm:"column:topic;type:varchar(120);not null"`
	Key       string    `gorm:"column:key;type:varchar(120);not null"`
	Payload   []byte    `gorm:"column:payload;type:jsonb;not null"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	Attempts  int       `gorm:"column:attempts;not null;default:0"`
	LastError string    `gorm:"column:last_error;type:text"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamptz"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}
