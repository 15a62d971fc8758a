package kafka

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event *OutboxEvent) error
	FindPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, lastError string) error
}

type outboxRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event *OutboxEvent) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO outbox_events (id, school_id, topic, key, payload, status, attempts, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, 0, $7)`,
			event.ID, event.SchoolID, event.Topic, event.Key, event.Payload, OutboxStatusPending, time.Now(),
		)
		return err
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *outboxRepository) FindPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var rows []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", OutboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *outboxRepository) MarkPublished(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       OutboxStatusPublished,
			"published_at": &now,
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, lastError string) error {
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     OutboxStatusFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
}
