package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
)

// OutboxMessage adalah baris outbox transaksional: ditulis dalam transaksi
// yang sama dengan perubahan state, diterbitkan kemudian oleh worker.
type OutboxMessage struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Topic     string          `gorm:"type:varchar(120);not null"`
	Key       string          `gorm:"type:varchar(120);not null"`
	Payload   json.RawMessage `gorm:"type:jsonb;not null"`
	Status    string          `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	CreatedAt time.Time
	SentAt    *time.Time
}

func (OutboxMessage) TableName() string { return "outbox_messages" }

// NewOutboxMessage memarshal payload event menjadi baris outbox.
func NewOutboxMessage(topic, key string, payload any) (*OutboxMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &OutboxMessage{
		ID:      uuid.New(),
		Topic:   topic,
		Key:     key,
		Payload: raw,
		Status:  OutboxStatusPending,
	}, nil
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Insert(ctx context.Context, msg *OutboxMessage) error
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, ids []uuid.UUID) error
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

func (r *outboxRepository) Insert(ctx context.Context, msg *OutboxMessage) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO outbox_messages (id, topic, key, payload, status, created_at) VALUES ($1, $2, $3, $4, $5, NOW())`,
			msg.ID, msg.Topic, msg.Key, []byte(msg.Payload), msg.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error) {
	var msgs []OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", OutboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&OutboxMessage{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":  OutboxStatusSent,
			"sent_at": time.Now().UTC(),
		}).Error
}
