package producer

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
)

// ProcessOutboxMessages menerbitkan baris outbox PENDING ke kafka secara
// berkala sehingga konteks dibatalkan. Penerbitan semula selepas kegagalan
// selamat kerana consumer dijangka idempotent.
func ProcessOutboxMessages(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := processPendingMessages(ctx, repo, writer, log); err != nil {
				log.Error("process outbox messages failed", zap.Error(err))
			}
		}
	}
}

func processPendingMessages(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	msgs, err := repo.FetchPending(ctx, 50)
	if err != nil {
		return err
	}

	if len(msgs) == 0 {
		return nil
	}

	logger.Info("processing pending outbox messages", zap.Int("count", len(msgs)))

	var sent []uuid.UUID
	for _, msg := range msgs {
		if err := publishMessage(ctx, writer, msg); err != nil {
			logger.Error("publish outbox message failed",
				zap.String("outbox_id", msg.ID.String()),
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			continue
		}
		sent = append(sent, msg.ID)
	}

	if err := repo.MarkSent(ctx, sent); err != nil {
		logger.Error("mark outbox sent failed", zap.Error(err))
		return err
	}

	if len(sent) > 0 {
		logger.Info("outbox messages sent", zap.Int("count", len(sent)))
	}
	return nil
}
