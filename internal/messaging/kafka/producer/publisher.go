package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
)

func publishMessage(ctx context.Context, writer *kafkago.Writer, msg kafka.OutboxMessage) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: msg.Topic,
		Key:   []byte(msg.Key),
		Value: msg.Payload,
	})
}
