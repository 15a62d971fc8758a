package producer

import (
	"context"

	"go-madrasa/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.Key),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "school_id", Value: []byte(event.SchoolID.String())},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
