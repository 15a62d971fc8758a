package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-madrasa/internal/events"
	"go-madrasa/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePaymentStatus turns payment status events into operator
// notifications. Undecodable messages are committed and skipped so one bad
// payload never wedges the partition.
func ConsumePaymentStatus(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notify.Notifier,
	chatID string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payment_status")
	log.Info("payment status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payment status consumer stopped")
				return
			}
			log.Error("fetch payment status message failed", zap.Error(err))
			continue
		}

		var event events.PaymentStatusChanged
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payment status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		text := fmt.Sprintf(
			"Salary payment %s for teacher %s, period %s (total %.2f)",
			event.Status, event.TeacherID, event.Period, event.TotalSalary,
		)
		if !event.PaymentProcessed && event.Status == "Paid" {
			text += " - gateway processing pending"
		}

		if err := notifier.Send(ctx, chatID, text); err != nil {
			log.Error("send payment notification failed",
				zap.String("teacher_id", event.TeacherID),
				zap.String("period", event.Period),
				zap.Error(err),
			)
			// Leave the message uncommitted so the next poll retries it.
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payment status message failed", zap.Error(err))
		}
	}
}
