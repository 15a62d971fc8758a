package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-madrasa/internal/events"
	"go-madrasa/internal/messaging/kafka/consumer"
	"go-madrasa/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer forwards payment status events to the operator channel.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		notifier = notify.NewTelegramNotifier(token)
	}
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.TopicPaymentStatus,
		GroupID:        "go-madrasa-payment-notify",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePaymentStatus(ctx, reader, notifier, chatID, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
