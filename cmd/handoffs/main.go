// Command handoffs logs checkout handoff events from the broker so the
// shop owner can match chat orders with storefront carts.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"deenha/internal/checkout"
	"deenha/internal/config"
	"deenha/pkg/logger"
	"deenha/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.AppEnv)
	defer log.Sync()

	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Named("rabbitmq"))
	if err != nil {
		log.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
	}
	defer mqClient.Close()

	done, err := mqClient.ConsumeCheckoutHandoffs(func(body []byte) error {
		ev, err := checkout.ParseHandoffEvent(body)
		if err != nil {
			return err
		}
		log.Info("Checkout handoff",
			zap.String("session_id", ev.SessionID),
			zap.Int("items", len(ev.Items)),
			zap.Int("total", ev.Total),
			zap.Time("created_at", ev.CreatedAt),
		)
		return nil
	})
	if err != nil {
		log.Fatal("Failed to start RabbitMQ consumer", zap.Error(err))
	}
	log.Info("Waiting for checkout handoffs", zap.String("queue", rabbitmq.HandoffQueue))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down consumer...")
	case <-done:
		log.Warn("Broker closed the delivery channel")
	}
}
