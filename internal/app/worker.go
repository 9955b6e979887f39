package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"out-of-office/internal/config"
	"out-of-office/internal/messaging/kafka"
	"out-of-office/internal/messaging/kafka/producer"
	"out-of-office/internal/metrics"
	"out-of-office/internal/shared/connection"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres.DSN(), 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		m,
		logger,
		cfg.Kafka.PollInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
