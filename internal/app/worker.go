package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka/producer"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

// RunWorker relays outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config, reg prometheus.Registerer) error {
	logger := zap.L().Named("app.worker")

	in, err := Connect(cfg, false)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := Migrate(in.GormDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Kafka.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	worker := producer.NewWorker(
		kafka.NewOutboxRepository(in.DB),
		kafkaWriter,
		producer.Options{
			PollInterval: cfg.Kafka.PollInterval,
			BatchSize:    cfg.Kafka.BatchSize,
			MaxAttempts:  cfg.Kafka.MaxAttempts,
		},
		reg,
	)

	worker.Run(ctx)
	logger.Info("worker shutting down")
	return nil
}
