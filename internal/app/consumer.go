package app

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/employeesalary"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka/consumer"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/notification"
)

type subscription struct {
	name   string
	topic  string
	handle consumer.HandlerFunc
}

// RunConsumer starts one reader per subscription and blocks until ctx is
// cancelled and every reader has stopped.
func RunConsumer(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	in, err := Connect(cfg, false)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := Migrate(in.GormDB); err != nil {
		return err
	}

	salaryService := employeesalary.NewService(in.DB, employeesalary.NewRepository(in.GormDB), cfg.Salary.DefaultBase)
	notificationService := notification.NewService(notification.NewRepository(in.GormDB))

	subs := []subscription{
		{name: "employee-salary", topic: events.EmployeeCreatedTopic, handle: consumer.EmployeeCreatedHandler(salaryService)},
		{name: "leave-notification", topic: events.LeaveDecidedTopic, handle: consumer.LeaveDecidedHandler(notificationService)},
		{name: "payroll-notification", topic: events.PayrollPaidTopic, handle: consumer.PayrollPaidHandler(notificationService)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sub := range subs {
		sub := sub
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          sub.topic,
			GroupID:        cfg.Kafka.ConsumerGroup + "-" + sub.name,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})

		g.Go(func() error {
			defer reader.Close()
			consumer.Consume(gctx, reader, sub.name, sub.handle, logger)
			return nil
		})
	}

	err = g.Wait()
	logger.Info("consumer shutting down")
	return err
}
