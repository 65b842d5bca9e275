package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrSkipMessage marks a message that can never be processed. It is
// committed so the partition keeps moving.
var ErrSkipMessage = errors.New("skip message")

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

func skip(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkipMessage, fmt.Sprintf(format, args...))
}

// Retry delays for a failing handler or fetch. They double per attempt.
var (
	minBackoff = 200 * time.Millisecond
	maxBackoff = 5 * time.Second
)

// Consume fetches messages until ctx is cancelled. Messages are committed
// after handle succeeds or returns ErrSkipMessage. Any other error retries
// the same message with backoff, so no later offset is committed past it.
func Consume(ctx context.Context, reader MessageReader, name string, handle HandlerFunc, logger *zap.Logger) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	fetchWait := minBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err), zap.Duration("retry_in", fetchWait))
			if !sleep(ctx, fetchWait) {
				log.Info("consumer stopped")
				return
			}
			fetchWait = nextBackoff(fetchWait)
			continue
		}
		fetchWait = minBackoff

		fields := []zap.Field{
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		}

		if !process(ctx, log, handle, msg, fields) {
			log.Info("consumer stopped", fields...)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", append(fields, zap.Error(err))...)
			continue
		}
		log.Debug("message processed", fields...)
	}
}

// process runs handle until the message is done with. It returns false when
// ctx is cancelled before that.
func process(ctx context.Context, log *zap.Logger, handle HandlerFunc, msg kafkago.Message, fields []zap.Field) bool {
	wait := minBackoff
	for attempt := 1; ; attempt++ {
		err := handle(ctx, msg)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrSkipMessage) {
			log.Warn("skipping message", append(fields, zap.Error(err))...)
			return true
		}

		log.Error("handle message failed", append(fields,
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", wait),
		)...)
		if !sleep(ctx, wait) {
			return false
		}
		wait = nextBackoff(wait)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
