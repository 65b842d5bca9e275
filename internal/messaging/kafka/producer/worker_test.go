package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka/producer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	listErr error
	sent    []string
	failed  map[string]string
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error { return nil }

func (f *fakeOutbox) ListPending(ctx context.Context, limit, maxAttempts int) ([]kafka.OutboxEvent, error) {
	return f.pending, f.listErr
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("leader not available")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestWorker_ProcessBatch(t *testing.T) {
	repo := &fakeOutbox{pending: []kafka.OutboxEvent{
		{ID: "e1", AggregateID: "emp-1", EventType: "employee.created", Topic: "employees", Payload: []byte(`{}`), RequestID: "req-1"},
		{ID: "e2", AggregateID: "leave-1", EventType: "leave.decided", Topic: "broken", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{failTopic: "broken"}
	reg := prometheus.NewRegistry()
	w := producer.NewWorker(repo, writer, producer.Options{}, reg)

	sent, err := w.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"e1"}, repo.sent)
	assert.Contains(t, repo.failed["e2"], "leader not available")

	require.Len(t, writer.written, 1)
	msg := writer.written[0]
	assert.Equal(t, []byte("emp-1"), msg.Key)
	assert.Len(t, msg.Headers, 4)

	series, err := testutil.GatherAndCount(reg, "worksphere_outbox_events_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestWorker_ProcessBatch_ListError(t *testing.T) {
	w := producer.NewWorker(&fakeOutbox{listErr: errors.New("db down")}, &fakeWriter{}, producer.Options{}, nil)

	_, err := w.ProcessBatch(context.Background())
	assert.Error(t, err)
}
