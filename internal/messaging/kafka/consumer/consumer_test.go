package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka/consumer"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	fetchErrs []error
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafkago.Message{}, err
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func fastBackoff(t *testing.T) {
	t.Cleanup(consumer.SetBackoff(time.Millisecond, 4*time.Millisecond))
}

func TestConsume_CommitPolicy(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: []byte("ok")},
			{Offset: 2, Value: []byte("poison")},
			{Offset: 3, Value: []byte("transient")},
			{Offset: 4, Value: []byte("ok")},
		},
	}

	attempts := 0
	handle := func(ctx context.Context, msg kafkago.Message) error {
		switch string(msg.Value) {
		case "poison":
			return consumer.ErrSkipMessage
		case "transient":
			attempts++
			if attempts == 3 {
				cancel()
			}
			return errors.New("db down")
		}
		return nil
	}

	consumer.Consume(ctx, reader, "test", handle, zap.NewNop())

	assert.Equal(t, []int64{1, 2}, reader.committed)
	assert.Equal(t, 3, attempts)
	assert.Len(t, reader.msgs, 1, "offset 4 must not be fetched while offset 3 is failing")
}

func TestConsume_RetriesFailedMessage(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 10, Value: []byte("a")},
			{Offset: 11, Value: []byte("b")},
		},
	}

	calls := map[int64]int{}
	handle := func(ctx context.Context, msg kafkago.Message) error {
		calls[msg.Offset]++
		if msg.Offset == 10 && calls[msg.Offset] == 1 {
			return errors.New("deadlock detected")
		}
		return nil
	}

	consumer.Consume(ctx, reader, "test", handle, zap.NewNop())

	assert.Equal(t, []int64{10, 11}, reader.committed)
	assert.Equal(t, map[int64]int{10: 2, 11: 1}, calls)
}

func TestConsume_FetchErrorBacksOff(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel:    cancel,
		fetchErrs: []error{errors.New("broker unavailable"), errors.New("broker unavailable")},
		msgs:      []kafkago.Message{{Offset: 7, Value: []byte("ok")}},
	}

	start := time.Now()
	consumer.Consume(ctx, reader, "test", func(ctx context.Context, msg kafkago.Message) error {
		return nil
	}, zap.NewNop())

	assert.Equal(t, []int64{7}, reader.committed)
	// 1ms then 2ms between the failed fetches.
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}

func TestConsume_StopsWhileBackingOff(t *testing.T) {
	t.Cleanup(consumer.SetBackoff(time.Hour, time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		msgs:   []kafkago.Message{{Offset: 5, Value: []byte("x")}},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Consume(ctx, reader, "test", func(ctx context.Context, msg kafkago.Message) error {
			return errors.New("db down")
		}, zap.NewNop())
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop on cancel")
	}
	assert.Empty(t, reader.committed)
}

type fakeSalaries struct {
	employeeID uuid.UUID
	effective  string
}

func (f *fakeSalaries) EnsureDefault(ctx context.Context, employeeID uuid.UUID, effectiveDate string) error {
	f.employeeID = employeeID
	f.effective = effectiveDate
	return nil
}

func TestEmployeeCreatedHandler(t *testing.T) {
	salaries := &fakeSalaries{}
	handle := consumer.EmployeeCreatedHandler(salaries)
	empID := uuid.New()

	payload, _ := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedType,
		EmployeeID: empID.String(),
		HireDate:   "2024-02-01",
		OccurredAt: time.Now(),
	})

	require.NoError(t, handle(context.Background(), kafkago.Message{Value: payload}))
	assert.Equal(t, empID, salaries.employeeID)
	assert.Equal(t, "2024-02-01", salaries.effective)

	err := handle(context.Background(), kafkago.Message{Value: []byte("{not json")})
	assert.ErrorIs(t, err, consumer.ErrSkipMessage)
}

type fakeNotifier struct {
	notices []consumer.Notice
}

func (f *fakeNotifier) NotifyEmployee(ctx context.Context, n consumer.Notice) error {
	f.notices = append(f.notices, n)
	return nil
}

func TestLeaveDecidedHandler(t *testing.T) {
	notifier := &fakeNotifier{}
	handle := consumer.LeaveDecidedHandler(notifier)
	empID := uuid.New()
	leaveID := uuid.NewString()

	payload, _ := json.Marshal(events.LeaveDecidedEvent{
		EventType:       events.LeaveDecidedType,
		LeaveID:         leaveID,
		EmployeeID:      empID.String(),
		Status:          "REJECTED",
		LeaveType:       "ANNUAL",
		StartDate:       "2024-03-04",
		EndDate:         "2024-03-08",
		RejectionReason: "Quarter close",
	})

	require.NoError(t, handle(context.Background(), kafkago.Message{Value: payload}))
	require.Len(t, notifier.notices, 1)
	n := notifier.notices[0]
	assert.Equal(t, empID, n.EmployeeID)
	assert.Equal(t, "Leave rejected", n.Title)
	assert.Contains(t, n.Body, "Quarter close")
	assert.Equal(t, "leave.decided:"+leaveID, n.DedupKey)

	bad, _ := json.Marshal(events.LeaveDecidedEvent{EmployeeID: empID.String(), Status: "PENDING"})
	assert.ErrorIs(t, handle(context.Background(), kafkago.Message{Value: bad}), consumer.ErrSkipMessage)
}

func TestPayrollPaidHandler(t *testing.T) {
	notifier := &fakeNotifier{}
	handle := consumer.PayrollPaidHandler(notifier)

	payload, _ := json.Marshal(events.PayrollPaidEvent{
		PayrollID:  uuid.NewString(),
		EmployeeID: uuid.NewString(),
		Period:     "2024-03",
	})

	require.NoError(t, handle(context.Background(), kafkago.Message{Value: payload}))
	require.Len(t, notifier.notices, 1)
	assert.Contains(t, notifier.notices[0].Body, "2024-03")
}
