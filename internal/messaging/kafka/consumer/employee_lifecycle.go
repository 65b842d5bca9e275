package consumer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
)

// SalaryInitializer creates the starting salary row for a new employee. It
// must be idempotent.
type SalaryInitializer interface {
	EnsureDefault(ctx context.Context, employeeID uuid.UUID, effectiveDate string) error
}

func EmployeeCreatedHandler(salaries SalaryInitializer) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return skip("decode employee_created: %v", err)
		}
		if event.EventType != events.EmployeeCreatedType {
			return skip("unexpected event type %q", event.EventType)
		}

		employeeID, err := uuid.Parse(event.EmployeeID)
		if err != nil {
			return skip("invalid employee id %q", event.EmployeeID)
		}

		effective := event.HireDate
		if effective == "" {
			effective = event.OccurredAt.UTC().Format("2006-01-02")
		}
		return salaries.EnsureDefault(ctx, employeeID, effective)
	}
}
