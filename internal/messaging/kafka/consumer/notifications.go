package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
)

type Notice struct {
	EmployeeID  uuid.UUID
	Kind        string
	Title       string
	Body        string
	ReferenceID string
	// DedupKey makes redelivered events a no-op.
	DedupKey string
}

type Notifier interface {
	NotifyEmployee(ctx context.Context, notice Notice) error
}

func LeaveDecidedHandler(notifier Notifier) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return skip("decode leave_decided: %v", err)
		}
		employeeID, err := uuid.Parse(event.EmployeeID)
		if err != nil {
			return skip("invalid employee id %q", event.EmployeeID)
		}

		var title, body string
		switch event.Status {
		case "APPROVED":
			title = "Leave approved"
			body = fmt.Sprintf("Your %s leave from %s to %s (%d working days) was approved.",
				event.LeaveType, event.StartDate, event.EndDate, event.WorkingDays)
		case "REJECTED":
			title = "Leave rejected"
			body = fmt.Sprintf("Your %s leave from %s to %s was rejected.", event.LeaveType, event.StartDate, event.EndDate)
			if event.RejectionReason != "" {
				body += " Reason: " + event.RejectionReason
			}
		default:
			return skip("unexpected leave status %q", event.Status)
		}

		return notifier.NotifyEmployee(ctx, Notice{
			EmployeeID:  employeeID,
			Kind:        events.LeaveDecidedType,
			Title:       title,
			Body:        body,
			ReferenceID: event.LeaveID,
			DedupKey:    events.LeaveDecidedType + ":" + event.LeaveID,
		})
	}
}

func PayrollPaidHandler(notifier Notifier) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayrollPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return skip("decode payroll_paid: %v", err)
		}
		employeeID, err := uuid.Parse(event.EmployeeID)
		if err != nil {
			return skip("invalid employee id %q", event.EmployeeID)
		}

		return notifier.NotifyEmployee(ctx, Notice{
			EmployeeID:  employeeID,
			Kind:        events.PayrollPaidType,
			Title:       "Payslip available",
			Body:        fmt.Sprintf("Your payslip for %s is ready to download.", event.Period),
			ReferenceID: event.PayrollID,
			DedupKey:    events.PayrollPaidType + ":" + event.PayrollID,
		})
	}
}
