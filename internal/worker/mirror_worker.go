package worker

import (
	"context"
	"errors"
	"fmt"

	"expenses/internal/amqp"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/sheets/google"
)

// Sheet is the spreadsheet side of the mirror.
type Sheet interface {
	Append(ctx context.Context, e core.Expense) error
	Delete(ctx context.Context, id int64) error
}

// MirrorWorker applies expense events to a spreadsheet.
type MirrorWorker struct {
	sheet  Sheet
	logger *log.Logger
}

func NewMirrorWorker(sheet Sheet, logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &MirrorWorker{sheet: sheet, logger: logger.WithComponent(log.ComponentWorker)}
}

// Handle applies one event. A returned error makes the consumer requeue the message.
func (w *MirrorWorker) Handle(ctx context.Context, ev *amqp.ExpenseEvent) error {
	e := ev.Expense()
	fields := log.NewFields().WithExpense(e).WithOperation(log.OpMirror)
	fields["event_type"] = string(ev.Type)

	switch ev.Type {
	case amqp.EventExpenseCreated:
		if err := w.sheet.Append(ctx, e); err != nil {
			w.logger.ErrorContext(ctx, "Failed to mirror expense", fields.WithError(err).ToSlice()...)
			return fmt.Errorf("append expense %d: %w", e.ID, err)
		}
	case amqp.EventExpenseDeleted:
		err := w.sheet.Delete(ctx, e.ID)
		if errors.Is(err, google.ErrRowNotFound) {
			// Nothing to remove; retrying would not change that.
			w.logger.WarnContext(ctx, "Mirrored row already gone", fields.ToSlice()...)
			return nil
		}
		if err != nil {
			w.logger.ErrorContext(ctx, "Failed to remove mirrored expense", fields.WithError(err).ToSlice()...)
			return fmt.Errorf("delete expense %d: %w", e.ID, err)
		}
	default:
		w.logger.WarnContext(ctx, "Ignoring unknown event type", fields.ToSlice()...)
		return nil
	}

	w.logger.InfoContext(ctx, "Expense mirrored", fields.ToSlice()...)
	return nil
}
