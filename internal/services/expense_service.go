package services

import (
	"context"
	"fmt"
	"time"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/ports"
)

// ExpenseService orchestrates the expense store and the optional event
// publisher. The store is authoritative: publish failures are logged and
// never fail a request.
type ExpenseService struct {
	store     ports.ExpenseStore
	publisher ports.EventPublisher
	logger    *log.StructuredLogger
	now       func() time.Time
}

type Option func(*ExpenseService)

// WithPublisher enables expense events.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *ExpenseService) { s.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *ExpenseService) { s.logger = log.NewStructuredLogger(l.WithComponent(log.ComponentExpense)) }
}

// WithClock overrides time.Now, used for form defaults.
func WithClock(now func() time.Time) Option {
	return func(s *ExpenseService) { s.now = now }
}

func NewExpenseService(store ports.ExpenseStore, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		store:  store,
		logger: log.NewStructuredLogger(log.FromContext(context.Background()).WithComponent(log.ComponentExpense)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewForm returns a form holding the default values for today.
func (s *ExpenseService) NewForm() core.Form {
	return core.NewForm(s.now())
}

// Create validates f, appends the expense and publishes expense.created.
// A *core.ValidationError is returned unwrapped for invalid input.
func (s *ExpenseService) Create(ctx context.Context, f core.Form) (core.Expense, error) {
	draft, err := f.Validate()
	if err != nil {
		s.logger.LogValidationFailed(ctx, err)
		return core.Expense{}, err
	}

	e, err := s.store.Append(ctx, draft)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.logger.LogExpenseCreated(ctx, e)

	if s.publisher != nil {
		if err := s.publisher.PublishCreated(ctx, e); err != nil {
			s.logger.LogError(ctx, "Failed to publish expense event", err, log.ComponentAMQP, log.OpCreate,
				log.NewFields().WithExpense(e))
		}
	}
	return e, nil
}

// Delete removes the expense with id. The error wraps ports.ErrNotFound
// when no such expense exists.
func (s *ExpenseService) Delete(ctx context.Context, id int64) (core.Expense, error) {
	if id <= 0 {
		return core.Expense{}, fmt.Errorf("delete expense %d: %w", id, ports.ErrNotFound)
	}
	e, err := s.store.Delete(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("delete expense: %w", err)
	}
	s.logger.LogExpenseDeleted(ctx, e)

	if s.publisher != nil {
		if err := s.publisher.PublishDeleted(ctx, e); err != nil {
			s.logger.LogError(ctx, "Failed to publish expense event", err, log.ComponentAMQP, log.OpDelete,
				log.NewFields().WithExpense(e))
		}
	}
	return e, nil
}

// List returns the whole collection in insertion order.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return items, nil
}

// View lists the collection and filters it by sel.
func (s *ExpenseService) View(ctx context.Context, sel core.Selection) (core.View, error) {
	items, err := s.List(ctx)
	if err != nil {
		return core.View{}, err
	}
	return core.Filter(items, sel), nil
}
