package ports

import (
	"context"
	"errors"

	"expenses/internal/core"
)

// ErrNotFound is returned when no expense has the requested id.
var ErrNotFound = errors.New("expense not found")

// Ports for the expense collection owned by the host.
type (
	// ExpenseWriter assigns an id to a validated draft and appends it.
	ExpenseWriter interface {
		Append(ctx context.Context, d core.Draft) (core.Expense, error)
	}

	// ExpenseLister returns the whole collection in insertion order.
	ExpenseLister interface {
		List(ctx context.Context) ([]core.Expense, error)
	}

	// ExpenseDeleter removes an expense by id.
	ExpenseDeleter interface {
		Delete(ctx context.Context, id int64) (core.Expense, error)
	}

	// ExpenseStore is the full collection contract.
	ExpenseStore interface {
		ExpenseWriter
		ExpenseLister
		ExpenseDeleter
	}

	// EventPublisher announces collection changes to other processes.
	EventPublisher interface {
		PublishCreated(ctx context.Context, e core.Expense) error
		PublishDeleted(ctx context.Context, e core.Expense) error
	}
)
