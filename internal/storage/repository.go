package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
	"expenses/internal/ports"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ ports.ExpenseStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ports.ExpenseWriter. The database assigns the id.
func (r *SQLiteRepository) Append(ctx context.Context, d core.Draft) (core.Expense, error) {
	if err := d.WithID(0).Validate(); err != nil {
		return core.Expense{}, err
	}
	row, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		Description: d.Description,
		Amount:      d.Amount.String(),
		Category:    string(d.Category),
		Date:        d.Date,
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", row.ID,
		"description", row.Description,
		"amount", row.Amount,
		"category", row.Category)

	return toCore(row)
}

// List implements ports.ExpenseLister.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := toCore(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Get returns a single expense by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return toCore(row)
}

// Delete implements ports.ExpenseDeleter.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (core.Expense, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	n, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n == 0 {
		return core.Expense{}, fmt.Errorf("delete expense %d: %w", id, ports.ErrNotFound)
	}
	slog.DebugContext(ctx, "Expense deleted from SQLite", "id", id)
	return e, nil
}

func toCore(row Expense) (core.Expense, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %d: parse amount %q: %w", row.ID, row.Amount, err)
	}
	return core.Expense{
		ID:          row.ID,
		Description: row.Description,
		Amount:      amount,
		Category:    core.Category(row.Category),
		Date:        row.Date,
	}, nil
}
