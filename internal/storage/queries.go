package storage

import (
	"context"
	"database/sql"
)

// Queries wraps the SQL statements used by the repository.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Expense is a row of the expenses table.
type Expense struct {
	ID          int64
	Description string
	Amount      string
	Category    string
	Date        string
}

type CreateExpenseParams struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

const createExpense = `INSERT INTO expenses (description, amount, category, date)
VALUES (?, ?, ?, ?)
RETURNING id, description, amount, category, date`

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (Expense, error) {
	row := q.db.QueryRowContext(ctx, createExpense, arg.Description, arg.Amount, arg.Category, arg.Date)
	var e Expense
	err := row.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date)
	return e, err
}

const listExpenses = `SELECT id, description, amount, category, date
FROM expenses
ORDER BY id`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const getExpense = `SELECT id, description, amount, category, date
FROM expenses
WHERE id = ?`

func (q *Queries) GetExpense(ctx context.Context, id int64) (Expense, error) {
	row := q.db.QueryRowContext(ctx, getExpense, id)
	var e Expense
	err := row.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date)
	return e, err
}

const deleteExpense = `DELETE FROM expenses WHERE id = ?`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
