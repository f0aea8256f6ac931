package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds one method per SQL statement. Every method is a single
// statement so each is atomic on its own.
type Queries struct {
	db DBTX
}

// Expense is an expenses row.
type Expense struct {
	ID            string
	AmountCents   int64
	PaymentMethod string
	Category      string
	Description   string
	Month         int64
	Year          int64
	Timestamp     int64
}

const createExpense = `-- name: CreateExpense :execrows
INSERT INTO expenses (id, amount_cents, payment_method, category, description, month, year, timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING
`

type CreateExpenseParams struct {
	ID            string
	AmountCents   int64
	PaymentMethod string
	Category      string
	Description   string
	Month         int64
	Year          int64
	Timestamp     int64
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createExpense,
		arg.ID,
		arg.AmountCents,
		arg.PaymentMethod,
		arg.Category,
		arg.Description,
		arg.Month,
		arg.Year,
		arg.Timestamp,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getExpense = `-- name: GetExpense :one
SELECT id, amount_cents, payment_method, category, description, month, year, timestamp
FROM expenses
WHERE id = ?
`

func (q *Queries) GetExpense(ctx context.Context, id string) (Expense, error) {
	row := q.db.QueryRowContext(ctx, getExpense, id)
	var i Expense
	err := row.Scan(
		&i.ID,
		&i.AmountCents,
		&i.PaymentMethod,
		&i.Category,
		&i.Description,
		&i.Month,
		&i.Year,
		&i.Timestamp,
	)
	return i, err
}

const getExpensesByMonth = `-- name: GetExpensesByMonth :many
SELECT id, amount_cents, payment_method, category, description, month, year, timestamp
FROM expenses
WHERE month = ? AND year = ?
ORDER BY timestamp DESC, id ASC
`

func (q *Queries) GetExpensesByMonth(ctx context.Context, month, year int64) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, getExpensesByMonth, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(
			&i.ID,
			&i.AmountCents,
			&i.PaymentMethod,
			&i.Category,
			&i.Description,
			&i.Month,
			&i.Year,
			&i.Timestamp,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateExpense = `-- name: UpdateExpense :execrows
UPDATE expenses
SET amount_cents = ?, payment_method = ?, category = ?, description = ?, timestamp = ?
WHERE id = ?
`

type UpdateExpenseParams struct {
	AmountCents   int64
	PaymentMethod string
	Category      string
	Description   string
	Timestamp     int64
	ID            string
}

func (q *Queries) UpdateExpense(ctx context.Context, arg UpdateExpenseParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateExpense,
		arg.AmountCents,
		arg.PaymentMethod,
		arg.Category,
		arg.Description,
		arg.Timestamp,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpense = `-- name: DeleteExpense :execrows
DELETE FROM expenses WHERE id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpensesByMonth = `-- name: DeleteExpensesByMonth :execrows
DELETE FROM expenses WHERE month = ? AND year = ?
`

func (q *Queries) DeleteExpensesByMonth(ctx context.Context, month, year int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpensesByMonth, month, year)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getMonthYears = `-- name: GetMonthYears :many
SELECT DISTINCT month, year FROM expenses ORDER BY year DESC, month DESC
`

type GetMonthYearsRow struct {
	Month int64
	Year  int64
}

func (q *Queries) GetMonthYears(ctx context.Context) ([]GetMonthYearsRow, error) {
	rows, err := q.db.QueryContext(ctx, getMonthYears)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetMonthYearsRow
	for rows.Next() {
		var i GetMonthYearsRow
		if err := rows.Scan(&i.Month, &i.Year); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getSummaryRows = `-- name: GetSummaryRows :many
SELECT amount_cents, payment_method, category FROM expenses WHERE month = ? AND year = ?
`

type GetSummaryRowsRow struct {
	AmountCents   int64
	PaymentMethod string
	Category      string
}

// GetSummaryRows streams the partition's rows into fn, one scan, no buffering.
func (q *Queries) GetSummaryRows(ctx context.Context, month, year int64, fn func(GetSummaryRowsRow)) error {
	rows, err := q.db.QueryContext(ctx, getSummaryRows, month, year)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var i GetSummaryRowsRow
		if err := rows.Scan(&i.AmountCents, &i.PaymentMethod, &i.Category); err != nil {
			return err
		}
		fn(i)
	}
	return rows.Err()
}

const upsertBudget = `-- name: UpsertBudget :exec
INSERT INTO budget (month, year, budget_amount_cents) VALUES (?, ?, ?)
ON CONFLICT (month, year) DO UPDATE SET budget_amount_cents = excluded.budget_amount_cents
`

func (q *Queries) UpsertBudget(ctx context.Context, month, year, amountCents int64) error {
	_, err := q.db.ExecContext(ctx, upsertBudget, month, year, amountCents)
	return err
}

const getBudget = `-- name: GetBudget :one
SELECT budget_amount_cents FROM budget WHERE month = ? AND year = ?
`

func (q *Queries) GetBudget(ctx context.Context, month, year int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, getBudget, month, year)
	var amountCents int64
	err := row.Scan(&amountCents)
	return amountCents, err
}

const deleteBudget = `-- name: DeleteBudget :exec
DELETE FROM budget WHERE month = ? AND year = ?
`

func (q *Queries) DeleteBudget(ctx context.Context, month, year int64) error {
	_, err := q.db.ExecContext(ctx, deleteBudget, month, year)
	return err
}
