package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kantong/internal/core"
	applog "kantong/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements store.Store on a single SQLite file.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One owned handle: operations never overlap.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	version, err := SchemaVersionOf(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	logger(context.Background()).Info("SQLite database ready", "path", dbPath, "schema_version", version)

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

// CreateExpense implements store.ExpenseWriter
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense, p core.MonthYear) error {
	n, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		ID:            e.ID,
		AmountCents:   e.Amount.Cents,
		PaymentMethod: e.PaymentMethod,
		Category:      e.Category,
		Description:   e.Description,
		Month:         int64(p.Month),
		Year:          int64(p.Year),
		Timestamp:     e.Timestamp.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("create expense %s: %w", e.ID, core.ErrDuplicateID)
	}

	fields := applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(e.ID, e.Amount.Cents, e.PaymentMethod, e.Category).
		WithPartition(p.Month, p.Year)
	logger(ctx).InfoContext(ctx, "Expense saved to SQLite", fields.ToSlice()...)

	return nil
}

// UpdateExpense implements store.ExpenseWriter
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	n, err := r.queries.UpdateExpense(ctx, UpdateExpenseParams{
		AmountCents:   e.Amount.Cents,
		PaymentMethod: e.PaymentMethod,
		Category:      e.Category,
		Description:   e.Description,
		Timestamp:     e.Timestamp.UnixMilli(),
		ID:            e.ID,
	})
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update expense %s: %w", e.ID, core.ErrNotFound)
	}

	fields := applog.NewFields().
		WithOperation(applog.OpUpdate).
		WithExpense(e.ID, e.Amount.Cents, e.PaymentMethod, e.Category)
	logger(ctx).InfoContext(ctx, "Expense updated", fields.ToSlice()...)
	return nil
}

// DeleteExpense implements store.ExpenseWriter
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	n, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete expense %s: %w", id, core.ErrNotFound)
	}

	logger(ctx).InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	return nil
}

// DeleteMonthYear implements store.ExpenseWriter. The two deletes are
// independent statements; a budget left behind is inert.
func (r *SQLiteRepository) DeleteMonthYear(ctx context.Context, p core.MonthYear) error {
	n, err := r.queries.DeleteExpensesByMonth(ctx, int64(p.Month), int64(p.Year))
	if err != nil {
		return fmt.Errorf("delete expenses of %s: %w", p, err)
	}

	if err := r.queries.DeleteBudget(ctx, int64(p.Month), int64(p.Year)); err != nil {
		fields := applog.NewFields().WithOperation(applog.OpDelete).WithPartition(p.Month, p.Year).WithError(err)
		logger(ctx).WarnContext(ctx, "Failed to delete budget of removed month", fields.ToSlice()...)
	}

	if n == 0 {
		return fmt.Errorf("delete month %s: %w", p, core.ErrNotFound)
	}

	fields := applog.NewFields().WithOperation(applog.OpDelete).WithPartition(p.Month, p.Year)
	logger(ctx).InfoContext(ctx, "Month deleted", append(fields.ToSlice(), "expenses", n)...)
	return nil
}

// ListExpenses implements store.ExpenseLister
func (r *SQLiteRepository) ListExpenses(ctx context.Context, p core.MonthYear) ([]core.Expense, error) {
	dbExpenses, err := r.queries.GetExpensesByMonth(ctx, int64(p.Month), int64(p.Year))
	if err != nil {
		return nil, fmt.Errorf("get expenses by month: %w", err)
	}

	expenses := make([]core.Expense, len(dbExpenses))
	for i, e := range dbExpenses {
		expenses[i] = toCoreExpense(e)
	}
	return expenses, nil
}

// GetExpense implements store.ExpenseLister
func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, core.MonthYear, error) {
	e, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.MonthYear{}, fmt.Errorf("get expense %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, core.MonthYear{}, fmt.Errorf("get expense by id: %w", err)
	}
	return toCoreExpense(e), core.NewMonthYear(int(e.Year), int(e.Month)), nil
}

// ListMonthYears implements store.MonthLister
func (r *SQLiteRepository) ListMonthYears(ctx context.Context) ([]core.MonthYear, error) {
	rows, err := r.queries.GetMonthYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("get month years: %w", err)
	}

	months := make([]core.MonthYear, len(rows))
	for i, row := range rows {
		months[i] = core.NewMonthYear(int(row.Year), int(row.Month))
	}
	return months, nil
}

// Summarize implements store.SummaryReader
func (r *SQLiteRepository) Summarize(ctx context.Context, p core.MonthYear) (core.ExpenseSummary, error) {
	summary := core.NewExpenseSummary(p)
	err := r.queries.GetSummaryRows(ctx, int64(p.Month), int64(p.Year), func(row GetSummaryRowsRow) {
		summary.Add(core.Money{Cents: row.AmountCents}, row.PaymentMethod, row.Category)
	})
	if err != nil {
		return core.NewExpenseSummary(p), fmt.Errorf("summarize month: %w", err)
	}
	return summary, nil
}

// SetBudget implements store.BudgetStore
func (r *SQLiteRepository) SetBudget(ctx context.Context, p core.MonthYear, amount core.Money) error {
	if err := r.queries.UpsertBudget(ctx, int64(p.Month), int64(p.Year), amount.Cents); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	fields := applog.NewFields().WithOperation(applog.OpBudget).WithPartition(p.Month, p.Year)
	fields[applog.FieldAmountCents] = amount.Cents
	logger(ctx).InfoContext(ctx, "Budget saved", fields.ToSlice()...)
	return nil
}

// GetBudget implements store.BudgetStore
func (r *SQLiteRepository) GetBudget(ctx context.Context, p core.MonthYear) (core.Money, bool, error) {
	cents, err := r.queries.GetBudget(ctx, int64(p.Month), int64(p.Year))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Money{}, false, nil
	}
	if err != nil {
		return core.Money{}, false, fmt.Errorf("get budget: %w", err)
	}
	return core.Money{Cents: cents}, true, nil
}

func toCoreExpense(e Expense) core.Expense {
	return core.Expense{
		ID:            e.ID,
		Amount:        core.Money{Cents: e.AmountCents},
		PaymentMethod: e.PaymentMethod,
		Category:      e.Category,
		Description:   e.Description,
		Timestamp:     time.UnixMilli(e.Timestamp),
	}
}

func logger(ctx context.Context) *applog.Logger {
	return applog.FromContext(ctx).WithComponent(applog.ComponentStorage)
}
