package worker

import (
	"context"
	"fmt"
	"log/slog"

	"kantong/internal/amqp"
	"kantong/internal/core"
	applog "kantong/internal/log"
)

// BudgetReader is the part of the expense service the worker reads from.
type BudgetReader interface {
	Months(ctx context.Context) ([]core.MonthYear, error)
	BudgetStatus(ctx context.Context, p core.MonthYear) (core.BudgetStatus, bool, error)
}

// BudgetWorker watches change events and reports months that are near or
// over their budget.
type BudgetWorker struct {
	reader BudgetReader
	logger *slog.Logger
}

func NewBudgetWorker(reader BudgetReader, logger *slog.Logger) *BudgetWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetWorker{reader: reader, logger: logger}
}

// HandleEvent processes a single change event from AMQP.
func (w *BudgetWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	fields := applog.NewFields().WithPartition(ev.Month, ev.Year)
	fields[applog.FieldEventType] = string(ev.Type)
	fields[applog.FieldExpenseID] = ev.ExpenseID
	fields[applog.FieldAmountCents] = ev.AmountCents
	w.logger.InfoContext(ctx, "Processing expense event", fields.ToSlice()...)

	if ev.Type == amqp.EventMonthDeleted {
		return nil
	}

	p := core.NewMonthYear(ev.Year, ev.Month)
	if err := p.Validate(); err != nil {
		// Nothing to check; requeueing would loop forever.
		w.logger.WarnContext(ctx, "Event without a valid month", "event_type", ev.Type, "month", ev.Month)
		return nil
	}

	_, err := w.checkMonth(ctx, p)
	return err
}

// StartupCheck reports the budget state of every month once, so problems
// raised while the worker was down are not missed.
func (w *BudgetWorker) StartupCheck(ctx context.Context) (int, error) {
	months, err := w.reader.Months(ctx)
	if err != nil {
		return 0, fmt.Errorf("list months: %w", err)
	}

	flagged := 0
	for _, p := range months {
		st, err := w.checkMonth(ctx, p)
		if err != nil {
			return flagged, err
		}
		if st != core.BudgetOK {
			flagged++
		}
	}

	w.logger.InfoContext(ctx, "Startup budget check complete", "months", len(months), "flagged", flagged)
	return flagged, nil
}

func (w *BudgetWorker) checkMonth(ctx context.Context, p core.MonthYear) (core.BudgetState, error) {
	st, ok, err := w.reader.BudgetStatus(ctx, p)
	if err != nil {
		return "", fmt.Errorf("budget status %s: %w", p, err)
	}
	if !ok {
		return core.BudgetOK, nil
	}

	attrs := []any{
		"month", p.Month,
		"year", p.Year,
		"budget_cents", st.Budget.Cents,
		"spent_cents", st.Spent.Cents,
		"percent_used", st.PercentUsed,
	}
	switch st.State {
	case core.BudgetOver:
		w.logger.WarnContext(ctx, "Budget exceeded", append(attrs, "overspent_cents", st.Overspent().Cents)...)
	case core.BudgetNearLimit:
		w.logger.WarnContext(ctx, "Budget near limit", append(attrs, "remaining_cents", st.Remaining.Cents)...)
	default:
		w.logger.DebugContext(ctx, "Budget ok", attrs...)
	}
	return st.State, nil
}
