package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"kantong/internal/amqp"
	"kantong/internal/core"
	"kantong/internal/services"
	"kantong/internal/store/memory"
)

var june2025 = core.NewMonthYear(2025, 6)

func newWorker(t *testing.T) (*BudgetWorker, *services.ExpenseService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := services.NewExpenseService(memory.New(), nil)
	return NewBudgetWorker(svc, logger), svc, &buf
}

func addExpense(t *testing.T, svc *services.ExpenseService, units int64) {
	t.Helper()
	_, err := svc.AddExpense(context.Background(), june2025, services.NewExpense{
		Amount:        core.FromUnits(units),
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
}

func TestBudgetWorker_HandleEvent(t *testing.T) {
	tests := []struct {
		name    string
		spent   int64
		wantLog string
	}{
		{"ok", 10000, "Budget ok"},
		{"near limit", 80000, "Budget near limit"},
		{"over", 120000, "Budget exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			w, svc, buf := newWorker(t)
			if err := svc.SetBudget(ctx, june2025, core.FromUnits(100000)); err != nil {
				t.Fatalf("SetBudget() error = %v", err)
			}
			addExpense(t, svc, tt.spent)

			ev := amqp.NewExpenseEvent(amqp.EventExpenseCreated, "id", 6, 2025, tt.spent*100)
			if err := w.HandleEvent(ctx, ev); err != nil {
				t.Fatalf("HandleEvent() error = %v", err)
			}

			if !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("expected log %q, got %q", tt.wantLog, buf.String())
			}
		})
	}
}

func TestBudgetWorker_HandleEvent_NoBudget(t *testing.T) {
	w, svc, buf := newWorker(t)
	addExpense(t, svc, 500000)

	ev := amqp.NewExpenseEvent(amqp.EventExpenseCreated, "id", 6, 2025, 1)
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if strings.Contains(buf.String(), "Budget") {
		t.Errorf("no budget line expected, got %q", buf.String())
	}
}

func TestBudgetWorker_HandleEvent_IgnoresBadMonth(t *testing.T) {
	w, _, _ := newWorker(t)

	for _, ev := range []*amqp.ExpenseEvent{
		amqp.NewExpenseEvent(amqp.EventMonthDeleted, "", 6, 2025, 0),
		amqp.NewExpenseEvent(amqp.EventExpenseDeleted, "id", 0, 0, 0),
	} {
		if err := w.HandleEvent(context.Background(), ev); err != nil {
			t.Errorf("HandleEvent(%s) error = %v", ev.Type, err)
		}
	}
}

type failingReader struct{}

func (failingReader) Months(context.Context) ([]core.MonthYear, error) {
	return nil, errors.New("database is locked")
}

func (failingReader) BudgetStatus(context.Context, core.MonthYear) (core.BudgetStatus, bool, error) {
	return core.BudgetStatus{}, false, errors.New("database is locked")
}

func TestBudgetWorker_HandleEvent_ReaderError(t *testing.T) {
	w := NewBudgetWorker(failingReader{}, nil)

	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.EventBudgetSet, "", 6, 2025, 1))
	if err == nil {
		t.Error("expected error so the message is requeued")
	}

	if _, err := w.StartupCheck(context.Background()); err == nil {
		t.Error("expected StartupCheck error")
	}
}

func TestBudgetWorker_StartupCheck(t *testing.T) {
	ctx := context.Background()
	w, svc, _ := newWorker(t)

	addExpense(t, svc, 95000)
	if err := svc.SetBudget(ctx, june2025, core.FromUnits(100000)); err != nil {
		t.Fatalf("SetBudget() error = %v", err)
	}
	_, err := svc.AddExpense(ctx, core.NewMonthYear(2025, 5), services.NewExpense{Amount: core.FromUnits(1), PaymentMethod: "Cash"})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	flagged, err := w.StartupCheck(ctx)
	if err != nil {
		t.Fatalf("StartupCheck() error = %v", err)
	}
	if flagged != 1 {
		t.Errorf("flagged = %d, want 1", flagged)
	}
}
