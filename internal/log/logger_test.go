package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentStorage, Output: &buf})

	logger.Info("Created expense", FieldExpenseID, "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry[FieldComponent] != ComponentStorage {
		t.Errorf("component = %v, want %s", entry[FieldComponent], ComponentStorage)
	}
	if entry[FieldExpenseID] != "abc" {
		t.Errorf("expense_id = %v, want abc", entry[FieldExpenseID])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn message should be logged")
	}
}

func TestWithComponent_ReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "text", Output: &buf}).WithComponent(ComponentAMQP)

	logger.Info("hello")

	out := buf.String()
	if strings.Count(out, "component=") != 1 {
		t.Errorf("expected a single component attribute, got %q", out)
	}
	if !strings.Contains(out, "component=amqp") {
		t.Errorf("expected component=amqp, got %q", out)
	}
	if logger.Component() != ComponentAMQP {
		t.Errorf("Component() = %q", logger.Component())
	}
}

func TestWithComponent_Chained(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "text", Component: ComponentCLI, Output: &buf}).
		WithComponent(ComponentBackend).
		WithComponent(ComponentStorage)

	logger.Info("opened")

	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=storage") {
		t.Errorf("expected only component=storage, got %q", out)
	}
}

func TestFromContext_FallsBackToSetDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		defaultLogger.Store(nil)
	})

	var buf bytes.Buffer
	logger := New(Config{Format: "text", Component: ComponentCLI, Output: &buf})
	SetDefault(logger)

	got := FromContext(context.Background())
	if got != logger {
		t.Fatal("FromContext should return the logger given to SetDefault")
	}

	got.WithComponent(ComponentExpense).Info("published")
	if strings.Count(buf.String(), "component=") != 1 {
		t.Errorf("expected a single component attribute, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContext(t *testing.T) {
	logger := New(DefaultConfig()).WithComponent(ComponentCLI)
	ctx := WithContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil || got.Component() != ComponentApp {
		t.Error("FromContext should fall back to the default logger")
	}
}

func TestLogFields(t *testing.T) {
	fields := NewFields().
		WithOperation(OpCreate).
		WithPartition(6, 2025).
		WithExpense("abc", 5000000, "Cash", "🛒 Belanja").
		WithError(errors.New("boom"))

	if len(fields.ToSlice()) != len(fields)*2 {
		t.Errorf("ToSlice length mismatch")
	}
	if fields[FieldMonth] != 6 || fields[FieldYear] != 2025 {
		t.Errorf("partition fields = %v/%v", fields[FieldMonth], fields[FieldYear])
	}
	if fields[FieldError] != "boom" {
		t.Errorf("error field = %v", fields[FieldError])
	}

	if _, ok := NewFields().WithError(nil)[FieldError]; ok {
		t.Error("nil error should not add a field")
	}
}
