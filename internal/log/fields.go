package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldExpenseID     = "expense_id"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldAmountCents   = "amount_cents"
	FieldPaymentMethod = "payment_method"
	FieldCategory      = "category"
	FieldEventType     = "event_type"
	FieldBackend       = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentExpense = "expense"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpBudget   = "budget"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithPartition adds the month/year of the affected partition.
func (f LogFields) WithPartition(month, year int) LogFields {
	f[FieldMonth] = month
	f[FieldYear] = year
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id string, amountCents int64, paymentMethod, category string) LogFields {
	f[FieldExpenseID] = id
	f[FieldAmountCents] = amountCents
	f[FieldPaymentMethod] = paymentMethod
	f[FieldCategory] = category
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
