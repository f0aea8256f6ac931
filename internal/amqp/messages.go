package amqp

import (
	"encoding/json"
	"time"
)

// EventType names what happened to the store.
type EventType string

const (
	EventExpenseCreated EventType = "expense.created"
	EventExpenseUpdated EventType = "expense.updated"
	EventExpenseDeleted EventType = "expense.deleted"
	EventMonthDeleted   EventType = "month.deleted"
	EventBudgetSet      EventType = "budget.set"
)

// ExpenseEvent is a change notification. It carries enough to identify the
// row or partition; consumers read the store for anything else.
type ExpenseEvent struct {
	Type        EventType `json:"type"`
	ExpenseID   string    `json:"expense_id,omitempty"`
	Month       int       `json:"month,omitempty"`
	Year        int       `json:"year,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseEvent creates an event stamped with the current time.
func NewExpenseEvent(t EventType, expenseID string, month, year int, amountCents int64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:        t,
		ExpenseID:   expenseID,
		Month:       month,
		Year:        year,
		AmountCents: amountCents,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes an event and rejects unknown types.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	if !ev.Type.IsValid() {
		return nil, &UnknownEventError{Type: ev.Type}
	}
	return &ev, nil
}

func (t EventType) IsValid() bool {
	switch t {
	case EventExpenseCreated, EventExpenseUpdated, EventExpenseDeleted, EventMonthDeleted, EventBudgetSet:
		return true
	default:
		return false
	}
}

// UnknownEventError is returned for a payload with an unrecognised type.
type UnknownEventError struct {
	Type EventType
}

func (e *UnknownEventError) Error() string {
	return "unknown event type: " + string(e.Type)
}
