package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultCategory is written into rows created before categories existed.
	DefaultCategory = "💼 Lainnya"

	// DefaultDescription replaces an empty description.
	DefaultDescription = "Tanpa keterangan"

	maxDescriptionLen = 200
)

type (
	// MonthYear is the partition key expenses and budgets are grouped under.
	MonthYear struct {
		Month int // 1-12
		Year  int
	}

	Money struct {
		Cents int64
	}

	// Expense is a single recorded transaction. The partition it belongs to is
	// stored next to it and is never derived from Timestamp.
	Expense struct {
		ID            string
		Amount        Money
		PaymentMethod string
		Category      string
		Description   string
		Timestamp     time.Time
	}
)

// NewMonthYear returns the partition for the given month and year.
func NewMonthYear(year, month int) MonthYear {
	return MonthYear{Month: month, Year: year}
}

// MonthYearOf returns the partition a time falls into, in that time's location.
func MonthYearOf(t time.Time) MonthYear {
	return MonthYear{Month: int(t.Month()), Year: t.Year()}
}

// ParseMonthYear parses a "YYYY-MM" key.
func ParseMonthYear(s string) (MonthYear, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return MonthYear{}, &InputError{Field: "month", Value: s, Err: ErrInvalidMonth}
	}
	return MonthYearOf(t), nil
}

func (p MonthYear) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Key returns the canonical year-month key, e.g. "2025-01".
func (p MonthYear) Key() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

func (p MonthYear) String() string {
	return p.Key()
}

// Before reports whether p is an earlier month than q.
func (p MonthYear) Before(q MonthYear) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of m and n.
func (m Money) Add(n Money) Money {
	return Money{Cents: m.Cents + n.Cents}
}

// Sub returns m minus n.
func (m Money) Sub(n Money) Money {
	return Money{Cents: m.Cents - n.Cents}
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.PaymentMethod) == "" {
		return ErrEmptyPaymentMethod
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// WithDefaults fills the description placeholder and the default category.
func (e Expense) WithDefaults() Expense {
	if strings.TrimSpace(e.Description) == "" {
		e.Description = DefaultDescription
	}
	if strings.TrimSpace(e.Category) == "" {
		e.Category = DefaultCategory
	}
	return e
}
