package core

import "sort"

// CategoryAmount represents an amount aggregated under a label, either a
// category or a payment method.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// ExpenseSummary aggregates one partition. It is always computed from the
// rows present at query time.
type ExpenseSummary struct {
	MonthYear       MonthYear
	Total           Money
	Count           int
	ByPaymentMethod map[string]Money
	ByCategory      map[string]Money
}

// NewExpenseSummary returns an empty summary for p.
func NewExpenseSummary(p MonthYear) ExpenseSummary {
	return ExpenseSummary{
		MonthYear:       p,
		ByPaymentMethod: make(map[string]Money),
		ByCategory:      make(map[string]Money),
	}
}

// Add accumulates one expense row.
func (s *ExpenseSummary) Add(amount Money, paymentMethod, category string) {
	s.Total = s.Total.Add(amount)
	s.Count++
	s.ByPaymentMethod[paymentMethod] = s.ByPaymentMethod[paymentMethod].Add(amount)
	s.ByCategory[category] = s.ByCategory[category].Add(amount)
}

// Summarize builds a summary from already loaded expenses.
func Summarize(p MonthYear, expenses []Expense) ExpenseSummary {
	s := NewExpenseSummary(p)
	for _, e := range expenses {
		s.Add(e.Amount, e.PaymentMethod, e.Category)
	}
	return s
}

// IsEmpty reports whether the partition had no expenses.
func (s ExpenseSummary) IsEmpty() bool {
	return s.Count == 0
}

// SortedByAmount flattens a label->amount map, largest first. Ties are
// ordered by name so output is stable.
func SortedByAmount(m map[string]Money) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(m))
	for name, amount := range m {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}
