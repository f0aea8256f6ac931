package core

import "testing"

func TestSummarize(t *testing.T) {
	p := NewMonthYear(2025, 6)
	s := Summarize(p, []Expense{
		{ID: "a", Amount: FromUnits(50000), PaymentMethod: "Cash", Category: "🍔 Makanan & Minuman"},
		{ID: "b", Amount: FromUnits(30000), PaymentMethod: "E-Wallet", Category: "🍔 Makanan & Minuman"},
		{ID: "c", Amount: FromUnits(5000), PaymentMethod: "Cash", Category: "🚗 Transport"},
	})

	if s.Total != FromUnits(85000) || s.Count != 3 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.ByPaymentMethod["Cash"] != FromUnits(55000) || s.ByPaymentMethod["E-Wallet"] != FromUnits(30000) {
		t.Fatalf("unexpected by payment method: %v", s.ByPaymentMethod)
	}

	var sum Money
	for _, v := range s.ByCategory {
		sum = sum.Add(v)
	}
	if sum != s.Total {
		t.Fatalf("category sums %v != total %v", sum, s.Total)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(NewMonthYear(2025, 1), nil)
	if !s.IsEmpty() || s.Total.Cents != 0 || len(s.ByCategory) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestSortedByAmount(t *testing.T) {
	got := SortedByAmount(map[string]Money{
		"b": {Cents: 10},
		"a": {Cents: 10},
		"c": {Cents: 30},
	})
	want := []string{"c", "a", "b"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d = %q, want %q (%v)", i, got[i].Name, name, got)
		}
	}
}
