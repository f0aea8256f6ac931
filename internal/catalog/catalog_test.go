package catalog

import (
	"errors"
	"testing"

	"kantong/internal/core"
)

func TestCatalogSizes(t *testing.T) {
	if len(Categories) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(Categories))
	}
	if len(PaymentMethods) != 5 {
		t.Fatalf("expected 5 payment methods, got %d", len(PaymentMethods))
	}
	if Categories[len(Categories)-1] != core.DefaultCategory {
		t.Fatalf("default category should be last")
	}
}

func TestCategoryColor(t *testing.T) {
	cases := map[string]string{
		"🍔 Makanan & Minuman": "#FF6B6B",
		"🚗 Transport":         "#4ECDC4",
		"🏠 Rumah Tangga":      "#795548",
		"💼 Lainnya":           DefaultColor,
		"Makanan Transport":   "#FF6B6B", // first keyword wins
		"":                    DefaultColor,
	}
	for label, want := range cases {
		if got := CategoryColor(label); got != want {
			t.Errorf("CategoryColor(%q) = %s, want %s", label, got, want)
		}
	}
	for _, c := range Categories {
		if c != core.DefaultCategory && CategoryColor(c) == DefaultColor {
			t.Errorf("category %q has no color", c)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(core.NewMonthYear(2025, 1)); got != "Januari 2025" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := MonthAbbrev(8); got != "Agu" {
		t.Fatalf("MonthAbbrev(8) = %q", got)
	}
	if got := MonthName(13); got != "Bulan 13" {
		t.Fatalf("MonthName(13) = %q", got)
	}
}

func TestResolveCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"🚗 Transport", "🚗 Transport"},
		{"transport", "🚗 Transport"},
		{"makan", "🍔 Makanan & Minuman"},
		{"RUMAH", "🏠 Rumah Tangga"},
		{"transprt", "🚗 Transport"},
		{"lainya", core.DefaultCategory},
	}
	for _, tc := range cases {
		got, err := ResolveCategory(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ResolveCategory(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}

	for _, bad := range []string{"", "   ", "zzzzzzzz"} {
		_, err := ResolveCategory(bad)
		if !errors.Is(err, ErrUnknownLabel) || !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("ResolveCategory(%q) err = %v", bad, err)
		}
	}
}

func TestResolvePaymentMethod(t *testing.T) {
	cases := map[string]string{
		"cash":     "Cash",
		"e-wallet": "E-Wallet",
		"ewallet":  "E-Wallet",
		"transfer": "Transfer Bank",
		"debit":    "Kartu Debit",
		"kredit":   "Kartu Kredit",
	}
	for in, want := range cases {
		got, err := ResolvePaymentMethod(in)
		if err != nil || got != want {
			t.Errorf("ResolvePaymentMethod(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	// "kartu" is a substring of two methods and an exact word of both.
	if _, err := ResolvePaymentMethod("kartu"); err == nil {
		t.Errorf("expected ambiguous input to be rejected")
	}
}
