package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"50000", 5000000, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q error %v should match ErrInvalidInput and ErrInvalidAmount", tc.in, err)
			}
		}
	}
}

func TestParseBudget(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"0", 0, true},
		{"0,00", 0, true},
		{"100000", 10000000, true},
		{"-1", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseBudget(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q expected ErrInvalidInput, got %v", tc.in, err)
		}
	}
}

func TestMoneyUnits(t *testing.T) {
	if got := (Money{Cents: 5000049}).Units(); got != 50000 {
		t.Fatalf("Units() = %d, want 50000", got)
	}
	if got := (Money{Cents: 5000050}).Units(); got != 50001 {
		t.Fatalf("Units() = %d, want 50001", got)
	}
	if got := FromUnits(300).Cents; got != 30000 {
		t.Fatalf("FromUnits(300) = %d", got)
	}
}

func TestPercentOf(t *testing.T) {
	cases := []struct {
		part, total int64
		want        int
	}{
		{50, 80, 62},
		{80, 80, 100},
		{120, 100, 120},
		{1, 0, 0},
	}
	for _, tc := range cases {
		if got := PercentOf(Money{Cents: tc.part}, Money{Cents: tc.total}); got != tc.want {
			t.Fatalf("PercentOf(%d, %d) = %d, want %d", tc.part, tc.total, got, tc.want)
		}
	}
}
