// Package catalog holds the fixed lists the user picks from: spending
// categories with their display colors, payment methods and month names. The
// store treats all of these as opaque strings.
package catalog

import (
	"fmt"
	"strings"

	"kantong/internal/core"
)

// Categories is the fixed category list, in display order.
var Categories = []string{
	"🍔 Makanan & Minuman",
	"🚗 Transport",
	"🛒 Belanja",
	"🎮 Hiburan",
	"💡 Tagihan",
	"🏥 Kesehatan",
	"📚 Pendidikan",
	"👔 Fashion",
	"🏠 Rumah Tangga",
	core.DefaultCategory,
}

// PaymentMethods is the fixed payment method list, in display order.
var PaymentMethods = []string{
	"Cash",
	"Transfer Bank",
	"E-Wallet",
	"Kartu Debit",
	"Kartu Kredit",
}

// DefaultColor is used for labels that match no keyword.
const DefaultColor = "#95A5A6"

// categoryColors is matched in order; the first keyword contained in the label wins.
var categoryColors = []struct {
	keyword string
	color   string
}{
	{"Makanan", "#FF6B6B"},
	{"Transport", "#4ECDC4"},
	{"Belanja", "#45B7D1"},
	{"Hiburan", "#FFA07A"},
	{"Tagihan", "#F39C12"},
	{"Kesehatan", "#E74C3C"},
	{"Pendidikan", "#9B59B6"},
	{"Fashion", "#E91E63"},
	{"Rumah", "#795548"},
}

// CategoryColor returns the hex display color for a category label.
func CategoryColor(category string) string {
	for _, c := range categoryColors {
		if strings.Contains(category, c.keyword) {
			return c.color
		}
	}
	return DefaultColor
}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of month m (1-12).
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("Bulan %d", m)
	}
	return monthNames[m-1]
}

// MonthAbbrev returns the three letter abbreviation used in dates ("Agu").
func MonthAbbrev(m int) string {
	return MonthName(m)[:3]
}

// DisplayName renders a partition as "Januari 2025".
func DisplayName(p core.MonthYear) string {
	return fmt.Sprintf("%s %d", MonthName(p.Month), p.Year)
}
