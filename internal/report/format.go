// Package report renders expenses, summaries, budget status and the category
// chart as terminal text. Amounts are converted from cents only here.
package report

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"kantong/internal/catalog"
	"kantong/internal/core"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders whole rupiah with Indonesian grouping: "Rp 50.000".
func FormatRupiah(m core.Money) string {
	units := m.Units()
	if units < 0 {
		return printer.Sprintf("-Rp %d", -units)
	}
	return printer.Sprintf("Rp %d", units)
}

// FormatTimestamp renders t as "05 Agu 2025 14:30" in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%02d %s %d %02d:%02d",
		t.Day(), catalog.MonthAbbrev(int(t.Month())), t.Year(), t.Hour(), t.Minute())
}
