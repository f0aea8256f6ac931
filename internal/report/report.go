package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"kantong/internal/catalog"
	"kantong/internal/core"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("belum ada data pengeluaran")

const (
	colorOver    = "#F44336"
	colorWarning = "#FF9800"
	colorOK      = "#4CAF50"

	barWidth = 20
)

// Renderer formats output for one writer. Colors are dropped automatically
// when the writer is not a terminal.
type Renderer struct {
	style    *lipgloss.Renderer
	Location *time.Location
}

func New(w io.Writer) *Renderer {
	return &Renderer{
		style:    lipgloss.NewRenderer(w),
		Location: time.Local,
	}
}

// ProgressColor picks the budget bar color for a percentage used.
func ProgressColor(percentUsed int) string {
	switch {
	case percentUsed >= 100:
		return colorOver
	case percentUsed >= 80:
		return colorWarning
	default:
		return colorOK
	}
}

func (r *Renderer) bar(percent int, color string) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * barWidth / 100
	fill := r.style.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled))
	return fill + strings.Repeat("░", barWidth-filled)
}

// Months renders the partition list.
func (r *Renderer) Months(months []core.MonthYear) string {
	if len(months) == 0 {
		return "Belum ada bulan. Tambahkan pengeluaran untuk memulai.\n"
	}
	var b strings.Builder
	for _, p := range months {
		fmt.Fprintf(&b, "%s  (%s)\n", catalog.DisplayName(p), p.Key())
	}
	return b.String()
}

// Expenses renders one line per expense, in the order given.
func (r *Renderer) Expenses(p core.MonthYear, expenses []core.Expense) string {
	var b strings.Builder
	title := r.style.NewStyle().Bold(true)
	fmt.Fprintln(&b, title.Render("Pengeluaran "+catalog.DisplayName(p)))
	if len(expenses) == 0 {
		fmt.Fprintln(&b, "Belum ada pengeluaran.")
		return b.String()
	}
	var total core.Money
	for _, e := range expenses {
		tag := r.style.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(catalog.CategoryColor(e.Category))).
			Render(e.Category)
		fmt.Fprintf(&b, "%s  %12s  %-13s  %s  %s  [%s]\n",
			FormatTimestamp(e.Timestamp, r.Location),
			FormatRupiah(e.Amount),
			e.PaymentMethod,
			tag,
			e.Description,
			e.ID)
		total = total.Add(e.Amount)
	}
	fmt.Fprintf(&b, "Total: %s\n", FormatRupiah(total))
	return b.String()
}

// Summary renders totals with the per payment method and per category breakdowns.
func (r *Renderer) Summary(s core.ExpenseSummary) string {
	var b strings.Builder
	title := r.style.NewStyle().Bold(true)
	fmt.Fprintln(&b, title.Render("Rangkuman "+catalog.DisplayName(s.MonthYear)))
	fmt.Fprintf(&b, "Total Pengeluaran: %s\n", FormatRupiah(s.Total))
	fmt.Fprintf(&b, "Jumlah Transaksi: %d\n", s.Count)

	if len(s.ByPaymentMethod) > 0 {
		fmt.Fprintln(&b, "\nPer Metode Pembayaran:")
		for _, ca := range core.SortedByAmount(s.ByPaymentMethod) {
			fmt.Fprintf(&b, "• %s: %s\n", ca.Name, FormatRupiah(ca.Amount))
		}
	}
	if len(s.ByCategory) > 0 {
		fmt.Fprintln(&b, "\nPer Kategori:")
		for _, ca := range core.SortedByAmount(s.ByCategory) {
			fmt.Fprintf(&b, "• %s: %s\n", ca.Name, FormatRupiah(ca.Amount))
		}
	}
	return b.String()
}

// Budget renders the budget line and its progress bar.
func (r *Renderer) Budget(st core.BudgetStatus) string {
	var status string
	switch st.State {
	case core.BudgetOver:
		status = "⚠️ Melebihi budget " + FormatRupiah(st.Overspent())
	case core.BudgetNearLimit:
		status = "⚠️ Sisa " + FormatRupiah(st.Remaining)
	default:
		status = "✅ Sisa " + FormatRupiah(st.Remaining)
	}
	return fmt.Sprintf("Budget: %s • %s\n%s %d%%\n",
		FormatRupiah(st.Budget), status,
		r.bar(st.PercentUsed, ProgressColor(st.PercentUsed)), st.PercentUsed)
}

// ChartRow is one bar of the category chart.
type ChartRow struct {
	Category string
	Amount   core.Money
	Percent  int
	Color    string
}

// ChartRows orders categories by descending amount with their share of the total.
func ChartRows(s core.ExpenseSummary) []ChartRow {
	sorted := core.SortedByAmount(s.ByCategory)
	rows := make([]ChartRow, len(sorted))
	for i, ca := range sorted {
		rows[i] = ChartRow{
			Category: ca.Name,
			Amount:   ca.Amount,
			Percent:  core.PercentOf(ca.Amount, s.Total),
			Color:    catalog.CategoryColor(ca.Name),
		}
	}
	return rows
}

// Chart renders a bar per category. It returns ErrNoData for an empty month.
func (r *Renderer) Chart(s core.ExpenseSummary) (string, error) {
	if s.IsEmpty() {
		return "", ErrNoData
	}
	var b strings.Builder
	title := r.style.NewStyle().Bold(true)
	fmt.Fprintln(&b, title.Render("📊 Grafik Pengeluaran per Kategori"))
	for _, row := range ChartRows(s) {
		fmt.Fprintf(&b, "%-22s %s %12s %3d%%\n",
			row.Category, r.bar(row.Percent, row.Color), FormatRupiah(row.Amount), row.Percent)
	}
	return b.String(), nil
}
