package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"kantong/internal/catalog"
	"kantong/internal/core"
	"kantong/internal/report"
	"kantong/internal/services"
)

var errUsage = errors.New("invalid usage")

type app struct {
	svc    *services.ExpenseService
	out    io.Writer
	render *report.Renderer
	now    func() time.Time
}

func newApp(svc *services.ExpenseService, out io.Writer, render *report.Renderer) *app {
	return &app{svc: svc, out: out, render: render, now: time.Now}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "months":
		return a.months(ctx)
	case "open":
		return a.open(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "list":
		return a.list(ctx, rest)
	case "show":
		return a.show(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "delete":
		return a.remove(ctx, rest)
	case "delete-month":
		return a.removeMonth(ctx, rest)
	case "summary":
		return a.summary(ctx, rest)
	case "chart":
		return a.chart(ctx, rest)
	case "budget":
		return a.budget(ctx, rest)
	case "categories":
		return a.categories()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// monthArg parses the optional trailing month argument.
func (a *app) monthArg(args []string) (core.MonthYear, error) {
	switch len(args) {
	case 0:
		return core.MonthYearOf(a.now()), nil
	case 1:
		return core.ParseMonthYear(args[0])
	default:
		return core.MonthYear{}, fmt.Errorf("%w: unexpected arguments %v", errUsage, args[1:])
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func (a *app) months(ctx context.Context) error {
	months, err := a.svc.Months(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, a.render.Months(months))
	return nil
}

func (a *app) open(ctx context.Context, args []string) error {
	p, err := a.monthArg(args)
	if err != nil {
		return err
	}
	exists, err := a.svc.OpenMonth(ctx, p)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(a.out, "Bulan %s sudah ada.\n", catalog.DisplayName(p))
		return a.list(ctx, []string{p.Key()})
	}
	fmt.Fprintf(a.out, "Bulan %s siap. Tambahkan pengeluaran dengan: kantong add -amount N -method M %s\n",
		catalog.DisplayName(p), p.Key())
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	amount := fs.String("amount", "", "amount in rupiah, e.g. 50000 or 12500,50")
	method := fs.String("method", "", "payment method")
	category := fs.String("category", "", "category (default "+core.DefaultCategory+")")
	desc := fs.String("desc", "", "description")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p, err := a.monthArg(fs.Args())
	if err != nil {
		return err
	}

	in, err := resolveNewExpense(*amount, *method, *category, *desc)
	if err != nil {
		return err
	}

	e, err := a.svc.AddExpense(ctx, p, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ Pengeluaran %s dicatat di %s [%s]\n",
		report.FormatRupiah(e.Amount), catalog.DisplayName(p), e.ID)
	return a.printBudget(ctx, p)
}

func resolveNewExpense(amount, method, category, desc string) (services.NewExpense, error) {
	var in services.NewExpense
	m, err := core.ParseAmount(amount)
	if err != nil {
		return in, err
	}
	in.Amount = m
	if in.PaymentMethod, err = catalog.ResolvePaymentMethod(method); err != nil {
		return in, err
	}
	if strings.TrimSpace(category) != "" {
		if in.Category, err = catalog.ResolveCategory(category); err != nil {
			return in, err
		}
	}
	in.Description = desc
	return in, nil
}

func (a *app) list(ctx context.Context, args []string) error {
	p, err := a.monthArg(args)
	if err != nil {
		return err
	}
	expenses, err := a.svc.Expenses(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, a.render.Expenses(p, expenses))
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show needs exactly one expense id", errUsage)
	}
	e, p, err := a.svc.Expense(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID:          %s\n", e.ID)
	fmt.Fprintf(a.out, "Bulan:       %s\n", catalog.DisplayName(p))
	fmt.Fprintf(a.out, "Jumlah:      %s\n", report.FormatRupiah(e.Amount))
	fmt.Fprintf(a.out, "Metode:      %s\n", e.PaymentMethod)
	fmt.Fprintf(a.out, "Kategori:    %s\n", e.Category)
	fmt.Fprintf(a.out, "Keterangan:  %s\n", e.Description)
	fmt.Fprintf(a.out, "Waktu:       %s\n", report.FormatTimestamp(e.Timestamp, a.render.Location))
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := newFlagSet("edit")
	amount := fs.String("amount", "", "new amount")
	method := fs.String("method", "", "new payment method")
	category := fs.String("category", "", "new category")
	desc := fs.String("desc", "", "new description")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: edit needs exactly one expense id", errUsage)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var changes services.ExpenseChanges
	if set["amount"] {
		m, err := core.ParseAmount(*amount)
		if err != nil {
			return err
		}
		changes.Amount = &m
	}
	if set["method"] {
		pm, err := catalog.ResolvePaymentMethod(*method)
		if err != nil {
			return err
		}
		changes.PaymentMethod = &pm
	}
	if set["category"] {
		c, err := catalog.ResolveCategory(*category)
		if err != nil {
			return err
		}
		changes.Category = &c
	}
	if set["desc"] {
		changes.Description = desc
	}

	e, err := a.svc.EditExpense(ctx, fs.Arg(0), changes)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ Pengeluaran [%s] diperbarui: %s, %s, %s\n",
		e.ID, report.FormatRupiah(e.Amount), e.PaymentMethod, e.Category)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete needs exactly one expense id", errUsage)
	}
	if err := a.svc.RemoveExpense(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "🗑️ Pengeluaran [%s] dihapus\n", args[0])
	return nil
}

func (a *app) removeMonth(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-month")
	yes := fs.Bool("yes", false, "confirm deletion")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: delete-month needs a month", errUsage)
	}
	p, err := core.ParseMonthYear(fs.Arg(0))
	if err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("%w: menghapus %s beserta semua pengeluaran dan budgetnya, ulangi dengan -yes",
			errUsage, catalog.DisplayName(p))
	}
	if err := a.svc.RemoveMonth(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "🗑️ Bulan %s dihapus\n", catalog.DisplayName(p))
	return nil
}

func (a *app) summary(ctx context.Context, args []string) error {
	p, err := a.monthArg(args)
	if err != nil {
		return err
	}
	s, err := a.svc.Summary(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, a.render.Summary(s))
	return a.printBudget(ctx, p)
}

func (a *app) chart(ctx context.Context, args []string) error {
	p, err := a.monthArg(args)
	if err != nil {
		return err
	}
	s, err := a.svc.Summary(ctx, p)
	if err != nil {
		return err
	}
	out, err := a.render.Chart(s)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, out)
	return nil
}

func (a *app) budget(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "set" {
		if len(args) != 3 {
			return fmt.Errorf("%w: budget set needs a month and an amount", errUsage)
		}
		p, err := core.ParseMonthYear(args[1])
		if err != nil {
			return err
		}
		amount, err := core.ParseBudget(args[2])
		if err != nil {
			return err
		}
		if err := a.svc.SetBudget(ctx, p, amount); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✅ Budget %s: %s\n", catalog.DisplayName(p), report.FormatRupiah(amount))
		return a.printBudget(ctx, p)
	}

	p, err := a.monthArg(args)
	if err != nil {
		return err
	}
	_, ok, err := a.svc.Budget(ctx, p)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "Budget %s belum diatur.\n", catalog.DisplayName(p))
		return nil
	}
	return a.printBudget(ctx, p)
}

// printBudget prints the budget status of p when a budget is set.
func (a *app) printBudget(ctx context.Context, p core.MonthYear) error {
	st, ok, err := a.svc.BudgetStatus(ctx, p)
	if err != nil || !ok {
		return err
	}
	fmt.Fprint(a.out, a.render.Budget(st))
	return nil
}

func (a *app) categories() error {
	fmt.Fprintln(a.out, "Kategori:")
	for _, c := range catalog.Categories {
		fmt.Fprintf(a.out, "  %s\n", c)
	}
	fmt.Fprintln(a.out, "Metode Pembayaran:")
	for _, m := range catalog.PaymentMethods {
		fmt.Fprintf(a.out, "  %s\n", m)
	}
	return nil
}
