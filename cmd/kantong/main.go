package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"kantong/internal/cli"
	"kantong/internal/core"
	"kantong/internal/log"
	"kantong/internal/report"
)

const usage = `Usage: kantong <command> [flags] [args]

Commands:
  months                          list months that have expenses
  open [YYYY-MM]                  check or start a month
  add -amount N -method M [-category C] [-desc D] [YYYY-MM]
  list [YYYY-MM]                  list expenses, newest first
  show ID                         show one expense
  edit [-amount N] [-method M] [-category C] [-desc D] ID
  delete ID                       delete one expense
  delete-month -yes YYYY-MM       delete a month with its budget
  summary [YYYY-MM]               totals per payment method and category
  chart [YYYY-MM]                 bar chart per category
  budget [YYYY-MM]                show budget status
  budget set YYYY-MM AMOUNT       set or replace the budget
  categories                      list categories and payment methods

The month defaults to the current one.
`

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, log.ComponentCLI)

	ctx := log.WithContext(context.Background(), logger)
	res, err := cli.OpenBackend(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to open backend", "error", err)
		os.Exit(1)
	}

	r := report.New(os.Stdout)
	if loc, err := cfg.Location(); err == nil {
		r.Location = loc
	}

	app := newApp(res.Service, os.Stdout, r)
	err = app.run(ctx, os.Args[1:])

	if cerr := res.Cleanup(); cerr != nil {
		logger.Warn("Cleanup failed", "error", cerr)
	}

	if err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	case errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrEmptyPaymentMethod),
		errors.Is(err, core.ErrDescriptionTooLong):
		fmt.Fprintln(os.Stderr, "Input tidak valid:", err)
		return 2
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintln(os.Stderr, "Tidak ditemukan:", err)
		return 1
	case errors.Is(err, report.ErrNoData):
		fmt.Fprintln(os.Stderr, err)
		return 1
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
}
