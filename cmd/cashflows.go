package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// cashflowsCmd holds the flags for the 'cashflows' subcommand.
type cashflowsCmd struct {
	start string
	end   string
}

func (*cashflowsCmd) Name() string     { return "cashflows" }
func (*cashflowsCmd) Synopsis() string { return "list the deposits and withdrawals read from the activity" }
func (*cashflowsCmd) Usage() string {
	return `nret cashflows [-start <YYYY-MM>] [-end <YYYY-MM>]

  Lists the cash movements of the activity exports, de-duplicated and in
  settlement order, optionally restricted to a range of months.
`
}

func (c *cashflowsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "First month to list (YYYY-MM)")
	f.StringVar(&c.end, "end", "", "Last month to list (YYYY-MM)")
}

func (c *cashflowsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := monthWindow(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	conf, log, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	moves, err := conf.CashflowSource(log).LoadCashMovements()
	if err != nil {
		return exitStatus("reading activity", err)
	}
	if window != nil {
		moves = moves.Within(*window)
	}
	printMarkdown(renderer.RenderCashMovements(moves, renderer.Options{Currency: conf.Currency}))
	return subcommands.ExitSuccess
}

// monthWindow returns the calendar days from the start month to the end month.
// Either bound may be empty, both empty means no restriction.
func monthWindow(start, end string) (*returns.Range, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	w := returns.Range{From: returns.NewDate(1, 1, 1), To: returns.NewDate(9999, 12, 31)}
	if start != "" {
		m, err := returns.ParseMonth(start)
		if err != nil {
			return nil, fmt.Errorf("parsing start month: %w", err)
		}
		w.From = m.FirstDay()
	}
	if end != "" {
		m, err := returns.ParseMonth(end)
		if err != nil {
			return nil, fmt.Errorf("parsing end month: %w", err)
		}
		w.To = m.LastDay()
	}
	if w.From.After(w.To) {
		return nil, fmt.Errorf("%w: start month %s is after end month %s", returns.ErrInvalidRange, start, end)
	}
	return &w, nil
}
