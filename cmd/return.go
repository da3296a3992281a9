package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// returnCmd holds the flags for the 'return' subcommand.
type returnCmd struct {
	start string
	end   string

	in  io.Reader // defaults to os.Stdin
	out io.Writer // prompts, defaults to os.Stdout
}

func (*returnCmd) Name() string     { return "return" }
func (*returnCmd) Synopsis() string { return "compute the normalized return over a range of months" }
func (*returnCmd) Usage() string {
	return `nret return [-start <YYYY-MM>] [-end <YYYY-MM>]

  Computes the annualized return between the first business day of the start
  month and the last business day of the end month, net of deposits and
  withdrawals. Without -start, the months are read from the terminal.
  An empty end month selects the last month with a published statement.
`
}

func (c *returnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "First month of the range (YYYY-MM)")
	f.StringVar(&c.end, "end", "", "Last month of the range (YYYY-MM). Defaults to the last available month.")
}

func (c *returnCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		in, out := c.in, c.out
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		var err error
		if c.start, c.end, err = promptMonths(in, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading months: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	start, end, err := parseMonths(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	conf, log, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	calc, err := conf.Calculator(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := calc.NormalizedReturn(start, end)
	if err != nil {
		return exitStatus("computing the return", err)
	}
	printMarkdown(renderer.RenderReturn(result, renderer.Options{Currency: conf.Currency, TradingDays: calc.TradingDays}))
	return subcommands.ExitSuccess
}

// promptMonths asks for the start and end months on out and reads the answers from in.
func promptMonths(in io.Reader, out io.Writer) (start, end string, err error) {
	r := bufio.NewReader(in)
	read := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	if start, err = read("Starting month (YYYY-MM): "); err != nil {
		return "", "", err
	}
	if start == "" {
		return "", "", errors.New("a starting month is required")
	}
	if end, err = read("Ending month (YYYY-MM): "); err != nil {
		return "", "", err
	}
	return start, end, nil
}

// parseMonths parses start, and end unless it is empty.
func parseMonths(start, end string) (returns.Month, *returns.Month, error) {
	s, err := returns.ParseMonth(start)
	if err != nil {
		return returns.Month{}, nil, fmt.Errorf("parsing start month: %w", err)
	}
	if end == "" {
		return s, nil, nil
	}
	e, err := returns.ParseMonth(end)
	if err != nil {
		return returns.Month{}, nil, fmt.Errorf("parsing end month: %w", err)
	}
	return s, &e, nil
}
