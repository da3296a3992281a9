package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "list the balances read from the statements" }
func (*balancesCmd) Usage() string {
	return `nret balances

  Lists the start and end balances of every monthly statement.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, log, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	balances, err := conf.BalanceSource(log).LoadBalances()
	if err != nil {
		return exitStatus("reading statements", err)
	}
	printMarkdown(renderer.RenderBalances(balances, renderer.Options{Currency: conf.Currency}))
	return subcommands.ExitSuccess
}
