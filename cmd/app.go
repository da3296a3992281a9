// Package cmd implements the CLI application to compute the normalized return of an account.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/config"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands lists the subcommands. A main package registers them on its commander.
var Commands = []subcommands.Command{
	&returnCmd{},
	&balancesCmd{},
	&cashflowsCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile    = flag.String("config", config.DefaultFile, "Path to the YAML configuration file")
	statementsDir = flag.String("statements", "", "Directory of the monthly statements (.pdf, .txt)")
	activityDir   = flag.String("activity", "", "Directory of the account activity exports (.csv)")
	currency      = flag.String("currency", "", "Currency used to parse and display amounts")
	label         = flag.String("label", "", "Label preceding the start and end balances on a statement")
	action        = flag.String("action", "", "Action of the activity rows that are cash movements")
	match         = flag.String("match", "", "Substring of the Description of the activity rows that are cash movements")
	minMonth      = flag.String("min-month", "", "First month a return can start from (YYYY-MM)")
	lag           = flag.Int("lag", returns.DefaultPostingLag, "Number of months before a statement is published")
	raw           = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal")
	Verbose       = flag.Bool("v", false, "Log debug messages to stderr")
)

// FlagNames returns the names of the global flags.
func FlagNames() []string {
	var names []string
	flag.VisitAll(func(f *flag.Flag) { names = append(names, f.Name) })
	return names
}

// loadConfig reads the configuration file and the environment, then applies the global flags that were set.
func loadConfig() (config.Config, *logrus.Logger, error) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	c, err := config.Load(*configFile, set["config"])
	if err != nil {
		return c, nil, err
	}
	overrides := map[string]func(){
		"statements": func() { c.Statements = *statementsDir },
		"activity":   func() { c.Activity = *activityDir },
		"currency":   func() { c.Currency = *currency },
		"label":      func() { c.Label = *label },
		"action":     func() { c.Action = *action },
		"match":      func() { c.Match = *match },
		"min-month":  func() { c.MinMonth = *minMonth },
		"lag":        func() { c.Lag = *lag },
	}
	for name, apply := range overrides {
		if set[name] {
			apply()
		}
	}
	if *Verbose {
		c.LogLevel = logrus.DebugLevel.String()
	}
	if err := c.Validate(); err != nil {
		return c, nil, err
	}
	return c, newLogger(c.Level()), nil
}

func newLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(level)
	return log
}

// exitStatus reports err and maps it to the exit status of a command.
func exitStatus(what string, err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	if errors.Is(err, returns.ErrInvalidRange) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
