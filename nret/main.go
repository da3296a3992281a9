package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/returns/cmd"
	"github.com/etnz/returns/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// completion is a no-op unless the shell is asking for it (COMP_LINE).
	completion().Complete("nret")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the commands and flags for shell completion.
func completion() *complete.Command {
	month := predict.Something
	topics, _ := docs.GetAllTopics()

	flags := map[string]complete.Predictor{}
	for _, name := range cmd.FlagNames() {
		flags[name] = predict.Something
	}
	flags["config"] = predict.Files("*.yaml")
	flags["statements"] = predict.Dirs("*")
	flags["activity"] = predict.Dirs("*")
	flags["raw"] = predict.Nothing
	flags["v"] = predict.Nothing

	return &complete.Command{
		Flags: flags,
		Sub: map[string]*complete.Command{
			"return":    {Flags: map[string]complete.Predictor{"start": month, "end": month}},
			"cashflows": {Flags: map[string]complete.Predictor{"start": month, "end": month}},
			"balances":  {},
			"topic":     {Args: predict.Set(append(topics, "readme", "*"))},
			"help":      {},
			"flags":     {},
		},
	}
}
