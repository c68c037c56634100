package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/payrun/payrun/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion; it is a no-op outside of a completion
// request.
func completion() {
	formats := predict.Set{"csv", "jsonl"}
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"process": {
				Flags: map[string]complete.Predictor{
					"input":    formats,
					"journal":  predict.Files("*.jsonl"),
					"shards":   predict.Something,
					"format":   predict.Set{"csv", "markdown"},
					"currency": predict.Something,
					"v":        predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"check": {
				Flags: map[string]complete.Predictor{
					"input": formats,
					"v":     predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"fmt": {
				Flags: map[string]complete.Predictor{
					"o": predict.Files("*.jsonl"),
					"v": predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"import": {
				Flags: map[string]complete.Predictor{
					"path": predict.Something,
				},
				Args: predict.Files("*.json"),
			},
			"topic": {
				Args: predict.Set{"readme", "transactions", "disputes", "report"},
			},
		},
	}
	c.Complete("prs")
}
