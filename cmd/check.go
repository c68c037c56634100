package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	input   string
	verbose bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate a transaction stream without settling it" }
func (*checkCmd) Usage() string {
	return `prs check [-input csv|jsonl] <input-file>

  Decode every row of the input file and report the ones that would be
  skipped by process. Nothing is settled and no report is produced. The
  command exits with a failure status when any row is invalid.

`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "csv", "input stream format (csv, jsonl)")
	f.BoolVar(&c.verbose, "v", false, "verbose diagnostics")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one input file\n")
		return subcommands.ExitUsageError
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	src, err := newSource(c.input, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	diag := newDiagnostics(c.verbose)
	defer diag.Sync()

	var ok, bad uint64
	for {
		t, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			bad++
			diag.Warnw("invalid row", "error", err)
			continue
		}
		ok++
		diag.Debugw("row", "kind", t.Kind(), "client", t.Account(), "tx", t.Tx())
	}

	diag.Infow("check complete", "valid", ok, "invalid", bad)
	if bad > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
