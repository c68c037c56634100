package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/payrun/payrun"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct {
	output  string
	verbose bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "normalize a CSV transaction stream into canonical JSONL form"
}
func (*fmtCmd) Usage() string {
	return `prs fmt [-o <file>] <input-file>

  Reads a CSV transaction stream and writes it back as canonical JSONL, one
  record per line, with amounts rounded to four digits. Invalid rows are
  skipped with a diagnostic. The result can be fed back to process with
  -input jsonl.

Usage Examples:
# Normalize a stream in place of stdout redirection.
$ prs fmt -o transactions.jsonl transactions.csv

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file (defaults to stdout)")
	f.BoolVar(&c.verbose, "v", false, "verbose diagnostics")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	out := io.Writer(os.Stdout)
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	diag := newDiagnostics(c.verbose)
	defer diag.Sync()

	src := payrun.NewReader(in)
	var written uint64
	for {
		t, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			diag.Warnw("skipping invalid row", "error", err)
			continue
		}
		if err := payrun.EncodeTransaction(out, t); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing record: %v\n", err)
			return subcommands.ExitFailure
		}
		written++
	}

	diag.Infow("fmt complete", "written", written)
	return subcommands.ExitSuccess
}
