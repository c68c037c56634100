package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/payrun/payrun"
	"github.com/payrun/payrun/renderer"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	input    string
	journal  string
	shards   int
	format   string
	currency string
	verbose  bool
}

func (*processCmd) Name() string { return "process" }

func (*processCmd) Synopsis() string {
	return "settle a transaction stream into final account balances"
}

func (*processCmd) Usage() string {
	return `prs process [-input csv|jsonl] [-journal <file>] [-shards <n>] [-format csv|markdown] <input-file>

  Apply every transaction record of the input file in arrival order and write
  the final account table to stdout. Rows that fail to decode and transactions
  the engine rejects are skipped with a diagnostic on stderr; the run only
  fails when the input cannot be opened or the report cannot be written.

Usage Examples:
# Settle a CSV stream into a report.
$ prs process transactions.csv > accounts.csv

`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "csv", "input stream format (csv, jsonl)")
	f.StringVar(&c.journal, "journal", "", "mirror accepted settlements to this JSONL journal (sequential mode only)")
	f.IntVar(&c.shards, "shards", 1, "number of account-partitioned engines to run in parallel")
	f.StringVar(&c.format, "format", "csv", "report format (csv, markdown)")
	f.StringVar(&c.currency, "currency", "", "ISO 4217 code to format markdown balances with")
	f.BoolVar(&c.verbose, "v", false, "verbose diagnostics")
}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one input file\n")
		return subcommands.ExitUsageError
	}
	if c.format != "csv" && c.format != "markdown" {
		fmt.Fprintf(os.Stderr, "Error: unknown report format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	if c.journal != "" && c.shards > 1 {
		fmt.Fprintf(os.Stderr, "Error: -journal requires a sequential run (-shards 1)\n")
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

	var journal io.Writer
	if c.journal != "" {
		// Open the file in append mode, creating it if it doesn't exist.
		jf, err := os.OpenFile(c.journal, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", c.journal, err)
			return subcommands.ExitFailure
		}
		defer jf.Close()
		journal = jf
	}

	diag := newDiagnostics(c.verbose)
	defer diag.Sync()

	if err := c.run(ctx, src, journal, os.Stdout, diag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newSource builds the transaction source for an input format.
func newSource(format string, r io.Reader) (payrun.Source, error) {
	switch format {
	case "csv":
		return payrun.NewReader(r), nil
	case "jsonl":
		return payrun.NewJournalReader(r), nil
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// run drains the source into the engine(s) and writes the report. All row
// level failures are diagnostics; only I/O faults are returned.
func (c *processCmd) run(ctx context.Context, src payrun.Source, journal, out io.Writer, diag *zap.SugaredLogger) error {
	runID := uuid.NewString()
	start := time.Now()

	var processed, rejected atomic.Uint64
	reject := func(r payrun.Rejection) {
		rejected.Add(1)
		diag.Warnw("transaction rejected",
			"kind", r.Transaction.Kind(), "tx", r.Transaction.Tx(), "error", r.Err)
	}

	var engine *payrun.Engine
	var sharded *payrun.Sharded
	if c.shards > 1 {
		sharded = payrun.NewSharded(ctx, c.shards, reject)
	} else {
		engine = payrun.NewEngine()
	}

	for {
		t, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rejected.Add(1)
			diag.Warnw("skipping undecodable row", "error", err)
			continue
		}

		if sharded != nil {
			sharded.Submit(t)
		} else if err := engine.Execute(t); err != nil {
			reject(payrun.Rejection{Transaction: t, Err: err})
			continue
		} else if journal != nil && t.Kind().IsSettlement() {
			if err := payrun.EncodeTransaction(journal, t); err != nil {
				return fmt.Errorf("writing journal: %w", err)
			}
		}

		if n := processed.Add(1); n%1_000_000 == 0 {
			diag.Infow("progress", "processed", n)
		}
	}

	accounts := func() []*payrun.Account {
		if sharded != nil {
			return slices.Collect(sharded.Accounts())
		}
		return slices.Collect(engine.Accounts())
	}

	if sharded != nil {
		if err := sharded.Wait(); err != nil {
			return err
		}
	}

	diag.Infow("run complete",
		"run", runID,
		"submitted", processed.Load(),
		"rejected", rejected.Load(),
		"duration", time.Since(start))

	switch c.format {
	case "markdown":
		md := renderer.Statement(accounts(), renderer.StatementOptions{Currency: c.currency})
		printMarkdown(md)
		return nil
	default:
		return payrun.WriteReport(out, slices.Values(accounts()))
	}
}
