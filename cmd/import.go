package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/payrun/payrun"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	path string
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "extract transaction records from a provider JSON export"
}
func (*importCmd) Usage() string {
	return `prs import [-path <jsonpath>] <provider-file.json>

  Extracts transaction records from a provider JSON export and writes them as
  a canonical CSV stream on stdout, ready for process. The -path expression
  selects the array of record objects inside the provider envelope.

Usage Examples:
# Providers wrap the records in an envelope; point -path at the array.
$ prs import -path '$.data.transactions[*]' export.json > transactions.csv

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "$.transactions[*]", "JSONPath expression selecting the record objects")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one provider file\n")
		return subcommands.ExitUsageError
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening provider file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	transactions, err := payrun.ImportJSON(in, c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing records: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := payrun.WriteTransactions(os.Stdout, transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing records: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
