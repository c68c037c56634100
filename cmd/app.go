// Package cmd implements the CLI application to settle transaction streams.
package cmd

import (
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the prs tool.
// A main package registers each of them on its commander.
var Commands = []subcommands.Command{
	&processCmd{},
	&checkCmd{},
	&fmtCmd{},
	&importCmd{},
	&topicCmd{},
}
