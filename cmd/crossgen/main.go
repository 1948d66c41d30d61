// Command crossgen is the CLI surface over the core grid, autofill, matcher,
// and puz codec packages: generate, validate, convert, stats, suggest, and
// autofill subcommands live in cmd/crossgen/cmd.
package main

import (
	"fmt"
	"os"

	"github.com/crossgen/crossgen/cmd/crossgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
