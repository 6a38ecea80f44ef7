// Command meso sorts a file of integers and reports how many comparisons
// the sort made.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/meso/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
