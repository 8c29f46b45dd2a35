// Command morf analyzes sentences with a morphological engine and records
// the runs for replay and search.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/morf/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "morf:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
