// Command mergebench times standard merge sort against hybrid
// merge/insertion sort over synthetic integer arrays.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/mergebench/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
