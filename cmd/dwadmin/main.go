// Command dwadmin is the admin client for the Doubleword control layer.
package main

import (
	"os"

	"github.com/doublewordai/dwadmin/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to an exit code.
// Separated from main so tests can exercise it.
func run() int {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}
