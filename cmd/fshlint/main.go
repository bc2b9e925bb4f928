// Command fshlint is the CLI entrypoint for the FSH linter, formatter, and
// decompiler toolchain.
package main

import (
	"fmt"
	"os"

	"github.com/octofhir/fsh-lint/cmd/fshlint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
