// Package main provides the CLI entrypoint for builder-generator.
//
// builder-generator is a go:generate tool that:
//   - Loads Go packages (go/packages + go/types) to read struct declarations
//   - Classifies fields as required, optional (*T) or repeated ([]T)
//   - Generates a <Type>Builder with chainable setters and a validating Build
package main

import (
	"context"
	"fmt"
	"os"

	"builder-generator/internal/cli"
)

func main() {
	if err := cli.RootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "builder-generator:", err)
		os.Exit(1)
	}
}
