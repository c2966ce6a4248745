// Package main provides the entry point for kvdb-cli.
//
// kvdb-cli is the command-line client for kvdb-server.
package main

import (
	"fmt"
	"os"

	"github.com/NoEdgeAtLife/kvdb/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
