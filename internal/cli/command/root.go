// Package command provides CLI command definitions for kvdb-cli.
//
// It uses urfave/cli/v2 for command parsing.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/NoEdgeAtLife/kvdb/internal/cli/connection"
	"github.com/NoEdgeAtLife/kvdb/internal/cli/output"
	"github.com/NoEdgeAtLife/kvdb/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "kvdb-cli",
		Usage:   "kvdb command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SetCommand(),
			GetCommand(),
			RemoveCommand(),
			StatusCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "kvdb server address (e.g., localhost:5080)",
			EnvVars: []string{"KVDB_SERVER"},
			Value:   "localhost:5080",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: plain, json",
			Value:   "plain",
		},
	}
}

// clientFor builds the HTTP client from the global flags.
func clientFor(c *cli.Context) *connection.HTTPClient {
	return connection.NewHTTPClient(c.String("server"))
}

// formatterFor builds the output formatter from the global flags.
func formatterFor(c *cli.Context) (*output.Formatter, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(c.App.Writer, format), nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
