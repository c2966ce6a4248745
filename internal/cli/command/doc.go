// Package command provides CLI command definitions for kvdb-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: root command and global flags
//   - kv.go: set, get, and remove commands
//   - system.go: status command
//
// Commands follow a consistent pattern of parsing arguments, calling the
// server over HTTP, and formatting output.
package command
