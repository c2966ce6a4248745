// Package command provides CLI command definitions for kvdb-cli.
package command

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/NoEdgeAtLife/kvdb/internal/cli/connection"
)

type statusResponse struct {
	Keys          int    `json:"keys"`
	LogBytes      int64  `json:"log_bytes"`
	CacheLen      int    `json:"cache_len"`
	CacheHits     uint64 `json:"cache_hits"`
	CacheMisses   uint64 `json:"cache_misses"`
	Compactions   uint64 `json:"compactions"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Version       string `json:"version"`
}

// StatusCommand returns the status subcommand.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show server status",
		Action: runStatus,
	}
}

func runStatus(c *cli.Context) error {
	f, err := formatterFor(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp, err := clientFor(c).Get(ctx, "/admin/v1/status/summary")
	if err != nil {
		return err
	}

	var result statusResponse
	if err := parseInto(resp, &result); err != nil {
		return err
	}

	plain := fmt.Sprintf(
		"keys: %d\nlog_bytes: %d\ncache: %d entries (%d hits, %d misses)\ncompactions: %d\nuptime: %ds\nversion: %s",
		result.Keys, result.LogBytes, result.CacheLen, result.CacheHits,
		result.CacheMisses, result.Compactions, result.UptimeSeconds, result.Version)
	return f.Print(result, plain)
}

// parseInto decodes a JSON response, mapping HTTP-level failures to errors.
func parseInto(resp *http.Response, target any) error {
	return connection.ParseResponse(resp, target)
}
