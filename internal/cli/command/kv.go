// Package command provides CLI command definitions for kvdb-cli.
package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

// commandTimeout bounds each single-shot command.
const commandTimeout = 30 * time.Second

// Wire types for the store endpoints.
type setRequest struct {
	Key   int64  `json:"key"`
	Value string `json:"value"`
}

type setResponse struct {
	Success  bool   `json:"success"`
	OldValue string `json:"old_value"`
	Error    string `json:"error,omitempty"`
}

type getRequest struct {
	Key int64 `json:"key"`
}

type getResponse struct {
	Exists bool   `json:"exists"`
	Value  string `json:"value"`
	Error  string `json:"error,omitempty"`
}

type removeRequest struct {
	Key int64 `json:"key"`
}

type removeResponse struct {
	Success  bool   `json:"success"`
	OldValue string `json:"old_value"`
	Error    string `json:"error,omitempty"`
}

// SetCommand returns the set subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Bind a value to a key",
		ArgsUsage: "KEY VALUE",
		Action:    runSet,
	}
}

// GetCommand returns the get subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read the value bound to a key",
		ArgsUsage: "KEY",
		Action:    runGet,
	}
}

// RemoveCommand returns the remove subcommand.
func RemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Unbind a key",
		ArgsUsage: "KEY",
		Action:    runRemove,
	}
}

func runSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("set requires KEY and VALUE arguments")
	}
	key, err := parseKey(c.Args().Get(0))
	if err != nil {
		return err
	}

	f, err := formatterFor(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp, err := clientFor(c).Post(ctx, "/v1/set", setRequest{
		Key:   key,
		Value: c.Args().Get(1),
	})
	if err != nil {
		return err
	}

	var result setResponse
	if err := parseInto(resp, &result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("set failed: %s", result.Error)
	}

	plain := "OK"
	if result.OldValue != "" {
		plain = fmt.Sprintf("OK (was %q)", result.OldValue)
	}
	return f.Print(result, plain)
}

func runGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("get requires a KEY argument")
	}
	key, err := parseKey(c.Args().Get(0))
	if err != nil {
		return err
	}

	f, err := formatterFor(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp, err := clientFor(c).Post(ctx, "/v1/get", getRequest{Key: key})
	if err != nil {
		return err
	}

	var result getResponse
	if err := parseInto(resp, &result); err != nil {
		return err
	}
	if result.Error != "" {
		return fmt.Errorf("get failed: %s", result.Error)
	}

	if !result.Exists {
		return f.Print(result, "(nil)")
	}
	return f.Print(result, result.Value)
}

func runRemove(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("remove requires a KEY argument")
	}
	key, err := parseKey(c.Args().Get(0))
	if err != nil {
		return err
	}

	f, err := formatterFor(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp, err := clientFor(c).Post(ctx, "/v1/remove", removeRequest{Key: key})
	if err != nil {
		return err
	}

	var result removeResponse
	if err := parseInto(resp, &result); err != nil {
		return err
	}
	if result.Error != "" {
		return fmt.Errorf("remove failed: %s", result.Error)
	}
	if !result.Success {
		return fmt.Errorf("key not found")
	}

	plain := "OK"
	if result.OldValue != "" {
		plain = fmt.Sprintf("OK (was %q)", result.OldValue)
	}
	return f.Print(result, plain)
}

func parseKey(s string) (int64, error) {
	key, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: want a 64-bit integer", s)
	}
	return key, nil
}
