// Package main provides the entry point for kvdb-cli.
//
// Usage:
//
//	kvdb-cli --server localhost:5080 set 42 hello
//	kvdb-cli --server localhost:5080 get 42
//	kvdb-cli --server localhost:5080 remove 42
//	kvdb-cli --server localhost:5080 status
//
// The exit code is 0 on success and non-zero on RPC or local errors.
package main
