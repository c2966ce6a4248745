// Package main provides the entry point for kvdb-server.
//
// The server hosts a single log-structured key-value store and exposes it
// over an HTTP JSON request/response API:
//
//   - POST /v1/set, /v1/get, /v1/remove for store operations
//   - GET /admin/v1/status/summary and POST /admin/v1/gc/trigger for
//     management
//   - GET /health, /ready, and /metrics for probes and Prometheus
//
// Usage:
//
//	kvdb-server [flags] [bind_address] [db_path]
//	kvdb-server --config /path/to/config.yaml
//
// Positional arguments override the configured bind address and database
// path. Configuration is loaded from the optional YAML file and KVDB_*
// environment variables.
package main
