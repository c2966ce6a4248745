// Package httpserver provides the HTTP/HTTPS server for kvdb.
//
// It wires the store's request/response operations into JSON endpoints:
//
//   - POST /v1/set, /v1/get, /v1/remove — store operations
//   - GET /admin/v1/status/summary, POST /admin/v1/gc/trigger — management
//   - GET /health, /ready — probes
//   - GET /metrics — Prometheus exposition
//
// The router composes a middleware chain (panic recovery, request IDs,
// per-IP rate limiting, latency observation, request logging) around the
// handler package.
package httpserver
