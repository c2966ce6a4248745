// Package connection provides the HTTP client used by kvdb-cli to talk to
// kvdb-server. The public API uses only GET and POST with JSON bodies.
package connection
