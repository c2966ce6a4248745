// Package config defines the kvdb-server configuration structure, its
// defaults, and startup validation.
package config
