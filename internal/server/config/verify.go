// Package config defines the server configuration structure.
package config

import "fmt"

// Verify validates the configuration and returns the first problem found.
func Verify(cfg *ServerConfig) error {
	if cfg.Server.HTTP.Addr == "" {
		return fmt.Errorf("server.http.addr is required")
	}
	if (cfg.Server.HTTP.TLSCertFile == "") != (cfg.Server.HTTP.TLSKeyFile == "") {
		return fmt.Errorf("server.http.tls_cert_file and tls_key_file must be set together")
	}
	if cfg.Server.HTTP.RateLimit < 0 {
		return fmt.Errorf("server.http.rate_limit must not be negative, got %d", cfg.Server.HTTP.RateLimit)
	}

	if cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if cfg.Storage.CacheCapacity <= 0 {
		return fmt.Errorf("storage.cache_capacity must be positive, got %d", cfg.Storage.CacheCapacity)
	}
	if cfg.Storage.CompactionThresholdBytes <= 0 {
		return fmt.Errorf("storage.compaction_threshold_bytes must be positive, got %d", cfg.Storage.CompactionThresholdBytes)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", cfg.Log.Format)
	}

	return nil
}
