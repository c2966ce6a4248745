// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for kvdb-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// RateLimit is the per-IP request rate limit (requests/second).
	// Zero disables limiting.
	RateLimit int `koanf:"rate_limit"`
}

// StorageSection configures the storage engine.
type StorageSection struct {
	// Path is the log file location.
	Path string `koanf:"path"`

	// CacheCapacity bounds the value cache.
	CacheCapacity int `koanf:"cache_capacity"`

	// CompactionThresholdBytes is the log size at which compaction triggers.
	CompactionThresholdBytes int64 `koanf:"compaction_threshold_bytes"`

	// SyncOnWrite fsyncs the log after each mutating append.
	SyncOnWrite bool `koanf:"sync_on_write"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
