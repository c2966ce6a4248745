// Package config defines the server configuration structure.
package config

// Default configuration values.
const (
	DefaultHTTPAddr  = "127.0.0.1:5080"
	DefaultRateLimit = 1000

	DefaultDBPath           = "kvdb.log"
	DefaultCacheCapacity    = 1024
	DefaultCompactThreshold = 4 << 20 // 4MiB

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:      DefaultHTTPAddr,
				RateLimit: DefaultRateLimit,
			},
		},
		Storage: StorageSection{
			Path:                     DefaultDBPath,
			CacheCapacity:            DefaultCacheCapacity,
			CompactionThresholdBytes: DefaultCompactThreshold,
			SyncOnWrite:              true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
