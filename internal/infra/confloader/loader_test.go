package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		HTTP struct {
			Addr string `koanf:"addr"`
		} `koanf:"http"`
	} `koanf:"server"`
	Storage struct {
		Path          string `koanf:"path"`
		CacheCapacity int    `koanf:"cache_capacity"`
	} `koanf:"storage"`
}

func TestLoader_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  http:
    addr: "0.0.0.0:9000"
storage:
  path: "/tmp/from-file.log"
  cache_capacity: 64
`
	if err := os.WriteFile(path, []byte(yaml), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Env overrides file.
	t.Setenv("KVDB_STORAGE_PATH", "/tmp/from-env.log")

	var cfg testConfig
	loader := NewLoader(WithConfigFile(path))
	if err := loader.Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTP.Addr != "0.0.0.0:9000" {
		t.Fatalf("addr = %q, want file value", cfg.Server.HTTP.Addr)
	}
	if cfg.Storage.CacheCapacity != 64 {
		t.Fatalf("cache_capacity = %d, want 64", cfg.Storage.CacheCapacity)
	}
	if cfg.Storage.Path != "/tmp/from-env.log" {
		t.Fatalf("path = %q, want env override", cfg.Storage.Path)
	}
}

func TestLoader_MissingFileFails(t *testing.T) {
	var cfg testConfig
	loader := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))
	if err := loader.Load(&cfg); err == nil {
		t.Fatalf("Load accepted a missing config file")
	}
}

func TestLoader_EnvOnly(t *testing.T) {
	t.Setenv("KVDB_SERVER_HTTP_ADDR", "127.0.0.1:7777")

	var cfg testConfig
	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTP.Addr != "127.0.0.1:7777" {
		t.Fatalf("addr = %q, want env value", cfg.Server.HTTP.Addr)
	}
}

func TestLoader_CustomPrefix(t *testing.T) {
	t.Setenv("OTHER_SERVER_HTTP_ADDR", "127.0.0.1:8888")
	t.Setenv("KVDB_SERVER_HTTP_ADDR", "127.0.0.1:9999")

	var cfg testConfig
	loader := NewLoader(WithEnvPrefix("OTHER_"))
	if err := loader.Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTP.Addr != "127.0.0.1:8888" {
		t.Fatalf("addr = %q, want OTHER_ prefixed value", cfg.Server.HTTP.Addr)
	}
}

func TestLoader_DefaultsSurvive(t *testing.T) {
	var cfg testConfig
	cfg.Storage.CacheCapacity = 1024

	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.CacheCapacity != 1024 {
		t.Fatalf("preset default was clobbered: %d", cfg.Storage.CacheCapacity)
	}
}
