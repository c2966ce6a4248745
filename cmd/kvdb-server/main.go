// Package main provides the entry point for kvdb-server.
//
// kvdb-server exposes a single log-structured key-value store over an HTTP
// JSON request/response API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/NoEdgeAtLife/kvdb/internal/infra/buildinfo"
	"github.com/NoEdgeAtLife/kvdb/internal/infra/confloader"
	"github.com/NoEdgeAtLife/kvdb/internal/infra/shutdown"
	"github.com/NoEdgeAtLife/kvdb/internal/server/config"
	"github.com/NoEdgeAtLife/kvdb/internal/server/httpserver"
	"github.com/NoEdgeAtLife/kvdb/internal/storage"
	"github.com/NoEdgeAtLife/kvdb/internal/telemetry/logger"
	"github.com/NoEdgeAtLife/kvdb/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: kvdb-server [flags] [bind_address] [db_path]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("kvdb-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile, flag.Args())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	log.Info("starting kvdb-server",
		"version", buildinfo.Version,
		"addr", cfg.Server.HTTP.Addr,
		"db_path", cfg.Storage.Path)

	metrics := metric.NewRegistry()

	engine, err := initStorage(cfg, log, metrics)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Engine:    engine,
		Logger:    log,
		Metrics:   metrics,
		RateLimit: cfg.Server.HTTP.RateLimit,
	})

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down storage engine")
		return engine.Close()
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Re-apply the log level when the config file changes.
	if *configFile != "" {
		watcher, err := confloader.NewWatcher(*configFile, log, func() {
			reloaded, err := loadConfig(*configFile, flag.Args())
			if err != nil {
				log.Warn("config reload failed", "error", err)
				return
			}
			logger.SetLevel(reloaded.Log.Level)
			log.Info("log level applied", "level", reloaded.Log.Level)
		})
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Close()
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment, then applies the
// positional [bind_address] [db_path] overrides.
func loadConfig(configFile string, args []string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Server.HTTP.Addr = args[0]
	}
	if len(args) > 1 {
		cfg.Storage.Path = args[1]
	}
	if len(args) > 2 {
		return nil, fmt.Errorf("unexpected arguments after bind_address and db_path: %v", args[2:])
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initStorage opens the storage engine.
func initStorage(cfg *config.ServerConfig, log *slog.Logger, metrics *metric.Registry) (*storage.Engine, error) {
	storageCfg := storage.DefaultConfig(cfg.Storage.Path)
	storageCfg.CacheCapacity = cfg.Storage.CacheCapacity
	storageCfg.CompactThreshold = cfg.Storage.CompactionThresholdBytes
	storageCfg.SyncOnWrite = cfg.Storage.SyncOnWrite
	storageCfg.Logger = log
	storageCfg.Metrics = metrics

	return storage.Open(storageCfg)
}
