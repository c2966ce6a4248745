// Package storage provides the log-structured storage engine for kvdb.
//
// The engine owns the append-only record log, the in-memory key→offset
// index, and the LRU value cache, and drives compaction when the log grows
// past the configured threshold.
package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NoEdgeAtLife/kvdb/internal/storage/log"
	"github.com/NoEdgeAtLife/kvdb/internal/storage/memory"
	"github.com/NoEdgeAtLife/kvdb/internal/telemetry/metric"
)

// Default configuration values.
const (
	DefaultCacheCapacity    = memory.DefaultCacheCapacity
	DefaultCompactThreshold = 4 << 20 // 4MiB

	// compactSuffix names the sibling temp file compaction writes into.
	compactSuffix = ".compact"
)

// ErrClosed reports an operation attempted after Close.
var ErrClosed = errors.New("storage: engine is closed")

// Config configures the storage engine.
type Config struct {
	// Path is the log file location.
	Path string

	// CacheCapacity bounds the value cache. Default: 1024 entries.
	CacheCapacity int

	// CompactThreshold is the log size in bytes at which compaction is
	// triggered after a mutating operation. Default: 4MiB.
	CompactThreshold int64

	// SyncOnWrite fsyncs the log after each mutating append before the
	// operation reports success. Default: true.
	SyncOnWrite bool

	// Logger is the structured logger.
	Logger *slog.Logger

	// Metrics is the optional metrics registry.
	Metrics *metric.Registry
}

// DefaultConfig returns the default engine configuration for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:             path,
		CacheCapacity:    DefaultCacheCapacity,
		CompactThreshold: DefaultCompactThreshold,
		SyncOnWrite:      true,
		Logger:           slog.Default(),
	}
}

// Stats is a point-in-time snapshot of engine state.
type Stats struct {
	Keys        int    `json:"keys"`
	LogBytes    int64  `json:"log_bytes"`
	CacheLen    int    `json:"cache_len"`
	CacheHits   uint64 `json:"cache_hits"`
	CacheMisses uint64 `json:"cache_misses"`
	Compactions uint64 `json:"compactions"`
}

// Engine is the storage engine. It is safe for concurrent use: a single
// writer lock serializes mutations and compaction, readers share the index
// and log and are blocked only while a mutation publishes its index and
// cache update or compaction publishes the new log generation.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	// writeMu serializes Set, Remove, and compaction. The order of
	// successful mutation returns matches the order of appended records.
	writeMu sync.Mutex

	// stateMu guards the (log, index) pair against the compaction swap.
	// Readers hold it shared for the whole cache→index→log lookup.
	stateMu sync.RWMutex

	log   *log.File
	index *memory.Index
	cache *memory.Cache

	compacting  atomic.Bool
	compactions atomic.Uint64
	closed      atomic.Bool
}

// Open loads or initializes the log at cfg.Path, rebuilds the index by
// replaying every record from offset 0, and starts with an empty cache.
// Unparseable trailing bytes are truncated and logged.
func Open(cfg Config) (*Engine, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage: path is required")
	}
	if cfg.CacheCapacity == 0 {
		cfg.CacheCapacity = DefaultCacheCapacity
	}
	if cfg.CompactThreshold == 0 {
		cfg.CompactThreshold = DefaultCompactThreshold
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cache, err := memory.NewCache(cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}

	lf, err := log.Open(cfg.Path)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		logger: cfg.Logger,
		log:    lf,
		index:  memory.NewIndex(),
		cache:  cache,
	}

	start := time.Now()
	if err := e.replay(); err != nil {
		lf.Close()
		return nil, err
	}

	e.logger.Info("engine opened",
		"path", cfg.Path,
		"keys", e.index.Len(),
		"log_bytes", lf.Size(),
		"elapsed", time.Since(start))

	e.observeSizes()
	return e, nil
}

// replay scans the log from offset 0 and rebuilds the index. The first
// decode failure is treated as a torn tail: the log is truncated to the last
// good offset and replay stops.
func (e *Engine) replay() error {
	reader := bufio.NewReader(io.NewSectionReader(e.log, 0, e.log.Size()))

	var off int64
	for {
		rec, consumed, err := log.Decode(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, log.ErrMalformed) {
				e.logger.Warn("truncating torn log tail",
					"offset", off,
					"dropped_bytes", e.log.Size()-off)
				return e.log.Truncate(off)
			}
			return fmt.Errorf("storage: replay at offset %d: %w", off, err)
		}

		if rec.Tombstone {
			e.index.Remove(rec.Key)
		} else {
			e.index.Put(rec.Key, off)
		}
		off += consumed
	}
}

// Set binds value to key. It returns the value bound just before the
// operation, when one existed. With SyncOnWrite the record is synced to disk
// before Set returns.
func (e *Engine) Set(ctx context.Context, key int64, value []byte) ([]byte, bool, error) {
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	prev, hadPrev := e.previousValue(key)

	preSize := e.log.Size()
	off, err := e.log.Append(log.EncodeSet(key, value))
	if err != nil {
		e.dropTornTail(preSize)
		e.countOp("set", err)
		return nil, false, err
	}
	if e.cfg.SyncOnWrite {
		if err := e.log.Sync(); err != nil {
			e.countOp("set", err)
			return nil, false, err
		}
	}

	e.stateMu.Lock()
	e.index.Put(key, off)
	e.cache.Put(key, value)
	e.stateMu.Unlock()

	e.countOp("set", nil)
	e.observeSizes()
	e.maybeCompact()
	return prev, hadPrev, nil
}

// Get returns the value bound to key, consulting the cache first and
// falling back to the indexed log record.
func (e *Engine) Get(ctx context.Context, key int64) ([]byte, bool, error) {
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	if v, ok := e.cache.Get(key); ok {
		e.countCache(true)
		e.countOp("get", nil)
		return v, true, nil
	}
	e.countCache(false)

	off, ok := e.index.Get(key)
	if !ok {
		e.countOp("get", nil)
		return nil, false, nil
	}

	v, err := log.ReadValueAt(e.log, off)
	if err != nil {
		e.countOp("get", err)
		return nil, false, err
	}

	e.cache.Put(key, v)
	e.countOp("get", nil)
	return v, true, nil
}

// Remove unbinds key. If key is not bound, Remove reports absence without
// writing to the log. Otherwise it returns the previously bound value.
func (e *Engine) Remove(ctx context.Context, key int64) ([]byte, bool, error) {
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	if _, ok := e.index.Get(key); !ok {
		e.countOp("remove", nil)
		return nil, false, nil
	}

	prev, _ := e.previousValue(key)

	preSize := e.log.Size()
	if _, err := e.log.Append(log.EncodeRemove(key)); err != nil {
		e.dropTornTail(preSize)
		e.countOp("remove", err)
		return nil, false, err
	}
	if e.cfg.SyncOnWrite {
		if err := e.log.Sync(); err != nil {
			e.countOp("remove", err)
			return nil, false, err
		}
	}

	e.stateMu.Lock()
	e.index.Remove(key)
	e.cache.Invalidate(key)
	e.stateMu.Unlock()

	e.countOp("remove", nil)
	e.observeSizes()
	e.maybeCompact()
	return prev, true, nil
}

// previousValue resolves the value bound to key before a mutation, via the
// cache and then the log. Resolution is best-effort: a read failure is
// logged and reported as absent, matching the RPC surface's old-value
// contract. Callers hold writeMu.
func (e *Engine) previousValue(key int64) ([]byte, bool) {
	if v, ok := e.cache.Peek(key); ok {
		return v, true
	}

	off, ok := e.index.Get(key)
	if !ok {
		return nil, false
	}

	v, err := log.ReadValueAt(e.log, off)
	if err != nil {
		e.logger.Warn("previous value resolution failed",
			"key", key,
			"offset", off,
			"error", err)
		return nil, false
	}
	return v, true
}

// dropTornTail cuts the log back to preSize after a failed append, so
// records appended later are not stranded behind unparseable bytes. Failure
// here is tolerable: the next open truncates the same tail during replay.
func (e *Engine) dropTornTail(preSize int64) {
	if e.log.Size() == preSize {
		return
	}
	if err := e.log.Truncate(preSize); err != nil {
		e.logger.Warn("failed to drop torn tail after append error",
			"offset", preSize,
			"error", err)
	}
}

// maybeCompact runs compaction when the log has grown past the threshold.
// Callers hold writeMu, so at most one compaction is ever in progress and
// writes queue behind it; triggers that land mid-compaction are ignored.
func (e *Engine) maybeCompact() {
	if e.log.Size() < e.cfg.CompactThreshold {
		return
	}
	if !e.compacting.CompareAndSwap(false, true) {
		return
	}
	defer e.compacting.Store(false)

	if err := e.compactLocked(); err != nil {
		e.logger.Error("compaction failed", "error", err)
	}
}

// Compact rewrites the log to contain only live records. Manual trigger for
// the admin surface; the same procedure runs automatically on threshold.
func (e *Engine) Compact(ctx context.Context) error {
	if e.closed.Load() {
		return ErrClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	if e.closed.Load() {
		return ErrClosed
	}

	if !e.compacting.CompareAndSwap(false, true) {
		return nil
	}
	defer e.compacting.Store(false)

	return e.compactLocked()
}

// compactLocked rewrites every live-indexed record into a sibling temp file,
// syncs it, atomically replaces the live log, and publishes a fresh index.
// Readers keep serving from the old log until the publish step. Callers
// hold writeMu.
func (e *Engine) compactLocked() error {
	start := time.Now()
	entries := e.index.Entries()
	oldSize := e.log.Size()

	tempPath := e.cfg.Path + compactSuffix
	temp, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, log.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("storage: create compact file: %w", err)
	}

	abort := func(err error) error {
		temp.Close()
		os.Remove(tempPath)
		return err
	}

	newIndex := memory.NewIndex()
	w := bufio.NewWriter(temp)

	var off int64
	for _, entry := range entries {
		v, err := log.ReadValueAt(e.log, entry.Offset)
		if err != nil {
			return abort(fmt.Errorf("storage: compact read key %d: %w", entry.Key, err))
		}
		frame := log.EncodeSet(entry.Key, v)
		if _, err := w.Write(frame); err != nil {
			return abort(fmt.Errorf("storage: compact write key %d: %w", entry.Key, err))
		}
		newIndex.Put(entry.Key, off)
		off += int64(len(frame))
	}

	if err := w.Flush(); err != nil {
		return abort(fmt.Errorf("storage: compact flush: %w", err))
	}
	if err := temp.Sync(); err != nil {
		return abort(fmt.Errorf("storage: compact sync: %w", err))
	}
	if err := temp.Close(); err != nil {
		return abort(fmt.Errorf("storage: compact close: %w", err))
	}

	// Publish the new generation. Readers are blocked only for this window.
	e.stateMu.Lock()
	if err := e.log.Replace(tempPath); err != nil {
		e.stateMu.Unlock()
		os.Remove(tempPath)
		return err
	}
	e.index = newIndex
	e.cache.Clear()
	e.stateMu.Unlock()

	e.compactions.Add(1)
	if e.cfg.Metrics != nil {
		e.cfg.Metrics.Compactions.Inc()
	}
	e.observeSizes()

	e.logger.Info("log compacted",
		"keys", newIndex.Len(),
		"old_bytes", oldSize,
		"new_bytes", e.log.Size(),
		"elapsed", time.Since(start))
	return nil
}

// Stats returns a snapshot of engine counters and sizes.
func (e *Engine) Stats() Stats {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	return Stats{
		Keys:        e.index.Len(),
		LogBytes:    e.log.Size(),
		CacheLen:    e.cache.Len(),
		CacheHits:   e.cache.Hits(),
		CacheMisses: e.cache.Misses(),
		Compactions: e.compactions.Load(),
	}
}

// Close flushes pending writes and closes the log. Operations after Close
// return ErrClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.log.Sync(); err != nil {
		e.log.Close()
		return err
	}
	if err := e.log.Close(); err != nil {
		return fmt.Errorf("storage: close log: %w", err)
	}

	e.logger.Info("engine closed", "path", e.cfg.Path)
	return nil
}

func (e *Engine) countOp(op string, err error) {
	if e.cfg.Metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	e.cfg.Metrics.OpsTotal.WithLabelValues(op, result).Inc()
}

func (e *Engine) countCache(hit bool) {
	if e.cfg.Metrics == nil {
		return
	}
	if hit {
		e.cfg.Metrics.CacheHits.Inc()
	} else {
		e.cfg.Metrics.CacheMisses.Inc()
	}
}

func (e *Engine) observeSizes() {
	if e.cfg.Metrics == nil {
		return
	}
	e.cfg.Metrics.LogBytes.Set(float64(e.log.Size()))
	e.cfg.Metrics.KeysLive.Set(float64(e.index.Len()))
}
