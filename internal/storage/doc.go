// Package storage provides the log-structured storage engine for kvdb.
//
// The engine combines three parts:
//
//   - an append-only record log (internal/storage/log) holding every
//     mutation as a set or remove record
//   - an in-memory index (internal/storage/memory) mapping each live key
//     to the offset of its latest set record, rebuilt by replaying the log
//     on open
//   - a bounded LRU value cache (internal/storage/memory) that
//     short-circuits disk reads
//
// Writes append a record, fsync (by default), and then update the index and
// cache; reads consult cache, then index, then the log. When the log grows
// past the configured threshold, compaction rewrites the live records into a
// sibling temp file, atomically swaps it into place, and publishes a fresh
// index while the cache is cleared.
//
// Concurrency: a writer-exclusive lock serializes mutations and compaction,
// so the order of successful returns matches the record order in the log.
// Readers run concurrently with each other and with a writer's append, and
// are blocked only during the short windows where a mutation publishes its
// index and cache update or compaction publishes the new log generation.
// Operations on the same key are linearizable.
package storage
