// Package memory provides the in-memory side of the kvdb storage engine:
// the key→offset index rebuilt from the log on open, and the bounded LRU
// value cache that short-circuits disk reads.
package memory
