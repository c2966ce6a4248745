// Package handler provides HTTP request handlers for kvdb.
package handler

// SetRequest is the request body for POST /v1/set.
type SetRequest struct {
	Key   int64  `json:"key"`
	Value string `json:"value"`
}

// SetResponse is the response body for POST /v1/set. OldValue carries the
// value bound just before the write, empty when the key was absent or
// resolution failed.
type SetResponse struct {
	Success  bool   `json:"success"`
	OldValue string `json:"old_value"`
	Error    string `json:"error,omitempty"`
}

// GetRequest is the request body for POST /v1/get.
type GetRequest struct {
	Key int64 `json:"key"`
}

// GetResponse is the response body for POST /v1/get. Value is empty when
// Exists is false.
type GetResponse struct {
	Exists bool   `json:"exists"`
	Value  string `json:"value"`
	Error  string `json:"error,omitempty"`
}

// RemoveRequest is the request body for POST /v1/remove.
type RemoveRequest struct {
	Key int64 `json:"key"`
}

// RemoveResponse is the response body for POST /v1/remove. Success is false
// when the key was not bound.
type RemoveResponse struct {
	Success  bool   `json:"success"`
	OldValue string `json:"old_value"`
	Error    string `json:"error,omitempty"`
}

// StatusResponse is the response body for GET /admin/v1/status/summary.
type StatusResponse struct {
	Keys          int    `json:"keys"`
	LogBytes      int64  `json:"log_bytes"`
	CacheLen      int    `json:"cache_len"`
	CacheHits     uint64 `json:"cache_hits"`
	CacheMisses   uint64 `json:"cache_misses"`
	Compactions   uint64 `json:"compactions"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Version       string `json:"version"`
}

// GCTriggerResponse is the response body for POST /admin/v1/gc/trigger.
type GCTriggerResponse struct {
	Success  bool   `json:"success"`
	LogBytes int64  `json:"log_bytes"`
	Error    string `json:"error,omitempty"`
}
