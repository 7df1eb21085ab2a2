// Package wal implements gulog's append-only log client over an object
// store.
//
// The Client maps logical append/read operations onto keyed put/get calls:
// each record becomes one object whose key is derived deterministically
// from the record's ULID, and whose body is the codec layout (payload plus
// digest trailer). The model is strictly append-and-retrieve; there is no
// update, delete, compaction, or replay.
//
// Appends issued concurrently need no coordination: ordering between them
// is whatever the time-then-random id order implies, monotonic per process
// but not synchronized across writers.
package wal
