// Package store defines the object-store capability gulog writes records
// through, plus the backends that implement it.
//
// The ObjectStore interface is deliberately minimal: Put and Get by key,
// scoped to a single bucket fixed at construction. Anything satisfying it
// can back the log without touching codec or client logic.
//
// Three backends are provided:
//   - MinioStore: any S3-compatible service (MinIO, AWS S3) via minio-go
//   - PebbleStore: an embedded local backend for development
//   - MemStore: an in-memory map, used by tests
//
// Failures are reported either as ErrNotFound (no object under the key) or
// as a *TransportError wrapping the backend error. Backends never retry;
// retry policy belongs to the caller.
package store
