package store

import (
	"context"
	"errors"
	"fmt"
)

// ObjectStore is the minimal capability the log needs from a blob backend.
// Implementations must be safe for concurrent use; connection pooling and
// timeouts are the backend's concern, cancellation is the caller's via ctx.
type ObjectStore interface {
	// Put writes data under key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the full object stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
}

// ErrNotFound reports that no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// TransportError wraps a connectivity, auth, or service failure from a
// backend. It is distinct from ErrNotFound so callers can tell a missing
// object from an unreachable store.
type TransportError struct {
	Op  string // Operation that failed: "put", "get", ...
	Key string // Object key involved, empty for connection-level failures
	Err error  // Underlying backend error
}

func (e *TransportError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
