package store

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is an embedded ObjectStore for running the log without a
// remote object store, e.g. local development.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore opens (or creates) an embedded store at path.
func OpenPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, &TransportError{Op: "open", Err: err}
	}
	return &PebbleStore{db: db}, nil
}

// Put writes data under key. Writes are synced before returning, matching
// the durability a remote object store acknowledges.
func (s *PebbleStore) Put(_ context.Context, key string, data []byte) error {
	if err := s.db.Set([]byte(key), data, pebble.Sync); err != nil {
		return &TransportError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// Get returns the object stored under key.
func (s *PebbleStore) Get(_ context.Context, key string) ([]byte, error) {
	data, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &TransportError{Op: "get", Key: key, Err: err}
	}
	defer closer.Close()

	// data is only valid until closer.Close()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Close releases the underlying database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}
