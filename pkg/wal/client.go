package wal

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/quantike/gulog/pkg/codec"
	"github.com/quantike/gulog/pkg/store"
)

// DefaultPrefix is the key namespace used when none is configured.
const DefaultPrefix = "wal"

// keySuffix marks objects written by the log.
const keySuffix = ".wal"

// ClientConfig holds construction-time settings for a Client.
type ClientConfig struct {
	// Prefix is the key namespace all records are written under. Defaults
	// to DefaultPrefix when empty.
	Prefix string
}

// Client bridges logical append/read calls onto an object store. It holds
// no mutable state beyond its store handle and namespace, both fixed for
// its lifetime, so it is safe for concurrent use: appends and reads are
// independent request/response cycles that suspend only at the store
// boundary. Cancellation and timeouts are the caller's to impose via ctx;
// the client never retries.
type Client struct {
	objects store.ObjectStore
	codec   *codec.RecordCodec
	prefix  string
}

// NewClient creates a log client over the given object store.
func NewClient(objects store.ObjectStore, config ClientConfig) *Client {
	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Client{
		objects: objects,
		codec:   codec.NewRecordCodec(),
		prefix:  prefix,
	}
}

// Key returns the object key a record id maps to:
//
//	<prefix>/<ULID-string>.wal
//
// The mapping is deterministic and collision-free: the canonical 26-char
// ULID encoding is unique per id, so identical ids always derive identical
// keys and distinct ids never collide.
func (c *Client) Key(id ulid.ULID) string {
	return c.prefix + "/" + id.String() + keySuffix
}

// Append encodes payload into a fresh record, writes it to the store under
// the key derived from its id, and returns the id. One write, no state
// retained; a store failure propagates as-is and nothing is recorded
// locally.
func (c *Client) Append(ctx context.Context, payload []byte) (ulid.ULID, error) {
	record, data := c.codec.Encode(payload)

	if err := c.objects.Put(ctx, c.Key(record.ID), data); err != nil {
		return ulid.ULID{}, err
	}

	return record.ID, nil
}

// Read fetches the record stored under id, decodes it, and verifies its
// integrity. It returns exactly one of: a validated record, or one of
// codec.ErrTruncated, codec.ErrDigestMismatch, store.ErrNotFound, or a
// *store.TransportError. There is no partial result.
func (c *Client) Read(ctx context.Context, id ulid.ULID) (*codec.Record, error) {
	data, err := c.objects.Get(ctx, c.Key(id))
	if err != nil {
		return nil, err
	}

	record, err := c.codec.Decode(id, data)
	if err != nil {
		return nil, err
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}
