package codec

import (
	"crypto/rand"
	"crypto/sha256"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DigestSize is the width of the SHA-256 digest trailer in bytes.
const DigestSize = sha256.Size

// EncodingError represents bytes that cannot be decoded into a record
type EncodingError struct {
	Message string
}

func (e *EncodingError) Error() string {
	return e.Message
}

// IntegrityError represents a record whose digest does not match its payload
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return e.Message
}

// Errors
var (
	ErrTruncated      = &EncodingError{"data shorter than digest trailer"}
	ErrDigestMismatch = &IntegrityError{"payload digest mismatch"}
)

// Record represents a single immutable log entry: an opaque payload plus the
// metadata needed to locate and verify it.
type Record struct {
	ID      ulid.ULID        // Time-sortable 128-bit identifier, assigned once at creation
	Payload []byte           // Opaque payload data, zero-length allowed
	Digest  [DigestSize]byte // SHA-256 digest of Payload
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a fresh ULID. IDs are monotonically non-decreasing within a
// process: same-millisecond calls increment the random component.
func NewID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

// NewRecord creates a new record with a fresh ID and a digest computed over
// the payload.
func NewRecord(payload []byte) *Record {
	return &Record{
		ID:      NewID(),
		Payload: payload,
		Digest:  sha256.Sum256(payload),
	}
}

// Validate recomputes the payload digest and compares it to the stored one.
// It has no side effects.
func (r *Record) Validate() error {
	if r.Digest != sha256.Sum256(r.Payload) {
		return ErrDigestMismatch
	}
	return nil
}

// Size returns the total size of the record when encoded
func (r *Record) Size() int {
	return len(r.Payload) + DigestSize
}

// Equal reports whether two records are the same entry. Equality is defined
// solely by ID: payload and digest are not consulted. Two records with equal
// ids cannot carry different payloads under correct id generation, so the
// comparison never needs to look at content.
func (r *Record) Equal(other *Record) bool {
	return r.ID.Compare(other.ID) == 0
}

// Compare orders two records by ID (time component first, then the random
// component), independent of payload content.
func (r *Record) Compare(other *Record) int {
	return r.ID.Compare(other.ID)
}

// RecordCodec handles serialization and deserialization of records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode builds a record around payload and serializes it into the storage
// layout. The ID is not part of the layout; it travels in the storage key.
// Format: [Payload(N)][Digest(32)]
func (c *RecordCodec) Encode(payload []byte) (*Record, []byte) {
	r := NewRecord(payload)

	buf := make([]byte, 0, r.Size())
	buf = append(buf, r.Payload...)
	buf = append(buf, r.Digest[:]...)

	return r, buf
}

// Decode deserializes the storage layout back into a Record under the given
// id. Payload length is recovered as len(data) - DigestSize; there is no
// length prefix. Decode does not verify the digest, call Validate for that.
func (c *RecordCodec) Decode(id ulid.ULID, data []byte) (*Record, error) {
	if len(data) < DigestSize {
		return nil, ErrTruncated
	}

	split := len(data) - DigestSize
	r := &Record{
		ID:      id,
		Payload: data[:split],
	}
	copy(r.Digest[:], data[split:])

	return r, nil
}
