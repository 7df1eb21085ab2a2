package codec

import (
	"bytes"
	"crypto/sha256"
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name    string
		payload []byte
	}{
		{
			name:    "empty payload",
			payload: []byte(""),
		},
		{
			name:    "single byte",
			payload: []byte{0x42},
		},
		{
			name:    "simple string payload",
			payload: []byte("hello, object store"),
		},
		{
			name:    "binary data",
			payload: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC},
		},
		{
			name:    "unicode data",
			payload: []byte("🎯 unicode payload with émojis"),
		},
		{
			name:    "1KiB payload",
			payload: bytes.Repeat([]byte("a"), 1024),
		},
		{
			name:    "1MiB payload",
			payload: bytes.Repeat([]byte("B"), 1<<20),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Encode the payload
			record, encoded := codec.Encode(tc.payload)

			// Layout is payload followed by the digest trailer
			if len(encoded) != len(tc.payload)+DigestSize {
				t.Fatalf("Encoded length mismatch: got %d, want %d", len(encoded), len(tc.payload)+DigestSize)
			}

			// Decode the binary data under the same id
			decoded, err := codec.Decode(record.ID, encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			// Validate the record
			if err := decoded.Validate(); err != nil {
				t.Fatalf("Record validation failed: %v", err)
			}

			// Check that decoded data matches original
			if !bytes.Equal(decoded.Payload, tc.payload) {
				t.Errorf("Payload mismatch: got %d bytes, want %d bytes", len(decoded.Payload), len(tc.payload))
			}

			if decoded.Digest != record.Digest {
				t.Errorf("Digest mismatch after round-trip")
			}

			if !decoded.Equal(record) {
				t.Errorf("Decoded record not equal to original")
			}

			// Check id timestamp is reasonable (within last minute)
			now := ulid.Timestamp(time.Now())
			if record.ID.Time() > now || record.ID.Time() < now-uint64(time.Minute/time.Millisecond) {
				t.Errorf("ID timestamp seems unreasonable: %d", record.ID.Time())
			}
		})
	}
}

func TestRecordCodec_Truncated(t *testing.T) {
	codec := NewRecordCodec()
	id := NewID()

	// Every length below the digest width must fail with ErrTruncated
	for length := 0; length < DigestSize; length++ {
		data := bytes.Repeat([]byte{0xAB}, length)
		_, err := codec.Decode(id, data)
		if err != ErrTruncated {
			t.Errorf("Decode of %d bytes: got %v, want ErrTruncated", length, err)
		}
	}
}

func TestRecordCodec_DigestOnlyObject(t *testing.T) {
	codec := NewRecordCodec()

	// A buffer of exactly DigestSize bytes is an empty payload, not malformed
	record, encoded := codec.Encode(nil)
	if len(encoded) != DigestSize {
		t.Fatalf("Empty payload should encode to %d bytes, got %d", DigestSize, len(encoded))
	}

	decoded, err := codec.Decode(record.ID, encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded.Payload) != 0 {
		t.Errorf("Expected empty payload, got %d bytes", len(decoded.Payload))
	}
	if err := decoded.Validate(); err != nil {
		t.Errorf("Empty record failed validation: %v", err)
	}
}

func TestRecord_Validation(t *testing.T) {
	codec := NewRecordCodec()

	t.Run("valid digest passes validation", func(t *testing.T) {
		record, encoded := codec.Encode([]byte("test payload"))

		decoded, err := codec.Decode(record.ID, encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		if err := decoded.Validate(); err != nil {
			t.Errorf("Valid record failed validation: %v", err)
		}
	})

	t.Run("any corrupted byte fails validation", func(t *testing.T) {
		record, encoded := codec.Encode([]byte("test payload"))

		// Flip each byte of the layout in turn; payload corruption and
		// digest corruption must both be caught.
		for i := range encoded {
			corrupted := make([]byte, len(encoded))
			copy(corrupted, encoded)
			corrupted[i] ^= 0xFF

			decoded, err := codec.Decode(record.ID, corrupted)
			if err != nil {
				t.Fatalf("Decode failed at byte %d: %v", i, err)
			}

			if err := decoded.Validate(); err != ErrDigestMismatch {
				t.Errorf("Byte %d corrupted: got %v, want ErrDigestMismatch", i, err)
			}
		}
	})
}

func TestNewID_UniqueAndOrdered(t *testing.T) {
	const count = 1000

	ids := make([]ulid.ULID, count)
	seen := make(map[ulid.ULID]bool, count)
	for i := 0; i < count; i++ {
		ids[i] = NewID()
		if seen[ids[i]] {
			t.Fatalf("Duplicate id generated: %s", ids[i])
		}
		seen[ids[i]] = true
	}

	// Per-process generation is monotonically non-decreasing
	for i := 1; i < count; i++ {
		if ids[i].Compare(ids[i-1]) <= 0 {
			t.Fatalf("IDs not strictly increasing at %d: %s then %s", i, ids[i-1], ids[i])
		}
	}
}

func TestRecord_EqualityByIDOnly(t *testing.T) {
	first := NewRecord([]byte("first payload"))
	second := NewRecord([]byte("second payload"))

	if first.Equal(second) {
		t.Error("Records with different ids compared equal")
	}

	// Same id, different content: still equal. Impossible under correct id
	// generation, but the contract never consults payload or digest.
	twin := &Record{
		ID:      first.ID,
		Payload: []byte("entirely different content"),
		Digest:  sha256.Sum256([]byte("entirely different content")),
	}
	if !first.Equal(twin) {
		t.Error("Records with equal ids compared unequal")
	}
}

func TestRecord_OrderingByID(t *testing.T) {
	// Payload sizes deliberately shuffled so content order disagrees with
	// creation order.
	payloads := [][]byte{
		bytes.Repeat([]byte("z"), 100),
		[]byte("a"),
		bytes.Repeat([]byte("m"), 10),
		[]byte(""),
	}

	records := make([]*Record, len(payloads))
	for i, p := range payloads {
		records[i] = NewRecord(p)
	}

	shuffled := []*Record{records[2], records[0], records[3], records[1]}
	sort.Slice(shuffled, func(i, j int) bool {
		return shuffled[i].Compare(shuffled[j]) < 0
	})

	// Sorted order must match creation order, whatever the payloads are
	for i := range records {
		if !shuffled[i].Equal(records[i]) {
			t.Fatalf("Ordering mismatch at %d: got %s, want %s", i, shuffled[i].ID, records[i].ID)
		}
	}
}

func TestNewRecord(t *testing.T) {
	payload := []byte("test payload")

	record := NewRecord(payload)

	if !bytes.Equal(record.Payload, payload) {
		t.Errorf("Payload mismatch: got %v, want %v", record.Payload, payload)
	}

	if record.Digest != sha256.Sum256(payload) {
		t.Error("Digest was not computed over the payload")
	}

	if record.ID == (ulid.ULID{}) {
		t.Error("Expected a non-zero id")
	}

	if record.Size() != len(payload)+DigestSize {
		t.Errorf("Size mismatch: got %d, want %d", record.Size(), len(payload)+DigestSize)
	}
}

func TestNewRecord_DistinctIDs(t *testing.T) {
	first := NewRecord([]byte("same payload"))
	second := NewRecord([]byte("same payload"))

	// Identical payloads still get distinct ids and identical digests
	if first.ID.Compare(second.ID) == 0 {
		t.Error("Two records received the same id")
	}
	if first.Digest != second.Digest {
		t.Error("Identical payloads produced different digests")
	}
}
