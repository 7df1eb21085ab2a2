// Package codec provides record serialization and deserialization for gulog.
//
// The codec package implements the binary layout for storing opaque payloads
// with integrity checking. This is the foundation of gulog's object-store
// backed write-ahead log.
//
// # Record Format
//
// Records are serialized in a binary format with the following structure:
//
//	[Payload(N)][Digest(32)]
//
// Fields:
//   - Payload: Variable-length opaque data, zero-length allowed
//   - Digest: SHA-256 checksum of the payload for integrity validation
//
// There is no length prefix: the payload length is recovered on decode as
// the object length minus the 32-byte digest trailer, so any object of at
// least 32 bytes is decodable. The record identifier is never embedded in
// the layout; it is carried by the storage key alone.
//
// # Identifiers
//
// Every record is assigned a ULID at creation: a 128-bit identifier that
// combines a millisecond timestamp with random bits. IDs sort
// chronologically, are monotonically non-decreasing within a process, and
// are globally unique with overwhelming probability. Record equality and
// ordering are defined solely by ID; payload content is never consulted.
//
// # Usage
//
// Basic encoding and decoding:
//
//	codec := codec.NewRecordCodec()
//
//	// Encode a payload
//	record, encoded := codec.Encode([]byte("payload"))
//
//	// Decode it back under the same id
//	decoded, err := codec.Decode(record.ID, encoded)
//	if err != nil {
//	    return err
//	}
//
//	// Validate integrity
//	if err := decoded.Validate(); err != nil {
//	    return err // Record is corrupted
//	}
//
// # Error Handling
//
// Decode fails with ErrTruncated (an *EncodingError) when the input is
// shorter than the digest trailer. Validate fails with ErrDigestMismatch
// (an *IntegrityError) when the payload does not hash to the stored digest.
// Decode itself never verifies the digest, so a corrupted-but-complete
// object decodes fine and is rejected only by Validate.
//
// # Thread Safety
//
// RecordCodec instances are safe for concurrent use. Records are immutable
// after creation and safe to share between goroutines. ID generation is
// serialized internally.
package codec
