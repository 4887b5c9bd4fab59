// Package metadata encodes and decodes the 24-byte header both GW-DE
// watermark variants embed ahead of their fingerprint body: a version, the
// embedder's state seed, a hash of its key, and the fingerprint length.
package metadata

import (
	"encoding/binary"
	"fmt"
)

// Size is the fixed wire length of a Header in bytes.
const Size = 24

// Version is the only header version this package produces. The image
// detector rejects any other version; the text detector does not check it.
const Version uint32 = 1

// Header is the fixed-size, big-endian metadata block framing a watermark's
// fingerprint: version ‖ state_seed ‖ key_hash ‖ fingerprint_length.
type Header struct {
	Version           uint32
	StateSeed         uint64
	KeyHash           uint64
	FingerprintLength uint32
}

// Encode renders h as its 24-byte big-endian wire form.
func (h Header) Encode() []byte {
	buf := make([]byte, Size)
	binary.BigEndian.PutUint32(buf[0:4], h.Version)
	binary.BigEndian.PutUint64(buf[4:12], h.StateSeed)
	binary.BigEndian.PutUint64(buf[12:20], h.KeyHash)
	binary.BigEndian.PutUint32(buf[20:24], h.FingerprintLength)
	return buf
}

// Decode parses a 24-byte big-endian header. It does not check Version;
// callers that require Version == 1 check it themselves, since a detector
// reports an unrecognised version as invalid metadata rather than an error.
func Decode(b []byte) (Header, error) {
	if len(b) != Size {
		return Header{}, fmt.Errorf("metadata: expected %d bytes, got %d", Size, len(b))
	}
	return Header{
		Version:           binary.BigEndian.Uint32(b[0:4]),
		StateSeed:         binary.BigEndian.Uint64(b[4:12]),
		KeyHash:           binary.BigEndian.Uint64(b[12:20]),
		FingerprintLength: binary.BigEndian.Uint32(b[20:24]),
	}, nil
}
