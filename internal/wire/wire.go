// Package wire encodes and decodes the generation counter payload: a single
// 4-byte big-endian signed integer stored at the configured counter key.
package wire

import (
	"encoding/binary"
	"errors"
)

const payloadLen = 4

var ErrMalformed = errors.New("nscache: malformed generation payload")

// Encode renders gen as the 4-byte big-endian payload the invalidation
// process writes. Exposed mainly for tests and tooling; the facade itself
// never writes the counter.
func Encode(gen int32) []byte {
	b := make([]byte, payloadLen)
	binary.BigEndian.PutUint32(b, uint32(gen))
	return b
}

// Decode parses a counter payload. Anything but exactly 4 bytes is
// ErrMalformed.
func Decode(b []byte) (int32, error) {
	if len(b) != payloadLen {
		return 0, ErrMalformed
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}
