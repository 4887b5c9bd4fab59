package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{Version: 1, StateSeed: 0xdeadbeefcafef00d, KeyHash: 0x1234567890abcdef, FingerprintLength: 42}
	encoded := h.Encode()
	assert.Len(t, encoded, Size)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode(make([]byte, Size-1))
	assert.Error(t, err)
}
