package bitcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBitsSentinel(t *testing.T) {
	bits := []int{1, 0, 1, 1, 0, 0, 1, 0}
	encoded := EncodeBits(bits, true)

	decoded, offset := DecodeBits(encoded, 0, true)
	assert.Equal(t, bits, decoded)
	assert.Equal(t, len(encoded), offset)
}

func TestDecodeBitsSentinelIgnoresInterleavedText(t *testing.T) {
	s := string(MetaStart) + "x" + string(ZeroWidthOne) + "y" + string(ZeroWidthZero) + string(MetaEnd)
	decoded, _ := DecodeBits(s, 0, true)
	assert.Equal(t, []int{1, 0}, decoded)
}

func TestDecodeBitsSentinelMissingStart(t *testing.T) {
	decoded, offset := DecodeBits("hello", 0, true)
	assert.Nil(t, decoded)
	assert.Equal(t, 0, offset)
}

func TestEncodeDecodeBitsNonSentinelStopsAtNonBit(t *testing.T) {
	encoded := EncodeBits([]int{1, 1, 0}, false) + "rest"
	decoded, offset := DecodeBits(encoded, 0, false)
	assert.Equal(t, []int{1, 1, 0}, decoded)
	assert.Equal(t, len(EncodeBits([]int{1, 1, 0}, false)), offset)
}

func TestStripZeroWidth(t *testing.T) {
	s := "hello" + string(ZeroWidthZero) + " " + string(ZeroWidthOne) + "world" + string(MetaStart) + string(MetaEnd)
	assert.Equal(t, "hello world", StripZeroWidth(s))
}

func TestStripZeroWidthIdempotent(t *testing.T) {
	s := "a" + string(ZeroWidthOne) + "b" + string(MetaStart) + "c" + string(MetaEnd) + "d"
	once := StripZeroWidth(s)
	twice := StripZeroWidth(once)
	assert.Equal(t, once, twice)
}

func TestBytesToBitsToBytesRoundTrip(t *testing.T) {
	in := []byte{0x00, 0xFF, 0xA5, 0x01}
	bits := BytesToBits(in)
	assert.Len(t, bits, len(in)*8)

	out, err := BitsToBytes(bits)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBitsToBytesRejectsNonMultipleOf8(t *testing.T) {
	_, err := BitsToBytes([]int{1, 0, 1})
	assert.Error(t, err)
}

func TestDecodeRuneAcceptsMalformedBytes(t *testing.T) {
	s := "a\xffb"
	r, size := decodeRune(s, 1)
	assert.Equal(t, rune(0xFFFD), r)
	assert.Equal(t, 1, size)
}
