package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultmesh/secureagg/pkg/gwde/bitcodec"
)

func TestEmbedDetectRoundTrip(t *testing.T) {
	w := New()
	payload := "the quick brown fox jumps over the lazy dog"

	embedded, err := w.Embed(payload, "secret-key", 12345)
	require.NoError(t, err)
	assert.NotEqual(t, payload, embedded.Watermarked)

	result, err := w.Detect(embedded.Watermarked)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 9, result.TotalBits) // 9 whitespace-delimited tokens
}

func TestDetectAfterStripZeroWidthIsInvalid(t *testing.T) {
	w := New()
	embedded, err := w.Embed("one two three four five", "k", 7)
	require.NoError(t, err)

	stripped := bitcodec.StripZeroWidth(embedded.Watermarked)
	result, err := w.Detect(stripped)
	require.NoError(t, err)
	assert.False(t, result.MetadataValid)
	assert.Equal(t, 1.0, result.FalsePositiveRate)
}

func TestDetectOnPlainTextIsInvalid(t *testing.T) {
	w := New()
	result, err := w.Detect("just some ordinary sentence with no watermark")
	require.NoError(t, err)
	assert.False(t, result.MetadataValid)
}

func TestEmbedEmptyPayloadHasNoFingerprint(t *testing.T) {
	w := New()
	embedded, err := w.Embed("", "k", 1)
	require.NoError(t, err)
	assert.Empty(t, embedded.Fingerprint)
	assert.Equal(t, uint32(0), embedded.Metadata.FingerprintLength)
}

func TestDetectRecoversKeyHashFromMetadata(t *testing.T) {
	w := New()
	embedded, err := w.Embed("alpha beta gamma delta", "K1", 999)
	require.NoError(t, err)

	result, err := w.Detect(embedded.Watermarked)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestTamperingStateSeedBitCorruptsScore(t *testing.T) {
	w := New()
	embedded, err := w.Embed("alpha beta gamma delta epsilon", "K1", 999)
	require.NoError(t, err)

	// Bit 32 is the first bit of the state_seed field (version occupies
	// bits 0-31); flipping it corrupts the stream seed Detect recomputes
	// with, which is exactly the "text has no repetition" case in the
	// design notes.
	tampered := flipHeaderBit(t, embedded.Watermarked, 32)
	result, err := w.Detect(tampered)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Less(t, result.Score, 1.0)
}

// flipHeaderBit decodes the sentinel-framed header at the start of s,
// flips the bit at the given index within it, and re-encodes it in place.
func flipHeaderBit(t *testing.T, s string, bitIndex int) string {
	t.Helper()
	bits, offset := bitcodec.DecodeBits(s, 0, true)
	require.Len(t, bits, 192)
	bits[bitIndex] ^= 1
	return bitcodec.EncodeBits(bits, true) + s[offset:]
}

func TestTokenizeAndInjectFingerprintRoundTrip(t *testing.T) {
	cleaned := "alpha beta\tgamma\ndelta"
	tokens := tokenize(cleaned)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, tokens)

	fp := []int{1, 0, 1, 0}
	injected := injectFingerprint(cleaned, fp)
	assert.Equal(t, cleaned, bitcodec.StripZeroWidth(injected))

	extracted := extractFingerprint(injected)
	assert.Equal(t, fp, extracted)
}
