package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSamples(n int, seed byte) []byte {
	out := make([]byte, n)
	v := seed
	for i := range out {
		v = v*31 + 7
		out[i] = v
	}
	return out
}

func TestEmbedDetectRoundTrip(t *testing.T) {
	w := New()
	height, width, channels := 64, 64, 3
	samples := makeSamples(height*width*channels, 13)

	embedded, err := w.Embed(samples, height, width, channels, "key", 4242)
	require.NoError(t, err)
	assert.Len(t, embedded.Watermarked, len(samples))
	assert.Equal(t, len(samples)-MetadataRegionSamples, len(embedded.Fingerprint))

	result, err := w.Detect(embedded.Watermarked)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, result.TotalBits, result.MatchingBits)
}

func TestEmbedNeverLengthensBuffer(t *testing.T) {
	w := New()
	samples := makeSamples(64*64, 1)
	embedded, err := w.Embed(samples, 64, 64, 1, "k", 1)
	require.NoError(t, err)
	assert.Equal(t, len(samples), len(embedded.Watermarked))
}

func TestFlipOneFingerprintLSBLosesExactlyOneBit(t *testing.T) {
	w := New()
	height, width, channels := 64, 64, 3
	samples := makeSamples(height*width*channels, 99)

	embedded, err := w.Embed(samples, height, width, channels, "key", 99)
	require.NoError(t, err)

	tampered := append([]byte(nil), embedded.Watermarked...)
	tampered[MetadataRegionSamples] ^= 1

	result, err := w.Detect(tampered)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Equal(t, result.TotalBits-1, result.MatchingBits)
}

func TestFlipOneMetadataLSBSurvivesMajorityVote(t *testing.T) {
	w := New()
	height, width, channels := 64, 64, 3
	samples := makeSamples(height*width*channels, 55)

	embedded, err := w.Embed(samples, height, width, channels, "key", 1234)
	require.NoError(t, err)

	tampered := append([]byte(nil), embedded.Watermarked...)
	tampered[0] ^= 1 // one flip out of a 4-vote group tolerates up to 1 flip.

	result, err := w.Detect(tampered)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Equal(t, 1.0, result.Score)
}

func TestEmbedRejectsPayloadTooSmall(t *testing.T) {
	w := New()
	samples := makeSamples(100, 1)
	_, err := w.Embed(samples, 10, 10, 1, "k", 1)
	assert.Error(t, err)
}

func TestDetectOnUndersizedPayloadIsInvalid(t *testing.T) {
	w := New()
	result, err := w.Detect(makeSamples(10, 1))
	require.NoError(t, err)
	assert.False(t, result.MetadataValid)
}

func TestDetectOnRandomBytesIsUnlikelyValid(t *testing.T) {
	w := New()
	result, err := w.Detect(makeSamples(4096, 3))
	require.NoError(t, err)
	// Arbitrary, non-watermarked data will almost never decode to
	// version 1 metadata by chance.
	assert.False(t, result.MetadataValid)
}
