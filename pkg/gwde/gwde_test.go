package gwde

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedDetectDispatchesOnTextType(t *testing.T) {
	ctx := context.Background()
	embedded, err := Embed(ctx, "one two three four", "k", 1)
	require.NoError(t, err)
	require.Equal(t, KindText, embedded.Kind)
	assert.NotEmpty(t, embedded.WatermarkedText)

	result, err := Detect(ctx, embedded.WatermarkedText)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Equal(t, 1.0, result.Score)
}

func TestEmbedDetectDispatchesOnImageType(t *testing.T) {
	ctx := context.Background()
	samples := make([]byte, 64*64)
	for i := range samples {
		samples[i] = byte(i)
	}
	payload := ImagePayload{Samples: samples, Height: 64, Width: 64, Channels: 1}

	embedded, err := Embed(ctx, payload, "k", 2)
	require.NoError(t, err)
	require.Equal(t, KindImage, embedded.Kind)
	assert.Len(t, embedded.WatermarkedImage, len(samples))

	result, err := Detect(ctx, ImagePayload{Samples: embedded.WatermarkedImage})
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
	assert.Equal(t, 1.0, result.Score)
}

func TestEmbedRejectsUnsupportedPayloadType(t *testing.T) {
	_, err := Embed(context.Background(), 42, "k", 1)
	assert.Error(t, err)
}

func TestDetectAcceptsRawByteSlice(t *testing.T) {
	ctx := context.Background()
	samples := make([]byte, 32*32)
	for i := range samples {
		samples[i] = byte(i * 3)
	}
	embedded, err := Embed(ctx, ImagePayload{Samples: samples, Height: 32, Width: 32, Channels: 1}, "k", 3)
	require.NoError(t, err)

	result, err := Detect(ctx, embedded.WatermarkedImage)
	require.NoError(t, err)
	assert.True(t, result.MetadataValid)
}
