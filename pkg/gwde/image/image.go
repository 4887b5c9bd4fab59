// Package image implements the image variant of the GW-DE watermark:
// metadata and fingerprint bits carried in the least-significant bit of
// 8-bit samples, with 4x repetition and majority voting over the metadata
// region for resilience against a handful of bit flips.
package image

import (
	"fmt"

	"github.com/vaultmesh/secureagg/pkg/gwde/bitcodec"
	"github.com/vaultmesh/secureagg/pkg/gwde/hashing"
	"github.com/vaultmesh/secureagg/pkg/gwde/metadata"
	"github.com/vaultmesh/secureagg/pkg/gwde/scoring"
)

// MetadataRegionSamples is the fixed number of LSB-carrying samples the
// 24-byte metadata header occupies once expanded to 192 bits with 4x
// repetition: 24 * 8 * 4.
const MetadataRegionSamples = metadata.Size * 8 * 4

// Error is a structured error for image-watermark argument validation.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gwde/image: %s", e.Reason)
}

// Watermark embeds and detects the image variant. It holds no state of its
// own; every call is a pure function of its arguments.
type Watermark struct{}

// New returns an image Watermark.
func New() *Watermark {
	return &Watermark{}
}

// EmbedResult is the outcome of Embed.
type EmbedResult struct {
	Watermarked []byte
	Fingerprint []int
	Metadata    metadata.Header
	Height      int
	Width       int
	Channels    int
}

// DetectResult is the outcome of Detect.
type DetectResult struct {
	Score             float64
	FalsePositiveRate float64
	TotalBits         int
	MatchingBits      int
	MetadataValid     bool
}

// Embed writes a sentinel-free, 4x-repeated metadata block into the first
// MetadataRegionSamples LSBs of samples, then fingerprints every remaining
// sample's LSB. samples must have exactly height*width*channels bytes and
// that count must exceed MetadataRegionSamples; both are validated
// immediately as InvalidArgument, not deferred to a structured result,
// since Embed cannot proceed at all without room for the header.
func (w *Watermark) Embed(samples []byte, height, width, channels int, key string, stateSeed uint64) (*EmbedResult, error) {
	if channels <= 0 {
		channels = 1
	}
	total := height * width * channels
	if total != len(samples) {
		return nil, &Error{Reason: fmt.Sprintf("sample count %d does not match height*width*channels %d", len(samples), total)}
	}
	if total <= MetadataRegionSamples {
		return nil, &Error{Reason: fmt.Sprintf("payload too small: %d samples, need more than %d", total, MetadataRegionSamples)}
	}

	out := make([]byte, total)
	copy(out, samples)

	keyHash := hashing.StableHash(key)
	header := metadata.Header{
		Version:           metadata.Version,
		StateSeed:         stateSeed,
		KeyHash:           keyHash,
		FingerprintLength: uint32(total - MetadataRegionSamples),
	}
	headerBits := bitcodec.BytesToBits(header.Encode())
	for i, bit := range headerBits {
		for rep := 0; rep < 4; rep++ {
			idx := i*4 + rep
			out[idx] = setLSB(out[idx], bit)
		}
	}

	stream := hashing.NewKeyedStream(stateSeed ^ keyHash)
	fingerprint := make([]int, total-MetadataRegionSamples)
	for i := MetadataRegionSamples; i < total; i++ {
		bit := contentBit(samples[i], i) ^ stream.NextBit()
		fingerprint[i-MetadataRegionSamples] = bit
		out[i] = setLSB(out[i], bit)
	}

	return &EmbedResult{
		Watermarked: out,
		Fingerprint: fingerprint,
		Metadata:    header,
		Height:      height,
		Width:       width,
		Channels:    channels,
	}, nil
}

// Detect reads back the metadata region's majority-voted bits, parses the
// header, and — if valid — recomputes the expected fingerprint from the
// current sample bytes and compares it against the actual LSBs. An image
// too small to hold the metadata region, or one whose metadata does not
// parse to version 1, is reported as invalid rather than raised as an
// error: Detect must tolerate arbitrary payloads.
func (w *Watermark) Detect(samples []byte) (*DetectResult, error) {
	if len(samples) <= MetadataRegionSamples {
		return &DetectResult{FalsePositiveRate: 1.0, MetadataValid: false}, nil
	}

	headerBits := make([]int, metadata.Size*8)
	for i := range headerBits {
		votes := 0
		for rep := 0; rep < 4; rep++ {
			votes += lsb(samples[i*4+rep])
		}
		if votes > 2 {
			headerBits[i] = 1
		}
	}
	headerBytes, err := bitcodec.BitsToBytes(headerBits)
	if err != nil {
		return &DetectResult{FalsePositiveRate: 1.0, MetadataValid: false}, nil
	}
	header, err := metadata.Decode(headerBytes)
	if err != nil || header.Version != metadata.Version {
		return &DetectResult{FalsePositiveRate: 1.0, MetadataValid: false}, nil
	}

	stream := hashing.NewKeyedStream(header.StateSeed ^ header.KeyHash)
	total := len(samples) - MetadataRegionSamples
	matching := 0
	for i := 0; i < total; i++ {
		idx := MetadataRegionSamples + i
		expected := contentBit(samples[idx], idx) ^ stream.NextBit()
		if expected == lsb(samples[idx]) {
			matching++
		}
	}

	return &DetectResult{
		Score:             scoring.Score(matching, total),
		FalsePositiveRate: scoring.FalsePositiveRate(matching, total),
		TotalBits:         total,
		MatchingBits:      matching,
		MetadataValid:     true,
	}, nil
}

// contentBit derives the content-dependent half of a fingerprint bit from
// a sample's non-watermark bits and its position. The LSB is masked out of
// sampleByte before hashing so that embedding (which only ever changes the
// LSB) never perturbs the value Detect recomputes from the same sample:
// content_bit is a function of the cover image, not of the watermark it
// carries.
func contentBit(sampleByte byte, index int) int {
	cover := uint64(sampleByte &^ 1)
	v := (cover << 32) ^ uint64(index)
	return int(hashing.StableHash64(v) & 1)
}

func setLSB(b byte, bit int) byte {
	if bit != 0 {
		return b | 1
	}
	return b &^ 1
}

func lsb(b byte) int {
	return int(b & 1)
}
