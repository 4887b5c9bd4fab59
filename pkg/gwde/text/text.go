// Package text implements the text variant of the GW-DE watermark: a
// self-describing, key-derived fingerprint embedded as zero-width code
// points after each whitespace-delimited token, and a detector that scores
// a document for the fingerprint's presence.
package text

import (
	"strconv"
	"strings"

	"github.com/vaultmesh/secureagg/pkg/gwde/bitcodec"
	"github.com/vaultmesh/secureagg/pkg/gwde/hashing"
	"github.com/vaultmesh/secureagg/pkg/gwde/metadata"
	"github.com/vaultmesh/secureagg/pkg/gwde/scoring"
)

// Watermark embeds and detects the text variant. It holds no state of its
// own; every call is a pure function of its arguments.
type Watermark struct{}

// New returns a text Watermark.
func New() *Watermark {
	return &Watermark{}
}

// EmbedResult is the outcome of Embed.
type EmbedResult struct {
	Watermarked string
	Fingerprint []int
	Metadata    metadata.Header
}

// DetectResult is the outcome of Detect.
type DetectResult struct {
	Score             float64
	FalsePositiveRate float64
	TotalBits         int
	MatchingBits      int
	MetadataValid     bool
}

// Embed strips any pre-existing zero-width watermark from payload,
// tokenises the result, computes one fingerprint bit per token, and
// returns the payload with a sentinel-framed metadata header prepended and
// one fingerprint bit injected after each token.
func (w *Watermark) Embed(payload, key string, stateSeed uint64) (*EmbedResult, error) {
	cleaned := bitcodec.StripZeroWidth(payload)
	tokens := tokenize(cleaned)

	keyHash := hashing.StableHash(key)
	header := metadata.Header{
		Version:           metadata.Version,
		StateSeed:         stateSeed,
		KeyHash:           keyHash,
		FingerprintLength: uint32(len(tokens)),
	}
	headerBits := bitcodec.BytesToBits(header.Encode())
	metaRun := bitcodec.EncodeBits(headerBits, true)

	fingerprint := computeFingerprint(tokens, stateSeed^keyHash)
	body := injectFingerprint(cleaned, fingerprint)

	return &EmbedResult{
		Watermarked: metaRun + body,
		Fingerprint: fingerprint,
		Metadata:    header,
	}, nil
}

// Detect decodes the metadata header from the start of payload, recomputes
// the expected fingerprint from the decoded state_seed/key_hash, extracts
// the actual fingerprint bits present in payload, and scores agreement
// between the two. A payload with no parseable 192-bit metadata header is
// reported as invalid, not raised as an error.
func (w *Watermark) Detect(payload string) (*DetectResult, error) {
	headerBits, afterHeader := bitcodec.DecodeBits(payload, 0, true)
	if len(headerBits) != metadata.Size*8 {
		return &DetectResult{FalsePositiveRate: 1.0, MetadataValid: false}, nil
	}
	headerBytes, err := bitcodec.BitsToBytes(headerBits)
	if err != nil {
		return &DetectResult{FalsePositiveRate: 1.0, MetadataValid: false}, nil
	}
	header, err := metadata.Decode(headerBytes)
	if err != nil {
		return &DetectResult{FalsePositiveRate: 1.0, MetadataValid: false}, nil
	}

	remainder := payload[afterHeader:]
	cleaned := bitcodec.StripZeroWidth(remainder)
	tokens := tokenize(cleaned)
	expected := computeFingerprint(tokens, header.StateSeed^header.KeyHash)
	extracted := extractFingerprint(remainder)

	total := len(expected)
	if len(extracted) < total {
		total = len(extracted)
	}
	matching := 0
	for i := 0; i < total; i++ {
		if expected[i] == extracted[i] {
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

// computeFingerprint derives one bit per token: the low bit of a
// content-derived hash XORed with the next draw of a keyed stream seeded
// from streamSeed.
func computeFingerprint(tokens []string, streamSeed uint64) []int {
	stream := hashing.NewKeyedStream(streamSeed)
	bits := make([]int, len(tokens))
	for i, tok := range tokens {
		contentBit := int(hashing.StableHash(tok+strconv.Itoa(i)) & 1)
		bits[i] = contentBit ^ stream.NextBit()
	}
	return bits
}

const whitespaceChars = " \t\n\r\f\v"

func isWhitespace(r rune) bool {
	return strings.ContainsRune(whitespaceChars, r)
}

// tokenize splits s on runs of whitespace, matching the layout injectFingerprint
// and extractFingerprint both assume: tokens are maximal non-whitespace runs.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	for _, r := range s {
		if isWhitespace(r) {
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// injectFingerprint walks cleaned and writes fp[i] as a single zero-width
// code point immediately after the i-th token completes (i.e. right before
// the whitespace that follows it, or at the very end of the string if the
// token is the last thing in cleaned).
func injectFingerprint(cleaned string, fp []int) string {
	var out strings.Builder
	tokenIdx := 0
	inToken := false
	for _, r := range cleaned {
		if isWhitespace(r) {
			if inToken {
				out.WriteString(bitcodec.EncodeBits([]int{fp[tokenIdx]}, false))
				tokenIdx++
				inToken = false
			}
			out.WriteRune(r)
			continue
		}
		out.WriteRune(r)
		inToken = true
	}
	if inToken {
		out.WriteString(bitcodec.EncodeBits([]int{fp[tokenIdx]}, false))
	}
	return out.String()
}

// extractFingerprint re-scans remainder (the original code-point stream,
// zero-width code points included) and records one bit per bit code point
// encountered, in order. injectFingerprint writes exactly one such code
// point per token, immediately after the token's last character and
// therefore still inside what tokenize would call the token — so this
// counts bits as they're seen rather than gating on having left the token,
// which a just-after-token bit never does.
func extractFingerprint(remainder string) []int {
	var bits []int
	for _, r := range remainder {
		switch r {
		case bitcodec.ZeroWidthZero:
			bits = append(bits, 0)
		case bitcodec.ZeroWidthOne:
			bits = append(bits, 1)
		}
	}
	return bits
}
