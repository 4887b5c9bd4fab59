// Package gwde is the public entry point for the Dual-Entropy Watermark
// core: it dispatches Embed/Detect calls onto the text or image variant
// based on the payload's Go type, matching the single polymorphic
// embed/detect surface described by the protocol. The variants themselves
// live in the text and image subpackages; this package is pure wiring plus
// the ambient observability hooks (structured logging, metrics, a
// per-call correlation id).
package gwde

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vaultmesh/secureagg/pkg/adapters/logger"
	"github.com/vaultmesh/secureagg/pkg/adapters/metrics"
	"github.com/vaultmesh/secureagg/pkg/gwde/image"
	"github.com/vaultmesh/secureagg/pkg/gwde/metadata"
	"github.com/vaultmesh/secureagg/pkg/gwde/text"
)

// Kind distinguishes which variant produced an EmbedResult.
type Kind int

const (
	// KindText means the payload was a string, handled by package text.
	KindText Kind = iota
	// KindImage means the payload was an ImagePayload, handled by package image.
	KindImage
)

// ImagePayload is the payload shape Embed/Detect expect for the image
// variant: raw 8-bit samples in row-major order plus the shape needed to
// interpret them. Channels defaults to 1 when zero, matching the "2-D
// input" convention in the data model.
type ImagePayload struct {
	Samples  []byte
	Height   int
	Width    int
	Channels int
}

// EmbedResult is the outcome of Embed, covering both variants. Only the
// fields relevant to Kind are populated.
type EmbedResult struct {
	Kind             Kind
	WatermarkedText  string
	WatermarkedImage []byte
	Fingerprint      []int
	Metadata         metadata.Header
	Height           int
	Width            int
	Channels         int
}

// DetectResult is the outcome of Detect, identical in shape across both
// variants.
type DetectResult struct {
	Score             float64
	FalsePositiveRate float64
	TotalBits         int
	MatchingBits      int
	MetadataValid     bool
}

// Embed dispatches on the concrete type of payload: a string is embedded
// with the text variant, an ImagePayload with the image variant. Any other
// type, including a bare []byte (which carries no shape), is rejected.
func Embed(ctx context.Context, payload any, key string, stateSeed uint64, opts ...Option) (*EmbedResult, error) {
	cfg := newConfig(opts)
	runID := uuid.New()
	log := cfg.logger.With(logger.String("run_id", runID.String()))

	switch p := payload.(type) {
	case string:
		res, err := text.New().Embed(p, key, stateSeed)
		if err != nil {
			return nil, fmt.Errorf("gwde: embed text: %w", err)
		}
		log.Debug("embedded text watermark", logger.Int("fingerprint_length", len(res.Fingerprint)))
		cfg.metrics.RecordCounter(ctx, metrics.GWDEEmbedTotal, map[string]string{"kind": "text"})
		return &EmbedResult{
			Kind:            KindText,
			WatermarkedText: res.Watermarked,
			Fingerprint:     res.Fingerprint,
			Metadata:        res.Metadata,
		}, nil

	case ImagePayload:
		res, err := image.New().Embed(p.Samples, p.Height, p.Width, p.Channels, key, stateSeed)
		if err != nil {
			return nil, fmt.Errorf("gwde: embed image: %w", err)
		}
		log.Debug("embedded image watermark", logger.Int("fingerprint_length", len(res.Fingerprint)))
		cfg.metrics.RecordCounter(ctx, metrics.GWDEEmbedTotal, map[string]string{"kind": "image"})
		return &EmbedResult{
			Kind:             KindImage,
			WatermarkedImage: res.Watermarked,
			Fingerprint:      res.Fingerprint,
			Metadata:         res.Metadata,
			Height:           res.Height,
			Width:            res.Width,
			Channels:         res.Channels,
		}, nil

	default:
		return nil, fmt.Errorf("gwde: unsupported payload type %T", payload)
	}
}

// Detect dispatches the same way Embed does: strings go to the text
// variant, ImagePayload/[]byte go to the image variant ([]byte is treated
// as a flat single-channel sample buffer).
func Detect(ctx context.Context, payload any, opts ...Option) (*DetectResult, error) {
	cfg := newConfig(opts)
	runID := uuid.New()
	log := cfg.logger.With(logger.String("run_id", runID.String()))

	var score, fpr float64
	var matching, total int
	var valid bool
	var kind string

	switch p := payload.(type) {
	case string:
		res, err := text.New().Detect(p)
		if err != nil {
			return nil, fmt.Errorf("gwde: detect text: %w", err)
		}
		score, fpr, total, matching, valid = res.Score, res.FalsePositiveRate, res.TotalBits, res.MatchingBits, res.MetadataValid
		kind = "text"

	case ImagePayload:
		res, err := image.New().Detect(p.Samples)
		if err != nil {
			return nil, fmt.Errorf("gwde: detect image: %w", err)
		}
		score, fpr, total, matching, valid = res.Score, res.FalsePositiveRate, res.TotalBits, res.MatchingBits, res.MetadataValid
		kind = "image"

	case []byte:
		res, err := image.New().Detect(p)
		if err != nil {
			return nil, fmt.Errorf("gwde: detect image: %w", err)
		}
		score, fpr, total, matching, valid = res.Score, res.FalsePositiveRate, res.TotalBits, res.MatchingBits, res.MetadataValid
		kind = "image"

	default:
		return nil, fmt.Errorf("gwde: unsupported payload type %T", payload)
	}

	log.Debug("detect complete", logger.Float64("score", score), logger.Int("total_bits", total))
	cfg.metrics.RecordCounter(ctx, metrics.GWDEDetectTotal, map[string]string{"kind": kind})
	cfg.metrics.RecordHistogram(ctx, metrics.GWDEDetectScore, score, map[string]string{"kind": kind})

	return &DetectResult{
		Score:             score,
		FalsePositiveRate: fpr,
		TotalBits:         total,
		MatchingBits:      matching,
		MetadataValid:     valid,
	}, nil
}
