// Package ftma implements Fault-Tolerant Masked Aggregation: a secure-sum
// protocol that tolerates the dropout of up to N-t clients out of N, where
// t is a Shamir reconstruction threshold.
//
// Field → Shamir → Coordinator is the dependency order: Coordinator builds
// on the vectorised Shamir secret sharing in package shamir, which in turn
// builds on the prime-field arithmetic in package field.
package ftma

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"github.com/vaultmesh/secureagg/pkg/adapters/logger"
	"github.com/vaultmesh/secureagg/pkg/adapters/metrics"
	"github.com/vaultmesh/secureagg/pkg/field"
	"github.com/vaultmesh/secureagg/pkg/shamir"
)

// Coordinator owns every ClientState for one run of the protocol. It is not
// safe for concurrent use: callers must not interleave RegisterClient calls
// with each other or with Finalize on the same instance from multiple
// goroutines. Distinct Coordinator instances are fully independent.
type Coordinator struct {
	cfg     config
	clients map[int]*ClientState

	// rng is the coordinator's exclusive randomness source for personal
	// masks and Shamir polynomial coefficients: a SHAKE256 sponge seeded
	// once at construction and squeezed continuously, the same
	// rejection-sampled-uniform-draw pattern the wider retrieval pack
	// uses for lattice/field sampling. Pairwise masks deliberately do not
	// use this stream: they are re-derived independently by each side of
	// a pair from mixSeed, via the MT19937-class generator in mask.go.
	rng io.Reader
}

// newShakeReader seeds a SHAKE256 sponge from a 64-bit seed and returns it
// as an io.Reader that squeezes an effectively unbounded pseudorandom
// stream, for use wherever the coordinator needs uniform field draws that
// need not be reproducible by a counterparty (unlike pairwise masks).
func newShakeReader(seed uint64) io.Reader {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seed)
	h := sha3.NewShake256()
	_, _ = h.Write(buf[:])
	return h
}

// NewCoordinator builds a coordinator for numClients parties, a
// reconstruction threshold, and a metric dimension. scale defaults to
// 1_000_000 unless overridden with WithScale.
func NewCoordinator(numClients, threshold, dimension int, opts ...Option) (*Coordinator, error) {
	cfg := config{
		numClients: numClients,
		threshold:  threshold,
		dimension:  dimension,
		scale:      defaultScale,
		logger:     logger.NoOp(),
		metrics:    metrics.NoOp(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	seed := cfg.seed
	if seed == nil {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("ftma: seeding coordinator PRNG: %w", err)
		}
		v := binary.BigEndian.Uint64(buf[:])
		seed = &v
	}

	c := &Coordinator{
		cfg:     cfg,
		clients: make(map[int]*ClientState, numClients),
		rng:     newShakeReader(*seed),
	}
	for i := 0; i < numClients; i++ {
		c.clients[i] = &ClientState{
			ID:             i,
			IncomingShares: make(map[int]*shamir.Share),
			PairwiseSeeds:  make(map[int]uint64),
		}
	}
	return c, nil
}

func validateConfig(cfg config) error {
	if cfg.threshold < 1 || cfg.threshold > cfg.numClients {
		return &InvalidArgumentError{Field: "threshold", Reason: fmt.Sprintf("must be in [1, %d]", cfg.numClients)}
	}
	if cfg.dimension < 1 {
		return &InvalidArgumentError{Field: "dimension", Reason: "must be >= 1"}
	}
	if cfg.scale < 1 {
		return &InvalidArgumentError{Field: "scale", Reason: "must be >= 1"}
	}
	return nil
}

// Dimension returns the configured metric dimension D.
func (c *Coordinator) Dimension() int {
	return c.cfg.dimension
}

// RegisterClient validates and registers one client's metric vector,
// returning its masked payload (a length-2D field vector). Most callers
// discard the return value; it is exposed for audit/transport.
func (c *Coordinator) RegisterClient(ctx context.Context, id int, metricValues []float64) ([]field.Element, error) {
	client, ok := c.clients[id]
	if !ok || id < 0 || id >= c.cfg.numClients {
		return nil, &InvalidArgumentError{Field: "id", Reason: fmt.Sprintf("out of range [0, %d)", c.cfg.numClients)}
	}
	if client.Registered {
		return nil, &InvalidArgumentError{Field: "id", Reason: fmt.Sprintf("client %d already registered", id)}
	}
	if len(metricValues) != c.cfg.dimension {
		return nil, &InvalidArgumentError{Field: "metrics", Reason: fmt.Sprintf("expected length %d, got %d", c.cfg.dimension, len(metricValues))}
	}

	d := c.cfg.dimension
	s := make([]field.Element, 2*d)
	for i, v := range metricValues {
		scaled := int64(math.Round(v * float64(c.cfg.scale)))
		s[i] = field.FromSigned(scaled)
		s[d+i] = signedSquareMod(scaled)
	}

	personalMask, err := field.SampleVector(2*d, c.rng)
	if err != nil {
		return nil, fmt.Errorf("ftma: drawing personal mask for client %d: %w", id, err)
	}

	shares, err := shamir.ShareVector(personalMask, c.cfg.threshold, c.cfg.numClients, c.rng)
	if err != nil {
		return nil, fmt.Errorf("ftma: sharing personal mask for client %d: %w", id, err)
	}
	for _, share := range shares {
		holderID := share.Index - 1
		if holderID == id {
			continue
		}
		c.clients[holderID].IncomingShares[id] = share
	}

	payload := make([]field.Element, 2*d)
	copy(payload, s)
	for i := range payload {
		payload[i] = field.Add(payload[i], personalMask[i])
	}

	for j := 0; j < c.cfg.numClients; j++ {
		if j == id {
			continue
		}
		seed := mixSeed(id+1, j+1, c.cfg.scale)
		pmask, err := pairwiseMask(seed, 2*d)
		if err != nil {
			return nil, fmt.Errorf("ftma: deriving pairwise mask for (%d, %d): %w", id, j, err)
		}
		if id < j {
			for i := range payload {
				payload[i] = field.Add(payload[i], pmask[i])
			}
		} else {
			for i := range payload {
				payload[i] = field.Sub(payload[i], pmask[i])
			}
		}
		client.PairwiseSeeds[j] = seed
	}

	client.OriginalMetrics = append([]float64{}, metricValues...)
	client.MaskedPayload = payload
	client.PersonalMask = personalMask
	client.Registered = true

	c.cfg.logger.Debug("client registered", logger.Int("client_id", id))
	c.cfg.metrics.RecordCounter(ctx, metrics.FTMARegistrationsTotal, nil)

	return payload, nil
}

// signedSquareMod computes (x*x) mod P via a 128-bit intermediate and a
// generic signed-multiply-then-reduce path, mirroring the data model's
// description even though a square's sign is always positive.
func signedSquareMod(x int64) field.Element {
	return mulSignedMod(x, x)
}

// mulSignedMod computes (a*b) mod P for signed 64-bit a, b using an exact
// 128-bit intermediate product and sign normalisation at the end.
func mulSignedMod(a, b int64) field.Element {
	negative := (a < 0) != (b < 0)
	ua, ub := absUint64(a), absUint64(b)
	hi, lo := bits.Mul64(ua, ub)
	magnitude := field.ReduceWide(hi, lo)
	if negative {
		return field.Sub(field.Zero, magnitude)
	}
	return magnitude
}

func absUint64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}
