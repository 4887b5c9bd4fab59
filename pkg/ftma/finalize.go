package ftma

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vaultmesh/secureagg/pkg/adapters/logger"
	"github.com/vaultmesh/secureagg/pkg/adapters/metrics"
	"github.com/vaultmesh/secureagg/pkg/field"
	"github.com/vaultmesh/secureagg/pkg/shamir"
)

// Finalize computes the AggregationResult over the given active (surviving)
// client ids. Every active id must already be registered and there must be
// at least threshold of them. Dropped-out clients that did register are
// recovered via Shamir reconstruction from active clients' held shares;
// clients that never registered are cancelled out pairwise-mask by
// pairwise-mask from every registered client that holds a seed for them
// (both active survivors and registered-but-inactive clients recovered
// above, since both contributed a pairwise term against the missing id
// during their own registration).
func (c *Coordinator) Finalize(ctx context.Context, active []int) (*AggregationResult, error) {
	start := time.Now()
	runID := uuid.New()
	log := c.cfg.logger.With(logger.String("run_id", runID.String()))

	if len(active) < c.cfg.threshold {
		return nil, &ProtocolStateError{Reason: fmt.Sprintf("active set size %d below threshold %d", len(active), c.cfg.threshold)}
	}

	activeSet := make(map[int]bool, len(active))
	for _, id := range active {
		client, ok := c.clients[id]
		if !ok {
			return nil, &InvalidArgumentError{Field: "active", Reason: fmt.Sprintf("unknown client id %d", id)}
		}
		if !client.Registered {
			return nil, &InvalidArgumentError{Field: "active", Reason: fmt.Sprintf("client %d is not registered", id)}
		}
		activeSet[id] = true
	}

	d := c.cfg.dimension
	agg := make([]field.Element, 2*d)
	participants := 0
	for _, client := range c.clients {
		if !client.Registered {
			continue
		}
		participants++
		for i := range agg {
			agg[i] = field.Add(agg[i], client.MaskedPayload[i])
		}
	}
	if participants == 0 {
		return nil, &ProtocolStateError{Reason: "no registered participants"}
	}

	for _, id := range active {
		personal := c.clients[id].PersonalMask
		for i := range agg {
			agg[i] = field.Sub(agg[i], personal[i])
		}
	}

	for id, client := range c.clients {
		if !client.Registered || activeSet[id] {
			continue
		}
		recovered, err := c.recoverPersonalMask(id, active)
		if err != nil {
			return nil, err
		}
		for i := range agg {
			agg[i] = field.Sub(agg[i], recovered[i])
		}
		c.cfg.metrics.RecordCounter(ctx, metrics.FTMASharesReconstructedTotal, nil)
	}

	for id, client := range c.clients {
		if client.Registered {
			continue
		}
		for survivorID, survivor := range c.clients {
			if !survivor.Registered {
				continue
			}
			seed, ok := survivor.PairwiseSeeds[id]
			if !ok {
				continue
			}
			pmask, err := pairwiseMask(seed, 2*d)
			if err != nil {
				return nil, fmt.Errorf("ftma: re-deriving pairwise mask for (%d, %d): %w", survivorID, id, err)
			}
			if survivorID < id {
				for i := range agg {
					agg[i] = field.Sub(agg[i], pmask[i])
				}
			} else {
				for i := range agg {
					agg[i] = field.Add(agg[i], pmask[i])
				}
			}
		}
	}

	result := decode(agg, d, participants, len(active), c.cfg.threshold, c.cfg.scale)

	log.Info("finalize complete",
		logger.Int("participants", participants),
		logger.Int("survivors", len(active)))
	c.cfg.metrics.RecordCounter(ctx, metrics.FTMAFinalizeTotal, nil)
	c.cfg.metrics.RecordTimer(ctx, metrics.FTMAFinalizeDurationSeconds, time.Since(start), nil)

	return result, nil
}

// recoverPersonalMask reconstructs the personal mask of a registered but
// inactive client d from the shares held by active survivors, using the
// first threshold survivors (in the order `active` lists them) that hold a
// share for d.
func (c *Coordinator) recoverPersonalMask(d int, active []int) ([]field.Element, error) {
	var shares []*shamir.Share
	for _, survivorID := range active {
		survivor := c.clients[survivorID]
		share, ok := survivor.IncomingShares[d]
		if !ok {
			continue
		}
		shares = append(shares, share)
		if len(shares) == c.cfg.threshold {
			break
		}
	}
	if len(shares) < c.cfg.threshold {
		return nil, &InsufficientSharesError{ClientID: d, Have: len(shares), Threshold: c.cfg.threshold}
	}
	recovered, err := shamir.Reconstruct(c.cfg.threshold, shares)
	if err != nil {
		return nil, fmt.Errorf("ftma: reconstructing mask for client %d: %w", d, err)
	}
	return recovered, nil
}

// decode converts the aggregated field vector back into real-valued
// sum/mean/variance, clamping variance at zero to absorb floating-point
// rounding after de-scaling.
func decode(agg []field.Element, d, participants, survivors, threshold int, scale int64) *AggregationResult {
	sum := make([]float64, d)
	mean := make([]float64, d)
	variance := make([]float64, d)

	scaleF := float64(scale)
	for i := 0; i < d; i++ {
		sum[i] = float64(field.ToSigned(agg[i])) / scaleF
		mean[i] = sum[i] / float64(participants)
		secondMoment := float64(field.ToSigned(agg[i+d])) / (scaleF * scaleF) / float64(participants)
		v := secondMoment - mean[i]*mean[i]
		if v < 0 {
			v = 0
		}
		variance[i] = v
	}

	return &AggregationResult{
		Sum:          sum,
		Mean:         mean,
		Variance:     variance,
		Participants: participants,
		Survivors:    survivors,
		Threshold:    threshold,
	}
}
