package ftma

import (
	"github.com/vaultmesh/secureagg/pkg/field"
	"github.com/vaultmesh/secureagg/pkg/shamir"
)

// ClientState tracks everything the coordinator knows about one registered
// (or not-yet-registered) client. It is mutated only by that client's own
// registration, then treated as read-only during Finalize.
type ClientState struct {
	ID int

	// OriginalMetrics is the real-valued input vector of length D, kept
	// only for audit/debugging; aggregation never reads it back.
	OriginalMetrics []float64

	// MaskedPayload is the length-2D field vector this client produced
	// during registration: scaled values and their squares, blinded by
	// its personal mask and every pairwise mask it shares with another
	// registered or yet-to-register client.
	MaskedPayload []field.Element

	// PersonalMask is the length-2D uniform field vector this client drew
	// to blind its payload. It never leaves the coordinator in the clear;
	// it is shared via Shamir so survivors can reconstruct it if this
	// client drops out.
	PersonalMask []field.Element

	// IncomingShares holds, for every other client j, the share of j's
	// personal mask that this client received at j's registration time.
	// Indexed by originator id so late registrations land in the right
	// slot regardless of registration order.
	IncomingShares map[int]*shamir.Share

	// PairwiseSeeds holds, for every other client j this client has
	// registered a pairwise mask against, the deterministic seed used to
	// derive that mask.
	PairwiseSeeds map[int]uint64

	Registered bool
}

// AggregationResult is the decoded outcome of a Finalize call.
type AggregationResult struct {
	Sum          []float64
	Mean         []float64
	Variance     []float64
	Participants int
	Survivors    int
	Threshold    int
}
