package ftma

import "github.com/vaultmesh/secureagg/pkg/field"

const goldenRatio64 = 0x9e3779b97f4a7c15

// hashCombine folds v into seed using the boost-style golden-ratio
// shift-xor pattern: order-dependent on its own, but mixSeed always calls
// it with arguments already sorted, which is what makes the pairwise seed
// symmetric under swap of the two client ids.
func hashCombine(seed, v uint64) uint64 {
	return seed ^ (v + goldenRatio64 + (seed << 6) + (seed >> 2))
}

// mixSeed derives the deterministic, symmetric pairwise-mask seed for a
// pair of (1-indexed) client ids and the coordinator's scale. Symmetry is
// guaranteed by sorting the ids before folding, so mixSeed(a, b, s) ==
// mixSeed(b, a, s) for all a, b, s.
func mixSeed(idA, idB int, scale int64) uint64 {
	lo, hi := uint64(idA), uint64(idB)
	if lo > hi {
		lo, hi = hi, lo
	}
	seed := uint64(0)
	seed = hashCombine(seed, lo)
	seed = hashCombine(seed, hi)
	seed = hashCombine(seed, uint64(scale))
	return seed
}

// pairwiseMask deterministically derives the length-sized field vector
// added by the lower-id client and subtracted by the higher-id client of a
// pair, from their shared seed. Both sides must call this with the same
// seed and length to get cancelling vectors.
func pairwiseMask(seed uint64, length int) ([]field.Element, error) {
	stream := newMT19937_64(seed)
	return field.SampleVector(length, stream)
}
