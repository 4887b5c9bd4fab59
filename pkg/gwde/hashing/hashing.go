// Package hashing provides the two non-cryptographic hash functions GW-DE
// uses to turn arbitrary keys and seeds into deterministic fingerprint
// material: a byte-string FNV-1a/64 hash and a 64-bit avalanche finalizer
// in the style of MurmurHash3, used to mix a watermark's state seed with a
// token or pixel index.
package hashing

const (
	fnvOffset64 uint64 = 1469598103934665603
	fnvPrime64  uint64 = 1099511628211
)

// StableHash is FNV-1a/64 over the UTF-8 bytes of s. It is stable across
// processes and Go versions, unlike hash/maphash or the runtime's string
// hash, which is why GW-DE rolls its own instead of reaching for
// hash/fnv: the fingerprint a watermark embeds today must still verify
// against a detector built from a different binary years later.
func StableHash(s string) uint64 {
	h := fnvOffset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// StableHash64 avalanches a 64-bit value the way MurmurHash3's finalizer
// does, so that sequential inputs (token indices, pixel offsets) spread
// evenly across the output space before being folded into a bit decision.
func StableHash64(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}

// MixSeed combines a watermark's state seed with a position index into the
// per-position value whose low bit KeyedStream hands out for that position.
func MixSeed(seed uint64, index int) uint64 {
	return StableHash64(seed ^ (uint64(index)+1)*0x9E3779B97F4A7C15)
}

// KeyedStream is the deterministic keyed bit stream both watermark variants
// draw from: bit i is the low bit of MixSeed(seed, i), and successive calls
// to NextBit hand out i = 0, 1, 2, ... in order. Embed and Detect must both
// construct one from the same seed to agree on which content bits flip.
type KeyedStream struct {
	seed    uint64
	counter int
}

// NewKeyedStream seeds a fresh stream. Per the protocol, seed is always
// state_seed XOR key_hash.
func NewKeyedStream(seed uint64) *KeyedStream {
	return &KeyedStream{seed: seed}
}

// NextBit draws the next bit from the stream.
func (k *KeyedStream) NextBit() int {
	v := MixSeed(k.seed, k.counter)
	k.counter++
	return int(v & 1)
}
