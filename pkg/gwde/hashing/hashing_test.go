package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStableHashIsDeterministic(t *testing.T) {
	assert.Equal(t, StableHash("hello"), StableHash("hello"))
	assert.NotEqual(t, StableHash("hello"), StableHash("world"))
}

func TestStableHashEmptyStringIsOffsetBasis(t *testing.T) {
	assert.Equal(t, fnvOffset64, StableHash(""))
}

func TestStableHash64IsStableAndAvalanches(t *testing.T) {
	a := StableHash64(1)
	b := StableHash64(2)
	assert.Equal(t, a, StableHash64(1))
	assert.NotEqual(t, a, b)
}

func TestKeyedStreamDeterministic(t *testing.T) {
	s1 := NewKeyedStream(42)
	s2 := NewKeyedStream(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, s1.NextBit(), s2.NextBit())
	}
}

func TestKeyedStreamDiffersByPosition(t *testing.T) {
	s := NewKeyedStream(7)
	seen := map[int]bool{}
	for i := 0; i < 4; i++ {
		seen[s.NextBit()] = true
	}
	// The first 4 draws for seed 7 contain both bit values; a smoke check
	// that NextBit isn't trivially constant.
	assert.Len(t, seen, 2)
}
