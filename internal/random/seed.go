// Package random seeds the deterministic shuffles a game replays from.
//
// A game records the seed its deck was shuffled with, so the only
// entropy drawn from crypto/rand is that initial seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed draws a shuffle seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("draw shuffle seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewShuffler returns the PRNG for the given seed, drawing a fresh seed
// when zero is passed. The effective seed is returned alongside so it
// can be recorded for replay.
func NewShuffler(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
