// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"math/rand/v2"
	"sync"
)

// RNG is the source of every random choice in this package.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	IntN(n int) int
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// DefaultRNG returns a source backed by the runtime's global generator.
// It is safe for concurrent use.
func DefaultRNG() RNG {
	return globalRNG{}
}

// NewSeededRNG returns a deterministic source. It is not safe for
// concurrent use; use NewLockedRNG when sharing one across requests.
func NewSeededRNG(seed uint64) RNG {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type lockedRNG struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRNG returns a seeded source guarded by a mutex.
func NewLockedRNG(seed uint64) RNG {
	return &lockedRNG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}
