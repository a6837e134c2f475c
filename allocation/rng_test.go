// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

// lastRNG always returns n-1, which makes Shuffle an identity permutation
// and picks the last element wherever a single index is drawn.
type lastRNG struct{}

func (lastRNG) IntN(n int) int { return n - 1 }

// sequenceRNG replays values modulo n.
type sequenceRNG struct {
	values []int
	idx    int
}

func (r *sequenceRNG) IntN(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}
