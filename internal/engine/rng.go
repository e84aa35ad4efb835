package engine

import "math/rand"

// Sequence is a deterministic pseudo-random draw stream keyed by level
// number. Two sequences created for the same level produce identical
// shape and color draws, which makes replays and tests reproducible.
// A fresh sequence is created on every level transition and full reset.
type Sequence struct {
	rng  *rand.Rand
	seed int64
}

// NewSequence creates a sequence seeded by the given level number.
func NewSequence(level int) *Sequence {
	return NewSequenceSeed(int64(level))
}

// NewSequenceSeed creates a sequence from a raw seed.
func NewSequenceSeed(seed int64) *Sequence {
	return &Sequence{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed this sequence was created with.
func (s *Sequence) Seed() int64 {
	return s.seed
}

// Intn returns a deterministic value in [0, n).
func (s *Sequence) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a deterministic value in [0.0, 1.0).
func (s *Sequence) Float64() float64 {
	return s.rng.Float64()
}

// Chance returns true with probability p.
func (s *Sequence) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// PickColor draws one of the piece colors.
func (s *Sequence) PickColor() BlockColor {
	return PieceColors[s.rng.Intn(len(PieceColors))]
}
