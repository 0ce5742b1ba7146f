package offset

import (
	"math/rand/v2"
	"time"
)

// Source produces uniformly distributed integers in an inclusive range
type Source interface {
	IntRange(min, max int) int
}

// RandSource is a Source backed by a PCG generator
type RandSource struct {
	r *rand.Rand
}

// NewRandSource returns a deterministic source for the given seed
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSource returns a source seeded from the wall clock
func NewTimeSource() *RandSource {
	return NewRandSource(uint64(time.Now().UnixNano()))
}

// IntRange returns a value in [min, max]. It panics if max < min.
func (s *RandSource) IntRange(min, max int) int {
	return min + s.r.IntN(max-min+1)
}
