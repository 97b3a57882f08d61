// Package entropy provides the seeded random source shared by every
// stochastic system: trait inheritance, betrayal rolls, event generation.
// A single seed makes a whole run reproducible.
package entropy

import (
	"math/rand"
	"sync"
)

// Source yields uniform random numbers. Systems take a Source so tests can
// inject a fixed-seed instance.
type Source interface {
	// Float returns a uniform float64 in [0, 1).
	Float() float64
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
}

// Rand is a Source backed by math/rand. The mutex keeps it usable from
// tests that exercise managers concurrently.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand creates a Source with the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

func (r *Rand) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// IntRange returns a uniform int in [lo, hi). lo must be < hi.
func (r *Rand) IntRange(lo, hi int) int {
	return lo + r.IntN(hi-lo)
}

// IntRangeFrom draws a uniform int in [lo, hi) from src.
func IntRangeFrom(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo)
}

var (
	defaultMu  sync.Mutex
	defaultSrc = NewRand(1)
)

// Default returns the process-wide source.
func Default() *Rand {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSrc
}

// SetSeed replaces the process-wide source with a fresh one seeded with
// seed. Call once at startup, or per-test for determinism.
func SetSeed(seed int64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSrc = NewRand(seed)
}

// Float draws from the process-wide source.
func Float() float64 {
	return Default().Float()
}

// IntN draws from the process-wide source.
func IntN(n int) int {
	return Default().IntN(n)
}

// IntRange draws a uniform int in [lo, hi) from the process-wide source.
func IntRange(lo, hi int) int {
	return Default().IntRange(lo, hi)
}
