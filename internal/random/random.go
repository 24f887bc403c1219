// Package random provides the randomness used by the pipeline behind a small interface
// so that interest draws, interview slots and simulated candidates can be replayed in tests.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the subset of math/rand used by the pipeline.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Source seeded with seed. A zero seed picks a random one.
func New(seed uint64) Source {
	if seed == 0 {
		return &locked{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Fixed replays the configured values in order and starts over when exhausted.
// Floats feed Float64 and Ints feed IntN; an int larger than n is reduced modulo n.
type Fixed struct {
	Floats []float64
	Ints   []int

	mu        sync.Mutex
	floatNext int
	intNext   int
}

func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[f.floatNext%len(f.Floats)]
	f.floatNext++
	return v
}

func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[f.intNext%len(f.Ints)]
	f.intNext++
	if v < 0 {
		v = -v
	}
	return v % n
}
