// Package random provides the seedable source shared by the engine and the
// mark draw.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a PCG generator safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a source seeded with seed, or with the current time when seed is 0.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Source{
		rnd: rand.New(rand.NewPCG(seed, seed>>32|seed<<32)),
	}
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (that *Source) IntN(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.IntN(n)
}
