// SPDX-License-Identifier: MIT

package matrix

import (
	"math/rand/v2"
	"sync"
	"time"
)

// lockedSource serializes access to a PCG generator so the shared source can
// be reseeded while other goroutines draw from it.
type lockedSource struct {
	mu  sync.Mutex
	src *rand.PCG
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) seed(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed, seed^0x9e3779b97f4a7c15)
}

var (
	shared    = &lockedSource{src: rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)}
	sharedRng = rand.New(shared)
)

// Seed reseeds the shared random source used by Random, Randn, Shuffle and
// Sample when no WithRand option is given.
func Seed(seed uint64) {
	shared.seed(seed)
}

func sharedRand() *rand.Rand { return sharedRng }

// NewRand returns an independent generator seeded with seed, suitable for
// WithRand.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
