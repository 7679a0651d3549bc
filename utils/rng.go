package utils

import (
	"math/rand/v2"
	"time"
)

// NewRNG creates a deterministic PCG-backed generator for the given seed
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// RandomSeed returns a seed derived from the wall clock
func RandomSeed() int64 {
	return time.Now().UnixNano()
}
