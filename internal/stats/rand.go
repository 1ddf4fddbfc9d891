package stats

import "math/rand"

// Rand is the random source used by the sparse-data simulation path. The
// indirection exists so tests can supply a fixed sequence.
type Rand interface {
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Float64() float64 {
	return rand.Float64()
}

// NewRand returns the production uniform random source.
func NewRand() Rand {
	return defaultRand{}
}
