package catalog

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// Scale multiplies a dollar amount by every factor and rounds the product to
// whole dollars, half away from zero.
func Scale(amount float64, factors ...float64) float64 {
	d := decimal.NewFromFloat(amount)
	for _, f := range factors {
		d = d.Mul(decimal.NewFromFloat(f))
	}
	return d.Round(0).InexactFloat64()
}

// ToCents converts dollars to integer cents.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Rand is the random source threaded through the pipeline for synthetic
// stock levels and the featured flag.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a reproducible source for a non-zero seed and a
// time-seeded one for zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Between draws an integer in [lo, hi].
func Between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
