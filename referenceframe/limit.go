package referenceframe

import (
	"math"
	"math/rand"
)

// Limit represents the range of one dimension of a configuration space.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range returns the finite bounds of the limit, replacing infinite ones with -999 and 999.
func (l Limit) Range() (float64, float64) {
	lo, hi := l.Min, l.Max
	if lo == math.Inf(-1) {
		lo = -999
	}
	if hi == math.Inf(1) {
		hi = 999
	}
	return lo, hi
}

// Contains returns whether v lies within the limit, bounds included.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// ConfigurationInLimits returns whether every coordinate of q is within its limit.
func ConfigurationInLimits(q Configuration, limits []Limit) bool {
	if len(q) != len(limits) {
		return false
	}
	for i, lim := range limits {
		if !lim.Contains(q[i]) {
			return false
		}
	}
	return true
}

// RandomConfiguration produces a uniformly distributed configuration within the limits.
func RandomConfiguration(limits []Limit, rSeed *rand.Rand) Configuration {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	q := make(Configuration, 0, len(limits))
	for _, lim := range limits {
		l, u := lim.Range()
		jRange := math.Abs(u - l)
		q = append(q, rSeed.Float64()*jRange+l)
	}
	return q
}
