package motionplan

import (
	"fmt"

	"go.viam.com/rrt/referenceframe"
)

// IsFreeFunc reports whether a configuration is admissible, e.g. collision free and within limits.
// It may keep state such as counters, but its answer must depend only on its input.
type IsFreeFunc func(q referenceframe.Configuration) bool

// SampleFunc draws a configuration from the space being planned in.
type SampleFunc func() referenceframe.Configuration

// Steer returns toward unchanged if it is closer than stepSize to from. Otherwise it returns the
// point exactly stepSize along the straight line from from to toward. It panics if stepSize is not
// positive.
func Steer(from, toward referenceframe.Configuration, stepSize float64) referenceframe.Configuration {
	if stepSize <= 0 {
		panic(fmt.Sprintf("step size must be positive, got %v", stepSize))
	}
	dist := from.Distance(toward)
	if dist < stepSize {
		return toward.Clone()
	}
	return from.Interpolate(toward, stepSize/dist)
}

// checkPath walks from `from` toward `to` in steps of stepSize and reports whether every
// intermediate point is free. Neither endpoint is checked.
func checkPath(from, to referenceframe.Configuration, stepSize float64, isFree IsFreeFunc) bool {
	q := from
	for q.Distance(to) >= stepSize {
		q = Steer(q, to, stepSize)
		if !isFree(q) {
			return false
		}
	}
	return true
}
