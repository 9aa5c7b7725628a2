package motionplan

import (
	"fmt"
	"math/rand"

	"go.viam.com/rrt/referenceframe"
)

// SmoothPath shortens a path by random shortcutting. Each of up to maxIter attempts picks two
// waypoints with at least one waypoint between them and, if the straight segment joining them is
// free when checked every stepSize, drops the waypoints in between. The input is not modified.
// Paths of fewer than three waypoints are returned as copies. It panics if stepSize is not positive.
func SmoothPath(
	path referenceframe.Path,
	isFree IsFreeFunc,
	stepSize float64,
	maxIter int,
	randseed *rand.Rand,
) referenceframe.Path {
	if stepSize <= 0 {
		panic(fmt.Sprintf("step size must be positive, got %v", stepSize))
	}
	smoothed := path.Clone()
	if len(smoothed) < 3 {
		return smoothed
	}
	if randseed == nil {
		//nolint:gosec
		randseed = rand.New(rand.NewSource(1))
	}

	for iter := 0; iter < maxIter && len(smoothed) > 2; iter++ {
		// Intn will return an int in the half-open interval [0,n)
		i := randseed.Intn(len(smoothed) - 2)
		j := i + 2 + randseed.Intn(len(smoothed)-i-2)

		if checkPath(smoothed[i], smoothed[j], stepSize, isFree) {
			smoothed = append(smoothed[:i+1], smoothed[j:]...)
		}
	}
	return smoothed
}
