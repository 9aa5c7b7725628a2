package motionplan

import (
	"context"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/referenceframe"
)

func TestSmoothPathFreeSpace(t *testing.T) {
	allFree := func(referenceframe.Configuration) bool { return true }
	path := referenceframe.Path{{0, 0}, {1, 1}, {2, -1}, {3, 1}, {4, -1}, {5, 1}, {6, 0}}

	//nolint:gosec
	smoothed := SmoothPath(path, allFree, 0.2, 100, rand.New(rand.NewSource(1)))
	test.That(t, smoothed, test.ShouldResemble, referenceframe.Path{{0, 0}, {6, 0}})
	// the input is untouched
	test.That(t, path, test.ShouldHaveLength, 7)
	test.That(t, path[1], test.ShouldResemble, referenceframe.Configuration{1, 1})
}

func TestSmoothPathAroundSquare(t *testing.T) {
	logger := logging.NewTestLogger(t)
	opts := squareOptions()

	for seed := int64(1); seed <= 3; seed++ {
		path, err := DualRRTConnect(context.Background(), squareStart, squareGoal, squareIsFree, squareSampler(t, seed), opts, logger)
		test.That(t, err, test.ShouldBeNil)
		original := path.Clone()

		checks := 0
		countingIsFree := func(q referenceframe.Configuration) bool {
			checks++
			return squareIsFree(q)
		}
		//nolint:gosec
		smoothed := SmoothPath(path, countingIsFree, opts.StepSize, 100, rand.New(rand.NewSource(seed)))

		test.That(t, path, test.ShouldResemble, original)
		test.That(t, len(smoothed), test.ShouldBeLessThanOrEqualTo, len(path))
		// a straight line would cross the square
		test.That(t, len(smoothed), test.ShouldBeGreaterThanOrEqualTo, 3)
		test.That(t, smoothed.Length(), test.ShouldBeLessThanOrEqualTo, path.Length()+stepTolerance)
		test.That(t, smoothed[0], test.ShouldResemble, squareStart)
		test.That(t, smoothed[len(smoothed)-1], test.ShouldResemble, squareGoal)
		test.That(t, checks, test.ShouldBeGreaterThan, 0)

		for i := 1; i < len(smoothed); i++ {
			test.That(t, squareIsFree(smoothed[i]), test.ShouldBeTrue)
			test.That(t, checkPath(smoothed[i-1], smoothed[i], opts.StepSize, squareIsFree), test.ShouldBeTrue)
		}
	}
}

func TestSmoothPathShortInput(t *testing.T) {
	never := func(referenceframe.Configuration) bool { return false }
	path := referenceframe.Path{{0, 0}, {1, 1}}

	smoothed := SmoothPath(path, never, 0.2, 10, nil)
	test.That(t, smoothed, test.ShouldResemble, path)
	smoothed[0][0] = 4
	test.That(t, path[0][0], test.ShouldEqual, 0)

	// no shortcut is free, so nothing changes
	long := referenceframe.Path{{0, 0}, {1, 1}, {2, 0}, {3, 1}}
	test.That(t, SmoothPath(long, never, 0.2, 10, nil), test.ShouldResemble, long)

	test.That(t, func() { SmoothPath(long, never, 0, 10, nil) }, test.ShouldPanic)
}
