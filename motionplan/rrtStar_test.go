package motionplan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/referenceframe"
)

func TestRRTStarAroundSquare(t *testing.T) {
	for _, kind := range allIndexKinds {
		t.Run(string(kind), func(t *testing.T) {
			logger := logging.NewTestLogger(t)
			opts := squareOptions()
			opts.NearestNeighbor = kind
			opts.StopWhenReachGoal = true
			// a single tree needs more samples than two to get around the square
			opts.PlanIter = 3000

			res, err := RRTStar(context.Background(), squareStart, squareGoal, squareIsFree, squareSampler(t, 1), opts, logger)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, res.GoalFound, test.ShouldBeTrue)
			test.That(t, res.Tree.Configuration(res.GoalID), test.ShouldResemble, squareGoal)

			path, err := res.Path()
			test.That(t, err, test.ShouldBeNil)
			test.That(t, path[0], test.ShouldResemble, squareStart)
			test.That(t, path[len(path)-1], test.ShouldResemble, squareGoal)
			test.That(t, math.IsInf(path.Length(), 0), test.ShouldBeFalse)
			test.That(t, res.Cost(), test.ShouldAlmostEqual, path.Length(), 1e-6)

			for i := 1; i < len(path); i++ {
				test.That(t, squareIsFree(path[i]), test.ShouldBeTrue)
				test.That(t, checkPath(path[i-1], path[i], opts.StepSize, squareIsFree), test.ShouldBeTrue)
			}
		})
	}
}

func TestRRTStarAroundSquareDefaultBudget(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			logger := logging.NewTestLogger(t)
			opts := squareOptions()
			opts.StopWhenReachGoal = true
			test.That(t, opts.PlanIter, test.ShouldEqual, 1000)

			res, err := RRTStar(context.Background(), squareStart, squareGoal, squareIsFree, squareSampler(t, seed), opts, logger)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, res.GoalFound, test.ShouldBeTrue)
			path, err := res.Path()
			test.That(t, err, test.ShouldBeNil)
			test.That(t, math.IsInf(res.Cost(), 0), test.ShouldBeFalse)
			for i := 1; i < len(path); i++ {
				test.That(t, checkPath(path[i-1], path[i], opts.StepSize, squareIsFree), test.ShouldBeTrue)
			}
		})
	}
}

func TestRRTStarCostsMatchParentChains(t *testing.T) {
	logger := logging.NewTestLogger(t)
	opts := squareOptions()
	opts.StopWhenReachGoal = false

	res, err := RRTStar(context.Background(), squareStart, squareGoal, squareIsFree, squareSampler(t, 2), opts, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Tree.Len(), test.ShouldBeGreaterThan, 1)
	for id := 0; id < res.Tree.Len(); id++ {
		test.That(t, res.Tree.Cost(id), test.ShouldAlmostEqual, chainCost(res.Tree, id), 1e-6)
		test.That(t, squareIsFree(res.Tree.Configuration(id)), test.ShouldBeTrue)
	}
	if res.GoalFound {
		test.That(t, res.Cost(), test.ShouldAlmostEqual, chainCost(res.Tree, res.GoalID), 1e-6)
	}
}

func TestRRTStarRewireNeverRaisesCost(t *testing.T) {
	opts := squareOptions()
	tree, err := newTree(2, KDTreeIndex)
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.addVertex(squareStart, 0)
	test.That(t, err, test.ShouldBeNil)

	sample := squareSampler(t, 4)
	for i := 0; i < 500; i++ {
		before := make([]float64, tree.Len())
		for id := range before {
			before[id] = tree.Cost(id)
		}
		_, err := tree.extendStar(sample(), opts, squareIsFree)
		test.That(t, err, test.ShouldBeNil)
		for id, cost := range before {
			test.That(t, tree.Cost(id), test.ShouldBeLessThanOrEqualTo, cost+stepTolerance)
		}
	}
	for id := 0; id < tree.Len(); id++ {
		test.That(t, tree.Cost(id), test.ShouldAlmostEqual, chainCost(tree, id), 1e-6)
	}
}

func TestRRTStarChoosesCheapestParent(t *testing.T) {
	allFree := func(referenceframe.Configuration) bool { return true }
	opts := squareOptions()
	opts.StepSize = 1
	opts.NeighborhoodRadius = 2

	tree, err := newTree(2, LinearIndex)
	test.That(t, err, test.ShouldBeNil)
	root, _ := tree.addVertex(referenceframe.Configuration{0, 0}, 0)
	// an expensive node close to where the next sample lands
	far, _ := tree.addVertex(referenceframe.Configuration{1.5, 1}, 10)
	tree.setParent(far, root)

	id, err := tree.extendStar(referenceframe.Configuration{1.5, 0.5}, opts, allFree)
	test.That(t, err, test.ShouldBeNil)
	parent, _ := tree.Parent(id)
	test.That(t, parent, test.ShouldEqual, root)
	test.That(t, tree.Cost(id), test.ShouldAlmostEqual, math.Hypot(1.5, 0.5))

	// the expensive node is now cheaper through the new node
	parent, _ = tree.Parent(far)
	test.That(t, parent, test.ShouldEqual, id)
	test.That(t, tree.Cost(far), test.ShouldAlmostEqual, math.Hypot(1.5, 0.5)+0.5)
}

func TestRRTStarWithoutGoalContact(t *testing.T) {
	logger := logging.NewTestLogger(t)
	opts := squareOptions()
	opts.PlanIter = 50
	inside := referenceframe.Configuration{0, 0}

	opts.StopWhenReachGoal = true
	_, err := RRTStar(context.Background(), squareStart, inside, squareIsFree, squareSampler(t, 1), opts, logger)
	test.That(t, errors.Is(err, ErrPlannerFailed), test.ShouldBeTrue)

	opts.StopWhenReachGoal = false
	res, err := RRTStar(context.Background(), squareStart, inside, squareIsFree, squareSampler(t, 1), opts, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.GoalFound, test.ShouldBeFalse)
	test.That(t, math.IsInf(res.Cost(), 1), test.ShouldBeTrue)
	_, err = res.Path()
	test.That(t, errors.Is(err, ErrPlannerFailed), test.ShouldBeTrue)
}

func TestRRTStarInvalidInput(t *testing.T) {
	logger := logging.NewTestLogger(t)
	ctx := context.Background()

	for i, opts := range []*PlannerOptions{
		{Algorithm: RRTStarAlgorithm, StepSize: 0, PlanIter: 10},
		{Algorithm: RRTStarAlgorithm, StepSize: 0.1, PlanIter: 0},
		{Algorithm: RRTStarAlgorithm, StepSize: 0.1, PlanIter: 10, NeighborhoodRadius: -1},
	} {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := RRTStar(ctx, squareStart, squareGoal, squareIsFree, squareSampler(t, 1), opts, logger)
			test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)
		})
	}

	_, err := RRTStar(ctx, squareStart, referenceframe.Configuration{1}, squareIsFree, squareSampler(t, 1), squareOptions(), logger)
	test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)

	// preconditions come back as errors, never as panics
	badSample := func() referenceframe.Configuration { return referenceframe.Configuration{0, 0, 0} }
	for _, call := range []func() error{
		func() error {
			_, err := RRTStar(ctx, squareStart, squareGoal, squareIsFree, squareSampler(t, 1), nil, logger)
			return err
		},
		func() error {
			_, err := RRTStar(ctx, squareStart, squareGoal, squareIsFree, badSample, squareOptions(), logger)
			return err
		},
		func() error {
			_, err := DualRRTConnect(ctx, squareStart, squareGoal, squareIsFree, squareSampler(t, 1), nil, logger)
			return err
		},
	} {
		test.That(t, func() { err = call() }, test.ShouldNotPanic)
		test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)
	}
}
