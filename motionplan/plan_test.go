package motionplan

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/referenceframe"
	"go.viam.com/rrt/spatialmath"
)

func squareRequest(t *testing.T, algorithm Algorithm) *PlanRequest {
	t.Helper()
	square, err := spatialmath.NewBox(r3.Vector{}, r3.Vector{X: 1.9, Y: 1.9}, "square")
	test.That(t, err, test.ShouldBeNil)

	opts := squareOptions()
	opts.Algorithm = algorithm
	opts.PlanIter = 3000
	opts.RandomSeed = 3
	return &PlanRequest{
		Start:     squareStart,
		Goal:      squareGoal,
		Limits:    squareLimits,
		Obstacles: []spatialmath.Geometry{square},
		Options:   opts,
	}
}

func TestPlan(t *testing.T) {
	for _, algorithm := range []Algorithm{RRTConnectAlgorithm, RRTStarAlgorithm} {
		t.Run(string(algorithm), func(t *testing.T) {
			logger := logging.NewTestLogger(t)
			req := squareRequest(t, algorithm)

			res, err := Plan(context.Background(), req, logger)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, res.Path[0], test.ShouldResemble, squareStart)
			test.That(t, res.Path[len(res.Path)-1], test.ShouldResemble, squareGoal)
			test.That(t, len(res.Path), test.ShouldBeLessThanOrEqualTo, res.Meta.RawWaypoints)
			test.That(t, res.Cost, test.ShouldBeLessThanOrEqualTo, res.Meta.RawLength+stepTolerance)
			test.That(t, res.Meta.Algorithm, test.ShouldEqual, algorithm)
			test.That(t, res.Meta.Checks, test.ShouldBeGreaterThan, 0)
			test.That(t, res.Meta.Failures, test.ShouldBeLessThan, res.Meta.Checks)

			handler, err := req.newConstraintHandler()
			test.That(t, err, test.ShouldBeNil)
			for i := 1; i < len(res.Path); i++ {
				test.That(t, handler.IsFree(res.Path[i]), test.ShouldBeTrue)
				test.That(t, checkPath(res.Path[i-1], res.Path[i], req.Options.StepSize, handler.IsFree), test.ShouldBeTrue)
			}

			if algorithm == RRTConnectAlgorithm {
				test.That(t, res.Trees, test.ShouldHaveLength, 2)
			} else {
				test.That(t, res.Trees, test.ShouldHaveLength, 1)
			}
		})
	}
}

func TestPlanLogsAreTagged(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	req := squareRequest(t, RRTStarAlgorithm)
	req.Options.LoggingInterval = 0.25
	req.Options.StopWhenReachGoal = false
	req.Options.PlanIter = 400

	_, err := Plan(context.Background(), req, logger)
	// the budget may be too small to reach the goal; only the logs matter here
	if err != nil {
		test.That(t, errors.Is(err, ErrPlannerFailed), test.ShouldBeTrue)
	}

	progress := logs.FilterMessage("RRT* progress").All()
	test.That(t, progress, test.ShouldHaveLength, 4)
	for i, entry := range progress {
		fields := entry.ContextMap()
		test.That(t, fields["algorithm"], test.ShouldEqual, "rrtstar")
		test.That(t, fields["percent"], test.ShouldEqual, int64(25*(i+1)))
		test.That(t, fields["nodes"], test.ShouldBeGreaterThan, int64(0))
	}
}

func TestPlanIsReproducible(t *testing.T) {
	logger := logging.NewTestLogger(t)
	first, err := Plan(context.Background(), squareRequest(t, RRTConnectAlgorithm), logger)
	test.That(t, err, test.ShouldBeNil)
	second, err := Plan(context.Background(), squareRequest(t, RRTConnectAlgorithm), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second.Path, test.ShouldResemble, first.Path)
}

func TestPlanInvalidRequest(t *testing.T) {
	logger := logging.NewTestLogger(t)
	ctx := context.Background()

	req := squareRequest(t, RRTConnectAlgorithm)
	req.Limits = req.Limits[:1]
	_, err := Plan(ctx, req, logger)
	test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)

	req = squareRequest(t, RRTConnectAlgorithm)
	req.Limits = []referenceframe.Limit{{Min: 2, Max: -2}, {Min: -2, Max: 2}}
	_, err = Plan(ctx, req, logger)
	test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)

	req = squareRequest(t, RRTConnectAlgorithm)
	req.RobotRadius = -1
	_, err = Plan(ctx, req, logger)
	test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)

	req = squareRequest(t, RRTConnectAlgorithm)
	req.Options = nil
	req.Goal = referenceframe.Configuration{0, 0}
	_, err = Plan(ctx, req, logger)
	test.That(t, errors.Is(err, ErrPlannerFailed), test.ShouldBeTrue)
	// defaults were used without being written back into the request
	test.That(t, req.Options, test.ShouldBeNil)
}
