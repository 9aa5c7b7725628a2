package motionplan

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/referenceframe"
	"go.viam.com/rrt/spatialmath"
)

// PlanRequest describes a planning problem over a box-bounded space with geometric obstacles.
type PlanRequest struct {
	Start  referenceframe.Configuration
	Goal   referenceframe.Configuration
	Limits []referenceframe.Limit

	// Obstacles are tested against a ball of RobotRadius at the first two or three coordinates.
	Obstacles       []spatialmath.Geometry
	RobotRadius     float64
	CollisionBuffer float64

	// Options default to NewBasicPlannerOptions when nil.
	Options *PlannerOptions
}

// PlanMeta is meta data about plan generation.
type PlanMeta struct {
	Duration     time.Duration
	Algorithm    Algorithm
	RawWaypoints int
	RawLength    float64
	Checks       int
	Failures     int
}

// PlanResult is a solved PlanRequest. Trees are the search trees, for inspection and plotting.
type PlanResult struct {
	Path  referenceframe.Path
	Cost  float64
	Trees []*Tree
	Meta  PlanMeta
}

// validate checks the request and returns the options to plan with. The request is not modified.
func (req *PlanRequest) validate() (*PlannerOptions, error) {
	opts := req.Options
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(req.Limits) != len(req.Start) {
		return nil, newInvalidInputError(
			errors.Wrap(referenceframe.NewIncorrectDimensionError(len(req.Start), len(req.Limits)), "start does not match limits"))
	}
	for i, lim := range req.Limits {
		if lim.Min > lim.Max {
			return nil, newInvalidInputError(referenceframe.NewInvalidLimitError(i, lim))
		}
	}
	return opts, nil
}

// newConstraintHandler builds the feasibility predicate for the request.
func (req *PlanRequest) newConstraintHandler() (*ConstraintHandler, error) {
	handler := NewConstraintHandler()
	handler.AddConstraint(defaultLimitsConstraintName, NewLimitsConstraint(req.Limits))
	if len(req.Obstacles) > 0 {
		obstacleConstraint, err := NewObstacleConstraint(req.Obstacles, req.RobotRadius, req.CollisionBuffer)
		if err != nil {
			return nil, newInvalidInputError(err)
		}
		handler.AddConstraint(defaultObstacleConstraintName, obstacleConstraint)
	}
	return handler, nil
}

// Plan solves the request with the configured algorithm, then smooths the path if SmoothIter is
// positive. All randomness comes from a source seeded with RandomSeed.
func Plan(ctx context.Context, req *PlanRequest, logger logging.Logger) (*PlanResult, error) {
	start := time.Now()
	opts, err := req.validate()
	if err != nil {
		return nil, err
	}
	logger = logger.With("algorithm", string(opts.Algorithm))

	handler, err := req.newConstraintHandler()
	if err != nil {
		return nil, err
	}
	//nolint:gosec
	randseed := rand.New(rand.NewSource(opts.RandomSeed))
	sample, err := NewUniformSampler(req.Limits, randseed)
	if err != nil {
		return nil, newInvalidInputError(err)
	}

	if failed := handler.CheckConstraints(req.Start); len(failed) > 0 {
		logger.Warnw("start violates constraints", "start", req.Start.String(), "constraints", failed)
	}

	res := &PlanResult{Meta: PlanMeta{Algorithm: opts.Algorithm}}
	switch opts.Algorithm {
	case RRTStarAlgorithm:
		starRes, err := RRTStar(ctx, req.Start, req.Goal, handler.IsFree, sample, opts, logger)
		if err != nil {
			return nil, err
		}
		res.Trees = []*Tree{starRes.Tree}
		if res.Path, err = starRes.Path(); err != nil {
			return nil, err
		}
	default:
		connectRes, err := dualRRTConnect(ctx, req.Start, req.Goal, handler.IsFree, sample, opts, logger)
		if err != nil {
			return nil, err
		}
		res.Trees = []*Tree{connectRes.startTree, connectRes.goalTree}
		res.Path = connectRes.path
	}
	res.Meta.RawWaypoints = len(res.Path)
	res.Meta.RawLength = res.Path.Length()

	if opts.SmoothIter > 0 {
		res.Path = SmoothPath(res.Path, handler.IsFree, opts.StepSize, opts.SmoothIter, randseed)
		logger.CDebugw(ctx, "smoothed path",
			"raw_waypoints", res.Meta.RawWaypoints,
			"raw_length", res.Meta.RawLength,
			"waypoints", len(res.Path),
			"length", res.Path.Length(),
		)
	}
	res.Cost = res.Path.Length()
	res.Meta.Checks, res.Meta.Failures = handler.Checks()
	res.Meta.Duration = time.Since(start)
	return res, nil
}
