package motionplan

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/referenceframe"
)

// RRTStarResult is the tree grown by RRTStar and, if it was connected, the goal node.
type RRTStarResult struct {
	Tree      *Tree
	GoalID    int
	GoalFound bool
}

// Path returns the configurations from start to goal, or an error wrapping ErrPlannerFailed if the
// goal was never connected.
func (res *RRTStarResult) Path() (referenceframe.Path, error) {
	if !res.GoalFound {
		return nil, errors.Wrap(ErrPlannerFailed, "goal was not reached")
	}
	return res.Tree.PathFromRoot(res.GoalID)
}

// Cost returns the recorded cost of the goal node, or +Inf if it was never connected.
func (res *RRTStarResult) Cost() float64 {
	if !res.GoalFound {
		return math.Inf(1)
	}
	return res.Tree.Cost(res.GoalID)
}

// RRTStar grows a single tree from start. Every new node is attached to whichever neighbor within
// NeighborhoodRadius gives it the cheapest path to the root, and neighbors that become cheaper to
// reach through the new node are rewired to it. Edge costs are Euclidean distances and recorded
// costs always equal the length of the parent chain to the root.
//
// The goal is added the first time a new node lands within StepSize of it. With StopWhenReachGoal
// the search returns then, and fails with ErrPlannerFailed if it never happens. Otherwise the whole
// budget is spent and the result must be checked for GoalFound. The goal node stays in the tree's
// index, so later rewiring can still lower its cost.
//
// As with DualRRTConnect, bad inputs are reported as errors wrapping ErrInvalidInput and never
// panic. Only Steer and SmoothPath panic on a non-positive step size.
func RRTStar(
	ctx context.Context,
	start, goal referenceframe.Configuration,
	isFree IsFreeFunc,
	sample SampleFunc,
	opts *PlannerOptions,
	logger logging.Logger,
) (*RRTStarResult, error) {
	if err := validateEndpoints(start, goal, opts); err != nil {
		return nil, err
	}
	dim := len(start)

	tree, err := newTree(dim, opts.NearestNeighbor)
	if err != nil {
		return nil, err
	}
	if _, err := tree.addVertex(start, 0); err != nil {
		return nil, err
	}
	res := &RRTStarResult{Tree: tree, GoalID: noParent}

	logger.CDebugf(ctx, "RRT* planning from %v to %v", start, goal)
	logIteration := opts.logIteration()

	for i := 1; i <= opts.PlanIter; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		target, err := drawSample(sample, dim)
		if err != nil {
			return nil, err
		}
		id, err := tree.extendStar(target, opts, isFree)
		if err != nil {
			return nil, err
		}

		if id != noParent && !res.GoalFound && tree.config(id).Distance(goal) < opts.StepSize && isFree(goal) {
			goalID, err := tree.addVertex(goal, tree.Cost(id)+tree.config(id).Distance(goal))
			if err != nil {
				return nil, err
			}
			tree.setParent(goalID, id)
			res.GoalID = goalID
			res.GoalFound = true
			logger.CDebugw(ctx, "RRT* reached goal", "iterations", i, "cost", res.Cost(), "nodes", tree.Len())
			if opts.StopWhenReachGoal {
				return res, nil
			}
		}

		// log status of planner to periodically inform user
		if logIteration > 0 && i%logIteration == 0 {
			logger.CDebugw(ctx, "RRT* progress",
				"percent", 100*i/opts.PlanIter,
				"nodes", tree.Len(),
				"goal_found", res.GoalFound,
				"path_cost", res.Cost(),
			)
		}
	}

	if opts.StopWhenReachGoal {
		logger.CDebugw(ctx, "RRT* exhausted iteration budget", "iterations", opts.PlanIter, "nodes", tree.Len())
		return nil, NewPlannerFailedError(opts.PlanIter)
	}
	return res, nil
}

// extendStar steers from the nearest node toward target and, if the candidate is free, inserts it
// under its cheapest reachable neighbor and rewires the neighborhood through it. It returns the new
// node's id, or noParent if the candidate was not free.
func (t *Tree) extendStar(target referenceframe.Configuration, opts *PlannerOptions, isFree IsFreeFunc) (int, error) {
	nearID := t.nearest(target)
	candidate := Steer(t.config(nearID), target, opts.StepSize)
	if !isFree(candidate) {
		return noParent, nil
	}
	neighbors := t.near(candidate, opts.NeighborhoodRadius)

	// the nearest node is within one step, so its edge needs no further checking
	parentID := nearID
	minCost := t.Cost(nearID) + t.config(nearID).Distance(candidate)
	for _, n := range neighbors {
		if n == nearID {
			continue
		}
		cost := t.Cost(n) + t.config(n).Distance(candidate)
		if cost < minCost && checkPath(t.config(n), candidate, opts.StepSize, isFree) {
			parentID = n
			minCost = cost
		}
	}

	id, err := t.addVertex(candidate, minCost)
	if err != nil {
		return noParent, err
	}
	t.setParent(id, parentID)

	// rewire the tree
	for _, n := range neighbors {
		if n == parentID {
			continue
		}
		cost := minCost + candidate.Distance(t.config(n))
		if cost < t.Cost(n) && !t.isAncestor(n, id) && checkPath(candidate, t.config(n), opts.StepSize, isFree) {
			t.rewire(n, id, cost)
		}
	}
	return id, nil
}
