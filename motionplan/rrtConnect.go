package motionplan

import (
	"context"

	"github.com/samber/lo"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/referenceframe"
)

// treeRole records which endpoint a tree is rooted at. It travels with the tree through swaps.
type treeRole int

const (
	startSide treeRole = iota
	goalSide
)

func (r treeRole) String() string {
	if r == startSide {
		return "start"
	}
	return "goal"
}

type roleTree struct {
	*Tree
	role treeRole
}

// rrtConnectResult holds a found path and the trees grown to find it.
type rrtConnectResult struct {
	path       referenceframe.Path
	startTree  *Tree
	goalTree   *Tree
	iterations int
}

// DualRRTConnect grows one tree from start and one from goal, alternately extending one toward a
// random sample and connecting the other to the new node, until the trees meet. The returned path
// runs from start to goal. If PlanIter iterations pass without the trees meeting, the error wraps
// ErrPlannerFailed.
//
// Bad inputs, such as mismatched dimensions or invalid options, are returned as errors wrapping
// ErrInvalidInput rather than panics. Steer and SmoothPath do panic on a non-positive step size.
func DualRRTConnect(
	ctx context.Context,
	start, goal referenceframe.Configuration,
	isFree IsFreeFunc,
	sample SampleFunc,
	opts *PlannerOptions,
	logger logging.Logger,
) (referenceframe.Path, error) {
	res, err := dualRRTConnect(ctx, start, goal, isFree, sample, opts, logger)
	if err != nil {
		return nil, err
	}
	return res.path, nil
}

func dualRRTConnect(
	ctx context.Context,
	start, goal referenceframe.Configuration,
	isFree IsFreeFunc,
	sample SampleFunc,
	opts *PlannerOptions,
	logger logging.Logger,
) (*rrtConnectResult, error) {
	if err := validateEndpoints(start, goal, opts); err != nil {
		return nil, err
	}
	dim := len(start)

	startTree, err := newTree(dim, opts.NearestNeighbor)
	if err != nil {
		return nil, err
	}
	goalTree, err := newTree(dim, opts.NearestNeighbor)
	if err != nil {
		return nil, err
	}
	if _, err := startTree.addVertex(start, 0); err != nil {
		return nil, err
	}
	if _, err := goalTree.addVertex(goal, 0); err != nil {
		return nil, err
	}

	treeA, treeB := roleTree{startTree, startSide}, roleTree{goalTree, goalSide}

	logger.CDebugf(ctx, "RRT-Connect planning from %v to %v", start, goal)
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

		status, newID, err := treeA.extend(target, opts.StepSize, isFree)
		if err != nil {
			return nil, err
		}
		if status != trapped {
			bridge := treeA.config(newID)
			cstatus, reachedID, err := treeB.connect(bridge, opts.StepSize, isFree)
			if err != nil {
				return nil, err
			}
			if cstatus == reached {
				path := extractPath(treeA, treeB, newID, reachedID)
				logger.CDebugw(ctx, "RRT-Connect found path",
					"iterations", i,
					"waypoints", len(path),
					"start_tree_nodes", startTree.Len(),
					"goal_tree_nodes", goalTree.Len(),
				)
				return &rrtConnectResult{path: path, startTree: startTree, goalTree: goalTree, iterations: i}, nil
			}
		}

		// alternate which tree grows toward the next sample
		treeA, treeB = treeB, treeA

		// log status of planner to periodically inform user
		if logIteration > 0 && i%logIteration == 0 {
			logger.CDebugw(ctx, "RRT-Connect progress",
				"percent", 100*i/opts.PlanIter,
				"start_tree_nodes", startTree.Len(),
				"goal_tree_nodes", goalTree.Len(),
			)
		}
	}
	logger.CDebugw(ctx, "RRT-Connect exhausted iteration budget",
		"iterations", opts.PlanIter,
		"start_tree_nodes", startTree.Len(),
		"goal_tree_nodes", goalTree.Len(),
	)
	return nil, NewPlannerFailedError(opts.PlanIter)
}

// extractPath joins the branch of treeA ending at aID with the branch of treeB ending at bID, where
// the two nodes are within a step of each other. The result runs from start to goal.
func extractPath(treeA, treeB roleTree, aID, bID int) referenceframe.Path {
	path := lo.Reverse(treeA.pathToRoot(aID))
	bPath := treeB.pathToRoot(bID)

	// the connecting tree usually lands exactly on the bridging node; don't repeat it
	if treeA.config(aID).AlmostEqual(bPath[0], 0) {
		bPath = bPath[1:]
	}
	path = append(path, bPath...)

	if treeB.role == startSide {
		path = lo.Reverse(path)
	}
	return path.Clone()
}
