package motionplan

import (
	"go.viam.com/rrt/referenceframe"
)

// extendStatus is the outcome of growing a tree by one step.
type extendStatus int

const (
	// trapped means the candidate was not free and the tree is unchanged.
	trapped extendStatus = iota
	// advanced means a node was added but the target is still more than a step away.
	advanced
	// reached means a node was added within a step of the target.
	reached
)

func (s extendStatus) String() string {
	switch s {
	case advanced:
		return "advanced"
	case reached:
		return "reached"
	default:
		return "trapped"
	}
}

// extend grows the tree by at most one step from its nearest node toward target. The returned id
// is the new node, or noParent when trapped.
func (t *Tree) extend(target referenceframe.Configuration, stepSize float64, isFree IsFreeFunc) (extendStatus, int, error) {
	nearID := t.nearest(target)
	candidate := Steer(t.config(nearID), target, stepSize)
	if !isFree(candidate) {
		return trapped, noParent, nil
	}
	id, err := t.addVertex(candidate, 0)
	if err != nil {
		return trapped, noParent, err
	}
	t.setParent(id, nearID)
	if candidate.Distance(target) < stepSize {
		return reached, id, nil
	}
	return advanced, id, nil
}

// connect extends toward target until it is reached or the tree is trapped. Every advance brings
// the tree a full step closer, so the loop terminates.
func (t *Tree) connect(target referenceframe.Configuration, stepSize float64, isFree IsFreeFunc) (extendStatus, int, error) {
	for {
		status, id, err := t.extend(target, stepSize, isFree)
		if err != nil || status != advanced {
			return status, id, err
		}
	}
}

// validateEndpoints checks what every planner requires of its inputs.
func validateEndpoints(start, goal referenceframe.Configuration, opts *PlannerOptions) error {
	if len(start) == 0 {
		return newInvalidInputError(referenceframe.NewEmptyConfigurationError("start"))
	}
	if len(goal) != len(start) {
		return newInvalidInputError(referenceframe.NewIncorrectDimensionError(len(goal), len(start)))
	}
	if opts == nil {
		return newInvalidInputErrorf("planner options are nil")
	}
	return opts.Validate()
}

// drawSample calls sample and checks the result fits the planning space.
func drawSample(sample SampleFunc, dim int) (referenceframe.Configuration, error) {
	q := sample()
	if len(q) != dim {
		return nil, newInvalidInputError(referenceframe.NewIncorrectDimensionError(len(q), dim))
	}
	return q, nil
}
