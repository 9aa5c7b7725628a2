package motionplan

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rrt/referenceframe"
	"go.viam.com/rrt/spatialmath"
)

// names of constraints.
const (
	defaultObstacleConstraintName = "defaultObstacleConstraint"
	defaultLimitsConstraintName   = "defaultLimitsConstraint"
)

// Constraint returns true if the configuration satisfies it.
type Constraint func(q referenceframe.Configuration) bool

// ConstraintHandler is a convenient wrapper for constraint handling. Its IsFree method is the
// feasibility predicate handed to the planners.
type ConstraintHandler struct {
	constraints map[string]Constraint
	checks      int
	failures    int
}

// NewConstraintHandler returns a handler with no constraints, under which everything is free.
func NewConstraintHandler() *ConstraintHandler {
	return &ConstraintHandler{constraints: map[string]Constraint{}}
}

// AddConstraint will add or overwrite a constraint function with a given name.
func (c *ConstraintHandler) AddConstraint(name string, cons Constraint) {
	if c.constraints == nil {
		c.constraints = map[string]Constraint{}
	}
	c.constraints[name] = cons
}

// RemoveConstraint will remove the given constraint.
func (c *ConstraintHandler) RemoveConstraint(name string) {
	delete(c.constraints, name)
}

// Constraints will list all constraints by name, sorted.
func (c *ConstraintHandler) Constraints() []string {
	names := lo.Keys(c.constraints)
	sort.Strings(names)
	return names
}

// CheckConstraints will check a given configuration against all constraints and return the names of
// the ones it fails.
func (c *ConstraintHandler) CheckConstraints(q referenceframe.Configuration) []string {
	var failed []string
	for _, name := range c.Constraints() {
		if !c.constraints[name](q) {
			failed = append(failed, name)
		}
	}
	return failed
}

// IsFree returns true if q passes every constraint. It counts its calls.
func (c *ConstraintHandler) IsFree(q referenceframe.Configuration) bool {
	c.checks++
	for _, cons := range c.constraints {
		if !cons(q) {
			c.failures++
			return false
		}
	}
	return true
}

// Checks returns how many configurations IsFree has been asked about, and how many failed.
func (c *ConstraintHandler) Checks() (int, int) {
	return c.checks, c.failures
}

// NewLimitsConstraint returns a constraint satisfied by configurations within the limits.
func NewLimitsConstraint(limits []referenceframe.Limit) Constraint {
	return func(q referenceframe.Configuration) bool {
		return referenceframe.ConfigurationInLimits(q, limits)
	}
}

// NewObstacleConstraint returns a constraint for a ball of robotRadius centered on the first two or
// three coordinates of the configuration. The ball is free when its surface is more than
// collisionBuffer away from every obstacle.
func NewObstacleConstraint(obstacles []spatialmath.Geometry, robotRadius, collisionBuffer float64) (Constraint, error) {
	if robotRadius < 0 {
		return nil, errors.Errorf("robot radius must not be negative, got %v", robotRadius)
	}
	if collisionBuffer < 0 {
		return nil, errors.Errorf("collision buffer must not be negative, got %v", collisionBuffer)
	}
	return func(q referenceframe.Configuration) bool {
		pt := spatialmath.PointFromCoordinates(q)
		for _, obs := range obstacles {
			if obs.CollidesWithPoint(pt, robotRadius+collisionBuffer) {
				return false
			}
		}
		return true
	}, nil
}
