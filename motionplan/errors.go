package motionplan

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	// ErrPlannerFailed is returned when a planner uses its whole iteration budget without finding a path.
	ErrPlannerFailed = errors.New("motion planner failed to find path")

	// ErrInvalidInput is returned when a planning call is made with arguments it cannot run with.
	ErrInvalidInput = errors.New("invalid planner input")
)

// NewPlannerFailedError returns an error wrapping ErrPlannerFailed that records the spent budget.
func NewPlannerFailedError(planIter int) error {
	return errors.Wrapf(ErrPlannerFailed, "no solution within %d iterations", planIter)
}

// newInvalidInputError marks err as an input error. Both errors remain matchable with errors.Is.
func newInvalidInputError(err error) error {
	return multierr.Combine(ErrInvalidInput, err)
}

func newInvalidInputErrorf(format string, args ...interface{}) error {
	return newInvalidInputError(errors.Errorf(format, args...))
}
