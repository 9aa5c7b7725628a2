package motionplan

import (
	"math/rand"

	"github.com/pkg/errors"

	"go.viam.com/rrt/referenceframe"
)

// NewUniformSampler returns a SampleFunc drawing uniformly within the limits from randseed.
func NewUniformSampler(limits []referenceframe.Limit, randseed *rand.Rand) (SampleFunc, error) {
	if len(limits) == 0 {
		return nil, errors.New("cannot sample from a space with no limits")
	}
	for i, lim := range limits {
		if lim.Min > lim.Max {
			return nil, referenceframe.NewInvalidLimitError(i, lim)
		}
	}
	if randseed == nil {
		//nolint:gosec
		randseed = rand.New(rand.NewSource(1))
	}
	return func() referenceframe.Configuration {
		return referenceframe.RandomConfiguration(limits, randseed)
	}, nil
}
