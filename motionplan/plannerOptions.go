package motionplan

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// default values for planning options.
const (
	// Maximum distance a tree may grow toward a sample in one extension.
	defaultStepSize = 0.1

	// Number of planner iterations before giving up.
	defaultPlanIter = 1000

	// Radius of the neighborhood considered for choosing parents and rewiring in RRT*.
	defaultNeighborhoodRadius = 0.5

	// default number of times to try to smooth the path.
	defaultSmoothIter = 100

	// Fraction of the iteration budget between progress log lines.
	defaultLoggingInterval = 0.1

	// default random seed.
	defaultRandomSeed = 0
)

// Algorithm names a planning algorithm.
type Algorithm string

// The set of supported planning algorithms.
const (
	RRTConnectAlgorithm = Algorithm("rrtconnect")
	RRTStarAlgorithm    = Algorithm("rrtstar")
)

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve a
// motion planning problem. Zero values are replaced with defaults by NewPlannerOptionsFromExtra.
type PlannerOptions struct {
	// Which planner to run.
	Algorithm Algorithm `json:"algorithm"`

	// Maximum length of a single tree edge, and the resolution at which edges are collision checked.
	StepSize float64 `json:"step_size"`

	// Number of planner iterations before giving up.
	PlanIter int `json:"plan_iter"`

	// Radius of the neighborhood considered for choosing parents and rewiring in RRT*.
	NeighborhoodRadius float64 `json:"neighborhood_radius"`

	// If true, RRT* returns as soon as the goal is connected, and fails if it never is.
	StopWhenReachGoal bool `json:"stop_when_reach_goal"`

	// Number of shortcut attempts made on a found path. Zero disables smoothing.
	SmoothIter int `json:"smooth_iter"`

	// Which nearest neighbor index backs the trees.
	NearestNeighbor NearestNeighborKind `json:"nearest_neighbor"`

	// Fraction of PlanIter between debug progress logs. Zero disables progress logs.
	LoggingInterval float64 `json:"logging_interval"`

	// Seed for the planner's random source.
	RandomSeed int64 `json:"rseed"`
}

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		Algorithm:          RRTConnectAlgorithm,
		StepSize:           defaultStepSize,
		PlanIter:           defaultPlanIter,
		NeighborhoodRadius: defaultNeighborhoodRadius,
		StopWhenReachGoal:  true,
		SmoothIter:         defaultSmoothIter,
		NearestNeighbor:    KDTreeIndex,
		LoggingInterval:    defaultLoggingInterval,
		RandomSeed:         defaultRandomSeed,
	}
}

// NewPlannerOptionsFromExtra decodes free-form options, as found in request extras or problem files,
// over the defaults. Unknown keys are an error.
func NewPlannerOptionsFromExtra(extra map[string]interface{}) (*PlannerOptions, error) {
	opts := NewBasicPlannerOptions()
	if len(extra) == 0 {
		return opts, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating decoder for planner options")
	}
	if err := decoder.Decode(extra); err != nil {
		return nil, errors.Wrap(err, "error decoding planner options")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate returns an error wrapping ErrInvalidInput describing every invalid option.
func (opts *PlannerOptions) Validate() error {
	var errs error
	switch opts.Algorithm {
	case RRTConnectAlgorithm, RRTStarAlgorithm:
	default:
		errs = multierr.Append(errs, errors.Errorf("unknown algorithm %q", opts.Algorithm))
	}
	if opts.StepSize <= 0 {
		errs = multierr.Append(errs, errors.Errorf("step_size must be positive, got %v", opts.StepSize))
	}
	if opts.PlanIter <= 0 {
		errs = multierr.Append(errs, errors.Errorf("plan_iter must be positive, got %d", opts.PlanIter))
	}
	if opts.NeighborhoodRadius < 0 {
		errs = multierr.Append(errs, errors.Errorf("neighborhood_radius must not be negative, got %v", opts.NeighborhoodRadius))
	}
	if opts.SmoothIter < 0 {
		errs = multierr.Append(errs, errors.Errorf("smooth_iter must not be negative, got %d", opts.SmoothIter))
	}
	if opts.LoggingInterval < 0 || opts.LoggingInterval > 1 {
		errs = multierr.Append(errs, errors.Errorf("logging_interval must be within [0, 1], got %v", opts.LoggingInterval))
	}
	if _, err := opts.NearestNeighbor.validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return newInvalidInputError(errs)
	}
	return nil
}

// logIteration returns the number of iterations between progress logs, or 0 if they are disabled.
func (opts *PlannerOptions) logIteration() int {
	return int(float64(opts.PlanIter) * opts.LoggingInterval)
}
