package motionplan

import (
	"fmt"
	"runtime"

	"go.uber.org/multierr"
)

// default values for planning options.
const (
	// Number of tree extensions to attempt before giving up.
	defaultPlanIter = 5000

	// Percentage interval of max iterations after which to print debug logs.
	defaultLoggingInterval = 0.1

	// default number of seconds to try to solve in total before returning.
	defaultTimeout = 300.

	// default seed for the uniform sampler.
	defaultRandomSeed = 1
)

var defaultNumThreads = runtime.NumCPU() / 2

// NewBasicPlannerOptions sets the three required planning parameters and fills in
// reasonable defaults for everything else.
func NewBasicPlannerOptions(stepSize, goalThreshold, searchRadius float64) *PlannerOptions {
	opt := &PlannerOptions{}
	opt.StepSize = stepSize
	opt.GoalThreshold = goalThreshold
	opt.SearchRadius = searchRadius

	// Set defaults
	opt.PlanIter = defaultPlanIter
	opt.LoggingInterval = defaultLoggingInterval
	opt.Timeout = defaultTimeout
	opt.RandomSeed = defaultRandomSeed
	opt.NumThreads = defaultNumThreads
	return opt
}

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve a motion planning problem.
type PlannerOptions struct {
	// Distance the tree is extended toward each sample.
	StepSize float64 `json:"step_size"`

	// A node strictly closer to the goal than this completes a path.
	GoalThreshold float64 `json:"goal_threshold"`

	// Radius around a new node within which existing nodes are considered for rewiring.
	SearchRadius float64 `json:"search_radius"`

	// Max number of tree extensions to attempt.
	PlanIter int `json:"plan_iter"`

	// Percentage interval of max iterations after which to print debug logs
	LoggingInterval float64 `json:"logging_interval"`

	// Number of seconds before terminating planner
	Timeout float64 `json:"timeout"`

	// Seed for the default uniform sampler. Ignored when Sampler is set.
	RandomSeed int `json:"random_seed"`

	// Number of cpu cores to use
	NumThreads int `json:"num_threads"`

	// Maintain an R-tree over node positions to accelerate neighborhood queries
	SpatialIndex bool `json:"spatial_index"`

	// Source of the points the tree is grown toward. Defaults to a uniform sampler
	// seeded with RandomSeed.
	Sampler Sampler `json:"-"`
}

func (p *PlannerOptions) validate() error {
	var errAll error
	if p.StepSize <= 0 {
		multierr.AppendInto(&errAll, fmt.Errorf("step_size %.5f must be a positive number", p.StepSize))
	}
	if p.GoalThreshold <= 0 {
		multierr.AppendInto(&errAll, fmt.Errorf("goal_threshold %.5f must be a positive number", p.GoalThreshold))
	}
	if p.SearchRadius <= 0 {
		multierr.AppendInto(&errAll, fmt.Errorf("search_radius %.5f must be a positive number", p.SearchRadius))
	}
	return errAll
}
