// Package motionplan is a motion planning library.
package motionplan

import (
	"context"

	"github.com/edaniels/golog"

	"github.com/openrover/rrtstar/spatialmath"
)

// CollisionPredicate reports whether a point lies in free space. Planners only add
// points for which it returns true.
type CollisionPredicate func(pt spatialmath.Point) bool

// AlwaysFree is a CollisionPredicate for planning in a world with no obstacles.
func AlwaysFree(spatialmath.Point) bool {
	return true
}

type planReturn struct {
	path Path
	err  error
}

// PlanMotion plans a motion from start to goal within the given bounds, keeping to
// points where isFree returns true. It constructs an RRTStarPlanner from the options
// and runs it until its budget is spent, returning the best path found.
func PlanMotion(
	ctx context.Context,
	logger golog.Logger,
	start, goal spatialmath.Point,
	bounds spatialmath.Bounds,
	isFree CollisionPredicate,
	opt *PlannerOptions,
) (Path, error) {
	mp, err := NewRRTStarPlannerWithOptions(start, goal, opt, logger)
	if err != nil {
		return nil, err
	}
	return mp.Plan(ctx, bounds, isFree)
}
