package motionplan

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/openrover/rrtstar/spatialmath"
)

// StepOutcome describes what a single planner step did to the tree.
type StepOutcome struct {
	// NodeAdded is true when the step's sample survived the collision gate and grew the tree.
	NodeAdded bool

	// PathImproved is true when the step's new node completed a cheaper path to the goal.
	PathImproved bool
}

// RRTStarPlanner is an asymptotically optimal sampling-based motion planner. It grows
// a tree of collision-free points rooted at the start, rewiring nearby nodes through
// cheaper connections as they appear, so path quality improves the longer it runs.
type RRTStarPlanner struct {
	start spatialmath.Point
	goal  spatialmath.Point
	opt   *PlannerOptions

	tree    *rrtTree
	index   *spatialIndex
	sampler Sampler
	nm      *neighborManager
	logger  golog.Logger

	bestPath Path
	bestCost float64
}

// NewRRTStarPlanner creates an RRTStarPlanner with the given planning parameters and
// defaults for all other options.
func NewRRTStarPlanner(
	start, goal spatialmath.Point,
	stepSize, goalThreshold, searchRadius float64,
	logger golog.Logger,
) (*RRTStarPlanner, error) {
	return NewRRTStarPlannerWithOptions(start, goal, NewBasicPlannerOptions(stepSize, goalThreshold, searchRadius), logger)
}

// NewRRTStarPlannerWithOptions creates an RRTStarPlanner with a full set of options.
func NewRRTStarPlannerWithOptions(
	start, goal spatialmath.Point,
	opt *PlannerOptions,
	logger golog.Logger,
) (*RRTStarPlanner, error) {
	if opt == nil {
		opt = &PlannerOptions{}
	}
	if err := opt.validate(); err != nil {
		return nil, errors.Wrap(err, "cannot create planner")
	}
	sampler := opt.Sampler
	if sampler == nil {
		//nolint:gosec
		sampler = NewUniformSamplerWithSeed(rand.New(rand.NewSource(int64(opt.RandomSeed))))
	}
	nCPU := opt.NumThreads
	if nCPU < 1 {
		nCPU = 1
	}
	mp := &RRTStarPlanner{
		start:    start,
		goal:     goal,
		opt:      opt,
		tree:     newRRTTree(start),
		sampler:  sampler,
		nm:       &neighborManager{nCPU: nCPU},
		logger:   logger,
		bestCost: math.Inf(1),
	}
	if opt.SpatialIndex {
		mp.index = newSpatialIndex()
		mp.index.insert(0, start)
	}
	return mp, nil
}

// Plan will grow the tree until the iteration budget is spent, the timeout elapses,
// or ctx is canceled. If any path to the goal was found before stopping, the best
// one is returned, otherwise an error.
func (mp *RRTStarPlanner) Plan(ctx context.Context, bounds spatialmath.Bounds, isFree CollisionPredicate) (Path, error) {
	if mp.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(mp.opt.Timeout*float64(time.Second)))
		defer cancel()
	}
	solutionChan := make(chan *planReturn, 1)
	utils.PanicCapturingGo(func() {
		mp.planRunner(ctx, bounds, isFree, solutionChan)
	})

	// planRunner checks ctx every iteration, so cancellation still produces a planReturn
	plan := <-solutionChan
	return plan.path, plan.err
}

// planRunner will execute the plan. When Plan() is called, it will call planRunner in a separate thread and wait for the results.
// Separating this allows other things to call planRunner in parallel while also enabling the thread-agnostic Plan to be accessible.
func (mp *RRTStarPlanner) planRunner(
	ctx context.Context,
	bounds spatialmath.Bounds,
	isFree CollisionPredicate,
	solutionChan chan *planReturn,
) {
	defer close(solutionChan)

	// Number of iterations after which a log will be printed
	logIteration := int(float64(mp.opt.PlanIter) * mp.opt.LoggingInterval)

	// sample until the max number of iterations is reached
	for i := 1; i <= mp.opt.PlanIter; i++ {
		select {
		case <-ctx.Done():
			if mp.PathFound() {
				solutionChan <- &planReturn{path: mp.BestPath()}
			} else {
				solutionChan <- &planReturn{err: ctx.Err()}
			}
			return
		default:
		}

		mp.Step(ctx, bounds, isFree)

		// log status of planner to periodically inform user
		if logIteration > 0 && i%logIteration == 0 {
			mp.logger.Debugf("RRT* progress: %d%%\tpath cost: %.3f", 100*i/mp.opt.PlanIter, mp.bestCost)
		}
	}

	if !mp.PathFound() {
		solutionChan <- &planReturn{err: errPlannerFailed}
		return
	}
	solutionChan <- &planReturn{path: mp.BestPath()}
}

// Step runs a single planning iteration: sample a point, steer from the nearest tree
// node toward it, and if the new point is free, wire it into the tree and rewire any
// neighbors it gives a cheaper path. A nil isFree plans as if all space were free.
func (mp *RRTStarPlanner) Step(ctx context.Context, bounds spatialmath.Bounds, isFree CollisionPredicate) StepOutcome {
	target := mp.sampler.Sample(bounds)
	nearestIdx, err := mp.nm.nearest(ctx, target, mp.tree)
	if err != nil {
		mp.logger.Errorw("cannot find nearest node to extend from", "error", err)
		return StepOutcome{}
	}
	candidate := mp.steer(mp.tree.nodes[nearestIdx].Point, target)
	if isFree != nil && !isFree(candidate) {
		return StepOutcome{}
	}
	newIdx := mp.addNode(candidate, nearestIdx)
	mp.rewire(newIdx)
	improved := mp.updateBestPath(newIdx)
	return StepOutcome{NodeAdded: true, PathImproved: improved}
}

// steer returns the point exactly StepSize away from from, along the bearing toward
// to. The target only sets the direction, so a target closer than StepSize is overshot.
func (mp *RRTStarPlanner) steer(from, to spatialmath.Point) spatialmath.Point {
	return from.PointAtBearing(from.Bearing(to), mp.opt.StepSize)
}

func (mp *RRTStarPlanner) addNode(pt spatialmath.Point, parent int) int {
	cost := mp.tree.nodes[parent].Cost + mp.tree.nodes[parent].Point.Distance(pt)
	idx := mp.tree.add(pt, parent, cost)
	if mp.index != nil {
		mp.index.insert(idx, pt)
	}
	return idx
}

// rewire reparents each neighbor of the node at newIdx onto it when routing through
// the new node is a strict improvement on the neighbor's current cost.
func (mp *RRTStarPlanner) rewire(newIdx int) {
	newNode := mp.tree.nodes[newIdx]
	for _, i := range mp.near(newNode.Point, mp.opt.SearchRadius, newIdx) {
		cost := newNode.Cost + newNode.Point.Distance(mp.tree.nodes[i].Point)
		if cost < mp.tree.nodes[i].Cost {
			mp.tree.rewireNode(i, newIdx, cost)
		}
	}
}

// near returns the indices of all tree nodes strictly within radius of center,
// excluding the node at the given index.
func (mp *RRTStarPlanner) near(center spatialmath.Point, radius float64, exclude int) []int {
	if mp.index != nil {
		return mp.index.within(center, radius, exclude)
	}
	return nearNodes(mp.tree, center, radius, exclude)
}

// updateBestPath records a new best path when the node at newIdx is strictly within
// GoalThreshold of the goal and strictly cheaper than the best path found so far.
// Only the newest node is ever considered.
func (mp *RRTStarPlanner) updateBestPath(newIdx int) bool {
	n := mp.tree.nodes[newIdx]
	if n.Point.Distance(mp.goal) >= mp.opt.GoalThreshold {
		return false
	}
	if n.Cost >= mp.bestCost {
		return false
	}
	if mp.bestPath == nil {
		mp.logger.Debugf("path to goal found with cost %.3f", n.Cost)
	} else {
		mp.logger.Debugf("path to goal improved to cost %.3f", n.Cost)
	}
	mp.bestCost = n.Cost
	mp.bestPath = mp.tree.tracePath(newIdx)
	return true
}

// Start returns the position the tree is rooted at.
func (mp *RRTStarPlanner) Start() spatialmath.Point {
	return mp.start
}

// Goal returns the position the planner is growing toward.
func (mp *RRTStarPlanner) Goal() spatialmath.Point {
	return mp.goal
}

// Size returns the number of nodes in the tree.
func (mp *RRTStarPlanner) Size() int {
	return mp.tree.len()
}

// PathFound returns whether a path from the start to within GoalThreshold of the
// goal has been found.
func (mp *RRTStarPlanner) PathFound() bool {
	return mp.bestPath != nil
}

// BestCost returns the cost of the best path found so far, or +Inf when no path has
// been found.
func (mp *RRTStarPlanner) BestCost() float64 {
	return mp.bestCost
}

// BestPath returns a copy of the best path found so far, ordered start first, or nil
// when no path has been found.
func (mp *RRTStarPlanner) BestPath() Path {
	if mp.bestPath == nil {
		return nil
	}
	path := make(Path, len(mp.bestPath))
	copy(path, mp.bestPath)
	return path
}

// Snapshot returns a copy of every node in the tree, in insertion order.
func (mp *RRTStarPlanner) Snapshot() []Node {
	nodes := make([]Node, len(mp.tree.nodes))
	copy(nodes, mp.tree.nodes)
	return nodes
}
