package motionplan

import (
	"context"
	"math"

	"go.viam.com/utils"

	"github.com/openrover/rrtstar/spatialmath"
)

const neighborsBeforeParallelization = 1000

// neighborManager finds the tree node nearest to a query point, scanning in
// parallel once the tree is large enough for the scan to be worth splitting up.
type neighborManager struct {
	nCPU int
}

type neighbor struct {
	dist float64
	idx  int
}

// nearest returns the index of the tree node closest to target. Ties are broken
// toward the lower index.
func (nm *neighborManager) nearest(ctx context.Context, target spatialmath.Point, tree *rrtTree) (int, error) {
	if tree.len() == 0 {
		return NoParent, errNoNeighbors
	}
	if nm.nCPU > 1 && tree.len() > neighborsBeforeParallelization {
		// If the tree is large, calculate distances in parallel
		return nm.parallelNearest(ctx, target, tree)
	}
	best := neighbor{dist: math.Inf(1), idx: NoParent}
	for i, n := range tree.nodes {
		dist := target.Distance(n.Point)
		if dist < best.dist {
			best = neighbor{dist: dist, idx: i}
		}
	}
	return best.idx, nil
}

// parallelNearest splits the arena into one chunk per worker and reduces the per-chunk
// results. Equal distances resolve to the lower index so the result matches a serial scan.
func (nm *neighborManager) parallelNearest(ctx context.Context, target spatialmath.Point, tree *rrtTree) (int, error) {
	nWorkers := nm.nCPU
	chunkSize := (tree.len() + nWorkers - 1) / nWorkers
	neighbors := make(chan neighbor, nWorkers)
	for worker := 0; worker < nWorkers; worker++ {
		lo := worker * chunkSize
		hi := lo + chunkSize
		if hi > tree.len() {
			hi = tree.len()
		}
		utils.PanicCapturingGo(func() {
			best := neighbor{dist: math.Inf(1), idx: NoParent}
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					neighbors <- best
					return
				default:
				}
				dist := target.Distance(tree.nodes[i].Point)
				if dist < best.dist {
					best = neighbor{dist: dist, idx: i}
				}
			}
			neighbors <- best
		})
	}

	best := neighbor{dist: math.Inf(1), idx: NoParent}
	for returned := 0; returned < nWorkers; returned++ {
		nn := <-neighbors
		if nn.dist < best.dist || (nn.dist == best.dist && nn.idx < best.idx) {
			best = nn
		}
	}
	if err := ctx.Err(); err != nil {
		return NoParent, err
	}
	return best.idx, nil
}

// nearNodes returns the indices of all tree nodes strictly closer to center than
// radius, excluding the given index, in ascending order.
func nearNodes(tree *rrtTree, center spatialmath.Point, radius float64, exclude int) []int {
	if radius <= 0 {
		return nil
	}
	var found []int
	for i, n := range tree.nodes {
		if i == exclude {
			continue
		}
		if center.Distance(n.Point) < radius {
			found = append(found, i)
		}
	}
	return found
}
