package motionplan

import "errors"

var (
	// errPlannerFailed is returned when a planner exhausts its iteration budget without finding a path.
	errPlannerFailed = errors.New("motion planner failed to find path")

	// errNoNeighbors is returned when a nearest neighbor lookup is attempted on an empty tree.
	errNoNeighbors = errors.New("no neighbors to query against")
)
