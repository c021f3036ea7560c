package motionplan

import (
	"github.com/openrover/rrtstar/spatialmath"
)

// NoParent marks a node with no parent in the tree. Only the root carries it.
const NoParent = -1

// Node is a single vertex of a planner's search tree. Parent is the index of the
// node's parent within the tree, or NoParent for the root. Cost is the length of
// the tree path from the root to this node as of the last time the node was wired.
type Node struct {
	Point  spatialmath.Point
	Parent int
	Cost   float64
}

// rrtTree is an append-only arena of tree nodes. Nodes are never removed and are
// identified by their insertion index, so parent references stay valid for the
// lifetime of the tree.
type rrtTree struct {
	nodes []Node
}

func newRRTTree(root spatialmath.Point) *rrtTree {
	return &rrtTree{nodes: []Node{{Point: root, Parent: NoParent, Cost: 0}}}
}

func (rt *rrtTree) len() int {
	return len(rt.nodes)
}

// add appends a new node to the arena and returns its index.
func (rt *rrtTree) add(pt spatialmath.Point, parent int, cost float64) int {
	rt.nodes = append(rt.nodes, Node{Point: pt, Parent: parent, Cost: cost})
	return len(rt.nodes) - 1
}

// rewireNode reparents the node at idx and records its new cost. Costs of the
// node's descendants are left as they were.
func (rt *rrtTree) rewireNode(idx, parent int, cost float64) {
	rt.nodes[idx].Parent = parent
	rt.nodes[idx].Cost = cost
}

// tracePath walks parent references from the node at idx back to the root and
// returns the points visited along the way, ordered root first.
func (rt *rrtTree) tracePath(idx int) Path {
	path := Path{}
	for i := idx; i != NoParent; i = rt.nodes[i].Parent {
		path = append(path, rt.nodes[i].Point)
	}

	// reverse the slice
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
