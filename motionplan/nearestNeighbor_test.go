package motionplan

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/openrover/rrtstar/spatialmath"
)

func TestNearestNeighbor(t *testing.T) {
	nm := &neighborManager{nCPU: 2}
	tree := newRRTTree(spatialmath.NewPoint(0, 0))

	// We add ~110 nodes to the tree. This is smaller than the parallelization
	// threshold of 1000, meaning the nearest call will be evaluated in series.
	for i := 1; i < 110; i++ {
		tree.add(spatialmath.NewPoint(float64(i), 0), i-1, float64(i))
	}
	ctx := context.Background()

	nn, err := nm.nearest(ctx, spatialmath.NewPoint(23.1, 0), tree)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.nodes[nn].Point.X, test.ShouldAlmostEqual, 23.0)

	// We add more nodes to trip the 1000 threshold. The nearest call will use
	// nCPU (2) goroutines for evaluation.
	for i := 110; i < 1100; i++ {
		tree.add(spatialmath.NewPoint(float64(i), 0), i-1, float64(i))
	}
	nn, err = nm.nearest(ctx, spatialmath.NewPoint(723.6, 0), tree)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.nodes[nn].Point.X, test.ShouldAlmostEqual, 724.0)
}

func TestNearestNeighborEmptyTree(t *testing.T) {
	nm := &neighborManager{nCPU: 2}
	nn, err := nm.nearest(context.Background(), spatialmath.NewPoint(0, 0), &rrtTree{})
	test.That(t, err, test.ShouldBeError, errNoNeighbors)
	test.That(t, nn, test.ShouldEqual, NoParent)
}

func TestNearestNeighborTies(t *testing.T) {
	// every node is the same point, so the lowest index must win in both the
	// serial and the parallel scan
	pt := spatialmath.NewPoint(5, 5)
	tree := newRRTTree(pt)
	for i := 1; i < 1200; i++ {
		tree.add(pt, i-1, 0)
	}

	serial := &neighborManager{nCPU: 1}
	nn, err := serial.nearest(context.Background(), spatialmath.NewPoint(7, 7), tree)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, nn, test.ShouldEqual, 0)

	parallel := &neighborManager{nCPU: 4}
	nn, err = parallel.nearest(context.Background(), spatialmath.NewPoint(7, 7), tree)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, nn, test.ShouldEqual, 0)
}

func TestNearestNeighborCancellation(t *testing.T) {
	tree := newRRTTree(spatialmath.NewPoint(0, 0))
	for i := 1; i < 1100; i++ {
		tree.add(spatialmath.NewPoint(float64(i), 0), i-1, float64(i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	nm := &neighborManager{nCPU: 2}
	nn, err := nm.nearest(ctx, spatialmath.NewPoint(50, 0), tree)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, nn, test.ShouldEqual, NoParent)
}

func TestNearNodes(t *testing.T) {
	tree := newRRTTree(spatialmath.NewPoint(0, 0))
	tree.add(spatialmath.NewPoint(5, 0), 0, 5)   // 1
	tree.add(spatialmath.NewPoint(0, 9), 0, 9)   // 2
	tree.add(spatialmath.NewPoint(10, 0), 1, 10) // 3, exactly on the radius
	tree.add(spatialmath.NewPoint(0, -20), 0, 20)

	center := spatialmath.NewPoint(0, 0)
	test.That(t, nearNodes(tree, center, 10, NoParent), test.ShouldResemble, []int{0, 1, 2})

	// the queried node itself is excluded even at distance zero
	test.That(t, nearNodes(tree, center, 10, 0), test.ShouldResemble, []int{1, 2})

	// a non-positive radius matches nothing
	test.That(t, nearNodes(tree, center, 0, NoParent), test.ShouldBeEmpty)
	test.That(t, nearNodes(tree, center, -1, NoParent), test.ShouldBeEmpty)
}
