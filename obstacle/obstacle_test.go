package obstacle

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/paulmach/orb"
	"go.viam.com/test"

	"github.com/openrover/rrtstar/motionplan"
	"github.com/openrover/rrtstar/spatialmath"
)

func TestWorldIsFree(t *testing.T) {
	world := NewWorld([]orb.Polygon{Box(-4, 4, 4, 10)})
	test.That(t, world.Size(), test.ShouldEqual, 1)

	test.That(t, world.IsFree(spatialmath.NewPoint(0, 6)), test.ShouldBeFalse)
	test.That(t, world.IsFree(spatialmath.NewPoint(3.9, 9.9)), test.ShouldBeFalse)

	test.That(t, world.IsFree(spatialmath.NewPoint(0, 0)), test.ShouldBeTrue)
	test.That(t, world.IsFree(spatialmath.NewPoint(-9, 9)), test.ShouldBeTrue)
	test.That(t, world.IsFree(spatialmath.NewPoint(5, 9)), test.ShouldBeTrue)
}

func TestWorldMultiplePolygons(t *testing.T) {
	triangle := orb.Polygon{orb.Ring{{40, 0}, {50, 0}, {45, 10}, {40, 0}}}
	world := NewWorld([]orb.Polygon{
		Box(0, 0, 10, 10),
		Box(20, 20, 30, 30),
		triangle,
	})
	test.That(t, world.Size(), test.ShouldEqual, 3)

	test.That(t, world.IsFree(spatialmath.NewPoint(5, 5)), test.ShouldBeFalse)
	test.That(t, world.IsFree(spatialmath.NewPoint(25, 25)), test.ShouldBeFalse)
	test.That(t, world.IsFree(spatialmath.NewPoint(45, 3)), test.ShouldBeFalse)
	test.That(t, world.IsFree(spatialmath.NewPoint(45, 9)), test.ShouldBeFalse)

	// inside the triangle's bounding box but outside the triangle itself
	test.That(t, world.IsFree(spatialmath.NewPoint(41, 9)), test.ShouldBeTrue)
	test.That(t, world.IsFree(spatialmath.NewPoint(15, 15)), test.ShouldBeTrue)
}

func TestWorldEmpty(t *testing.T) {
	world := NewWorld(nil)
	test.That(t, world.Size(), test.ShouldEqual, 0)
	test.That(t, world.IsFree(spatialmath.NewPoint(0, 0)), test.ShouldBeTrue)
	test.That(t, world.IsFree(spatialmath.NewPoint(-371.4, 9000)), test.ShouldBeTrue)
}

func TestWorldPolygonWithHole(t *testing.T) {
	courtyard := orb.Polygon{
		orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}},
		orb.Ring{{8, 8}, {12, 8}, {12, 12}, {8, 12}, {8, 8}},
	}
	world := NewWorld([]orb.Polygon{courtyard})

	test.That(t, world.IsFree(spatialmath.NewPoint(4, 4)), test.ShouldBeFalse)
	// the hole is traversable
	test.That(t, world.IsFree(spatialmath.NewPoint(10, 10)), test.ShouldBeTrue)
	test.That(t, world.IsFree(spatialmath.NewPoint(25, 10)), test.ShouldBeTrue)
}

func TestPlanThroughWorld(t *testing.T) {
	// The planner has to route around the block between the start and the goal:
	//
	//   +---------------------+
	//   | S      xxxxx      G |
	//   |        xxxxx        |
	//   |        xxxxx        |
	//   |                     |
	//   |                     |
	//   +---------------------+
	world := NewWorld([]orb.Polygon{Box(-4, 4, 4, 10)})
	bounds := spatialmath.Bounds{
		X: spatialmath.Limit{Min: -10, Max: 10},
		Y: spatialmath.Limit{Min: -10, Max: 10},
	}
	start := spatialmath.NewPoint(-9, 9)
	goal := spatialmath.NewPoint(9, 9)

	path, err := motionplan.PlanMotion(
		context.Background(),
		golog.NewTestLogger(t),
		start,
		goal,
		bounds,
		world.Predicate(),
		motionplan.NewBasicPlannerOptions(1, 1, 2),
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldBeGreaterThan, 1)
	test.That(t, path[0], test.ShouldResemble, start)
	test.That(t, path[len(path)-1].Distance(goal), test.ShouldBeLessThan, 1)
	for _, pt := range path {
		test.That(t, world.IsFree(pt), test.ShouldBeTrue)
	}
	// the shortest route around the block is longer than the straight line
	test.That(t, path.Cost(), test.ShouldBeGreaterThan, start.Distance(goal))
}
