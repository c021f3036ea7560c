// package main runs the 2D RRT* planner from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/paulmach/orb"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/openrover/rrtstar/motionplan"
	"github.com/openrover/rrtstar/obstacle"
	"github.com/openrover/rrtstar/spatialmath"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	seed := flag.Int64("seed", 1, "random seed for sampling and endpoint placement")
	iter := flag.Int("iter", 5000, "planner iterations")
	numObstacles := flag.Int("obstacles", 0, "number of random box obstacles")
	optFile := flag.String("options", "", "JSON5 planner options file, overrides other flags")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()

	var logger golog.Logger
	if *verbose {
		logger = golog.NewDebugLogger("plan2d")
	} else {
		logger = golog.NewDevelopmentLogger("plan2d")
	}

	bounds := spatialmath.Bounds{
		X: spatialmath.Limit{Min: 0, Max: 400},
		Y: spatialmath.Limit{Min: 0, Max: 400},
	}

	//nolint:gosec
	rnd := rand.New(rand.NewSource(*seed))

	isFree := motionplan.CollisionPredicate(motionplan.AlwaysFree)
	if *numObstacles > 0 {
		world := obstacle.NewWorld(randomBoxes(rnd, *numObstacles))
		logger.Infof("planning around %d box obstacles", world.Size())
		isFree = world.Predicate()
	}

	opt := motionplan.NewBasicPlannerOptions(10, 10, 15)
	opt.PlanIter = *iter
	opt.RandomSeed = int(*seed)
	if *optFile != "" {
		//nolint:gosec // optFile is a user-provided path to a planner options file
		content, err := os.ReadFile(*optFile)
		if err != nil {
			return err
		}
		// JSON5 so hand-written option files can carry comments
		if err := json5.Unmarshal(content, opt); err != nil {
			return err
		}
	}

	start := randomFreePoint(rnd, bounds, isFree)
	goal := randomFreePoint(rnd, bounds, isFree)
	logger.Infof("planning from (%.1f, %.1f) to (%.1f, %.1f)", start.X, start.Y, goal.X, goal.Y)

	mp, err := motionplan.NewRRTStarPlannerWithOptions(start, goal, opt, logger)
	if err != nil {
		return err
	}

	begin := time.Now()
	path, err := mp.Plan(context.Background(), bounds, isFree)
	if err != nil {
		return err
	}
	logger.Infof("found a %d waypoint path with cost %.3f in %s, %d nodes explored",
		len(path), path.Cost(), time.Since(begin), mp.Size())
	for _, pt := range path {
		fmt.Printf("%.3f\t%.3f\n", pt.X, pt.Y)
	}
	return nil
}

// randomFreePoint draws points until one clears the obstacles.
func randomFreePoint(rnd *rand.Rand, bounds spatialmath.Bounds, isFree motionplan.CollisionPredicate) spatialmath.Point {
	for {
		pt := spatialmath.NewPoint(
			rnd.Float64()*(bounds.X.Max-bounds.X.Min)+bounds.X.Min,
			rnd.Float64()*(bounds.Y.Max-bounds.Y.Min)+bounds.Y.Min,
		)
		if isFree(pt) {
			return pt
		}
	}
}

// randomBoxes scatters axis-aligned boxes around the middle of the world.
func randomBoxes(rnd *rand.Rand, n int) []orb.Polygon {
	boxes := make([]orb.Polygon, 0, n)
	for i := 0; i < n; i++ {
		minX := 40 + rnd.Float64()*280
		minY := 40 + rnd.Float64()*280
		boxes = append(boxes, obstacle.Box(minX, minY, minX+20+rnd.Float64()*40, minY+20+rnd.Float64()*40))
	}
	return boxes
}
