// Drift demo - Poisson-seeded entities wandering under spatial-grid
// collision. Entities re-place themselves through the grid every tick, so
// the demo exercises the AddIfOpen/Remove churn path of the library.
//
// Usage: go run ./cmd/drift [-headless] [-seed N] [-max-ticks N]
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/scatter/poisson"
	"github.com/pthm-cable/scatter/spatial"
)

const (
	worldWidth  = 800
	worldHeight = 600
	spacing     = 28  // Minimum seeding distance between entities
	bodyRadius  = 8   // Collision radius of every entity
	maxSpeed    = 1.5 // World units per tick
)

// Position is an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity is an entity's per-tick displacement.
type Velocity struct {
	X, Y float64
}

type sim struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Velocity]
	filter *ecs.Filter2[Position, Velocity]
	grid   *spatial.Grid[ecs.Entity]
	rng    *rand.Rand
	tick   int
}

func newSim(seed int64) (*sim, error) {
	world := ecs.NewWorld()

	s := &sim{
		world:  world,
		mapper: ecs.NewMap2[Position, Velocity](world),
		filter: ecs.NewFilter2[Position, Velocity](world),
		rng:    rand.New(rand.NewSource(seed)),
	}

	grid, err := spatial.NewGrid[ecs.Entity](worldWidth, worldHeight, bodyRadius, bodyRadius)
	if err != nil {
		return nil, err
	}
	s.grid = grid

	// Seed entity positions with blue noise so the field starts evenly
	// packed but irregular.
	sampler, err := poisson.NewSampler(poisson.Config{
		Radius:     spacing,
		Dimensions: []float64{worldWidth, worldHeight},
	}, s.rng)
	if err != nil {
		return nil, err
	}
	points, err := sampler.Generate(context.Background())
	if err != nil {
		return nil, err
	}

	for _, p := range points {
		pos := Position{X: p[0], Y: p[1]}
		vel := Velocity{
			X: (s.rng.Float64() - 0.5) * 2 * maxSpeed,
			Y: (s.rng.Float64() - 0.5) * 2 * maxSpeed,
		}
		entity := s.mapper.NewEntity(&pos, &vel)
		s.grid.Add(entity, pos.X, pos.Y, bodyRadius)
	}

	return s, nil
}

// step advances every entity one tick. An entity vacates its grid slot,
// probes the destination, and either claims it or bounces.
func (s *sim) step() {
	s.tick++

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel := query.Get()

		nx := pos.X + vel.X
		ny := pos.Y + vel.Y
		if nx < bodyRadius || nx > worldWidth-bodyRadius {
			vel.X = -vel.X
			continue
		}
		if ny < bodyRadius || ny > worldHeight-bodyRadius {
			vel.Y = -vel.Y
			continue
		}

		s.grid.Remove(entity)
		if s.grid.AddIfOpen(entity, nx, ny, bodyRadius) {
			pos.X = nx
			pos.Y = ny
			continue
		}

		// Destination blocked: stay put and head elsewhere.
		s.grid.Add(entity, pos.X, pos.Y, bodyRadius)
		vel.X = -vel.X
		vel.Y = -vel.Y
	}
}

func (s *sim) draw() {
	query := s.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), bodyRadius, rl.DarkGreen)
	}
}

func main() {
	headless := flag.Bool("headless", false, "Run without graphics")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.Parse()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	s, err := newSim(rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	slog.Info("drift demo started", "seed", rngSeed, "entities", s.grid.Len())

	if *headless {
		for {
			s.step()
			if *maxTicks > 0 && s.tick >= *maxTicks {
				slog.Info("max ticks reached", "tick", s.tick)
				return
			}
		}
	}

	rl.InitWindow(worldWidth, worldHeight, "Drift")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		s.step()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		s.draw()
		rl.DrawText("ESC to quit", 10, worldHeight-24, 16, rl.Gray)
		rl.EndDrawing()

		if *maxTicks > 0 && s.tick >= *maxTicks {
			break
		}
	}
}
