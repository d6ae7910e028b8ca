package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/scatter/config"
	"github.com/pthm-cable/scatter/poisson"
	"github.com/pthm-cable/scatter/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	timeout := flag.Duration("timeout", 0, "Abort generation after this duration (0 = no limit)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	sampler, err := poisson.NewSampler(poisson.Config{
		Radius:         cfg.Sampler.Radius,
		Dimensions:     cfg.Sampler.Extents,
		RejectionLimit: cfg.Sampler.RejectionLimit,
	}, rand.New(rand.NewSource(rngSeed)))
	if err != nil {
		slog.Error("invalid sampler config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	slog.Info("starting sampling run",
		"seed", rngSeed,
		"radius", cfg.Sampler.Radius,
		"extents", cfg.Sampler.Extents,
		"rejection_limit", cfg.Sampler.RejectionLimit,
	)

	start := time.Now()
	points, err := sampler.Generate(ctx)
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("sampling complete", "points", len(points), "elapsed", time.Since(start))

	if len(cfg.Sampler.Extents) == 2 {
		stats, err := telemetry.ComputeSpacingStats(points, cfg.Sampler.Radius, cfg.Sampler.Extents[0], cfg.Sampler.Extents[1])
		if err != nil {
			slog.Error("spacing stats failed", "error", err)
		} else {
			slog.Info("spacing stats",
				"min", stats.MinSpacing,
				"mean", stats.MeanSpacing,
				"p50", stats.SpacingP50,
				"packing_ratio", stats.PackingRatio,
			)
			if err := writeOutput(*outputDir, cfg, points, stats); err != nil {
				slog.Error("output failed", "error", err)
				os.Exit(1)
			}
		}
	}

	if !*headless && len(cfg.Sampler.Extents) == 2 {
		view(cfg, points)
	}
}

// writeOutput exports the run to CSV files plus a config snapshot.
func writeOutput(dir string, cfg *config.Config, points [][]float64, stats telemetry.SpacingStats) error {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return err
	}
	if om == nil {
		return nil
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WritePoints(points); err != nil {
		return err
	}
	return om.WriteStats(stats)
}

// view opens a window and draws the sampled point set to scale.
func view(cfg *config.Config, points [][]float64) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Scatter")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	extX := cfg.Sampler.Extents[0]
	extY := cfg.Sampler.Extents[1]
	scale := float64(cfg.Screen.Width) / extX
	if s := float64(cfg.Screen.Height) / extY; s < scale {
		scale = s
	}

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		for _, p := range points {
			rl.DrawCircle(int32(p[0]*scale), int32(p[1]*scale), 2, rl.DarkBlue)
		}
		rl.DrawText("ESC to quit", 10, int32(cfg.Screen.Height)-24, 16, rl.Gray)

		rl.EndDrawing()
	}
}
