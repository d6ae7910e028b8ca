// Blue-noise preview tool - interactive Poisson-disk sampling with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"context"
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/scatter/poisson"
	"github.com/pthm-cable/scatter/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// SampleParams holds the sampling parameters driven by the sliders.
type SampleParams struct {
	Radius         float32
	RejectionLimit int
	Seed           int64
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Blue Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := SampleParams{
		Radius:         16,
		RejectionLimit: 30,
		Seed:           12345,
	}

	var points [][]float64
	var stats telemetry.SpacingStats

	// GUI state
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			points, stats = resample(params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		for _, p := range points {
			rl.DrawCircle(int32(10+p[0]), int32(10+p[1]), 2.5, rl.DarkBlue)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Points: %d  MinNN: %.2f  MeanNN: %.2f", stats.Count, stats.MinSpacing, stats.MeanSpacing), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Packing ratio: %.3f", stats.PackingRatio), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Sampling Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Radius slider
		rl.DrawText("Radius (minimum spacing)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadius := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"4", "64",
			params.Radius, 4, 64,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Radius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newRadius != params.Radius {
			params.Radius = newRadius
			needsRegen = true
		}
		panelY += 35

		// Rejection limit slider
		rl.DrawText("Rejection limit (tries per parent)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newLimit := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"5", "60",
			float32(params.RejectionLimit), 5, 60,
		)
		rl.DrawText(fmt.Sprintf("%d", params.RejectionLimit), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newLimit) != params.RejectionLimit {
			params.RejectionLimit = int(newLimit)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 1<<30))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Resample") {
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

// resample runs the sampler over the preview box and summarizes spacing.
func resample(params SampleParams) ([][]float64, telemetry.SpacingStats) {
	sampler, err := poisson.NewSampler(poisson.Config{
		Radius:         float64(params.Radius),
		Dimensions:     []float64{previewSize, previewSize},
		RejectionLimit: params.RejectionLimit,
	}, rand.New(rand.NewSource(params.Seed)))
	if err != nil {
		return nil, telemetry.SpacingStats{}
	}

	points, err := sampler.Generate(context.Background())
	if err != nil {
		return nil, telemetry.SpacingStats{}
	}

	stats, err := telemetry.ComputeSpacingStats(points, float64(params.Radius), previewSize, previewSize)
	if err != nil {
		return points, telemetry.SpacingStats{Count: len(points)}
	}
	return points, stats
}
