// Package telemetry summarizes and exports sampling runs.
package telemetry

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/scatter/spatial"
)

// SpacingStats summarizes the spacing quality of a 2D blue-noise point set.
type SpacingStats struct {
	Count  int     `csv:"count"`
	Radius float64 `csv:"radius"`

	// Nearest-neighbor distance distribution
	MinSpacing  float64 `csv:"min_spacing"`
	MeanSpacing float64 `csv:"mean_spacing"`
	SpacingStd  float64 `csv:"spacing_std"`
	SpacingP10  float64 `csv:"spacing_p10"`
	SpacingP50  float64 `csv:"spacing_p50"`
	SpacingP90  float64 `csv:"spacing_p90"`

	// Points per unit area, and fill relative to the pi*(r/2)^2 packing ceiling
	Density      float64 `csv:"density"`
	PackingRatio float64 `csv:"packing_ratio"`
}

// PointRecord is one sampled point as written to points.csv.
type PointRecord struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
}

// ComputeSpacingStats measures nearest-neighbor spacing for a 2D point set
// sampled at the given minimum radius from a width x height box.
//
// Neighbor search goes through a spatial grid rather than an all-pairs
// scan, so large point sets stay cheap to summarize.
func ComputeSpacingStats(points [][]float64, radius, width, height float64) (SpacingStats, error) {
	s := SpacingStats{Count: len(points), Radius: radius}
	if radius <= 0 {
		return s, fmt.Errorf("telemetry: radius must be positive, got %v", radius)
	}

	area := width * height
	if area > 0 {
		s.Density = float64(len(points)) / area
		half := radius / 2
		s.PackingRatio = float64(len(points)) / (area / (math.Pi * half * half))
	}
	if len(points) < 2 {
		return s, nil
	}

	grid, err := spatial.NewGrid[int](width, height, radius, radius)
	if err != nil {
		return s, err
	}
	// Store each point as a disc of half the sampling radius: a valid
	// blue-noise set keeps all discs disjoint, and overlap queries still
	// recover every neighbor within the search window.
	disc := radius / 2
	for i, p := range points {
		if len(p) != 2 {
			return s, fmt.Errorf("telemetry: spacing stats require 2D points, got %d axes", len(p))
		}
		grid.Add(i, p[0], p[1], disc)
	}

	maxSearch := math.Hypot(width, height)
	nearest := make([]float64, 0, len(points))
	for i, p := range points {
		best := math.Inf(1)
		// Every non-seed point has a parent within 2*radius, so the first
		// window usually suffices; widen only for stragglers.
		for search := 2 * radius; ; search *= 2 {
			for _, j := range grid.GetWithin(p[0], p[1], search-disc) {
				if j == i {
					continue
				}
				q := points[j]
				d := math.Hypot(q[0]-p[0], q[1]-p[1])
				if d < best {
					best = d
				}
			}
			if !math.IsInf(best, 1) || search > maxSearch {
				break
			}
		}
		if !math.IsInf(best, 1) {
			nearest = append(nearest, best)
		}
	}
	if len(nearest) == 0 {
		return s, nil
	}

	sort.Float64s(nearest)
	s.MinSpacing = nearest[0]
	s.MeanSpacing = stat.Mean(nearest, nil)
	s.SpacingStd = stat.StdDev(nearest, nil)
	s.SpacingP10 = stat.Quantile(0.1, stat.Empirical, nearest, nil)
	s.SpacingP50 = stat.Quantile(0.5, stat.Empirical, nearest, nil)
	s.SpacingP90 = stat.Quantile(0.9, stat.Empirical, nearest, nil)
	return s, nil
}

// ToRecords converts a 2D point set to CSV records.
func ToRecords(points [][]float64) []PointRecord {
	records := make([]PointRecord, 0, len(points))
	for _, p := range points {
		if len(p) < 2 {
			continue
		}
		records = append(records, PointRecord{X: p[0], Y: p[1]})
	}
	return records
}
