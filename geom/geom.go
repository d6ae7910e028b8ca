// Package geom provides the small geometric primitives shared by the
// sampler and the spatial grid.
package geom

// SquaredDistance returns the squared distance between (x1,y1) and (x2,y2).
// Callers compare against squared radii to avoid sqrt in hot paths.
func SquaredDistance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// SquaredDistanceN returns the squared distance between two points of the
// same dimensionality. Panics if the lengths differ.
func SquaredDistanceN(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("geom: dimension mismatch")
	}
	var sum float64
	for i := range a {
		d := b[i] - a[i]
		sum += d * d
	}
	return sum
}

// BoxCircleIntersects reports whether the axis-aligned box with min corner
// (bx,by) and size (bw,bh) intersects the circle at (cx,cy) with radius r.
// The test clamps the circle center onto the box and compares the residual
// distance against r. Touching counts as intersecting.
func BoxCircleIntersects(bx, by, bw, bh, cx, cy, r float64) bool {
	nearX := clamp(cx, bx, bx+bw)
	nearY := clamp(cy, by, by+bh)
	return SquaredDistance(nearX, nearY, cx, cy) <= r*r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
