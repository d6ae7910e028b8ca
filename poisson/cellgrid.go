package poisson

import (
	"math"

	"github.com/pthm-cable/scatter/geom"
)

// run holds all scratch state of one sampling run. Generate creates a
// fresh run per call, so the sampler carries nothing between runs.
type run struct {
	cfg        Config
	radiusSq   float64
	cellLength float64

	// cellCounts holds the per-axis cell count; lookup is the dense
	// cell -> sample index table, -1 for empty. Cell length radius/sqrt(D)
	// guarantees at most one accepted point per cell.
	cellCounts []int
	lookup     []int32

	// reach is the neighborhood half-width in cells: any accepted point
	// within Radius of a candidate lies at most this many cells away on
	// every axis.
	reach int

	active  []int
	samples [][]float64

	scratchDir  []float64
	scratchCand []float64
	scratchCell []int
	scratchOff  []int
}

func newRun(cfg Config) *run {
	d := len(cfg.Dimensions)
	cellLength := cfg.Radius / math.Sqrt(float64(d))

	counts := make([]int, d)
	total := 1
	for axis, ext := range cfg.Dimensions {
		n := int(math.Ceil(ext / cellLength))
		if n < 1 {
			n = 1
		}
		counts[axis] = n
		total *= n
	}

	lookup := make([]int32, total)
	for i := range lookup {
		lookup[i] = -1
	}

	return &run{
		cfg:         cfg,
		radiusSq:    cfg.Radius * cfg.Radius,
		cellLength:  cellLength,
		cellCounts:  counts,
		lookup:      lookup,
		reach:       int(math.Sqrt(float64(d))) + 1,
		active:      make([]int, 0, 128),
		samples:     make([][]float64, 0, total/4+1),
		scratchDir:  make([]float64, d),
		scratchCand: make([]float64, d),
		scratchCell: make([]int, d),
		scratchOff:  make([]int, d),
	}
}

func (r *run) dims() int { return len(r.cfg.Dimensions) }

// cellCoords writes p's per-axis cell coordinate into dst, clamped into
// [0, cellCounts-1]. The clamp tolerates coordinates sitting exactly on or
// a rounding error past a box boundary; genuinely out-of-box candidates
// never get here, propose rejects them first.
func (r *run) cellCoords(p []float64, dst []int) {
	for axis, n := range r.cellCounts {
		c := 0
		if p[axis] > 0 {
			c = int(p[axis] / r.cellLength)
			if c >= n {
				c = n - 1
			}
		}
		dst[axis] = c
	}
}

// linearIndex folds per-axis cell coordinates into one dense index using
// mixed-radix positional encoding, highest axis first.
func (r *run) linearIndex(coords []int) int {
	idx := 0
	for axis := len(coords) - 1; axis >= 0; axis-- {
		idx = idx*r.cellCounts[axis] + coords[axis]
	}
	return idx
}

// accept appends p to the sample list, marks it active, and claims its cell.
func (r *run) accept(p []float64) {
	idx := len(r.samples)
	r.samples = append(r.samples, p)
	r.active = append(r.active, idx)
	r.cellCoords(p, r.scratchCell)
	r.lookup[r.linearIndex(r.scratchCell)] = int32(idx)
}

// nearbySampleWithin reports whether any accepted sample lies strictly
// within Radius of p. Only the bounded cell neighborhood around p's cell
// is scanned; offsets are enumerated odometer-style so the walk works for
// any dimensionality without recursion.
func (r *run) nearbySampleWithin(p []float64) bool {
	r.cellCoords(p, r.scratchCell)

	d := r.dims()
	off := r.scratchOff
	for axis := range off {
		off[axis] = -r.reach
	}

	for {
		inRange := true
		idx := 0
		for axis := d - 1; axis >= 0; axis-- {
			c := r.scratchCell[axis] + off[axis]
			if c < 0 || c >= r.cellCounts[axis] {
				inRange = false
				break
			}
			idx = idx*r.cellCounts[axis] + c
		}
		if inRange {
			if si := r.lookup[idx]; si >= 0 {
				if geom.SquaredDistanceN(r.samples[si], p) < r.radiusSq {
					return true
				}
			}
		}

		// Advance the offset odometer.
		axis := 0
		for ; axis < d; axis++ {
			off[axis]++
			if off[axis] <= r.reach {
				break
			}
			off[axis] = -r.reach
		}
		if axis == d {
			return false
		}
	}
}
