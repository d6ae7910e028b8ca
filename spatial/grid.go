// Package spatial provides a radius-indexed 2D bucket grid for
// collision-free placement and proximity queries of circular items.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/scatter/geom"
)

// ErrInvalidConfig is returned by NewGrid for degenerate parameters.
var ErrInvalidConfig = errors.New("spatial: invalid config")

// record is the lightweight per-bucket entry for an item. One item may be
// recorded in many buckets when its circle spans multiple cells; the
// payload itself is stored once in the items list.
type record struct {
	index  int
	x, y   float64
	radius float64
}

// Grid indexes circular items of varying radius into fixed-size buckets so
// that placement and proximity queries only touch a bounded cell
// neighborhood. The grid never resizes after construction and is not safe
// for concurrent use.
type Grid[T comparable] struct {
	width, height float64
	cellLength    float64
	cols, rows    int
	cells         [][]record
	items         []T
}

// NewGrid creates a grid covering a width x height box. minRadius and
// maxRadius describe the items the grid is expected to hold; their mean
// over sqrt(2) fixes the cell size for the grid's lifetime.
func NewGrid[T comparable](width, height, minRadius, maxRadius float64) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %vx%v", ErrInvalidConfig, width, height)
	}
	if minRadius <= 0 || maxRadius <= 0 || maxRadius < minRadius {
		return nil, fmt.Errorf("%w: radius range [%v, %v]", ErrInvalidConfig, minRadius, maxRadius)
	}

	cellLength := (minRadius + maxRadius) / 2 / math.Sqrt2
	cols := int(math.Ceil(width / cellLength))
	rows := int(math.Ceil(height / cellLength))

	cells := make([][]record, cols*rows)
	for i := range cells {
		cells[i] = make([]record, 0, 4)
	}

	return &Grid[T]{
		width:      width,
		height:     height,
		cellLength: cellLength,
		cols:       cols,
		rows:       rows,
		cells:      cells,
		items:      make([]T, 0, 64),
	}, nil
}

// Len returns the number of stored items.
func (g *Grid[T]) Len() int { return len(g.items) }

// Add inserts item unconditionally. Returns false without inserting when
// (x,y) lies outside the grid. The item is recorded in every cell of its
// radius neighborhood whose box its circle touches.
func (g *Grid[T]) Add(item T, x, y, radius float64) bool {
	if x < 0 || x > g.width || y < 0 || y > g.height {
		return false
	}
	rec := record{index: len(g.items), x: x, y: y, radius: radius}
	g.items = append(g.items, item)

	c0, c1, r0, r1 := g.window(x, y, radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			bx := float64(col) * g.cellLength
			by := float64(row) * g.cellLength
			if geom.BoxCircleIntersects(bx, by, g.cellLength, g.cellLength, x, y, radius) {
				idx := row*g.cols + col
				g.cells[idx] = append(g.cells[idx], rec)
			}
		}
	}
	return true
}

// AddIfOpen inserts item only when the position is open at the given
// radius. Returns false and mutates nothing on collision or out-of-bounds.
func (g *Grid[T]) AddIfOpen(item T, x, y, radius float64) bool {
	if !g.IsOpen(x, y, radius) {
		return false
	}
	return g.Add(item, x, y, radius)
}

// IsOpen reports whether a circle at (x,y) with the given radius overlaps
// no stored item. Overlap is strict: tangent circles leave the position
// open.
func (g *Grid[T]) IsOpen(x, y, radius float64) bool {
	c0, c1, r0, r1 := g.window(x, y, radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			bx := float64(col) * g.cellLength
			by := float64(row) * g.cellLength
			if !geom.BoxCircleIntersects(bx, by, g.cellLength, g.cellLength, x, y, radius) {
				continue
			}
			for _, rec := range g.cells[row*g.cols+col] {
				reach := radius + rec.radius
				if geom.SquaredDistance(rec.x, rec.y, x, y) < reach*reach {
					return false
				}
			}
		}
	}
	return true
}

// GetAt returns the items whose circles overlap a query circle at (x,y),
// searching only the single cell containing the query point. Items whose
// records do not extend into that cell are not found; use GetWithin for
// the full-neighborhood query.
func (g *Grid[T]) GetAt(x, y, radius float64) []T {
	var out []T
	for _, rec := range g.cells[g.cellIndex(x, y)] {
		reach := radius + rec.radius
		if geom.SquaredDistance(rec.x, rec.y, x, y) < reach*reach {
			out = append(out, g.items[rec.index])
		}
	}
	return out
}

// GetWithin returns the items whose circles overlap a query circle at
// (x,y), searching the full radius-derived cell neighborhood. Each item is
// returned once even when recorded in several cells.
func (g *Grid[T]) GetWithin(x, y, radius float64) []T {
	var out []T
	seen := make(map[int]struct{})

	c0, c1, r0, r1 := g.window(x, y, radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, rec := range g.cells[row*g.cols+col] {
				if _, ok := seen[rec.index]; ok {
					continue
				}
				reach := radius + rec.radius
				if geom.SquaredDistance(rec.x, rec.y, x, y) < reach*reach {
					seen[rec.index] = struct{}{}
					out = append(out, g.items[rec.index])
				}
			}
		}
	}
	return out
}

// Remove deletes the first item equal to the argument. The freed slot is
// filled by swapping in the last item; the moved item's bucket records are
// retargeted to its new index in the same pass, so stale index references
// cannot survive a removal. Returns false when no item matches.
func (g *Grid[T]) Remove(item T) bool {
	removed := -1
	for i, it := range g.items {
		if it == item {
			removed = i
			break
		}
	}
	if removed < 0 {
		return false
	}

	last := len(g.items) - 1
	g.items[removed] = g.items[last]
	var zero T
	g.items[last] = zero
	g.items = g.items[:last]

	for ci := range g.cells {
		cell := g.cells[ci]
		for j := len(cell) - 1; j >= 0; j-- {
			switch cell[j].index {
			case removed:
				cell[j] = cell[len(cell)-1]
				cell = cell[:len(cell)-1]
			case last:
				cell[j].index = removed
			}
		}
		g.cells[ci] = cell
	}
	return true
}

// Clear empties the payload list and every bucket. Capacity is retained.
func (g *Grid[T]) Clear() {
	g.items = g.items[:0]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// window returns the clamped inclusive cell range covering a circle at
// (x,y); the half-width is the circle's radius in whole cells.
func (g *Grid[T]) window(x, y, radius float64) (c0, c1, r0, r1 int) {
	cellRadius := int(math.Ceil(radius / g.cellLength))
	col := int(x / g.cellLength)
	row := int(y / g.cellLength)

	c0 = clampInt(col-cellRadius, 0, g.cols-1)
	c1 = clampInt(col+cellRadius, 0, g.cols-1)
	r0 = clampInt(row-cellRadius, 0, g.rows-1)
	r1 = clampInt(row+cellRadius, 0, g.rows-1)
	return c0, c1, r0, r1
}

// cellIndex returns the flat index of the cell containing (x,y), clamped
// into the grid so boundary coordinates land in a boundary cell.
func (g *Grid[T]) cellIndex(x, y float64) int {
	col := clampInt(int(x/g.cellLength), 0, g.cols-1)
	row := clampInt(int(y/g.cellLength), 0, g.rows-1)
	return row*g.cols + col
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
