package spatial

import (
	"errors"
	"testing"
)

func newTestGrid(t *testing.T) *Grid[string] {
	t.Helper()
	g, err := NewGrid[string](10, 10, 1, 1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name                 string
		width, height        float64
		minRadius, maxRadius float64
	}{
		{"zero width", 0, 10, 1, 2},
		{"negative height", 10, -1, 1, 2},
		{"zero min radius", 10, 10, 0, 2},
		{"zero max radius", 10, 10, 1, 0},
		{"inverted radius range", 10, 10, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid[int](tt.width, tt.height, tt.minRadius, tt.maxRadius)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewGrid = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := newTestGrid(t)

	if !g.AddIfOpen("itemA", 5, 5, 1) {
		t.Fatal("AddIfOpen on empty grid failed")
	}
	if g.Len() != 1 {
		t.Fatalf("Len = %d, want 1", g.Len())
	}

	if g.IsOpen(5.5, 5, 1) {
		t.Error("IsOpen(5.5, 5, 1) = true, want false: circles overlap")
	}
	if !contains(g.GetAt(5, 5, 1), "itemA") {
		t.Error("GetAt(5, 5, 1) missing itemA")
	}

	if !g.Remove("itemA") {
		t.Fatal("Remove(itemA) failed")
	}
	if contains(g.GetAt(5, 5, 1), "itemA") {
		t.Error("GetAt(5, 5, 1) still returns itemA after removal")
	}
	if g.Len() != 0 {
		t.Errorf("Len = %d after removal, want 0", g.Len())
	}
}

func TestAddIfOpenCollisionRejected(t *testing.T) {
	g := newTestGrid(t)

	if !g.AddIfOpen("itemA", 5, 5, 1) {
		t.Fatal("first AddIfOpen failed")
	}
	if g.AddIfOpen("itemB", 5, 5, 1) {
		t.Error("AddIfOpen on occupied position succeeded")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d after rejected insert, want 1", g.Len())
	}
}

func TestTangentCirclesAreOpen(t *testing.T) {
	g := newTestGrid(t)
	g.Add("itemA", 2, 5, 1)

	// Distance 2 equals the radius sum: touching but not overlapping.
	if !g.IsOpen(4, 5, 1) {
		t.Error("IsOpen rejects tangent circles, want open")
	}
	if g.IsOpen(3.9, 5, 1) {
		t.Error("IsOpen accepts overlapping circles")
	}
}

func TestAddOutOfBounds(t *testing.T) {
	g := newTestGrid(t)

	tests := []struct {
		name string
		x, y float64
	}{
		{"negative x", -0.5, 5},
		{"negative y", 5, -0.5},
		{"past width", 10.5, 5},
		{"past height", 5, 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if g.Add("item", tt.x, tt.y, 1) {
				t.Errorf("Add(%v, %v) succeeded out of bounds", tt.x, tt.y)
			}
		})
	}
	if g.Len() != 0 {
		t.Errorf("Len = %d after rejected inserts, want 0", g.Len())
	}
}

func TestBoundaryPositionsInsertable(t *testing.T) {
	g := newTestGrid(t)

	// Exactly on the border must land in a boundary cell, not fail.
	if !g.Add("corner", 10, 10, 1) {
		t.Error("Add on the far corner failed")
	}
	if !g.Add("origin", 0, 0, 1) {
		t.Error("Add on the origin failed")
	}
	if !contains(g.GetAt(10, 10, 1), "corner") {
		t.Error("GetAt on the far corner missing item")
	}
}

// Removing an item swaps the last item into its slot. The moved item's
// bucket records must follow it, or queries on the moved item would read
// a stale index.
func TestRemoveRetargetsMovedItem(t *testing.T) {
	g := newTestGrid(t)
	g.Add("itemA", 2, 2, 1)
	g.Add("itemB", 7, 7, 1)

	if !g.Remove("itemA") {
		t.Fatal("Remove(itemA) failed")
	}
	if g.Len() != 1 {
		t.Fatalf("Len = %d, want 1", g.Len())
	}

	if !contains(g.GetAt(7, 7, 1), "itemB") {
		t.Error("GetAt(7, 7, 1) lost itemB after removing itemA")
	}
	if contains(g.GetAt(2, 2, 1), "itemB") {
		t.Error("GetAt(2, 2, 1) returns itemB at itemA's old position")
	}
	if g.IsOpen(7, 7, 1) {
		t.Error("IsOpen(7, 7, 1) = true, itemB still occupies it")
	}
	if !g.IsOpen(2, 2, 1) {
		t.Error("IsOpen(2, 2, 1) = false, itemA's records survived removal")
	}

	// The retargeted records must keep the moved item removable.
	if !g.Remove("itemB") {
		t.Fatal("Remove(itemB) failed after retarget")
	}
	if !g.IsOpen(7, 7, 1) {
		t.Error("IsOpen(7, 7, 1) = false after removing itemB")
	}
}

func TestRemoveMissingItem(t *testing.T) {
	g := newTestGrid(t)
	g.Add("itemA", 5, 5, 1)

	if g.Remove("itemB") {
		t.Error("Remove of absent item succeeded")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
}

func TestGetWithinFindsNeighborhood(t *testing.T) {
	g, err := NewGrid[string](100, 100, 2, 10)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.Add("big", 50, 50, 10)
	g.Add("far", 90, 90, 2)

	// GetAt only inspects the query point's own cell; GetWithin walks the
	// full radius neighborhood.
	got := g.GetWithin(60, 50, 1)
	if !contains(got, "big") {
		t.Error("GetWithin(60, 50, 1) missing big")
	}
	if contains(got, "far") {
		t.Error("GetWithin(60, 50, 1) returned unrelated item")
	}

	// An item spanning many cells is reported once.
	all := g.GetWithin(50, 50, 15)
	count := 0
	for _, it := range all {
		if it == "big" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("GetWithin returned big %d times, want 1", count)
	}
}

func TestClear(t *testing.T) {
	g := newTestGrid(t)
	g.Add("itemA", 3, 3, 1)
	g.Add("itemB", 7, 7, 1)

	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", g.Len())
	}
	if !g.IsOpen(3, 3, 1) || !g.IsOpen(7, 7, 1) {
		t.Error("grid not open after Clear")
	}
	if !g.AddIfOpen("itemC", 3, 3, 1) {
		t.Error("AddIfOpen after Clear failed")
	}
}
