package collision

import (
	"testing"

	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/world/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows([][]int{
		{1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 1},
		{1, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1},
	})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	return g
}

func TestOpenCellCentreIsFree(t *testing.T) {
	g := testGrid(t)
	if Blocked(geom.V(1.5, 1.5), 0.1, g) {
		t.Error("Expected centre of open cell to be free")
	}
	if Blocked(geom.V(1.5, 1.5), 0.49, g) {
		t.Error("Expected radius 0.49 to fit inside the cell")
	}
}

func TestRadiusReachesNeighbourWall(t *testing.T) {
	g := testGrid(t)
	// 0.05 from the pillar at (3,2).
	pos := geom.V(2.95, 2.5)
	if !Blocked(pos, 0.1, g) {
		t.Error("Expected radius 0.1 to touch the pillar")
	}
	if Blocked(pos, 0.04, g) {
		t.Error("Expected radius 0.04 to stay clear of the pillar")
	}
}

func TestCornerUsesEuclideanDistance(t *testing.T) {
	g := testGrid(t)
	// Diagonal to the pillar corner (3,2): dx = dy = 0.08, distance ~0.113.
	pos := geom.V(2.92, 1.92)
	if Blocked(pos, 0.1, g) {
		t.Error("Expected the circle to clear the corner diagonally")
	}
	if !Blocked(pos, 0.12, g) {
		t.Error("Expected radius 0.12 to reach the corner")
	}
}

func TestPointInsideWall(t *testing.T) {
	g := testGrid(t)
	if !Blocked(geom.V(3.5, 2.5), 0, g) {
		t.Error("Expected a zero-radius point inside a wall to be blocked")
	}
	if Blocked(geom.V(2.5, 2.5), 0, g) {
		t.Error("Expected a zero-radius point in an open cell to be free")
	}
}

func TestOutsideGridBlocks(t *testing.T) {
	g, err := grid.New(3, 3, make([]int, 9))
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	if !Blocked(geom.V(0.05, 1.5), 0.1, g) {
		t.Error("Expected the map edge to block")
	}
	if !Blocked(geom.V(-2, 1), 0, g) {
		t.Error("Expected a position outside the map to be blocked")
	}
	if Blocked(geom.V(1.5, 1.5), 0.4, g) {
		t.Error("Expected the middle of an open map to be free")
	}
}

func TestMonotonicInRadius(t *testing.T) {
	g := testGrid(t)
	positions := []geom.Vec2{
		geom.V(2.95, 2.5), geom.V(1.1, 1.1), geom.V(4.5, 3.5), geom.V(2.2, 3.7), geom.V(3.5, 1.05),
	}
	radii := []float64{0, 0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1, 1.5}
	for _, p := range positions {
		blocked := false
		for _, r := range radii {
			b := Blocked(p, r, g)
			if blocked && !b {
				t.Errorf("pos %v: blocked at a smaller radius but free at %f", p, r)
			}
			blocked = blocked || b
		}
	}
}

func TestNegativeRadiusActsAsPoint(t *testing.T) {
	g := testGrid(t)
	if Blocked(geom.V(1.5, 1.5), -1, g) {
		t.Error("Expected negative radius to behave like zero")
	}
}

func TestCircleOverlapsCell(t *testing.T) {
	cell := geom.Cell{X: 2, Y: 2}
	cases := []struct {
		pos    geom.Vec2
		radius float64
		want   bool
	}{
		{geom.V(2.5, 2.5), 0, true},
		{geom.V(1.8, 2.5), 0.1, false},
		{geom.V(1.95, 2.5), 0.1, true},
		{geom.V(3.0, 3.0), 0, true},
		{geom.V(3.1, 3.1), 0.1, false},
		{geom.V(3.05, 3.05), 0.1, true},
	}
	for _, c := range cases {
		if got := CircleOverlapsCell(c.pos, c.radius, cell); got != c.want {
			t.Errorf("pos %v radius %f: expected %v, got %v", c.pos, c.radius, c.want, got)
		}
	}
}
