// Package collision answers whether a circular body may occupy a position in
// the grid.
package collision

import (
	"math"

	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/world/grid"
)

// Blocked reports whether a circle of radius centred at pos overlaps any
// blocking cell. Cells outside the grid block, so a body can never leave it.
// Only the cells under the circle's bounding box are examined.
func Blocked(pos geom.Vec2, radius float64, g *grid.Grid) bool {
	if !pos.IsFinite() {
		return true
	}
	if radius < 0 || math.IsNaN(radius) {
		radius = 0
	}
	minX := int(math.Floor(pos.X - radius))
	maxX := int(math.Floor(pos.X + radius))
	minY := int(math.Floor(pos.Y - radius))
	maxY := int(math.Floor(pos.Y + radius))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !g.Blocks(x, y) {
				continue
			}
			if CircleOverlapsCell(pos, radius, geom.Cell{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}

// CircleOverlapsCell tests a circle against the unit square of cell by
// clamping the centre into the square. A centre on or inside the square always
// overlaps, so a zero radius behaves as a point-membership test.
func CircleOverlapsCell(pos geom.Vec2, radius float64, cell geom.Cell) bool {
	left, top := float64(cell.X), float64(cell.Y)
	closestX := math.Max(left, math.Min(pos.X, left+1))
	closestY := math.Max(top, math.Min(pos.Y, top+1))
	dx := pos.X - closestX
	dy := pos.Y - closestY
	d2 := dx*dx + dy*dy
	return d2 == 0 || d2 < radius*radius
}
