// Package grid provides the immutable occupancy map walked by the ray caster
// and the collision resolver.
package grid

import (
	"errors"
	"fmt"
)

// Empty is the code of a walkable cell. Any other code is a wall.
const Empty = 0

var (
	// ErrDimensions is returned when a grid is built with a non-positive size.
	ErrDimensions = errors.New("grid dimensions must be positive")
	// ErrCellCount is returned when the cell data does not match the size.
	ErrCellCount = errors.New("cell count does not match dimensions")
)

// Grid is a fixed-size, row-major 2D array of cell codes. It is never mutated
// after construction, so it may be shared freely between readers.
type Grid struct {
	width  int
	height int
	cells  []int
}

// New builds a grid from row-major cell codes. The slice is copied.
func New(width, height int, cells []int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrCellCount, width*height, len(cells))
	}
	c := make([]int, len(cells))
	copy(c, cells)
	return &Grid{width: width, height: height, cells: c}, nil
}

// FromRows builds a grid from rows indexed [y][x]. Every row must have the
// same length.
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrDimensions)
	}
	width := len(rows[0])
	cells := make([]int, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrCellCount, y, len(row), width)
		}
		cells = append(cells, row...)
	}
	return New(width, len(rows), cells)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// TryGet returns the code at (x, y). ok is false outside the grid.
func (g *Grid) TryGet(x, y int) (code int, ok bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.cells[y*g.width+x], true
}

// IsSolid reports whether (x, y) is an in-bounds wall. Coordinates outside the
// grid are not solid; callers that need to stop there use Blocks.
func (g *Grid) IsSolid(x, y int) bool {
	code, ok := g.TryGet(x, y)
	return ok && code != Empty
}

// Blocks reports whether (x, y) may not be entered. Anything outside the grid
// blocks, so nothing can leave the map.
func (g *Grid) Blocks(x, y int) bool {
	code, ok := g.TryGet(x, y)
	return !ok || code != Empty
}

// Walkable is the inverse of Blocks.
func (g *Grid) Walkable(x, y int) bool {
	return !g.Blocks(x, y)
}

// Rows returns a copy of the cells indexed [y][x].
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		rows[y] = make([]int, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}
