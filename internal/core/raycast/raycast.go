// Package raycast walks a grid from a point along a direction using DDA
// stepping and reports the first wall face the ray crosses.
package raycast

import (
	"math"

	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/world/grid"
)

// TieEpsilon is how close the two per-axis boundary distances must be for a
// step to count as crossing a cell corner.
const TieEpsilon = 1e-4

// Side tells which kind of face a ray struck.
type Side int

const (
	// SideX is a vertical face, reached by stepping along X.
	SideX Side = iota
	// SideY is a horizontal face, reached by stepping along Y.
	SideY
)

func (s Side) String() string {
	if s == SideX {
		return "x"
	}
	return "y"
}

// Outcome is the terminal state of a cast.
type Outcome int

const (
	// OutcomeDegenerate means nothing was cast: zero or non-finite direction,
	// non-finite origin or no grid.
	OutcomeDegenerate Outcome = iota
	// OutcomeHit means the ray struck a wall; Result.Hit is valid.
	OutcomeHit
	// OutcomeOutOfBounds means the ray left the grid (or started outside it).
	OutcomeOutOfBounds
	// OutcomeCapExceeded means the step budget ran out before a wall.
	OutcomeCapExceeded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeOutOfBounds:
		return "out of bounds"
	case OutcomeCapExceeded:
		return "cap exceeded"
	default:
		return "degenerate"
	}
}

// Hit describes the wall face a ray struck.
type Hit struct {
	// Distance is the ray parameter t at the face: Point = origin + dir*t.
	// It equals the Euclidean distance only for a unit-length direction.
	Distance float64
	// Point is where the ray meets the face. When a near tie is settled by a
	// neighbour cell it may sit up to TieEpsilon outside that cell's span.
	Point geom.Vec2
	Cell  geom.Cell
	Side  Side
	// Step holds the per-axis step signs (±1) used to reach Cell.
	Step geom.Cell
	// Code is the grid code of the struck cell.
	Code int
}

// Result is the tagged outcome of a cast. Hit is only meaningful when Outcome
// is OutcomeHit.
type Result struct {
	Outcome Outcome
	Hit     Hit
}

// Ok reports whether the ray struck a wall.
func (r Result) Ok() bool {
	return r.Outcome == OutcomeHit
}

// MaxSteps is the step budget used by Cast. A straight ray crosses at most
// width+height cells, so this always leaves a margin.
func MaxSteps(g *grid.Grid) int {
	return 2*max(g.Width(), g.Height()) + 2
}

// Cast walks g from origin along dir until it crosses into a solid cell,
// leaves the grid, or exhausts MaxSteps.
func Cast(origin, dir geom.Vec2, g *grid.Grid) Result {
	if g == nil {
		return Result{Outcome: OutcomeDegenerate}
	}
	return CastLimit(origin, dir, g, MaxSteps(g))
}

// CastLimit is Cast with an explicit step budget.
func CastLimit(origin, dir geom.Vec2, g *grid.Grid, maxSteps int) Result {
	if g == nil || !origin.IsFinite() || !dir.IsFinite() {
		return Result{Outcome: OutcomeDegenerate}
	}
	start := geom.CellOf(origin)
	if !g.InBounds(start.X, start.Y) {
		return Result{Outcome: OutcomeOutOfBounds}
	}

	w := newWalker(origin, dir, start)
	if math.IsInf(w.delta[SideX], 1) && math.IsInf(w.delta[SideY], 1) {
		return Result{Outcome: OutcomeDegenerate}
	}

	for i := 0; i < maxSteps; i++ {
		side := w.next(g, dir)
		code, ok := g.TryGet(w.cell[0], w.cell[1])
		if !ok {
			return Result{Outcome: OutcomeOutOfBounds}
		}
		if code == grid.Empty {
			continue
		}
		dist := w.sideDist[side] - w.delta[side]
		return Result{
			Outcome: OutcomeHit,
			Hit: Hit{
				Distance: dist,
				Point:    origin.Add(dir.Scale(dist)),
				Cell:     geom.Cell{X: w.cell[0], Y: w.cell[1]},
				Side:     side,
				Step:     geom.Cell{X: w.step[0], Y: w.step[1]},
				Code:     code,
			},
		}
	}
	return Result{Outcome: OutcomeCapExceeded}
}

// walker is the mutable DDA state, indexed by Side.
type walker struct {
	cell     [2]int
	step     [2]int
	delta    [2]float64
	sideDist [2]float64
}

func newWalker(origin, dir geom.Vec2, start geom.Cell) *walker {
	w := &walker{cell: [2]int{start.X, start.Y}}
	pos := [2]float64{origin.X, origin.Y}
	d := [2]float64{dir.X, dir.Y}
	for axis := 0; axis < 2; axis++ {
		w.delta[axis] = axisDelta(d[axis])
		if d[axis] < 0 {
			w.step[axis] = -1
			w.sideDist[axis] = (pos[axis] - float64(w.cell[axis])) * w.delta[axis]
		} else {
			w.step[axis] = 1
			w.sideDist[axis] = (float64(w.cell[axis]) + 1 - pos[axis]) * w.delta[axis]
		}
		// 0*Inf is NaN; an axis the ray never moves along is simply never next.
		if math.IsInf(w.delta[axis], 1) {
			w.sideDist[axis] = math.Inf(1)
		}
	}
	return w
}

// axisDelta is the ray length needed to cross one cell along an axis.
func axisDelta(component float64) float64 {
	if component == 0 {
		return math.Inf(1)
	}
	return math.Abs(1 / component)
}

func (w *walker) advance(side Side) {
	w.sideDist[side] += w.delta[side]
	w.cell[side] += w.step[side]
}

// next advances to the following cell and returns the axis that was crossed.
func (w *walker) next(g *grid.Grid, dir geom.Vec2) Side {
	if math.Abs(w.sideDist[SideX]-w.sideDist[SideY]) < TieEpsilon {
		hitX := g.IsSolid(w.cell[0]+w.step[0], w.cell[1])
		hitY := g.IsSolid(w.cell[0], w.cell[1]+w.step[1])
		switch {
		case hitX && hitY:
			side := dominantAxis(dir)
			w.advance(side)
			return side
		case hitX:
			w.advance(SideX)
			return SideX
		case hitY:
			w.advance(SideY)
			return SideY
		}
		// Both neighbours are open: pass through the corner into the diagonal cell.
		w.advance(SideX)
		w.advance(SideY)
		return dominantAxis(dir)
	}
	if w.sideDist[SideX] < w.sideDist[SideY] {
		w.advance(SideX)
		return SideX
	}
	w.advance(SideY)
	return SideY
}

// dominantAxis prefers the axis the ray travels along fastest; X wins exact
// ties so the choice is stable from frame to frame.
func dominantAxis(dir geom.Vec2) Side {
	if math.Abs(dir.Y) > math.Abs(dir.X) {
		return SideY
	}
	return SideX
}
