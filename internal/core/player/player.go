// Package player owns the first-person viewpoint: position, facing, camera
// plane, and the integrators that move and turn it each tick. State is a
// plain value; integrators return an updated copy and never keep a reference.
package player

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/collision"
	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/world/grid"
)

// ErrDegenerateFacing is returned when a spawn direction has no length.
var ErrDegenerateFacing = errors.New("facing direction must be non-zero and finite")

// State is the viewpoint for one frame.
type State struct {
	Pos   geom.Vec2 // Grid space, fractional
	Dir   geom.Vec2 // Unit length
	Plane geom.Vec2 // Perpendicular to Dir, length FOV, points to screen-right

	MoveSpeed float64 // Grid units per tick
	RotSpeed  float64 // Radians per tick when turning with keys
	Radius    float64 // Collision radius
	FOV       float64 // Camera plane magnitude
}

// New creates a state at pos looking along dir.
func New(pos, dir geom.Vec2, cfg config.Player) (State, error) {
	if !pos.IsFinite() {
		return State{}, fmt.Errorf("invalid spawn position %v", pos)
	}
	if !dir.IsFinite() || dir.Len() == 0 {
		return State{}, fmt.Errorf("%w: %v", ErrDegenerateFacing, dir)
	}
	d := dir.Normalized()
	return State{
		Pos:       pos,
		Dir:       d,
		Plane:     planeFor(d, cfg.FOV),
		MoveSpeed: cfg.MoveSpeed,
		RotSpeed:  cfg.RotSpeed,
		Radius:    cfg.Radius,
		FOV:       cfg.FOV,
	}, nil
}

// planeFor returns the camera plane for a unit facing. The plane is Dir
// rotated by -90 degrees, which is screen-right for the column mapping
// rayDir = Dir + Plane*cameraX.
func planeFor(dir geom.Vec2, fov float64) geom.Vec2 {
	return dir.Perp().Scale(-fov)
}

// Intent is a set of movement requests for one tick.
type Intent uint8

const (
	IntentForward Intent = 1 << iota
	IntentBackward
	IntentStrafeLeft
	IntentStrafeRight
)

// Has reports whether every bit of o is set in i.
func (i Intent) Has(o Intent) bool {
	return i&o == o && o != 0
}

// Move applies every active intent in the order forward, backward,
// strafe-left, strafe-right. Each one starts from the position the previous
// one committed. The collision resolver is the only gate: a blocked move
// falls back to its X component, then to its Y component, so the body slides
// along walls instead of stopping dead.
func (s State) Move(in Intent, g *grid.Grid) State {
	forward := s.Dir.Scale(s.MoveSpeed)
	strafe := s.Dir.Perp().Scale(s.MoveSpeed)

	steps := []struct {
		intent Intent
		delta  geom.Vec2
	}{
		{IntentForward, forward},
		{IntentBackward, forward.Scale(-1)},
		{IntentStrafeLeft, strafe},
		{IntentStrafeRight, strafe.Scale(-1)},
	}
	for _, step := range steps {
		if in.Has(step.intent) {
			s.Pos = Slide(s.Pos, step.delta, s.Radius, g)
		}
	}
	return s
}

// Slide moves pos by delta if the destination is free, otherwise commits
// whichever axis components are free, X first. The Y check uses the already
// committed X so the result is never blocked unless pos itself was.
func Slide(pos, delta geom.Vec2, radius float64, g *grid.Grid) geom.Vec2 {
	candidate := pos.Add(delta)
	if !collision.Blocked(candidate, radius, g) {
		return candidate
	}
	if xOnly := geom.V(candidate.X, pos.Y); !collision.Blocked(xOnly, radius, g) {
		pos.X = candidate.X
	}
	if yOnly := geom.V(pos.X, candidate.Y); !collision.Blocked(yOnly, radius, g) {
		pos.Y = candidate.Y
	}
	return pos
}

// Rotate turns dir and plane by angle radians. Afterwards dir is unit length
// and plane keeps its incoming magnitude. A non-finite angle or a result that
// has collapsed returns the inputs unchanged.
func Rotate(dir, plane geom.Vec2, angle float64) (geom.Vec2, geom.Vec2) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return dir, plane
	}
	planeLen := plane.Len()
	d := dir.Rotated(angle)
	p := plane.Rotated(angle)
	if !d.IsFinite() || d.Len() == 0 || !p.IsFinite() {
		return dir, plane
	}
	d = d.Normalized()
	if l := p.Len(); l > 0 {
		p = p.Scale(planeLen / l)
	}
	return d, p
}

// Turn rotates the view by angle radians. Positive angles turn
// counter-clockwise in grid space, which is toward screen-left. The plane is
// rebuilt from the new facing so it stays exactly perpendicular with length
// FOV however many turns accumulate.
func (s State) Turn(angle float64) State {
	if angle == 0 {
		return s
	}
	s.Dir, _ = Rotate(s.Dir, s.Plane, angle)
	s.Plane = planeFor(s.Dir, s.FOV)
	return s
}

// LookAngle converts horizontal mouse travel into a turn angle. Moving the
// mouse right (positive dx) turns toward screen-right.
func LookAngle(mouseDX, sensitivity float64) float64 {
	return -mouseDX * sensitivity
}
