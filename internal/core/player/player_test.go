package player

import (
	"errors"
	"math"
	"testing"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/collision"
	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/world/grid"
)

const eps = 1e-9

func room(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows([][]int{
		{1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 1},
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

func spawn(t *testing.T, pos, dir geom.Vec2) State {
	t.Helper()
	s, err := New(pos, dir, config.DefaultConfig().Player)
	if err != nil {
		t.Fatalf("Failed to create player: %v", err)
	}
	return s
}

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewBuildsPerpendicularPlane(t *testing.T) {
	s := spawn(t, geom.V(2, 2), geom.V(-1, 0))
	if !near(s.Plane.X, 0) || !near(s.Plane.Y, 0.66) {
		t.Errorf("Expected plane (0, 0.66), got %v", s.Plane)
	}
	if !near(s.Dir.Dot(s.Plane), 0) {
		t.Errorf("Expected plane perpendicular to dir, dot=%f", s.Dir.Dot(s.Plane))
	}
}

func TestNewNormalizesFacing(t *testing.T) {
	s := spawn(t, geom.V(2, 2), geom.V(3, 4))
	if !near(s.Dir.Len(), 1) {
		t.Errorf("Expected unit facing, got length %f", s.Dir.Len())
	}
}

func TestNewRejectsDegenerateFacing(t *testing.T) {
	cfg := config.DefaultConfig().Player
	for _, dir := range []geom.Vec2{geom.V(0, 0), geom.V(math.NaN(), 1), geom.V(math.Inf(1), 0)} {
		if _, err := New(geom.V(2, 2), dir, cfg); !errors.Is(err, ErrDegenerateFacing) {
			t.Errorf("dir %v: expected ErrDegenerateFacing, got %v", dir, err)
		}
	}
	if _, err := New(geom.V(math.NaN(), 2), geom.V(1, 0), cfg); err == nil {
		t.Error("Expected an error for a non-finite spawn position")
	}
}

func TestMoveForwardInOpenSpace(t *testing.T) {
	g := room(t)
	s := spawn(t, geom.V(2.5, 2.5), geom.V(1, 0))
	moved := s.Move(IntentForward, g)
	if !near(moved.Pos.X, 2.55) || !near(moved.Pos.Y, 2.5) {
		t.Errorf("Expected (2.55, 2.5), got %v", moved.Pos)
	}
	if s.Pos != geom.V(2.5, 2.5) {
		t.Error("Expected Move to leave the receiver untouched")
	}
}

func TestForwardAndBackwardCancel(t *testing.T) {
	g := room(t)
	s := spawn(t, geom.V(2.5, 2.5), geom.V(0, 1))
	moved := s.Move(IntentForward|IntentBackward, g)
	if !near(moved.Pos.X, 2.5) || !near(moved.Pos.Y, 2.5) {
		t.Errorf("Expected opposing intents to cancel, got %v", moved.Pos)
	}
}

func TestStrafeDirections(t *testing.T) {
	g := room(t)
	// Facing -X, screen-right is +Y (the plane).
	s := spawn(t, geom.V(2.5, 2.5), geom.V(-1, 0))
	right := s.Move(IntentStrafeRight, g)
	if !(right.Pos.Y > s.Pos.Y) {
		t.Errorf("Expected strafe right to follow the plane, got %v", right.Pos)
	}
	left := s.Move(IntentStrafeLeft, g)
	if !(left.Pos.Y < s.Pos.Y) {
		t.Errorf("Expected strafe left to oppose the plane, got %v", left.Pos)
	}
}

func TestSlideAlongWall(t *testing.T) {
	g := room(t)
	// Hugging the north wall (y=1 face) and pushing diagonally into it.
	s := spawn(t, geom.V(2.5, 1.12), geom.V(1, -1))
	moved := s.Move(IntentForward, g)
	if want := s.Pos.X + s.Dir.X*s.MoveSpeed; !near(moved.Pos.X, want) {
		t.Errorf("Expected X to take the full x-only step to %f, got %f", want, moved.Pos.X)
	}
	if !near(moved.Pos.Y, s.Pos.Y) {
		t.Errorf("Expected Y to stay put against the wall, got %v", moved.Pos)
	}
	if collision.Blocked(moved.Pos, moved.Radius, g) {
		t.Errorf("Committed position %v overlaps a wall", moved.Pos)
	}
}

func TestCornerApproachStaysClear(t *testing.T) {
	g := room(t)
	// Diagonal approach to the pillar corner at (3,3).
	s := spawn(t, geom.V(2.9, 2.9), geom.V(1, 1))
	moved := s.Move(IntentForward, g)
	if !collision.Blocked(geom.V(2.9+0.05/math.Sqrt2, 2.9+0.05/math.Sqrt2), s.Radius, g) {
		t.Fatal("Expected the diagonal move to be blocked")
	}
	if collision.Blocked(moved.Pos, moved.Radius, g) {
		t.Errorf("Committed position %v overlaps a wall", moved.Pos)
	}
}

func TestBlockedOnBothAxesLeavesPositionUnchanged(t *testing.T) {
	g, err := grid.FromRows([][]int{
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 0, 1},
		{1, 1, 1, 1, 1},
	})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	s := spawn(t, geom.V(3.5, 3.5), geom.V(1, 0))
	s.MoveSpeed = 0.45
	moved := s.Move(IntentForward|IntentStrafeLeft, g)
	if moved.Pos != geom.V(3.5, 3.5) {
		t.Errorf("Expected position to stay at (3.5, 3.5), got %v", moved.Pos)
	}
}

func TestMoveNeverCommitsOverlap(t *testing.T) {
	g := room(t)
	s := spawn(t, geom.V(1.5, 1.5), geom.V(1, 0))
	s.MoveSpeed = 0.13
	for i := 0; i < 2000; i++ {
		s = s.Turn(0.037)
		in := IntentForward
		if i%7 == 0 {
			in |= IntentStrafeLeft
		}
		s = s.Move(in, g)
		if collision.Blocked(s.Pos, s.Radius, g) {
			t.Fatalf("step %d: committed position %v overlaps a wall", i, s.Pos)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	dir, plane := geom.V(-1, 0), geom.V(0, 0.66)
	for _, a := range []float64{0.03, -0.5, 1.7, math.Pi} {
		d, p := Rotate(dir, plane, a)
		d, p = Rotate(d, p, -a)
		if math.Abs(d.X-dir.X) > 1e-12 || math.Abs(d.Y-dir.Y) > 1e-12 {
			t.Errorf("angle %f: expected dir %v, got %v", a, dir, d)
		}
		if math.Abs(p.X-plane.X) > 1e-12 || math.Abs(p.Y-plane.Y) > 1e-12 {
			t.Errorf("angle %f: expected plane %v, got %v", a, plane, p)
		}
	}
}

func TestRotateIgnoresNonFiniteAngle(t *testing.T) {
	dir, plane := geom.V(1, 0), geom.V(0, -0.66)
	d, p := Rotate(dir, plane, math.NaN())
	if d != dir || p != plane {
		t.Errorf("Expected NaN angle to be a no-op, got %v %v", d, p)
	}
}

func TestTurnKeepsInvariantsAfterManySteps(t *testing.T) {
	s := spawn(t, geom.V(2, 2), geom.V(-1, 0))
	for i := 0; i < 100000; i++ {
		s = s.Turn(0.03)
	}
	if math.Abs(s.Dir.Len()-1) > 1e-4 {
		t.Errorf("Expected unit dir, got length %f", s.Dir.Len())
	}
	if math.Abs(s.Plane.Len()-s.FOV) > 1e-4 {
		t.Errorf("Expected plane length %f, got %f", s.FOV, s.Plane.Len())
	}
	if math.Abs(s.Dir.Dot(s.Plane)) > 1e-4 {
		t.Errorf("Expected perpendicular plane, dot=%f", s.Dir.Dot(s.Plane))
	}
}

func TestRotateKeepsMagnitudesAfterManySteps(t *testing.T) {
	dir, plane := geom.V(-1, 0), geom.V(0, 0.66)
	for i := 0; i < 100000; i++ {
		dir, plane = Rotate(dir, plane, 0.03)
	}
	if math.Abs(dir.Len()-1) > 1e-4 {
		t.Errorf("Expected unit dir, got length %f", dir.Len())
	}
	if math.Abs(plane.Len()-0.66) > 1e-4 {
		t.Errorf("Expected plane length 0.66, got %f", plane.Len())
	}
	if math.Abs(dir.Dot(plane)) > 1e-4 {
		t.Errorf("Expected perpendicular plane, dot=%f", dir.Dot(plane))
	}
}

func TestMouseRightTurnsTowardPlane(t *testing.T) {
	s := spawn(t, geom.V(2, 2), geom.V(-1, 0))
	turned := s.Turn(LookAngle(20, 0.005))
	// The new facing must lean toward the old screen-right.
	if !(turned.Dir.Dot(s.Plane) > 0) {
		t.Errorf("Expected mouse-right to turn toward %v, got dir %v", s.Plane, turned.Dir)
	}
	left := s.Turn(LookAngle(-20, 0.005))
	if !(left.Dir.Dot(s.Plane) < 0) {
		t.Errorf("Expected mouse-left to turn away from %v, got dir %v", s.Plane, left.Dir)
	}
}

func TestIntentHas(t *testing.T) {
	in := IntentForward | IntentStrafeRight
	if !in.Has(IntentForward) || !in.Has(IntentStrafeRight) {
		t.Error("Expected set bits to be reported")
	}
	if in.Has(IntentBackward) || in.Has(0) {
		t.Error("Expected unset and empty intents to be absent")
	}
}
