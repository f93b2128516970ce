// Package projection turns ray hits into vertical wall strips on screen.
//
// Screen column x maps to cameraX in [-1, 1); the ray for that column is
// dir + plane*cameraX. A hit's distance is corrected onto the view axis so that
// a flat wall projects to a constant height, then scaled by the focal length.
package projection

import (
	"math"

	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/core/raycast"
)

// CameraX maps screen column x of width columns into [-1, 1).
func CameraX(x, width int) float64 {
	if width <= 0 {
		return 0
	}
	return 2*float64(x)/float64(width) - 1
}

// RayDirection returns the ray for a camera-space offset.
func RayDirection(dir, plane geom.Vec2, cameraX float64) geom.Vec2 {
	return dir.Add(plane.Scale(cameraX))
}

// CorrectDistance projects the hit distance onto the view direction. The
// Euclidean distance to the hit is multiplied by the cosine between the ray
// and the facing, which removes the fisheye bulge. Note that this multiplies:
// dividing by the cosine would push edge columns further away rather than
// give the perpendicular distance to the camera plane. dir must be unit
// length. The result never drops below minDist.
func CorrectDistance(hit raycast.Hit, rayDir, dir geom.Vec2, minDist float64) float64 {
	rayLen := rayDir.Len()
	if rayLen == 0 {
		return minDist
	}
	euclid := hit.Distance * rayLen
	cos := rayDir.Scale(1 / rayLen).Dot(dir)
	d := euclid * cos
	if math.IsNaN(d) || d < minDist {
		return minDist
	}
	return d
}

// TextureColumn picks the texel column for a hit. The fractional position
// along the struck face is scaled to the texture width, then mirrored for
// faces seen from the side where the face coordinate runs right-to-left so
// textures never appear flipped.
func TextureColumn(hit raycast.Hit, rayDir geom.Vec2, texWidth int) int {
	if texWidth <= 0 {
		return 0
	}
	along := hit.Point.X
	if hit.Side == raycast.SideX {
		along = hit.Point.Y
	}
	frac := along - math.Floor(along)
	col := int(math.Floor(frac * float64(texWidth)))
	if (hit.Side == raycast.SideX && rayDir.X > 0) || (hit.Side == raycast.SideY && rayDir.Y < 0) {
		col = texWidth - 1 - col
	}
	return max(0, min(texWidth-1, col))
}

// View holds the per-frame projection parameters.
type View struct {
	ScreenHeight int
	Focal        float64 // Pixels; a wall at distance 1 is Focal tall
	TexWidth     int
	MinDistance  float64
}

// Strip is one projected wall column.
type Strip struct {
	Column   int
	Distance float64 // Corrected, never below View.MinDistance
	Height   float64 // Full projected height, may exceed the screen
	WallTop  float64 // Unclipped top edge, may be negative
	Top      int     // First visible row
	Bottom   int     // One past the last visible row
	TexX     int
	V0, V1   float64 // Visible texture range as fractions of texture height
	Side     raycast.Side
	Code     int
}

// Empty reports whether no row of the strip is on screen.
func (s Strip) Empty() bool {
	return s.Bottom <= s.Top
}

// Project builds the strip for column from a hit along rayDir while the
// viewer faces dir. Only the on-screen part is kept, with V0 and V1 trimmed to
// match so tall walls are cropped instead of squashed.
func Project(hit raycast.Hit, rayDir, dir geom.Vec2, column int, v View) Strip {
	dist := CorrectDistance(hit, rayDir, dir, v.MinDistance)
	height := v.Focal / dist
	wallTop := float64(v.ScreenHeight)/2 - height/2

	s := Strip{
		Column:   column,
		Distance: dist,
		Height:   height,
		WallTop:  wallTop,
		Top:      max(0, int(math.Floor(wallTop))),
		Bottom:   min(v.ScreenHeight, int(math.Ceil(wallTop+height))),
		TexX:     TextureColumn(hit, rayDir, v.TexWidth),
		Side:     hit.Side,
		Code:     hit.Code,
	}
	if s.Empty() || height <= 0 {
		return s
	}
	s.V0 = clamp01((float64(s.Top) - wallTop) / height)
	s.V1 = clamp01((float64(s.Bottom) - wallTop) / height)
	return s
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
