// Package hud draws the text overlay and minimap on top of the 3D view.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/render"
	"chosenoffset.com/thurs/internal/world/grid"
)

// Snapshot is the per-frame data the HUD shows
type Snapshot struct {
	Pos         geom.Vec2
	Dir         geom.Vec2
	FPS         float64
	ColumnsHit  int
	ColumnsOpen int
	Grid        *grid.Grid
}

// HUD manages the heads-up display
type HUD struct {
	config       *config.HUDConfig
	screenWidth  int
	screenHeight int

	showDebug   bool
	showMinimap bool
}

var (
	panelColor  = color.RGBA{20, 20, 30, 180}
	wallColors  = []color.RGBA{{170, 170, 170, 255}, {170, 90, 60, 255}, {70, 110, 170, 255}, {110, 160, 80, 255}}
	emptyColor  = color.RGBA{30, 30, 36, 255}
	playerColor = color.RGBA{255, 220, 60, 255}
	rayColor    = color.RGBA{255, 140, 40, 255}
)

const padding = 10

// New creates a new HUD with the given configuration
func New(cfg *config.HUDConfig, screenWidth, screenHeight int) *HUD {
	if cfg == nil {
		cfg = &config.DefaultConfig().HUD
	}
	return &HUD{
		config:       cfg,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		showDebug:    cfg.ShowFPS || cfg.ShowPosition,
		showMinimap:  cfg.ShowMinimap,
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// ToggleDebug shows or hides the text overlay
func (h *HUD) ToggleDebug() { h.showDebug = !h.showDebug }

// ToggleMinimap shows or hides the minimap
func (h *HUD) ToggleMinimap() { h.showMinimap = !h.showMinimap }

// DebugVisible reports whether the text overlay is shown
func (h *HUD) DebugVisible() bool { return h.showDebug }

// MinimapVisible reports whether the minimap is shown
func (h *HUD) MinimapVisible() bool { return h.showMinimap }

// Lines returns the overlay text for snap. FPS and position lines appear
// when their config switch is on; with both off, everything is listed.
func (h *HUD) Lines(snap Snapshot) []string {
	all := !h.config.ShowFPS && !h.config.ShowPosition
	var lines []string
	if all || h.config.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %.1f", snap.FPS))
	}
	if all || h.config.ShowPosition {
		lines = append(lines,
			fmt.Sprintf("Pos: %.2f, %.2f", snap.Pos.X, snap.Pos.Y),
			fmt.Sprintf("Dir: %.2f, %.2f", snap.Dir.X, snap.Dir.Y),
		)
	}
	lines = append(lines, fmt.Sprintf("Walls: %d  Open: %d", snap.ColumnsHit, snap.ColumnsOpen))
	return lines
}

// Draw renders the HUD to the canvas
func (h *HUD) Draw(canvas render.Canvas, snap Snapshot) {
	if h.showDebug {
		h.drawText(canvas, snap)
	}
	if h.showMinimap && snap.Grid != nil {
		h.drawMinimap(canvas, snap)
	}
}

func (h *HUD) drawText(canvas render.Canvas, snap Snapshot) {
	lines := h.Lines(snap)
	width, lineHeight := 0, 0
	for _, l := range lines {
		w, lh := canvas.MeasureText(l)
		width = max(width, w)
		lineHeight = max(lineHeight, lh)
	}
	panelW, panelH := width+8, lineHeight*len(lines)+8
	x, y := h.calculatePosition(h.config.Position, panelW, panelH)

	canvas.FillRect(image.Rect(x, y, x+panelW, y+panelH), panelColor)
	for i, l := range lines {
		canvas.DrawText(l, x+4, y+4+i*lineHeight)
	}
}

func (h *HUD) drawMinimap(canvas render.Canvas, snap Snapshot) {
	cell := max(1, h.config.MinimapCell)
	g := snap.Grid
	mapW, mapH := g.Width()*cell, g.Height()*cell
	// The minimap sits in the corner across from the text panel
	x0, y0 := h.calculatePosition(mirrorCorner(h.config.Position), mapW, mapH)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			clr := emptyColor
			if !g.Walkable(x, y) {
				code, _ := g.TryGet(x, y)
				clr = WallColor(code)
			}
			r := image.Rect(x0+x*cell, y0+y*cell, x0+(x+1)*cell, y0+(y+1)*cell)
			canvas.FillRect(r, clr)
		}
	}

	px := float32(x0) + float32(snap.Pos.X)*float32(cell)
	py := float32(y0) + float32(snap.Pos.Y)*float32(cell)

	// Facing marker: a short dotted ray
	for i := 1; i <= 4; i++ {
		t := float64(i) * 0.35
		fx := int(math.Floor(float64(px) + snap.Dir.X*t*float64(cell)))
		fy := int(math.Floor(float64(py) + snap.Dir.Y*t*float64(cell)))
		canvas.FillRect(image.Rect(fx, fy, fx+1, fy+1), rayColor)
	}
	canvas.FillCircle(px, py, max(1, float32(cell)/3), playerColor)
}

// WallColor returns the minimap colour for a wall code
func WallColor(code int) color.RGBA {
	if code <= 0 {
		return emptyColor
	}
	return wallColors[(code-1)%len(wallColors)]
}

// calculatePosition returns the top-left corner of a w x h panel
func (h *HUD) calculatePosition(position string, w, ht int) (int, int) {
	switch position {
	case "top-right":
		return h.screenWidth - w - padding, padding
	case "bottom-left":
		return padding, h.screenHeight - ht - padding
	case "bottom-right":
		return h.screenWidth - w - padding, h.screenHeight - ht - padding
	default: // "top-left"
		return padding, padding
	}
}

func mirrorCorner(position string) string {
	switch position {
	case "top-right":
		return "top-left"
	case "bottom-left":
		return "bottom-right"
	case "bottom-right":
		return "bottom-left"
	default:
		return "top-right"
	}
}
