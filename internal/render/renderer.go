package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop cleanly.
var ErrQuit = errors.New("quit requested")

// Texture is a decoded image that wall columns are sampled from.
type Texture interface {
	// Size returns the texture dimensions in texels.
	Size() (width, height int)
}

// Column describes one textured wall strip. The destination spans DstHeight
// pixels starting at DstTop in screen column DstX; the source is texel
// column SrcX between SrcV0 and SrcV1, given as fractions of texture height.
type Column struct {
	DstX      int
	DstTop    float64
	DstHeight float64
	SrcX      int
	SrcV0     float64
	SrcV1     float64
	// Shade scales the sampled colour (1 = unchanged).
	Shade float32
}

// Canvas is the frame being drawn. It abstracts the underlying graphics
// engine so game logic works unchanged on any backend.
type Canvas interface {
	// Size returns the canvas size in pixels (or cells).
	Size() (width, height int)

	// Clear fills the whole canvas.
	Clear(clr color.Color)

	// FillRect fills r, clipped to the canvas.
	FillRect(r image.Rectangle, clr color.Color)

	// DrawColumn draws one textured wall strip.
	DrawColumn(tex Texture, col Column)

	// FillCircle draws a filled circle centred at (x, y).
	FillCircle(x, y, radius float32, clr color.Color)

	// DrawText draws debug text with its top-left corner at (x, y).
	DrawText(text string, x, y int)

	// MeasureText returns the size DrawText would cover.
	MeasureText(text string) (width, height int)
}

// InputManager handles input from the user (keyboard, mouse).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	// CursorDelta returns the cursor travel since the previous tick.
	CursorDelta() (dx, dy float64)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyEscape
)

// Keys lists every Key, in declaration order.
var Keys = []Key{KeyW, KeyA, KeyS, KeyD, KeyQ, KeyE, KeyUp, KeyDown, KeyLeft, KeyRight, KeyTab, KeyF1, KeyF2, KeyF3, KeyEscape}

// String returns a short key name.
func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyQ:
		return "Q"
	case KeyE:
		return "E"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyTab:
		return "Tab"
	case KeyF1:
		return "F1"
	case KeyF2:
		return "F2"
	case KeyF3:
		return "F3"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// ResourceLoader handles loading resources like textures from disk.
type ResourceLoader interface {
	LoadTexture(path string) (Texture, error)
}

// FrameStats reports timing measured by the engine.
type FrameStats interface {
	ActualFPS() float64
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game by one tick. Returning ErrQuit ends the loop.
	Update() error

	// Draw draws the current frame.
	Draw(canvas Canvas)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// SetTPS sets the fixed update rate.
	SetTPS(tps int)

	// SetVsync enables or disables vertical sync.
	SetVsync(enabled bool)

	// SetCursorCaptured hides and locks the cursor for mouse look.
	SetCursorCaptured(captured bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
