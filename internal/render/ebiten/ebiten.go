package ebiten

import (
	"errors"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/thurs/internal/render"
)

// EbitenTexture wraps an ebiten.Image to implement the render.Texture interface.
type EbitenTexture struct {
	img *ebiten.Image
}

// Size returns the width and height of the texture.
func (t *EbitenTexture) Size() (width, height int) {
	return t.img.Bounds().Dx(), t.img.Bounds().Dy()
}

// GetEbitenImage returns the underlying ebiten.Image.
func (t *EbitenTexture) GetEbitenImage() *ebiten.Image {
	return t.img
}

// WrapEbitenImage wraps an existing ebiten.Image as a render.Texture.
func WrapEbitenImage(img *ebiten.Image) render.Texture {
	return &EbitenTexture{img: img}
}

// EbitenCanvas implements render.Canvas on top of the ebiten screen image.
type EbitenCanvas struct {
	img      *ebiten.Image
	vertices [4]ebiten.Vertex
}

var quadIndices = []uint16{0, 1, 2, 1, 2, 3}

var (
	_ render.Canvas     = (*EbitenCanvas)(nil)
	_ render.Engine     = (*EbitenEngine)(nil)
	_ render.FrameStats = (*EbitenEngine)(nil)
)

// Size returns the width and height of the canvas.
func (c *EbitenCanvas) Size() (width, height int) {
	return c.img.Bounds().Dx(), c.img.Bounds().Dy()
}

// Clear fills the entire canvas with the given color.
func (c *EbitenCanvas) Clear(clr color.Color) {
	c.img.Fill(clr)
}

// FillRect fills r with the given color.
func (c *EbitenCanvas) FillRect(r image.Rectangle, clr color.Color) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(c.img, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

// DrawColumn draws one textured wall strip as a two-triangle quad. Shade is
// applied through the vertex colours.
func (c *EbitenCanvas) DrawColumn(tex render.Texture, col render.Column) {
	src := tex.(*EbitenTexture).GetEbitenImage()
	b := src.Bounds()

	x0, x1 := float32(col.DstX), float32(col.DstX+1)
	y0, y1 := float32(col.DstTop), float32(col.DstTop+col.DstHeight)
	sx0 := float32(b.Min.X + col.SrcX)
	sx1 := sx0 + 1
	sy0 := float32(b.Min.Y) + float32(col.SrcV0*float64(b.Dy()))
	sy1 := float32(b.Min.Y) + float32(col.SrcV1*float64(b.Dy()))

	v := &c.vertices
	v[0] = ebiten.Vertex{DstX: x0, DstY: y0, SrcX: sx0, SrcY: sy0}
	v[1] = ebiten.Vertex{DstX: x1, DstY: y0, SrcX: sx1, SrcY: sy0}
	v[2] = ebiten.Vertex{DstX: x0, DstY: y1, SrcX: sx0, SrcY: sy1}
	v[3] = ebiten.Vertex{DstX: x1, DstY: y1, SrcX: sx1, SrcY: sy1}
	for i := range v {
		v[i].ColorR = col.Shade
		v[i].ColorG = col.Shade
		v[i].ColorB = col.Shade
		v[i].ColorA = 1
	}

	c.img.DrawTriangles(v[:], quadIndices, src, nil)
}

// FillCircle draws a filled circle on the canvas.
func (c *EbitenCanvas) FillCircle(x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(c.img, x, y, radius, clr, true)
}

// DrawText draws text using the default debug font.
// Note: text is always white.
func (c *EbitenCanvas) DrawText(str string, x, y int) {
	ebitenutil.DebugPrintAt(c.img, str, x, y)
}

// MeasureText measures text in the debug font, which is 6x16 pixels per
// character including line spacing.
func (c *EbitenCanvas) MeasureText(str string) (width, height int) {
	return utf8.RuneCountInString(str) * 6, 16
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct {
	lastX, lastY int
	primed       bool
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && inpututil.IsKeyJustPressed(k)
}

// CursorDelta returns the cursor travel since the previous call. The first
// call only records the position.
func (m *EbitenInputManager) CursorDelta() (dx, dy float64) {
	x, y := ebiten.CursorPosition()
	if m.primed {
		dx, dy = float64(x-m.lastX), float64(y-m.lastY)
	}
	m.lastX, m.lastY, m.primed = x, y, true
	return dx, dy
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	switch key {
	case render.KeyW:
		return ebiten.KeyW, true
	case render.KeyA:
		return ebiten.KeyA, true
	case render.KeyS:
		return ebiten.KeyS, true
	case render.KeyD:
		return ebiten.KeyD, true
	case render.KeyQ:
		return ebiten.KeyQ, true
	case render.KeyE:
		return ebiten.KeyE, true
	case render.KeyUp:
		return ebiten.KeyArrowUp, true
	case render.KeyDown:
		return ebiten.KeyArrowDown, true
	case render.KeyLeft:
		return ebiten.KeyArrowLeft, true
	case render.KeyRight:
		return ebiten.KeyArrowRight, true
	case render.KeyTab:
		return ebiten.KeyTab, true
	case render.KeyF1:
		return ebiten.KeyF1, true
	case render.KeyF2:
		return ebiten.KeyF2, true
	case render.KeyF3:
		return ebiten.KeyF3, true
	case render.KeyEscape:
		return ebiten.KeyEscape, true
	default:
		return 0, false
	}
}

// EbitenResourceLoader implements the ResourceLoader interface using Ebiten.
type EbitenResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &EbitenResourceLoader{}
}

// LoadTexture loads a texture from the specified file path.
func (l *EbitenResourceLoader) LoadTexture(path string) (render.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return WrapEbitenImage(img), nil
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() *EbitenEngine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the fixed update rate.
func (e *EbitenEngine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// SetVsync enables or disables vertical sync.
func (e *EbitenEngine) SetVsync(enabled bool) {
	ebiten.SetVsyncEnabled(enabled)
}

// SetCursorCaptured hides and locks the cursor for mouse look.
func (e *EbitenEngine) SetCursorCaptured(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// ActualFPS reports the measured frame rate.
func (e *EbitenEngine) ActualFPS() float64 {
	return ebiten.ActualFPS()
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game   render.Game
	canvas EbitenCanvas
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	if err := a.game.Update(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.canvas.img = screen
	a.game.Draw(&a.canvas)
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
