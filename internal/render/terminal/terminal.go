// Package terminal runs the game inside a terminal through tcell. Every cell
// shows two vertically stacked pixels using the upper half block glyph, with
// the foreground colour for the top pixel and the background for the bottom.
package terminal

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/thurs/internal/render"
	"chosenoffset.com/thurs/internal/render/lighting"
)

const (
	// HoldTicks is how long a key counts as held after its last press or
	// repeat event. Terminals report presses but never releases.
	HoldTicks = 12

	// CellPixels converts mouse travel in cells into the pixel units the
	// mouse sensitivity is tuned for.
	CellPixels = 8

	halfBlock = '▀'
)

var (
	_ render.Canvas         = (*Canvas)(nil)
	_ render.InputManager   = (*InputManager)(nil)
	_ render.ResourceLoader = (*ResourceLoader)(nil)
	_ render.Engine         = (*Engine)(nil)
	_ render.FrameStats     = (*Engine)(nil)
)

// Texture is a decoded image sampled per pixel.
type Texture struct {
	img image.Image
}

// NewTexture wraps an image as a texture.
func NewTexture(img image.Image) *Texture {
	return &Texture{img: img}
}

// Size returns the width and height of the texture.
func (t *Texture) Size() (width, height int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) at(x, y int) color.Color {
	b := t.img.Bounds()
	return t.img.At(b.Min.X+x, b.Min.Y+y)
}

// ResourceLoader decodes textures from image files.
type ResourceLoader struct{}

// NewResourceLoader creates a new terminal resource loader.
func NewResourceLoader() *ResourceLoader {
	return &ResourceLoader{}
}

// LoadTexture loads a texture from the specified file path.
func (l *ResourceLoader) LoadTexture(path string) (render.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return NewTexture(img), nil
}

type textOp struct {
	text string
	x, y int
}

// Canvas is a pixel buffer twice as tall as the terminal. Text is kept apart
// and written over the cells when the frame is flushed.
type Canvas struct {
	width, height int
	pixels        []color.RGBA
	texts         []textOp
}

// NewCanvas creates a canvas of width x height pixels.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the pixel dimensions and drops pending text.
func (c *Canvas) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if cap(c.pixels) < width*height {
		c.pixels = make([]color.RGBA, width*height)
	}
	c.pixels = c.pixels[:width*height]
	c.width, c.height = width, height
	c.texts = c.texts[:0]
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Pixel returns the colour at (x, y), or transparent black outside the canvas.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return color.RGBA{}
	}
	return c.pixels[y*c.width+x]
}

func (c *Canvas) set(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = clr
}

// Clear fills the whole canvas.
func (c *Canvas) Clear(clr color.Color) {
	rgba := toRGBA(clr)
	for i := range c.pixels {
		c.pixels[i] = rgba
	}
}

// FillRect fills r, clipped to the canvas.
func (c *Canvas) FillRect(r image.Rectangle, clr color.Color) {
	r = r.Intersect(image.Rect(0, 0, c.width, c.height))
	rgba := toRGBA(clr)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := c.pixels[y*c.width : (y+1)*c.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = rgba
		}
	}
}

// DrawColumn samples one texel column into screen column col.DstX.
func (c *Canvas) DrawColumn(tex render.Texture, col render.Column) {
	if col.DstX < 0 || col.DstX >= c.width || col.DstHeight <= 0 {
		return
	}
	t, ok := tex.(*Texture)
	texW, texH := tex.Size()
	top := max(0, int(col.DstTop))
	bottom := min(c.height, int(col.DstTop+col.DstHeight+0.5))
	srcX := max(0, min(texW-1, col.SrcX))
	for y := top; y < bottom; y++ {
		var sample color.Color = color.Gray{Y: 128}
		if ok && texH > 0 {
			v := col.SrcV0 + (float64(y)+0.5-col.DstTop)/col.DstHeight*(col.SrcV1-col.SrcV0)
			texY := max(0, min(texH-1, int(v*float64(texH))))
			sample = t.at(srcX, texY)
		}
		c.set(col.DstX, y, lighting.Tint(sample, col.Shade))
	}
}

// FillCircle draws a filled circle centred at (x, y).
func (c *Canvas) FillCircle(x, y, radius float32, clr color.Color) {
	rgba := toRGBA(clr)
	r2 := radius * radius
	for py := int(y - radius); py <= int(y+radius); py++ {
		for px := int(x - radius); px <= int(x+radius); px++ {
			dx := float32(px) + 0.5 - x
			dy := float32(py) + 0.5 - y
			if dx*dx+dy*dy <= r2 {
				c.set(px, py, rgba)
			}
		}
	}
}

// DrawText queues text at pixel (x, y). It lands on cell row y/2.
func (c *Canvas) DrawText(text string, x, y int) {
	c.texts = append(c.texts, textOp{text: text, x: x, y: y})
}

// MeasureText returns one pixel column per rune and one cell (two pixel
// rows) of height.
func (c *Canvas) MeasureText(text string) (width, height int) {
	return utf8.RuneCountInString(text), 2
}

// Flush writes the frame to screen. Pixels past the screen are dropped.
func (c *Canvas) Flush(screen tcell.Screen) {
	cols, rows := screen.Size()
	for row := 0; row < rows && row*2 < c.height; row++ {
		for x := 0; x < cols && x < c.width; x++ {
			top := c.Pixel(x, row*2)
			bottom := c.Pixel(x, row*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(x, row, halfBlock, nil, style)
		}
	}

	textStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for _, op := range c.texts {
		row := op.y / 2
		if row < 0 || row >= rows {
			continue
		}
		x := op.x
		for _, r := range op.text {
			if x >= cols {
				break
			}
			if x >= 0 {
				screen.SetContent(x, row, r, nil, textStyle)
			}
			x++
		}
	}
	c.texts = c.texts[:0]
}

func toRGBA(clr color.Color) color.RGBA {
	r, g, b, a := clr.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// InputManager turns tcell events into held-key state. A key counts as held
// for HoldTicks ticks after its most recent press or repeat.
type InputManager struct {
	held        map[render.Key]int
	justPressed map[render.Key]bool
	dx, dy      float64
	lastX       int
	lastY       int
	hasMouse    bool
}

// NewInputManager creates an input manager with nothing held.
func NewInputManager() *InputManager {
	return &InputManager{
		held:        make(map[render.Key]int),
		justPressed: make(map[render.Key]bool),
	}
}

// IsKeyPressed returns whether the key is currently held.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	return m.held[key] > 0
}

// IsKeyJustPressed returns whether the key went down since the last tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	return m.justPressed[key]
}

// CursorDelta returns the mouse travel since the last tick, in pixel units.
func (m *InputManager) CursorDelta() (dx, dy float64) {
	return m.dx, m.dy
}

// HandleEvent records a key or mouse event.
func (m *InputManager) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, ok := keyFromEvent(ev)
		if !ok {
			return
		}
		if m.held[key] == 0 {
			m.justPressed[key] = true
		}
		m.held[key] = HoldTicks
	case *tcell.EventMouse:
		x, y := ev.Position()
		if m.hasMouse {
			m.dx += float64(x-m.lastX) * CellPixels
			m.dy += float64(y-m.lastY) * CellPixels
		}
		m.lastX, m.lastY, m.hasMouse = x, y, true
	}
}

// EndTick ages held keys and clears per-tick state.
func (m *InputManager) EndTick() {
	for k, n := range m.held {
		if n <= 1 {
			delete(m.held, k)
		} else {
			m.held[k] = n - 1
		}
	}
	clear(m.justPressed)
	m.dx, m.dy = 0, 0
}

// keyFromEvent maps a tcell key event to a render.Key.
func keyFromEvent(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyTab:
		return render.KeyTab, true
	case tcell.KeyF1:
		return render.KeyF1, true
	case tcell.KeyF2:
		return render.KeyF2, true
	case tcell.KeyF3:
		return render.KeyF3, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return render.KeyW, true
		case 'a', 'A':
			return render.KeyA, true
		case 's', 'S':
			return render.KeyS, true
		case 'd', 'D':
			return render.KeyD, true
		case 'q', 'Q':
			return render.KeyQ, true
		case 'e', 'E':
			return render.KeyE, true
		}
	}
	return 0, false
}

// Engine drives a render.Game on a tcell screen at a fixed tick rate.
type Engine struct {
	screen tcell.Screen
	input  *InputManager
	tps    int
	title  string
	mouse  bool

	fps         float64
	frames      int
	windowStart time.Time
}

// NewEngine creates an engine for screen. The screen is initialised by RunGame.
func NewEngine(screen tcell.Screen, input *InputManager) *Engine {
	return &Engine{
		screen: screen,
		input:  input,
		tps:    60,
	}
}

// SetWindowSize is ignored; the terminal decides the size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the terminal title where supported.
func (e *Engine) SetWindowTitle(title string) {
	e.title = title
}

// SetWindowResizable is ignored; terminals always resize.
func (e *Engine) SetWindowResizable(resizable bool) {}

// SetTPS sets the fixed update rate.
func (e *Engine) SetTPS(tps int) {
	if tps > 0 {
		e.tps = tps
	}
}

// SetVsync is ignored.
func (e *Engine) SetVsync(enabled bool) {}

// SetCursorCaptured enables mouse motion reporting for mouse look.
func (e *Engine) SetCursorCaptured(captured bool) {
	e.mouse = captured
}

// ActualFPS reports frames drawn over the last full second.
func (e *Engine) ActualFPS() float64 {
	return e.fps
}

// RunGame runs the game loop until the game returns an error, ErrQuit, or
// the user presses Ctrl+C.
func (e *Engine) RunGame(game render.Game) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer e.screen.Fini()

	e.screen.HideCursor()
	if e.title != "" {
		e.screen.SetTitle(e.title)
	}
	if e.mouse {
		e.screen.EnableMouse(tcell.MouseMotionEvents)
	}

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(e.tps))
	defer ticker.Stop()

	canvas := NewCanvas(0, 0)
	e.windowStart = time.Now()
	for {
		select {
		case ev := <-events:
			if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyCtrlC {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				e.screen.Sync()
			}
			e.input.HandleEvent(ev)

		case <-ticker.C:
			if err := game.Update(); err != nil {
				if errors.Is(err, render.ErrQuit) {
					return nil
				}
				return err
			}
			e.input.EndTick()

			cols, rows := e.screen.Size()
			w, h := game.Layout(cols, rows*2)
			canvas.Resize(w, h)
			game.Draw(canvas)
			canvas.Flush(e.screen)
			e.screen.Show()
			e.countFrame()
		}
	}
}

func (e *Engine) countFrame() {
	e.frames++
	if elapsed := time.Since(e.windowStart); elapsed >= time.Second {
		e.fps = float64(e.frames) / elapsed.Seconds()
		e.frames = 0
		e.windowStart = time.Now()
	}
}
