package game

import (
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/render"
	"chosenoffset.com/thurs/internal/world/grid"
	"chosenoffset.com/thurs/internal/world/maploader"
)

type fakeTexture struct{ w, h int }

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeInput struct {
	pressed map[render.Key]bool
	just    map[render.Key]bool
	dx      float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{pressed: map[render.Key]bool{}, just: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool     { return f.pressed[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool { return f.just[k] }
func (f *fakeInput) CursorDelta() (float64, float64)    { return f.dx, 0 }

type drawnColumn struct {
	tex render.Texture
	col render.Column
}

type recordingCanvas struct {
	w, h    int
	cleared color.Color
	rects   []image.Rectangle
	columns []drawnColumn
	texts   []string
}

func (c *recordingCanvas) Size() (int, int)                              { return c.w, c.h }
func (c *recordingCanvas) Clear(clr color.Color)                         { c.cleared = clr }
func (c *recordingCanvas) FillRect(r image.Rectangle, _ color.Color)     { c.rects = append(c.rects, r) }
func (c *recordingCanvas) FillCircle(_, _, _ float32, _ color.Color)     {}
func (c *recordingCanvas) DrawText(text string, _, _ int)                { c.texts = append(c.texts, text) }
func (c *recordingCanvas) MeasureText(text string) (int, int)            { return len(text) * 6, 16 }
func (c *recordingCanvas) DrawColumn(tex render.Texture, col render.Column) {
	c.columns = append(c.columns, drawnColumn{tex: tex, col: col})
}

func defaultGame(t *testing.T, input render.InputManager, textures ...render.Texture) *Game {
	t.Helper()
	m, err := maploader.Default()
	if err != nil {
		t.Fatalf("Failed to load built-in map: %v", err)
	}
	if len(textures) == 0 {
		textures = []render.Texture{&fakeTexture{64, 64}}
	}
	g, err := New(config.DefaultConfig(), m.Grid, m.Data.PlayerSpawn, textures, input, nil)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return g
}

func TestNewRequiresTextures(t *testing.T) {
	m, err := maploader.Default()
	if err != nil {
		t.Fatalf("Failed to load built-in map: %v", err)
	}
	cfg := config.DefaultConfig()
	if _, err := New(cfg, m.Grid, m.Data.PlayerSpawn, nil, newFakeInput(), nil); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("Expected ErrMissingTexture for no textures, got %v", err)
	}
	if _, err := New(cfg, m.Grid, m.Data.PlayerSpawn, []render.Texture{nil}, newFakeInput(), nil); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("Expected ErrMissingTexture for a nil texture, got %v", err)
	}
}

func TestNewRejectsBlockedSpawn(t *testing.T) {
	g, err := grid.FromRows([][]int{{0, 1}, {0, 0}})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	spawn := maploader.Spawn{X: 0.95, Y: 0.5, DirX: 1}
	_, err = New(config.DefaultConfig(), g, spawn, []render.Texture{&fakeTexture{1, 1}}, newFakeInput(), nil)
	if !errors.Is(err, ErrSpawnBlocked) {
		t.Errorf("Expected ErrSpawnBlocked, got %v", err)
	}
}

func TestEscapeQuits(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	if err := g.Update(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	in.just[render.KeyEscape] = true
	if err := g.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestForwardMovesAlongFacing(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	in.pressed[render.KeyW] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	want := geom.V(1.95, 2)
	if d := g.Player.Pos.Sub(want).Len(); d > 1e-9 {
		t.Errorf("Expected %v, got %v", want, g.Player.Pos)
	}
}

func TestMovementStopsAtWall(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	in.pressed[render.KeyW] = true
	for i := 0; i < 100; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	// The west wall face is x=1 and the radius is 0.1.
	if g.Player.Pos.X < 1.1-1e-9 {
		t.Errorf("Expected to stop at the wall, got %v", g.Player.Pos)
	}
}

func TestMouseAndArrowTurning(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	plane := g.Player.Plane

	in.dx = 10
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !(g.Player.Dir.Dot(plane) > 0) {
		t.Errorf("Expected mouse-right to turn toward the plane, got dir %v", g.Player.Dir)
	}

	g = defaultGame(t, in)
	in.dx = 0
	in.pressed[render.KeyLeft] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !(g.Player.Dir.Dot(plane) < 0) {
		t.Errorf("Expected Left to turn away from the plane, got dir %v", g.Player.Dir)
	}
}

func TestTabTogglesMinimapWithMessage(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	in.just[render.KeyTab] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.GameHUD.MinimapVisible() {
		t.Error("Expected minimap to be visible")
	}
	if len(g.Messages) != 1 || g.Messages[0].Text != "Minimap on" {
		t.Errorf("Expected 'Minimap on' message, got %+v", g.Messages)
	}

	in.just[render.KeyTab] = false
	for i := 0; i < 2*g.Config.Window.TPS+1; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if len(g.Messages) != 0 {
		t.Errorf("Expected message to expire, got %+v", g.Messages)
	}
}

func TestF2TogglesLighting(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	in.just[render.KeyF2] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.LightingManager.IsEnabled() {
		t.Error("Expected lighting to be off")
	}
	if len(g.Messages) != 1 || g.Messages[0].Text != "Lighting off" {
		t.Errorf("Expected 'Lighting off' message, got %+v", g.Messages)
	}

	canvas := &recordingCanvas{w: 200, h: 100}
	g.Draw(canvas)
	for _, dc := range canvas.columns {
		if dc.col.Shade != 1 {
			t.Fatalf("Expected unshaded columns, got shade %v at x=%d", dc.col.Shade, dc.col.DstX)
		}
	}

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.LightingManager.IsEnabled() {
		t.Error("Expected a second F2 to turn lighting back on")
	}
}

func TestF3CyclesAmbient(t *testing.T) {
	in := newFakeInput()
	g := defaultGame(t, in)
	in.just[render.KeyF3] = true

	want := []float64{0.5, 0.75, 1, 0, 0.25}
	for i, w := range want {
		if err := g.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got := g.LightingManager.GetAmbientLight(); math.Abs(got-w) > 1e-9 {
			t.Errorf("Step %d: expected ambient %v, got %v", i, w, got)
		}
	}
	if last := g.Messages[len(g.Messages)-1].Text; last != "Ambient 25%" {
		t.Errorf("Expected 'Ambient 25%%', got %q", last)
	}
}

func TestDrawEnclosedMapFillsEveryColumn(t *testing.T) {
	g := defaultGame(t, newFakeInput())
	canvas := &recordingCanvas{w: 1080, h: 720}
	g.Draw(canvas)

	if canvas.cleared != color.Color(g.Config.Render.Ceiling) {
		t.Errorf("Expected ceiling clear, got %v", canvas.cleared)
	}
	if len(canvas.rects) == 0 || canvas.rects[0] != image.Rect(0, 360, 1080, 720) {
		t.Errorf("Expected floor over the lower half first, got %v", canvas.rects)
	}
	if len(canvas.columns) != 1080 {
		t.Fatalf("Expected 1080 columns, got %d", len(canvas.columns))
	}
	if g.Counters.ColumnsHit != 1080 || g.Counters.ColumnsOpen != 0 {
		t.Errorf("Unexpected counters %+v", g.Counters)
	}

	// Centre column: wall face at distance 1, focal 540.
	centre := canvas.columns[540].col
	if centre.DstX != 540 || centre.DstTop != 90 || centre.DstHeight != 540 {
		t.Errorf("Expected centre strip at top 90 height 540, got %+v", centre)
	}
	if centre.SrcV0 != 0 || centre.SrcV1 != 1 {
		t.Errorf("Expected the full texture range, got [%f, %f]", centre.SrcV0, centre.SrcV1)
	}
	if centre.Shade <= 0 || centre.Shade > 1 {
		t.Errorf("Expected a shade in (0, 1], got %f", centre.Shade)
	}
}

func TestDrawLeavesOpenColumnsAsBackground(t *testing.T) {
	g, err := grid.New(3, 3, make([]int, 9))
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	game, err := New(config.DefaultConfig(), g, maploader.Spawn{X: 1.5, Y: 1.5}, []render.Texture{&fakeTexture{8, 8}}, newFakeInput(), nil)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	canvas := &recordingCanvas{w: 64, h: 48}
	game.Draw(canvas)
	if len(canvas.columns) != 0 {
		t.Errorf("Expected no wall strips, got %d", len(canvas.columns))
	}
	if game.Counters.ColumnsOpen != 64 {
		t.Errorf("Expected 64 open columns, got %d", game.Counters.ColumnsOpen)
	}
}

func TestTextureSelectionWraps(t *testing.T) {
	a, b := &fakeTexture{1, 1}, &fakeTexture{2, 2}
	g := defaultGame(t, newFakeInput(), a, b)
	cases := map[int]render.Texture{1: a, 2: b, 3: a, 4: b, 0: b}
	for code, want := range cases {
		if got := g.textureFor(code); got != want {
			t.Errorf("code %d: expected texture %p, got %p", code, want, got)
		}
	}
}

func TestLayout(t *testing.T) {
	g := defaultGame(t, newFakeInput())
	if w, h := g.Layout(1920, 1080); w != 1080 || h != 720 {
		t.Errorf("Expected fixed 1080x720, got %dx%d", w, h)
	}
	g.Config.Window.Resizable = true
	if w, h := g.Layout(1920, 1080); w != 1920 || h != 1080 {
		t.Errorf("Expected outside size, got %dx%d", w, h)
	}
}

type fakeLoader struct {
	loaded []string
}

func (l *fakeLoader) LoadTexture(path string) (render.Texture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	l.loaded = append(l.loaded, path)
	return &fakeTexture{16, 16}, nil
}

func TestLoadReportsMissingTexture(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Render.TexturePaths = []string{filepath.Join(t.TempDir(), "wall.png")}
	_, err := Load(cfg, &fakeLoader{}, newFakeInput(), nil)
	if !errors.Is(err, ErrMissingTexture) {
		t.Errorf("Expected ErrMissingTexture, got %v", err)
	}
}

func TestLoadWithCustomMap(t *testing.T) {
	dir := t.TempDir()
	texPath := filepath.Join(dir, "wall.png")
	if err := os.WriteFile(texPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write texture: %v", err)
	}
	mapPath := filepath.Join(dir, "room.json")
	mapData := `{"name": "Room", "width": 3, "height": 3,
		"player_spawn": {"x": 1.5, "y": 1.5, "dir_x": 1, "dir_y": 0},
		"cells": [[1,1,1],[1,0,1],[1,1,1]]}`
	if err := os.WriteFile(mapPath, []byte(mapData), 0o644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Render.TexturePaths = []string{texPath}
	cfg.Render.MapPath = mapPath
	loader := &fakeLoader{}
	g, err := Load(cfg, loader, newFakeInput(), nil)
	if err != nil {
		t.Fatalf("Failed to load game: %v", err)
	}
	if g.Grid.Width() != 3 || len(loader.loaded) != 1 {
		t.Errorf("Expected 3-wide map and one texture, got %d and %d", g.Grid.Width(), len(loader.loaded))
	}
	if g.Player.Dir != geom.V(1, 0) {
		t.Errorf("Expected facing (1, 0), got %v", g.Player.Dir)
	}
}
