package game

import (
	"errors"
	"fmt"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/collision"
	"chosenoffset.com/thurs/internal/core/player"
	"chosenoffset.com/thurs/internal/render"
	"chosenoffset.com/thurs/internal/render/lighting"
	"chosenoffset.com/thurs/internal/ui/hud"
	"chosenoffset.com/thurs/internal/world/grid"
	"chosenoffset.com/thurs/internal/world/maploader"
)

var (
	// ErrMissingTexture is returned when no usable wall texture is available.
	ErrMissingTexture = errors.New("missing wall texture")
	// ErrSpawnBlocked is returned when the player would start inside a wall.
	ErrSpawnBlocked = errors.New("spawn overlaps a wall")
)

const (
	messageDuration = 2.0
	ambientStep     = 0.25
)

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *config.Config
	Grid         *grid.Grid
	Player       player.State
	Textures     []render.Texture
	InputMgr     render.InputManager
	Stats        render.FrameStats

	LightingManager *lighting.Manager
	GameHUD         *hud.HUD

	// UI state
	Messages []Message

	// Debug
	FrameCount int
	Counters   FrameCounters
}

// New creates a game on g with the player at spawn. Every texture must be
// non-nil and at least one is required. stats may be nil.
func New(cfg *config.Config, g *grid.Grid, spawn maploader.Spawn, textures []render.Texture,
	input render.InputManager, stats render.FrameStats) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if g == nil {
		return nil, errors.New("grid is required")
	}
	if input == nil {
		return nil, errors.New("input manager is required")
	}
	if len(textures) == 0 {
		return nil, fmt.Errorf("%w: no textures configured", ErrMissingTexture)
	}
	for i, tex := range textures {
		if tex == nil {
			return nil, fmt.Errorf("%w: texture %d is nil", ErrMissingTexture, i)
		}
	}

	p, err := player.New(spawn.Pos(), spawn.Dir(), cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to place player: %w", err)
	}
	if collision.Blocked(p.Pos, p.Radius, g) {
		return nil, fmt.Errorf("%w: (%g, %g) radius %g", ErrSpawnBlocked, p.Pos.X, p.Pos.Y, p.Radius)
	}

	return &Game{
		ScreenWidth:     cfg.Window.Width,
		ScreenHeight:    cfg.Window.Height,
		Config:          cfg,
		Grid:            g,
		Player:          p,
		Textures:        textures,
		InputMgr:        input,
		Stats:           stats,
		LightingManager: lighting.NewManager(cfg.Lighting),
		GameHUD:         hud.New(&cfg.HUD, cfg.Window.Width, cfg.Window.Height),
	}, nil
}

// Update handles game logic updates.
func (g *Game) Update() error {
	dt := 1.0 / float64(max(1, g.Config.Window.TPS))
	g.updateMessages(dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
		g.GameHUD.ToggleMinimap()
		g.ShowMessage(onOff("Minimap", g.GameHUD.MinimapVisible()))
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF1) {
		g.GameHUD.ToggleDebug()
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF2) {
		g.LightingManager.SetEnabled(!g.LightingManager.IsEnabled())
		g.ShowMessage(onOff("Lighting", g.LightingManager.IsEnabled()))
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF3) {
		g.cycleAmbient()
	}

	g.Player = g.Player.Move(g.readIntent(), g.Grid)

	if dx, _ := g.InputMgr.CursorDelta(); dx != 0 {
		g.Player = g.Player.Turn(player.LookAngle(dx, g.Config.Player.MouseSensitivity))
	}
	if g.InputMgr.IsKeyPressed(render.KeyLeft) || g.InputMgr.IsKeyPressed(render.KeyQ) {
		g.Player = g.Player.Turn(g.Player.RotSpeed)
	}
	if g.InputMgr.IsKeyPressed(render.KeyRight) || g.InputMgr.IsKeyPressed(render.KeyE) {
		g.Player = g.Player.Turn(-g.Player.RotSpeed)
	}

	g.FrameCount++
	return nil
}

// readIntent collects the held movement keys. Up and Down mirror W and S.
func (g *Game) readIntent() player.Intent {
	var in player.Intent
	if g.InputMgr.IsKeyPressed(render.KeyW) || g.InputMgr.IsKeyPressed(render.KeyUp) {
		in |= player.IntentForward
	}
	if g.InputMgr.IsKeyPressed(render.KeyS) || g.InputMgr.IsKeyPressed(render.KeyDown) {
		in |= player.IntentBackward
	}
	if g.InputMgr.IsKeyPressed(render.KeyA) {
		in |= player.IntentStrafeLeft
	}
	if g.InputMgr.IsKeyPressed(render.KeyD) {
		in |= player.IntentStrafeRight
	}
	return in
}

// Layout returns the logical screen size. A resizable window follows the
// outside size; otherwise the configured size is kept and scaled.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Config.Window.Resizable {
		return outsideWidth, outsideHeight
	}
	return g.Config.Window.Width, g.Config.Window.Height
}

// ShowMessage displays a message on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})
}

// updateMessages decrements message timers and removes expired messages.
func (g *Game) updateMessages(dt float64) {
	active := g.Messages[:0]
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// cycleAmbient raises the ambient floor by ambientStep, wrapping to dark
// after full brightness.
func (g *Game) cycleAmbient() {
	level := g.LightingManager.GetAmbientLight() + ambientStep
	if level > 1+1e-9 {
		level = 0
	}
	g.LightingManager.SetAmbientLight(level)
	g.ShowMessage(fmt.Sprintf("Ambient %.0f%%", g.LightingManager.GetAmbientLight()*100))
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}
