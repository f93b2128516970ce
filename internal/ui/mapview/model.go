// Package mapview is a top-down terminal inspector for maps. It shows the
// grid, the player, and the cells a fan of rays across the camera plane
// would strike, using the same movement and casting code as the game.
package mapview

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/core/player"
	"chosenoffset.com/thurs/internal/core/raycast"
	"chosenoffset.com/thurs/internal/render/projection"
	"chosenoffset.com/thurs/internal/world/grid"
	"chosenoffset.com/thurs/internal/world/maploader"
	"chosenoffset.com/thurs/internal/world/mapscanner"
)

const (
	// StepSize is how far one key press moves the player.
	StepSize = 0.25
	// TurnStep is how far one key press turns the player, in radians.
	TurnStep = math.Pi / 16
	// FanRays is the number of rays drawn across the camera plane.
	FanRays = 9
)

// Model is the Bubbletea model for the map inspector.
type Model struct {
	name     string
	grid     *grid.Grid
	player   player.State
	cfg      config.Player
	maps     []mapscanner.MapEntry
	current  int
	status   string
	quitting bool
}

// NewModel creates an inspector for m with the player at its spawn.
func NewModel(m *maploader.Map, cfg config.Player) (Model, error) {
	p, err := player.New(m.Data.PlayerSpawn.Pos(), m.Data.PlayerSpawn.Dir(), cfg)
	if err != nil {
		return Model{}, err
	}
	p.MoveSpeed = StepSize
	return Model{name: m.Data.Name, grid: m.Grid, player: p, cfg: cfg}, nil
}

// WithMaps lets Tab cycle through maps, starting after the one at current.
func (m Model) WithMaps(maps []mapscanner.MapEntry, current int) Model {
	m.maps = maps
	m.current = current
	return m
}

// nextMap loads the following map in the list. A map that fails to load
// leaves the current one in place and reports the error.
func (m Model) nextMap() Model {
	if len(m.maps) < 2 {
		return m
	}
	i := (m.current + 1) % len(m.maps)
	entry := m.maps[i]

	loaded, err := maploader.LoadMap(entry.Path)
	if err != nil {
		m.status = err.Error()
		return m
	}
	next, err := NewModel(loaded, m.cfg)
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", entry.Name, err)
		return m
	}
	return next.WithMaps(m.maps, i)
}

// Player returns the current viewpoint.
func (m Model) Player() player.State {
	return m.player
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "w":
		m.player = m.player.Move(player.IntentForward, m.grid)
	case "down", "s":
		m.player = m.player.Move(player.IntentBackward, m.grid)
	case "a":
		m.player = m.player.Move(player.IntentStrafeLeft, m.grid)
	case "d":
		m.player = m.player.Move(player.IntentStrafeRight, m.grid)
	case "left", "q":
		m.player = m.player.Turn(TurnStep)
	case "right", "e":
		m.player = m.player.Turn(-TurnStep)
	case "tab":
		m = m.nextMap()
	}

	return m, nil
}

// View renders the board with the info panel beside it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	hits, centre := CastFan(m.grid, m.player, FanRays)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderBoard(m.grid, m.player, hits),
		"  ",
		RenderPanel(m.name, m.player, centre, m.status),
	) + "\n"
}

// CastFan casts n rays evenly across the camera plane and returns the set of
// struck cells along with the centre ray's result.
func CastFan(g *grid.Grid, p player.State, n int) (map[geom.Cell]bool, raycast.Result) {
	hits := make(map[geom.Cell]bool)
	for i := 0; i < n; i++ {
		cameraX := 0.0
		if n > 1 {
			cameraX = -1 + 2*float64(i)/float64(n-1)
		}
		res := raycast.Cast(p.Pos, projection.RayDirection(p.Dir, p.Plane, cameraX), g)
		if res.Ok() {
			hits[res.Hit.Cell] = true
		}
	}
	return hits, raycast.Cast(p.Pos, p.Dir, g)
}

// arrowFor picks the glyph closest to dir. Grid y grows downward, matching
// screen rows.
func arrowFor(dir geom.Vec2) string {
	arrows := []string{"→", "↘", "↓", "↙", "←", "↖", "↑", "↗"}
	angle := math.Atan2(dir.Y, dir.X)
	i := (int(math.Round(angle/(math.Pi/4))) + 8) % 8
	return arrows[i]
}
