package mapview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/core/player"
	"chosenoffset.com/thurs/internal/core/raycast"
	"chosenoffset.com/thurs/internal/world/grid"
)

// Color palette
var (
	wallStyles = []lipgloss.Style{
		lipgloss.NewStyle().Background(lipgloss.Color("#6e6e6e")),
		lipgloss.NewStyle().Background(lipgloss.Color("#8b4a2b")),
		lipgloss.NewStyle().Background(lipgloss.Color("#3a5f8b")),
		lipgloss.NewStyle().Background(lipgloss.Color("#4f7a3a")),
	}

	hitStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ff8c28")).
			Foreground(lipgloss.Color("#1a1a2e"))

	emptyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e"))

	playerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffdc3c")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))
)

// RenderBoard draws the grid two characters per cell. Struck cells are
// highlighted and the player's cell shows a facing arrow.
func RenderBoard(g *grid.Grid, p player.State, hits map[geom.Cell]bool) string {
	at := geom.CellOf(p.Pos)
	var b strings.Builder
	rows := g.Rows()
	for y, row := range rows {
		for x, code := range row {
			cell := geom.Cell{X: x, Y: y}
			switch {
			case cell == at:
				b.WriteString(playerStyle.Render(arrowFor(p.Dir) + " "))
			case hits[cell]:
				b.WriteString(hitStyle.Render(fmt.Sprintf("%-2d", code)))
			case code != grid.Empty:
				b.WriteString(wallStyles[(code-1)%len(wallStyles)].Render("  "))
			default:
				b.WriteString(emptyStyle.Render("  "))
			}
		}
		if y < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderPanel shows the viewpoint and what the centre ray strikes. A non-empty
// status is shown beneath.
func RenderPanel(name string, p player.State, centre raycast.Result, status string) string {
	lines := []string{
		titleStyle.Render(name),
		"",
		fmt.Sprintf("Pos:   %.2f, %.2f", p.Pos.X, p.Pos.Y),
		fmt.Sprintf("Dir:   %.2f, %.2f", p.Dir.X, p.Dir.Y),
		fmt.Sprintf("Plane: %.2f, %.2f", p.Plane.X, p.Plane.Y),
		"",
	}
	if centre.Ok() {
		h := centre.Hit
		lines = append(lines,
			fmt.Sprintf("Ahead: cell %d,%d code %d", h.Cell.X, h.Cell.Y, h.Code),
			fmt.Sprintf("Side:  %s  Dist: %.2f", h.Side, h.Distance),
		)
	} else {
		lines = append(lines, fmt.Sprintf("Ahead: %s", centre.Outcome))
	}
	if status != "" {
		lines = append(lines, "", errorStyle.Render(status))
	}
	lines = append(lines,
		"",
		dimStyle.Render("w/s/a/d move  q/e turn"),
		dimStyle.Render("tab next map  esc quit"),
	)
	return panelStyle.Render(strings.Join(lines, "\n"))
}
