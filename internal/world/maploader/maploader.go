// Package maploader reads grid maps from JSON.
package maploader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/thurs/internal/core/geom"
	"chosenoffset.com/thurs/internal/world/grid"
)

//go:embed maps/default.json
var defaultMap []byte

// Spawn defines where the player starts and which way they face
type Spawn struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	DirX float64 `json:"dir_x"`
	DirY float64 `json:"dir_y"`
}

// Pos returns the spawn position in grid space
func (s Spawn) Pos() geom.Vec2 { return geom.V(s.X, s.Y) }

// Dir returns the spawn facing. An omitted facing looks down -X.
func (s Spawn) Dir() geom.Vec2 {
	if s.DirX == 0 && s.DirY == 0 {
		return geom.V(-1, 0)
	}
	return geom.V(s.DirX, s.DirY)
}

// MapData represents the map file
type MapData struct {
	Name        string  `json:"name"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	PlayerSpawn Spawn   `json:"player_spawn"`
	Cells       [][]int `json:"cells"` // Cell codes [y][x]; 0 is open, anything else is a wall
}

// Map is a loaded map with its grid built
type Map struct {
	Data *MapData
	Grid *grid.Grid
}

// LoadMap loads a map from a JSON file
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	return m, nil
}

// Default returns the built-in map
func Default() (*Map, error) {
	m, err := Parse(defaultMap)
	if err != nil {
		return nil, fmt.Errorf("built-in map: %w", err)
	}
	return m, nil
}

// Parse decodes and validates map JSON
func Parse(data []byte) (*Map, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, fmt.Errorf("invalid map data: %w", err)
	}

	g, err := grid.FromRows(mapData.Cells)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}

	// Spawn can only be checked once the grid exists
	spawn := geom.CellOf(mapData.PlayerSpawn.Pos())
	if !g.InBounds(spawn.X, spawn.Y) {
		return nil, fmt.Errorf("invalid map data: player spawn (%g, %g) is outside the map",
			mapData.PlayerSpawn.X, mapData.PlayerSpawn.Y)
	}
	if g.IsSolid(spawn.X, spawn.Y) {
		return nil, fmt.Errorf("invalid map data: player spawn (%g, %g) is inside a wall",
			mapData.PlayerSpawn.X, mapData.PlayerSpawn.Y)
	}

	return &Map{Data: &mapData, Grid: g}, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if len(data.Cells) != data.Height {
		return fmt.Errorf("cells array height mismatch: expected %d, got %d", data.Height, len(data.Cells))
	}

	for y, row := range data.Cells {
		if len(row) != data.Width {
			return fmt.Errorf("cells array width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
		}
		for x, code := range row {
			if code < 0 {
				return fmt.Errorf("negative cell code %d at (%d, %d)", code, x, y)
			}
		}
	}

	s := data.PlayerSpawn
	if !s.Pos().IsFinite() || !s.Dir().IsFinite() {
		return fmt.Errorf("player spawn is not finite: %+v", s)
	}

	return nil
}
