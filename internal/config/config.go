// Package config holds the tunables for the renderer, the player and the host
// window. Defaults are compiled in; a JSON file may override any subset.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
)

// DefaultPath is where the binaries look for overrides.
const DefaultPath = "thurs.json"

// Config holds all runtime settings.
type Config struct {
	Window   WindowConfig   `json:"window"`
	Player   Player         `json:"player"`
	Render   RenderConfig   `json:"render"`
	Lighting LightingConfig `json:"lighting"`
	HUD      HUDConfig      `json:"hud"`
}

// WindowConfig describes the host window and frame cadence.
type WindowConfig struct {
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	TPS       int    `json:"tps"`       // Fixed update rate (ticks per second)
	Vsync     bool   `json:"vsync"`
	Resizable bool   `json:"resizable"` // Follow the outside size instead of scaling
}

// Player holds movement and camera tuning.
type Player struct {
	MoveSpeed        float64 `json:"move_speed"`        // Grid units per tick
	RotSpeed         float64 `json:"rot_speed"`         // Radians per tick for keyboard turning
	Radius           float64 `json:"radius"`            // Collision radius in grid units
	MouseSensitivity float64 `json:"mouse_sensitivity"` // Radians per pixel of mouse travel
	FOV              float64 `json:"fov"`               // Camera plane magnitude (0.66 ~ 66 degrees)
}

// RenderConfig controls the wall projection and background.
type RenderConfig struct {
	TexturePaths  []string `json:"textures"`       // Wall textures; cell code N uses entry (N-1) mod len
	MapPath       string   `json:"map"`            // Empty selects the built-in map
	Ceiling       Color    `json:"ceiling"`
	Floor         Color    `json:"floor"`
	MinDistance   float64  `json:"min_distance"`   // Floor for corrected wall distance
	VerticalScale float64  `json:"vertical_scale"` // Focal length multiplier; 0.5 suits 2:1 terminal cells
}

// LightingConfig controls per-strip shading.
type LightingConfig struct {
	Enabled bool    `json:"enabled"`
	Ambient float64 `json:"ambient"`  // Darkest a wall can get (0-1)
	Falloff float64 `json:"falloff"`  // Brightness = 1 / (1 + falloff * distance)
	SideDim float64 `json:"side_dim"` // Multiplier for horizontal faces
}

// HUDConfig defines what the overlay shows.
type HUDConfig struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowPosition bool   `json:"show_position"`
	ShowMinimap  bool   `json:"show_minimap"`
	MinimapCell  int    `json:"minimap_cell"` // Pixels per map cell
	Position     string `json:"position"`     // "top-left", "top-right", "bottom-left", "bottom-right"
}

// DefaultConfig returns the stock settings.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "THURS",
			Width:  1080,
			Height: 720,
			TPS:    60,
			Vsync:  true,
		},
		Player: Player{
			MoveSpeed:        0.05,
			RotSpeed:         0.03,
			Radius:           0.1,
			MouseSensitivity: 0.005,
			FOV:              0.66,
		},
		Render: RenderConfig{
			TexturePaths:  []string{"assets/wall.png"},
			Ceiling:       Color{R: 20, G: 20, B: 30, A: 255},
			Floor:         Color{R: 40, G: 30, B: 20, A: 255},
			MinDistance:   0.2,
			VerticalScale: 1,
		},
		Lighting: LightingConfig{
			Enabled: true,
			Ambient: 0.25,
			Falloff: 0.08,
			SideDim: 0.75,
		},
		HUD: HUDConfig{
			ShowFPS:      false,
			ShowPosition: false,
			ShowMinimap:  false,
			MinimapCell:  6,
			Position:     "top-left",
		},
	}
}

// LoadConfig reads overrides from path on top of DefaultConfig. A missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every value the frame loop divides by or steps with is
// usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("invalid tps: %d", c.Window.TPS))
	}
	if c.Player.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("invalid move_speed: %g", c.Player.MoveSpeed))
	}
	if c.Player.RotSpeed <= 0 {
		errs = append(errs, fmt.Errorf("invalid rot_speed: %g", c.Player.RotSpeed))
	}
	if c.Player.Radius < 0 || c.Player.Radius >= 0.5 {
		errs = append(errs, fmt.Errorf("invalid radius: %g (must be in [0, 0.5))", c.Player.Radius))
	}
	if c.Player.MouseSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("invalid mouse_sensitivity: %g", c.Player.MouseSensitivity))
	}
	if c.Player.FOV <= 0 {
		errs = append(errs, fmt.Errorf("invalid fov: %g", c.Player.FOV))
	}
	if len(c.Render.TexturePaths) == 0 {
		errs = append(errs, errors.New("at least one texture path is required"))
	}
	if c.Render.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("invalid min_distance: %g", c.Render.MinDistance))
	}
	if c.Render.VerticalScale <= 0 {
		errs = append(errs, fmt.Errorf("invalid vertical_scale: %g", c.Render.VerticalScale))
	}
	return errors.Join(errs...)
}

// Color is an opaque RGB colour stored in JSON as "#rrggbb".
type Color color.RGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA(c).RGBA()
}

// MarshalJSON encodes the colour as "#rrggbb".
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// UnmarshalJSON decodes "#rrggbb" (the leading '#' is optional).
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a string: %w", err)
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	*c = Color{R: r, G: g, B: b, A: 255}
	return nil
}
