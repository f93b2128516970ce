package lighting

import (
	"image/color"
	"math"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/core/raycast"
)

// Manager computes how bright a wall strip is drawn
type Manager struct {
	enabled      bool
	ambientLight float64 // Darkest a wall may get (0.0 = pitch black, 1.0 = fully lit)
	falloff      float64 // Brightness = 1 / (1 + falloff * distance)
	sideDim      float64 // Extra dimming for faces struck on the Y side
}

// NewManager creates a lighting manager from config
func NewManager(cfg config.LightingConfig) *Manager {
	return &Manager{
		enabled:      cfg.Enabled,
		ambientLight: clamp01(cfg.Ambient),
		falloff:      math.Max(0, cfg.Falloff),
		sideDim:      clamp01(cfg.SideDim),
	}
}

// SetAmbientLight sets the ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = clamp01(level)
}

// GetAmbientLight returns the current ambient light level
func (m *Manager) GetAmbientLight() float64 {
	return m.ambientLight
}

// SetEnabled turns shading on or off
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// IsEnabled returns whether shading is applied
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// Shade returns the brightness multiplier for a wall at distance struck on
// side. Disabled lighting always returns 1.
func (m *Manager) Shade(distance float64, side raycast.Side) float32 {
	if !m.enabled {
		return 1
	}
	brightness := 1.0
	if distance > 0 {
		brightness = 1 / (1 + m.falloff*distance)
	}
	brightness = math.Max(m.ambientLight, brightness)
	if side == raycast.SideY {
		brightness *= m.sideDim
	}
	return float32(clamp01(brightness))
}

// Tint scales a colour's RGB channels by shade, keeping alpha
func Tint(c color.Color, shade float32) color.RGBA {
	r, g, b, a := c.RGBA()
	s := float64(max(0, min(1, shade)))
	return color.RGBA{
		R: uint8(float64(r>>8) * s),
		G: uint8(float64(g>>8) * s),
		B: uint8(float64(b>>8) * s),
		A: uint8(a >> 8),
	}
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
