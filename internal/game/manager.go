package game

import (
	"fmt"
	"log"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/render"
	"chosenoffset.com/thurs/internal/world/maploader"
)

// Load reads the map and wall textures named by cfg and builds a Game. An
// empty map path selects the built-in map.
func Load(cfg *config.Config, loader render.ResourceLoader, input render.InputManager, stats render.FrameStats) (*Game, error) {
	m, err := loadMap(cfg.Render.MapPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded map: %s (%dx%d)", m.Data.Name, m.Grid.Width(), m.Grid.Height())

	textures := make([]render.Texture, 0, len(cfg.Render.TexturePaths))
	for _, path := range cfg.Render.TexturePaths {
		tex, err := loader.LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMissingTexture, path, err)
		}
		textures = append(textures, tex)
	}
	log.Printf("Loaded %d wall texture(s)", len(textures))

	return New(cfg, m.Grid, m.Data.PlayerSpawn, textures, input, stats)
}

func loadMap(path string) (*maploader.Map, error) {
	if path == "" {
		return maploader.Default()
	}
	m, err := maploader.LoadMap(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}
	return m, nil
}
