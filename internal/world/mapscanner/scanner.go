// Package mapscanner discovers map files in a directory.
package mapscanner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/thurs/internal/world/maploader"
)

// MapEntry represents a loadable map found on disk
type MapEntry struct {
	Name   string // Display name from the map file, or the file stem
	Path   string // Path to the JSON file
	Width  int
	Height int
}

// ScanDirectory returns every valid map in dir, in file name order.
// Files that fail to load are skipped with a warning.
func ScanDirectory(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []MapEntry
	for _, entry := range entries {
		// Skip directories and hidden files
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		m, err := maploader.LoadMap(path)
		if err != nil {
			log.Printf("Warning: skipping %v", err)
			continue
		}

		display := m.Data.Name
		if display == "" {
			display = strings.TrimSuffix(name, filepath.Ext(name))
		}
		maps = append(maps, MapEntry{
			Name:   display,
			Path:   path,
			Width:  m.Grid.Width(),
			Height: m.Grid.Height(),
		})
	}

	return maps, nil
}
