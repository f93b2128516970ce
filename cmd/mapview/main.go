package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/ui/mapview"
	"chosenoffset.com/thurs/internal/world/maploader"
	"chosenoffset.com/thurs/internal/world/mapscanner"
)

func main() {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var maps []mapscanner.MapEntry
	var m *maploader.Map
	switch {
	case len(os.Args) < 2:
		m, err = maploader.Default()
	case isDir(os.Args[1]):
		maps, err = mapscanner.ScanDirectory(os.Args[1])
		if err == nil && len(maps) == 0 {
			err = fmt.Errorf("no maps found in %s", os.Args[1])
		}
		if err == nil {
			m, err = maploader.LoadMap(maps[0].Path)
		}
	default:
		m, err = maploader.LoadMap(os.Args[1])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model, err := mapview.NewModel(m, cfg.Player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	model = model.WithMaps(maps, 0)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
