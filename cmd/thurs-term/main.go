package main

import (
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/game"
	"chosenoffset.com/thurs/internal/render/terminal"
)

const logPath = "thurs-term.log"

func main() {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// The canvas follows the terminal size.
	cfg.Window.Resizable = true

	// Log to a file while the terminal is in use.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to create screen: %v", err)
	}

	inputMgr := terminal.NewInputManager()
	engine := terminal.NewEngine(screen, inputMgr)

	g, err := game.Load(cfg, terminal.NewResourceLoader(), inputMgr, engine)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to load game: %v", err)
	}

	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetTPS(cfg.Window.TPS)
	engine.SetCursorCaptured(true)

	log.Println("Starting game...")
	if err := engine.RunGame(g); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
