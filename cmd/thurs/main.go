package main

import (
	"log"

	"chosenoffset.com/thurs/internal/config"
	"chosenoffset.com/thurs/internal/game"
	ebitenrender "chosenoffset.com/thurs/internal/render/ebiten"
)

func main() {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	g, err := game.Load(cfg, loader, inputMgr, engine)
	if err != nil {
		log.Fatalf("Failed to load game: %v", err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.Window.TPS)
	engine.SetVsync(cfg.Window.Vsync)
	engine.SetCursorCaptured(true)

	log.Println("Starting game...")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
