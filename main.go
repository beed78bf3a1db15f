package main

import (
	"errors"
	"flag"
	"log"

	"mazecaster/internal/config"
	"mazecaster/internal/game"
	"mazecaster/internal/graphics"
	"mazecaster/internal/sfx"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	modeName := flag.String("mode", "3d", "starting view: 3d or 2d")
	flag.Parse()

	mode, err := game.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	maze, err := world.LoadMaze(cfg.World.MazeFile)
	if err != nil {
		log.Fatalf("Failed to load maze: %v", err)
	}

	store, err := graphics.LoadStore(cfg.Textures, cfg.Graphics.ChromaKey.RGB())
	if err != nil {
		log.Fatalf("Failed to load textures: %v", err)
	}

	// A missing sound is not fatal: the game runs silent
	var footsteps game.FootstepPlayer
	if cfg.Audio.Enabled {
		steps, err := sfx.LoadFootsteps(cfg.Audio.FootstepFile, cfg.Audio.SampleRate)
		if err != nil {
			log.Printf("[Audio] Warning: footsteps disabled: %v", err)
		} else {
			footsteps = steps
		}
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	g, err := game.NewGame(cfg, maze, store, footsteps, mode)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, game.ErrExit) {
		log.Printf("Game stopped: %v", err)
	}
}
