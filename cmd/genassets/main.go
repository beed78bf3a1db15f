// Command genassets writes the placeholder textures, footstep sound and default
// maze so a fresh checkout runs without binary assets.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"mazecaster/internal/config"
	"mazecaster/internal/graphics"
	"mazecaster/internal/sfx"
	"mazecaster/internal/world"
)

const defaultMaze = `+-+-+-+-+-+-+
|   |       |
+ + + +-+-+ +
| |   |     |
| +-+ + +-+-+
| |   |     |
| + +-+-+ + +
|   |     | g
+-+-+-+-+-+-+
`

func main() {
	configPath := flag.String("config", "config.yaml", "configuration for the chroma key, sound and maze paths")
	outDir := flag.String("out", "assets", "directory for textures and sounds")
	mazePath := flag.String("maze", "", "where to write the default maze (default: world.maze_file)")
	noMaze := flag.Bool("no-maze", false, "skip writing the maze")
	force := flag.Bool("force", false, "overwrite an existing maze file")
	flag.Parse()

	// The config is optional here: a fresh checkout may not have edited one yet
	cfg := config.Default()
	if _, err := os.Stat(*configPath); err == nil {
		cfg = config.MustLoadConfig(*configPath)
	}
	if *mazePath == "" {
		*mazePath = cfg.World.MazeFile
	}

	key := cfg.Graphics.ChromaKey.RGB()
	images := graphics.PlaceholderSet(key)
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(*outDir, name)
		if err := graphics.SavePNG(images[name], path); err != nil {
			log.Fatalf("Failed to write texture: %v", err)
		}
		log.Printf("[Assets] Wrote %s", path)
	}

	wavPath := filepath.Join(*outDir, filepath.Base(cfg.Audio.FootstepFile))
	if filepath.Ext(wavPath) != ".wav" {
		wavPath = filepath.Join(*outDir, "walking.wav")
	}
	if err := writeFootsteps(wavPath, cfg.Audio.SampleRate); err != nil {
		log.Fatalf("Failed to write footsteps: %v", err)
	}
	log.Printf("[Assets] Wrote %s", wavPath)

	if *noMaze {
		return
	}
	if _, err := os.Stat(*mazePath); err == nil && !*force {
		log.Printf("[Assets] Keeping existing %s (use -force to overwrite)", *mazePath)
		return
	}
	if err := writeMaze(*mazePath); err != nil {
		log.Fatalf("Failed to write maze: %v", err)
	}
	log.Printf("[Assets] Wrote %s", *mazePath)
}

func writeFootsteps(path string, sampleRate int) error {
	var buf bytes.Buffer
	if err := sfx.WriteWAV(&buf, sampleRate, sfx.FootstepSamples(sampleRate)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// writeMaze checks the built-in maze parses before writing it.
func writeMaze(path string) error {
	if _, err := world.ParseMaze(bytes.NewBufferString(defaultMaze)); err != nil {
		return fmt.Errorf("built-in maze: %w", err)
	}
	return os.WriteFile(path, []byte(defaultMaze), 0o644)
}
