package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mazecaster/internal/config"
	"mazecaster/internal/graphics"
	"mazecaster/internal/render"
	"mazecaster/internal/threading/core"
	"mazecaster/internal/threading/monitoring"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrExit is returned from Update to request a clean exit
	ErrExit = errors.New("exit game")
	// ErrBlockedStart means the configured start position is inside a wall
	ErrBlockedStart = errors.New("start position is blocked")
)

// Mode selects the view drawn each frame.
type Mode int

const (
	Mode3D Mode = iota
	ModeOverhead
)

// ParseMode maps the -mode flag values "3d" and "2d".
func ParseMode(name string) (Mode, error) {
	switch name {
	case "3d", "":
		return Mode3D, nil
	case "2d":
		return ModeOverhead, nil
	}
	return Mode3D, fmt.Errorf("unknown mode %q (want 3d or 2d)", name)
}

func (m Mode) String() string {
	if m == ModeOverhead {
		return "2D"
	}
	return "3D"
}

// Game is the maze walker: it owns the player, the render pipeline and the
// per-frame buffers, and implements ebiten.Game.
type Game struct {
	config  *config.Config
	maze    world.Maze
	player  world.Player
	sprites []world.Sprite
	state   State
	mode    Mode
	showHUD bool

	pipeline  *render.Pipeline
	pool      *core.WorkerPool
	monitor   *monitoring.PerformanceMonitor
	footsteps FootstepPlayer

	rgba     []byte
	gameLoop *GameLoop
}

// NewGame wires the renderers from cfg. footsteps may be nil when audio is off.
func NewGame(cfg *config.Config, maze world.Maze, store *graphics.Store, footsteps FootstepPlayer, mode Mode) (*Game, error) {
	blockSize := cfg.GetBlockSize()
	player := world.Player{
		X:     cfg.Camera.StartX,
		Y:     cfg.Camera.StartY,
		Angle: cfg.GetStartAngle(),
		FOV:   cfg.GetFOV(),
	}
	if cx, cy := player.Cell(blockSize); maze.IsBlocked(cx, cy) {
		return nil, fmt.Errorf("%w: (%v, %v) is %v", ErrBlockedStart, player.X, player.Y, maze.At(cx, cy))
	}

	castMode, err := render.ParseCastMode(cfg.Graphics.RayMode)
	if err != nil {
		return nil, err
	}
	cast := render.CastOptions{Mode: castMode, Step: cfg.GetRayStep()}

	g := &Game{
		config:    cfg,
		maze:      maze,
		player:    player,
		state:     State{Stride: cfg.Audio.Stride},
		mode:      mode,
		showHUD:   true,
		monitor:   monitoring.NewPerformanceMonitor(),
		footsteps: footsteps,
		rgba:      make([]byte, 4*cfg.GetScreenWidth()*cfg.GetScreenHeight()),
	}
	// Running averages only feed the perf log
	g.monitor.EnableDetailedLogging(cfg.Graphics.PerfLog)
	for _, s := range cfg.Sprites {
		g.sprites = append(g.sprites, world.Sprite{X: s.X, Y: s.Y})
	}

	walls := &render.WallRenderer{
		Maze:       maze,
		BlockSize:  blockSize,
		Scale:      cfg.Graphics.WallScale,
		Textures:   store,
		SkyColor:   cfg.Graphics.SkyColor.RGB(),
		FloorColor: cfg.Graphics.FloorColor.RGB(),
		Cast:       cast,
	}
	if cfg.Graphics.ParallelCasting {
		g.pool = core.NewWorkerPool(cfg.Graphics.Workers)
		g.pool.Start()
		walls.Runner = g.pool
		log.Printf("[Game] Casting columns on %d workers", g.pool.NumWorkers())
	}

	if store.Sprite() == nil && len(g.sprites) > 0 {
		log.Printf("[Game] Warning: no sprite texture, %d sprites will not be drawn", len(g.sprites))
	}

	p := render.NewPipeline(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	p.Maze = maze
	p.Walls = walls
	p.Sprites = &render.SpriteRenderer{
		Scale:      cfg.Graphics.WallScale,
		Texture:    store.Sprite(),
		ChromaKey:  cfg.Graphics.ChromaKey.RGB(),
		Threshold:  cfg.Graphics.ChromaThreshold,
		DepthWrite: cfg.Graphics.SpriteDepthWrite,
	}
	if mm := cfg.Graphics.Minimap; mm.Enabled {
		p.Minimap = &render.Minimap{
			BlockSize:   blockSize,
			Scale:       mm.Scale,
			OffsetX:     mm.OffsetX,
			OffsetY:     mm.OffsetY,
			MarkerSize:  mm.MarkerSize,
			OpenColor:   mm.OpenColor.RGB(),
			MarkerColor: mm.Marker.RGB(),
		}
	}
	p.Overhead = &render.Overhead{
		BlockSize:   blockSize,
		Rays:        cfg.Graphics.OverheadRays,
		PlayerColor: 0xFFFFFF,
		RayColor:    cfg.Graphics.DebugColor.RGB(),
		Cast:        cast,
	}
	p.Background = cfg.Graphics.BackgroundColor.RGB()
	p.Monitor = g.monitor
	g.pipeline = p

	g.gameLoop = NewGameLoop(g)
	log.Printf("[Game] Started in %v view at (%.0f, %.0f), %s rays, %d sprites", mode, player.X, player.Y, castMode, len(g.sprites))
	return g, nil
}

func (g *Game) Update() error {
	return g.gameLoop.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}

// Player returns the current camera.
func (g *Game) Player() world.Player { return g.player }

// State returns the current game state.
func (g *Game) State() State { return g.state }

// ToggleMode switches between the 3D and overhead views.
func (g *Game) ToggleMode() {
	if g.mode == Mode3D {
		g.mode = ModeOverhead
	} else {
		g.mode = Mode3D
	}
	g.monitor.Reset()
	log.Printf("[Game] Switched to %v view", g.mode)
}

// Close releases the worker pool and audio.
func (g *Game) Close() {
	if g.pool != nil {
		g.pool.Stop()
	}
	if c, ok := g.footsteps.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("[Audio] Warning: %v", err)
		}
	}
}
