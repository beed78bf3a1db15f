package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the main game update and render cycle
type GameLoop struct {
	game         *Game
	inputHandler *InputHandler
	ui           *UISystem

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	perfLowFpsSince    time.Time
	perfLastPerfLog    time.Time
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
		ui:           NewUISystem(game),
	}
}

// Update reads input and moves the player for one frame.
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	g := gl.game
	controls, actions := gl.inputHandler.Poll()
	if actions.Quit {
		return ErrExit
	}
	if actions.ToggleMode {
		g.ToggleMode()
	}
	if actions.ToggleHUD {
		g.showHUD = !g.showHUD
	}

	wasWon := g.state.Won
	Advance(&g.player, g.maze, g.config.GetBlockSize(), controls, &g.state, g.footsteps)
	if g.state.Won && !wasWon {
		gl.ui.announceWin()
	}

	gl.maybeLogPerfDrop()
	return nil
}

// Draw renders the current view into the framebuffer and presents it.
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	g := gl.game

	frameTimer := g.monitor.StartFrame()
	if g.mode == ModeOverhead {
		g.pipeline.RenderOverhead(g.player)
	} else {
		g.pipeline.RenderFrame(g.player, g.sprites)
	}
	g.pipeline.Framebuffer().CopyRGBA(g.rgba)
	screen.WritePixels(g.rgba)
	frameTimer.EndFrame()

	gl.ui.Draw(screen)
	gl.lastDrawDuration = time.Since(start)
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
