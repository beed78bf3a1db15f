package game

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	hudBackground    = color.RGBA{0, 0, 0, 120}
	hudText          = color.RGBA{230, 230, 230, 255}
	winBannerColor   = color.RGBA{20, 90, 30, 210}
	winBannerTextCol = color.RGBA{255, 255, 255, 255}
)

const hudLineHeight = 16

// UISystem draws the text overlay on top of the presented framebuffer.
type UISystem struct {
	game    *Game
	wonAt   time.Time
	started time.Time
}

// NewUISystem creates a new UI system
func NewUISystem(game *Game) *UISystem {
	return &UISystem{game: game, started: time.Now()}
}

// Draw renders the HUD and, once the exit is found, the win banner.
func (ui *UISystem) Draw(screen *ebiten.Image) {
	if ui.game.showHUD {
		ui.drawHUD(screen)
	}
	if ui.game.state.Won {
		ui.drawWinBanner(screen)
	}
}

func (ui *UISystem) announceWin() {
	ui.wonAt = time.Now()
	log.Printf("[Game] Exit found after %s", ui.wonAt.Sub(ui.started).Round(time.Second))
}

// hudLines returns the overlay text for the current frame.
func (ui *UISystem) hudLines() []string {
	g := ui.game
	p := g.player
	lines := []string{
		fmt.Sprintf("%v view  [M] switch  [Tab] HUD  [Esc] quit", g.mode),
		fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		g.monitor.GetCurrentMetrics().String(),
		fmt.Sprintf("pos %.0f,%.0f  heading %.0f deg", p.X, p.Y, p.Angle*180/math.Pi),
	}
	return lines
}

func (ui *UISystem) drawHUD(screen *ebiten.Image) {
	lines := ui.hudLines()
	padding := 6
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}
	barWidth := maxLen*7 + padding*2
	barHeight := len(lines)*hudLineHeight + padding*2
	barX := ui.game.config.GetScreenWidth() - barWidth - 10
	barY := 10

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), hudBackground, false)
	face := basicfont.Face7x13
	for i, line := range lines {
		ebitext.Draw(screen, line, face, barX+padding, barY+padding+(i+1)*hudLineHeight-4, hudText)
	}
}

func (ui *UISystem) drawWinBanner(screen *ebiten.Image) {
	w, h := ui.game.config.GetScreenWidth(), ui.game.config.GetScreenHeight()
	title := "You found the exit!"
	sub := "Press Esc to quit"

	bw, bh := 320, 70
	bx, by := (w-bw)/2, (h-bh)/2
	vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), float32(bh), winBannerColor, false)
	ebitext.Draw(screen, title, basicfont.Face7x13, bx+(bw-len(title)*7)/2, by+28, winBannerTextCol)
	ebitenutil.DebugPrintAt(screen, sub, bx+(bw-len(sub)*6)/2, by+40)
}
