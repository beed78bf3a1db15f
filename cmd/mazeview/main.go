// Command mazeview browses maze files: it draws each maze cell by cell with the
// configured start position and sprites marked.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"mazecaster/internal/config"
	"mazecaster/internal/graphics"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mazeInfo struct {
	Path string
	Maze world.Maze
	Err  error
}

type viewer struct {
	cfg         *config.Config
	mazes       []mazeInfo
	mazeIndex   int
	legendLines []string
	sidebarTab  int
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration for start position and sprites")
	dir := flag.String("dir", ".", "directory to scan for *.txt mazes")
	flag.Parse()

	ensureRuntimeCWD(*configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: using default config: %v", err)
		cfg = config.Default()
	}

	mazes, err := loadMazes(*dir)
	if err != nil {
		log.Fatalf("Failed to list mazes: %v", err)
	}

	v := &viewer{
		cfg:         cfg,
		mazes:       mazes,
		legendLines: buildLegendLines(),
	}
	// Start on the configured maze when it is in the list
	for i, m := range mazes {
		if filepath.Clean(m.Path) == filepath.Clean(cfg.World.MazeFile) {
			v.mazeIndex = i
		}
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("mazecaster maze viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if len(v.mazes) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mazeIndex = (v.mazeIndex + 1) % len(v.mazes)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mazeIndex = (v.mazeIndex - 1 + len(v.mazes)) % len(v.mazes)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.mazes) == 0 {
		ebitenutil.DebugPrintAt(screen, "no mazes found", 16, 16)
		return
	}

	m := v.mazes[v.mazeIndex]
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	mapAreaX := padding
	mapAreaY := padding
	sidebarX := mapAreaX + mapAreaW + padding

	drawMazePanel(screen, m, v.cfg, mapAreaX, mapAreaY, mapAreaW, mapAreaH)
	drawSidebar(screen, m, v.cfg, sidebarX, padding, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMazePanel(screen *ebiten.Image, m mazeInfo, cfg *config.Config, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	drawMazeHeader(screen, m, x, y)

	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, m.Err.Error(), x+12, y+44)
		return
	}

	cols, rows := m.Maze.MaxCols(), m.Maze.Rows()
	if cols == 0 || rows == 0 {
		ebitenutil.DebugPrintAt(screen, "empty maze", x+12, y+44)
		return
	}

	top := 44
	tileSize := min(w/cols, (h-top)/rows)
	if tileSize < 2 {
		tileSize = 2
	}
	originX := x + (w-cols*tileSize)/2
	originY := y + top + (h-top-rows*tileSize)/2
	openColor := rgba(cfg.Graphics.Minimap.OpenColor.RGB())

	for row := range m.Maze {
		for col, kind := range m.Maze[row] {
			cellColor := rgba(kind.Color())
			if kind == world.CellOpen {
				cellColor = openColor
			}
			vector.DrawFilledRect(screen, float32(originX+col*tileSize), float32(originY+row*tileSize), float32(tileSize), float32(tileSize), cellColor, false)
		}
	}

	drawOverlays(screen, m.Maze, cfg, originX, originY, tileSize)
}

func drawMazeHeader(screen *ebiten.Image, m mazeInfo, x, y int) {
	ebitenutil.DebugPrintAt(screen, m.Path, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch mazes, Esc to quit", x+12, y+24)
}

// drawOverlays marks the start position and sprites, scaled from world units to tiles.
func drawOverlays(screen *ebiten.Image, maze world.Maze, cfg *config.Config, originX, originY, tileSize int) {
	scale := float64(tileSize) / cfg.GetBlockSize()
	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(float64(originX) + wx*scale), float32(float64(originY) + wy*scale)
	}

	for _, s := range cfg.Sprites {
		sx, sy := toScreen(s.X, s.Y)
		vector.DrawFilledCircle(screen, sx, sy, float32(tileSize)*0.25, color.RGBA{255, 220, 0, 255}, true)
	}

	startColor := color.RGBA{50, 200, 255, 255}
	if maze.KindAtPoint(cfg.Camera.StartX, cfg.Camera.StartY, cfg.GetBlockSize()).IsBlocking() {
		startColor = color.RGBA{230, 80, 80, 255}
	}
	px, py := toScreen(cfg.Camera.StartX, cfg.Camera.StartY)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, px, py, radius, startColor, true)
	vector.StrokeCircle(screen, px, py, radius, 1, color.RGBA{255, 255, 255, 255}, true)

	heading := world.Player{Angle: cfg.GetStartAngle()}
	fx, fy := heading.Forward()
	vector.StrokeLine(screen, px, py, px+float32(fx)*radius*2, py+float32(fy)*radius*2, 2, color.RGBA{255, 255, 255, 255}, true)
}

func drawSidebar(screen *ebiten.Image, m mazeInfo, cfg *config.Config, x, y, w, h int, tab int, legendLines []string) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	lines := legendLines
	if tab == tabInfo {
		lines = infoLines(m, cfg)
	}
	for _, line := range lines {
		if row > y+h-16 {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

// infoLines summarises one maze for the sidebar.
func infoLines(m mazeInfo, cfg *config.Config) []string {
	if m.Err != nil {
		return []string{"Failed to load:", m.Err.Error()}
	}

	counts := make(map[world.CellKind]int)
	for _, row := range m.Maze {
		for _, kind := range row {
			counts[kind]++
		}
	}
	lines := []string{
		fmt.Sprintf("Rows: %d  widest: %d", m.Maze.Rows(), m.Maze.MaxCols()),
		fmt.Sprintf("Open cells: %d", counts[world.CellOpen]),
		fmt.Sprintf("Goals: %d", counts[world.CellGoal]),
	}
	for _, kind := range world.WallKinds {
		if kind == world.CellGoal {
			continue
		}
		lines = append(lines, fmt.Sprintf("%c %s: %d", kind.Symbol(), kind, counts[kind]))
	}

	cx, cy := world.CellAtPoint(cfg.Camera.StartX, cfg.Camera.StartY, cfg.GetBlockSize())
	start := fmt.Sprintf("Start cell (%d, %d): %v", cx, cy, m.Maze.KindAtPoint(cfg.Camera.StartX, cfg.Camera.StartY, cfg.GetBlockSize()))
	lines = append(lines, "", start, fmt.Sprintf("Sprites: %d", len(cfg.Sprites)))
	if counts[world.CellGoal] == 0 {
		lines = append(lines, "", "Warning: no exit in this maze")
	}

	lines = append(lines, "", "Markers:", "Cyan: start (red if blocked)", "Yellow: sprites")
	return lines
}

func buildLegendLines() []string {
	lines := []string{"Cells (symbol -> kind, colour)", "------------------------------"}
	kinds := append([]world.CellKind{world.CellOpen}, world.WallKinds...)
	for _, kind := range kinds {
		lines = append(lines, fmt.Sprintf("'%c' -> %s #%06X", kind.Symbol(), kind, kind.Color()))
	}
	lines = append(lines, "", "Notes", "-----",
		"# at line start = comment",
		"rows may differ in length",
		"past a row end = void (blocked)")
	return lines
}

func loadMazes(dir string) ([]mazeInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	mazes := make([]mazeInfo, 0, len(paths))
	for _, path := range paths {
		maze, err := world.LoadMaze(path)
		mazes = append(mazes, mazeInfo{Path: path, Maze: maze, Err: err})
	}
	return mazes, nil
}

func rgba(c uint32) color.RGBA {
	r, g, b := graphics.UnpackRGB(c)
	return color.RGBA{r, g, b, 255}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

// ensureRuntimeCWD moves to the executable's directory when started elsewhere.
func ensureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
