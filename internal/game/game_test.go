package game

import (
	"errors"
	"math"
	"mazecaster/internal/config"
	"mazecaster/internal/graphics"
	"mazecaster/internal/world"
	"strings"
	"testing"
	"time"
)

type fakeSteps struct {
	plays int
	err   error
}

func (f *fakeSteps) Play() error {
	f.plays++
	return f.err
}

func mustMaze(t *testing.T, rows ...string) world.Maze {
	t.Helper()
	maze, err := world.ParseMaze(strings.NewReader(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("parse maze: %v", err)
	}
	return maze
}

func corridor(t *testing.T) world.Maze {
	return mustMaze(t,
		"+-----+",
		"|    g|",
		"+-----+",
	)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"3d", Mode3D, false},
		{"", Mode3D, false},
		{"2d", ModeOverhead, false},
		{"4d", Mode3D, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestStateWalk(t *testing.T) {
	steps := &fakeSteps{}
	s := State{Stride: 30}

	for i := 0; i < 5; i++ {
		if s.Walk(5, steps) {
			t.Fatalf("footstep after %v units", s.Walked)
		}
	}
	if !s.Walk(5, steps) {
		t.Fatal("expected a footstep after a full stride")
	}
	if s.Walked != 0 || steps.plays != 1 {
		t.Errorf("walked %v plays %d after footstep", s.Walked, steps.plays)
	}

	// A failing player keeps the distance and retries on the next move
	steps.err = errors.New("device busy")
	s.Walked = 29
	if s.Walk(5, steps) {
		t.Error("failed playback reported as played")
	}
	if s.Walked != 34 {
		t.Errorf("walked = %v, want 34 kept after failure", s.Walked)
	}
	steps.err = nil
	if !s.Walk(1, steps) || s.Walked != 0 {
		t.Errorf("retry did not play or reset: walked %v", s.Walked)
	}

	// No audio: distance still accumulates
	quiet := State{Stride: 30}
	quiet.Walk(40, nil)
	if quiet.Walked != 40 {
		t.Errorf("walked without audio = %v", quiet.Walked)
	}
	if quiet.Walk(0, steps) || quiet.Walk(-3, steps) {
		t.Error("non-positive distance should not play")
	}
}

func TestStep(t *testing.T) {
	maze := corridor(t)

	tests := []struct {
		name      string
		x, angle  float64
		dist      float64
		wantX     float64
		wantMoved float64
		wantWon   bool
	}{
		{"open ahead", 150, 0, 5, 155, 5, false},
		{"backwards", 150, 0, -5, 145, 5, false},
		{"into west wall", 105, 0, -10, 105, 0, false},
		{"into goal", 495, 0, 10, 495, 0, true},
		{"facing west", 150, math.Pi, 5, 145, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := world.Player{X: tt.x, Y: 150, Angle: tt.angle}
			var s State
			moved := Step(&p, maze, 100, tt.dist, &s)
			if math.Abs(moved-tt.wantMoved) > 1e-9 {
				t.Errorf("moved %v, want %v", moved, tt.wantMoved)
			}
			if math.Abs(p.X-tt.wantX) > 1e-9 || math.Abs(p.Y-150) > 1e-9 {
				t.Errorf("position (%v, %v), want (%v, 150)", p.X, p.Y, tt.wantX)
			}
			if s.Won != tt.wantWon {
				t.Errorf("won = %v, want %v", s.Won, tt.wantWon)
			}
		})
	}
}

func TestBuildControls(t *testing.T) {
	cfg := config.Default()
	move := cfg.GetMoveSpeed()

	tests := []struct {
		name      string
		kb        KeyboardState
		mouseDX   float64
		pads      []GamepadState
		wantTurn  float64
		wantSteps []float64
	}{
		{"idle", KeyboardState{}, 0, nil, 0, nil},
		{"forward", KeyboardState{W: true}, 0, nil, 0, []float64{move}},
		{"letter and arrow both count", KeyboardState{W: true, Up: true}, 0, nil, 0, []float64{move, move}},
		{"back", KeyboardState{Down: true}, 0, nil, 0, []float64{-move}},
		{"turn left", KeyboardState{A: true}, 0, nil, -math.Pi / 25, nil},
		{"opposite turns cancel", KeyboardState{Left: true, Right: true}, 0, nil, 0, nil},
		{"mouse", KeyboardState{}, 3, nil, 3 * math.Pi / 75, nil},
		{"dpad", KeyboardState{}, 0, []GamepadState{{DPadUp: true, DPadRight: true}}, math.Pi / 50, []float64{3}},
		{"stick in dead zone", KeyboardState{}, 0, []GamepadState{{StickX: 0.4, StickY: -0.5}}, 0, nil},
		{"stick pushed up", KeyboardState{}, 0, []GamepadState{{StickX: -1, StickY: -1}}, -math.Pi / 50, []float64{3}},
		{"stick past full scale", KeyboardState{}, 0, []GamepadState{{StickX: 2}}, math.Pi / 50, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BuildControls(cfg, tt.kb, tt.mouseDX, tt.pads)
			if math.Abs(c.Turn-tt.wantTurn) > 1e-12 {
				t.Errorf("turn = %v, want %v", c.Turn, tt.wantTurn)
			}
			if len(c.Steps) != len(tt.wantSteps) {
				t.Fatalf("steps = %v, want %v", c.Steps, tt.wantSteps)
			}
			for i := range c.Steps {
				if math.Abs(c.Steps[i]-tt.wantSteps[i]) > 1e-12 {
					t.Errorf("step %d = %v, want %v", i, c.Steps[i], tt.wantSteps[i])
				}
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	maze := corridor(t)
	steps := &fakeSteps{}
	state := State{Stride: 30}
	p := world.Player{X: 150, Y: 150}

	// Walk east until blocked by the goal
	for i := 0; i < 100 && !state.Won; i++ {
		Advance(&p, maze, 100, Controls{Steps: []float64{5}}, &state, steps)
	}
	if !state.Won {
		t.Fatalf("never reached the goal, stopped at %v", p.X)
	}
	if p.X >= 500 {
		t.Errorf("player entered the goal cell: x=%v", p.X)
	}
	if steps.plays == 0 {
		t.Error("expected footsteps on the way")
	}

	// Won games ignore input
	before := p
	Advance(&p, maze, 100, Controls{Turn: 1, Steps: []float64{-5}}, &state, steps)
	if p != before {
		t.Errorf("player moved after winning: %+v", p)
	}
}

func TestAdvance_TurnWraps(t *testing.T) {
	maze := corridor(t)
	p := world.Player{X: 150, Y: 150, Angle: math.Pi - 0.01}
	var s State
	Advance(&p, maze, 100, Controls{Turn: 0.02}, &s, nil)
	if math.Abs(p.Angle-(-math.Pi+0.01)) > 1e-9 {
		t.Errorf("angle = %v, want wrapped to just past -pi", p.Angle)
	}
}

func TestNewGame(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ScreenWidth, cfg.Display.ScreenHeight = 64, 48
	cfg.Camera.StartX, cfg.Camera.StartY = 150, 150
	maze := corridor(t)

	g, err := NewGame(cfg, maze, graphics.NewStore(), nil, ModeOverhead)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	defer g.Close()

	if g.Player().X != 150 || g.Player().FOV != cfg.GetFOV() {
		t.Errorf("player = %+v", g.Player())
	}
	if g.State().Stride != cfg.Audio.Stride {
		t.Errorf("stride = %v", g.State().Stride)
	}
	if w, h := g.Layout(1920, 1080); w != 64 || h != 48 {
		t.Errorf("layout = %dx%d", w, h)
	}
	if g.pipeline.Minimap == nil {
		t.Error("minimap enabled by default")
	}

	g.ToggleMode()
	if g.mode != Mode3D {
		t.Errorf("mode = %v after toggle", g.mode)
	}

	cfg.Camera.StartX = 50
	if _, err := NewGame(cfg, maze, graphics.NewStore(), nil, Mode3D); !errors.Is(err, ErrBlockedStart) {
		t.Errorf("expected ErrBlockedStart, got %v", err)
	}
}

func TestNewGame_ParallelCasting(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ScreenWidth, cfg.Display.ScreenHeight = 64, 48
	cfg.Graphics.ParallelCasting = true
	cfg.Graphics.Workers = 2

	g, err := NewGame(cfg, corridor(t), graphics.NewStore(), nil, Mode3D)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	defer g.Close()

	if g.pool == nil || g.pool.NumWorkers() != 2 {
		t.Fatal("expected a two-worker pool")
	}
	g.pipeline.RenderFrame(g.player, g.sprites)
	if g.pool.CompletedJobs() == 0 {
		t.Error("columns were not cast on the pool")
	}
}

func TestFrameBudget(t *testing.T) {
	tests := []struct {
		fps          float64
		update, draw time.Duration
		budget, idle float64
	}{
		{60, 4 * time.Millisecond, 6 * time.Millisecond, 1000.0 / 60, 1000.0/60 - 10},
		{20, 30 * time.Millisecond, 40 * time.Millisecond, 50, 0},
		{0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := frameBudgetMs(tt.fps); math.Abs(got-tt.budget) > 1e-9 {
			t.Errorf("frameBudgetMs(%v) = %v, want %v", tt.fps, got, tt.budget)
		}
		if got := idleBudgetMs(tt.fps, tt.update, tt.draw); math.Abs(got-tt.idle) > 1e-9 {
			t.Errorf("idleBudgetMs(%v) = %v, want %v", tt.fps, got, tt.idle)
		}
	}
}

func TestHUDLines(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ScreenWidth, cfg.Display.ScreenHeight = 64, 48
	cfg.Camera.StartAngleDeg = 90

	g, err := NewGame(cfg, corridor(t), graphics.NewStore(), nil, Mode3D)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	defer g.Close()

	lines := g.gameLoop.ui.hudLines()
	if !strings.HasPrefix(lines[0], "3D view") {
		t.Errorf("mode line = %q", lines[0])
	}
	if last := lines[len(lines)-1]; last != "pos 150,150  heading 90 deg" {
		t.Errorf("position line = %q", last)
	}
}
