package render

import (
	"math"
	"mazecaster/internal/world"
	"strings"
	"testing"
)

func mustMaze(t *testing.T, rows ...string) world.Maze {
	t.Helper()
	maze, err := world.ParseMaze(strings.NewReader(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("parse maze: %v", err)
	}
	return maze
}

// room is a 7x5 box with an open 5x3 interior.
func room(t *testing.T) world.Maze {
	return mustMaze(t,
		"+-----+",
		"|     |",
		"|     |",
		"|     |",
		"+-----+",
	)
}

func TestCastRay_SmallMazeEast(t *testing.T) {
	maze := mustMaze(t,
		"+-+",
		"| |",
		"+-+",
	)

	for _, mode := range []CastMode{CastSampled, CastGrid} {
		t.Run(mode.String(), func(t *testing.T) {
			hit := CastRay(maze, 3, 3, 0, 2, CastOptions{Mode: mode})
			if hit.Impact != world.CellWallVertical {
				t.Errorf("impact = %v, want %v", hit.Impact, world.CellWallVertical)
			}
			if math.Abs(hit.Distance-1) > 0.02 {
				t.Errorf("distance = %v, want ~1", hit.Distance)
			}
			if math.Abs(hit.U-0.5) > 1e-9 {
				t.Errorf("U = %v, want 0.5", hit.U)
			}
			if hit.TX != DefaultTextureWidth/2 {
				t.Errorf("TX = %d, want %d", hit.TX, DefaultTextureWidth/2)
			}
		})
	}
}

func TestCastRay_CorridorDistanceDecreases(t *testing.T) {
	maze := mustMaze(t,
		"+-+",
		"| |",
		"| |",
		"| |",
		"| |",
		"+-+",
	)

	for _, mode := range []CastMode{CastSampled, CastGrid} {
		t.Run(mode.String(), func(t *testing.T) {
			prev := math.Inf(1)
			for y := 150.0; y < 500; y += 50 {
				hit := CastRay(maze, 150, y, math.Pi/2, 100, CastOptions{Mode: mode})
				if hit.Impact != world.CellWallHorizontal {
					t.Fatalf("y=%v: impact = %v", y, hit.Impact)
				}
				if !(hit.Distance < prev) {
					t.Fatalf("y=%v: distance %v did not decrease from %v", y, hit.Distance, prev)
				}
				if math.Abs(hit.Distance-(500-y)) > 0.5 {
					t.Errorf("y=%v: distance %v, want ~%v", y, hit.Distance, 500-y)
				}
				prev = hit.Distance
			}
		})
	}
}

func TestCastRay_OriginOnOrPastBoundary(t *testing.T) {
	maze := mustMaze(t,
		"+-+",
		"| |",
		"+-+",
	)

	tests := []struct {
		name   string
		x, y   float64
		impact world.CellKind
	}{
		{"grid corner", 0, 0, world.CellPillar},
		{"on east wall edge", 200, 150, world.CellWallVertical},
		{"outside the maze", -50, -50, world.CellVoid},
		{"far past the maze", 1e6, 1e6, world.CellVoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []CastMode{CastSampled, CastGrid} {
				hit := CastRay(maze, tt.x, tt.y, 0.3, 100, CastOptions{Mode: mode})
				if math.IsNaN(hit.Distance) || math.IsInf(hit.Distance, 0) {
					t.Fatalf("%v: distance not finite: %v", mode, hit.Distance)
				}
				if hit.Distance != 0 {
					t.Errorf("%v: distance = %v, want 0 from inside a blocked cell", mode, hit.Distance)
				}
				if hit.Impact != tt.impact {
					t.Errorf("%v: impact = %v, want %v", mode, hit.Impact, tt.impact)
				}
			}
		})
	}
}

func TestCastRay_EscapesThroughGap(t *testing.T) {
	maze := mustMaze(t,
		"+ +",
		"| |",
		"+-+",
	)

	for _, mode := range []CastMode{CastSampled, CastGrid} {
		hit := CastRay(maze, 150, 150, -math.Pi/2, 100, CastOptions{Mode: mode})
		if hit.Impact != world.CellVoid {
			t.Errorf("%v: impact = %v, want void above the gap", mode, hit.Impact)
		}
		if math.IsInf(hit.Distance, 0) || hit.Distance < 150 || hit.Distance > 151 {
			t.Errorf("%v: distance = %v, want just past 150", mode, hit.Distance)
		}
	}
}

func TestCastRay_SampledMatchesGrid(t *testing.T) {
	maze := room(t)
	const step = 0.5

	origins := [][2]float64{{150, 150}, {350, 250}, {525, 250}}
	for _, o := range origins {
		for i := 0; i < 64; i++ {
			angle := float64(i) * 2 * math.Pi / 64
			sampled := CastRay(maze, o[0], o[1], angle, 100, CastOptions{Mode: CastSampled, Step: step})
			grid := CastRay(maze, o[0], o[1], angle, 100, CastOptions{Mode: CastGrid})

			diff := sampled.Distance - grid.Distance
			if diff < -1e-6 || diff > step+1e-6 {
				t.Errorf("origin %v angle %.3f: sampled %v grid %v", o, angle, sampled.Distance, grid.Distance)
			}
			if !sampled.Impact.IsWall() || !grid.Impact.IsWall() {
				t.Errorf("origin %v angle %.3f: impacts %v / %v", o, angle, sampled.Impact, grid.Impact)
			}
		}
	}
}

func TestCastRay_DebugPlot(t *testing.T) {
	maze := mustMaze(t,
		"+-+",
		"| |",
		"+-+",
	)
	fb := NewFramebuffer(300, 300)
	CastRay(maze, 150, 150, 0, 100, CastOptions{Debug: &DebugPlot{Target: fb, Color: 0xFFFFFF}})

	if fb.At(170, 150) != 0xFFFFFF {
		t.Errorf("expected sample at (170,150) to be plotted")
	}
	if fb.At(150, 170) != 0 {
		t.Errorf("unexpected plot off the ray")
	}
}

func TestIntersectTexX(t *testing.T) {
	tests := []struct {
		u     float64
		width int
		want  int
	}{
		{0, 64, 0},
		{0.5, 64, 32},
		{0.999999, 64, 63},
		{1, 64, 63},
		{-0.1, 64, 0},
		{0.5, 0, 0},
	}
	for _, tt := range tests {
		if got := (Intersect{U: tt.u}).TexX(tt.width); got != tt.want {
			t.Errorf("TexX(u=%v, w=%d) = %d, want %d", tt.u, tt.width, got, tt.want)
		}
	}
}

func TestParseCastMode(t *testing.T) {
	tests := []struct {
		name    string
		want    CastMode
		wantErr bool
	}{
		{"", CastSampled, false},
		{"sampled", CastSampled, false},
		{"grid", CastGrid, false},
		{"dda", CastSampled, true},
	}
	for _, tt := range tests {
		got, err := ParseCastMode(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCastMode(%q) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseCastMode(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
