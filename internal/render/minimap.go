package render

import (
	"math"
	"mazecaster/internal/world"
)

// Minimap draws a scaled top-down view of the maze with a player marker.
// It ignores the depth buffer and is always drawn last.
type Minimap struct {
	BlockSize   float64
	Scale       float64 // screen pixels per maze cell
	OffsetX     int
	OffsetY     int
	MarkerSize  int
	OpenColor   uint32
	MarkerColor uint32
}

// Draw renders the maze cells and the player marker into fb.
func (m *Minimap) Draw(fb *Framebuffer, maze world.Maze, player world.Player) {
	for row := range maze {
		for col, kind := range maze[row] {
			color := kind.Color()
			if kind == world.CellOpen {
				color = m.OpenColor
			}
			x0 := m.OffsetX + int(math.Floor(float64(col)*m.Scale))
			y0 := m.OffsetY + int(math.Floor(float64(row)*m.Scale))
			x1 := m.OffsetX + int(math.Floor(float64(col+1)*m.Scale))
			y1 := m.OffsetY + int(math.Floor(float64(row+1)*m.Scale))
			fb.FillRect(x0, y0, x1, y1, color)
		}
	}

	px, py := m.MarkerPosition(player)
	half := m.MarkerSize / 2
	fb.FillRect(px-half, py-half, px-half+m.MarkerSize, py-half+m.MarkerSize, m.MarkerColor)
}

// MarkerPosition maps the player's world position to minimap screen pixels.
func (m *Minimap) MarkerPosition(player world.Player) (int, int) {
	factor := m.Scale / m.BlockSize
	return m.OffsetX + int(math.Floor(player.X*factor)), m.OffsetY + int(math.Floor(player.Y*factor))
}

// Overhead is the full-screen top-down debug view: one pixel per world unit, with the
// sampled path of every ray plotted.
type Overhead struct {
	BlockSize   float64
	Rays        int
	PlayerColor uint32
	RayColor    uint32
	Cast        CastOptions
}

// Draw renders the maze, the player point and the debug rays.
func (o *Overhead) Draw(fb *Framebuffer, maze world.Maze, player world.Player) {
	cell := int(o.BlockSize)
	for row := range maze {
		for col, kind := range maze[row] {
			if kind == world.CellOpen {
				continue
			}
			fb.FillRect(col*cell, row*cell, (col+1)*cell, (row+1)*cell, kind.Color())
		}
	}

	fb.Plot(player.X, player.Y, o.PlayerColor)

	opts := o.Cast
	opts.Debug = &DebugPlot{Target: fb, Color: o.RayColor}
	for i := 0; i < o.Rays; i++ {
		CastRay(maze, player.X, player.Y, player.RayAngle(i, o.Rays), o.BlockSize, opts)
	}
}
