package render

import (
	"fmt"
	"math"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/world"
)

// DefaultTextureWidth is used for Intersect.TX when CastOptions.TextureWidth is unset.
const DefaultTextureWidth = 128

// CastMode selects the traversal used by CastRay.
type CastMode int

const (
	// CastSampled walks the ray in fixed sub-cell increments.
	CastSampled CastMode = iota
	// CastGrid jumps from grid line to grid line (exact edge hits).
	CastGrid
)

// ParseCastMode maps the config names "sampled" and "grid" to a CastMode.
func ParseCastMode(name string) (CastMode, error) {
	switch name {
	case "", "sampled":
		return CastSampled, nil
	case "grid":
		return CastGrid, nil
	}
	return CastSampled, fmt.Errorf("unknown ray mode %q", name)
}

func (m CastMode) String() string {
	if m == CastGrid {
		return "grid"
	}
	return "sampled"
}

// Intersect is the result of one ray cast.
type Intersect struct {
	Distance float64        // Euclidean distance from origin to the strike point
	Impact   world.CellKind // kind of the struck cell
	U        float64        // strike offset along the crossed cell edge, [0, 1)
	TX       int            // U scaled to CastOptions.TextureWidth
	HitX     float64        // strike point in world units
	HitY     float64
}

// TexX scales U to a texture of the given width, clamped to [0, width).
func (in Intersect) TexX(width int) int {
	if width <= 0 {
		return 0
	}
	return mathutil.ClampInt(int(in.U*float64(width)), 0, width-1)
}

// DebugPlot receives every sampled point when set on CastOptions.
// Only the overhead view uses it.
type DebugPlot struct {
	Target *Framebuffer
	Color  uint32
}

// CastOptions configures one CastRay call.
type CastOptions struct {
	Mode         CastMode
	Step         float64 // sample increment in world units; <= 0 means blockSize/200
	TextureWidth int
	Debug        *DebugPlot
}

// CastRay finds the first blocked cell along the ray from (ox, oy) heading angle.
// Cells outside the maze are blocked, so the walk always terminates.
func CastRay(maze world.Maze, ox, oy, angle, blockSize float64, opts CastOptions) Intersect {
	texWidth := opts.TextureWidth
	if texWidth <= 0 {
		texWidth = DefaultTextureWidth
	}

	var hit Intersect
	if opts.Mode == CastGrid {
		hit = castGrid(maze, ox, oy, angle, blockSize, opts.Debug)
	} else {
		hit = castSampled(maze, ox, oy, angle, blockSize, opts.Step, opts.Debug)
	}
	hit.TX = hit.TexX(texWidth)
	return hit
}

// stepBudget bounds the number of samples any ray inside the maze can need.
func stepBudget(maze world.Maze, blockSize, step float64) int {
	extent := float64(maze.Rows()+maze.MaxCols()+2) * blockSize
	return int(math.Ceil(extent/step)) + 1
}

func castSampled(maze world.Maze, ox, oy, angle, blockSize, step float64, debug *DebugPlot) Intersect {
	if !(step > 0) {
		step = blockSize / 200
	}
	dirX, dirY := math.Cos(angle), math.Sin(angle)

	prevX, prevY := world.CellAtPoint(ox, oy, blockSize)
	if maze.IsBlocked(prevX, prevY) {
		return Intersect{
			Impact: maze.At(prevX, prevY),
			U:      edgeOffset(ox, oy, blockSize, false),
			HitX:   ox,
			HitY:   oy,
		}
	}

	budget := stepBudget(maze, blockSize, step)
	var x, y, d float64
	for i := 1; i <= budget; i++ {
		d = float64(i) * step
		x = ox + d*dirX
		y = oy + d*dirY

		if debug != nil && debug.Target != nil {
			debug.Target.Plot(x, y, debug.Color)
		}

		cx, cy := world.CellAtPoint(x, y, blockSize)
		if maze.IsBlocked(cx, cy) {
			// Only the column changed: the ray came through a vertical edge
			vertical := cx != prevX && cy == prevY
			return Intersect{
				Distance: d,
				Impact:   maze.At(cx, cy),
				U:        edgeOffset(x, y, blockSize, vertical),
				HitX:     x,
				HitY:     y,
			}
		}
		prevX, prevY = cx, cy
	}

	return Intersect{Distance: d, Impact: world.CellVoid, HitX: x, HitY: y}
}

// castGrid is the grid-line DDA: it visits every cell the ray enters and reports the
// exact crossing point.
func castGrid(maze world.Maze, ox, oy, angle, blockSize float64, debug *DebugPlot) Intersect {
	rayDirectionX, rayDirectionY := math.Cos(angle), math.Sin(angle)

	currentTileX, currentTileY := world.CellAtPoint(ox, oy, blockSize)
	if maze.IsBlocked(currentTileX, currentTileY) {
		return Intersect{
			Impact: maze.At(currentTileX, currentTileY),
			U:      edgeOffset(ox, oy, blockSize, false),
			HitX:   ox,
			HitY:   oy,
		}
	}

	// Position within the current tile, normalised to 0..1
	positionInTileX := ox/blockSize - float64(currentTileX)
	positionInTileY := oy/blockSize - float64(currentTileY)

	// Distance (in tiles) the ray travels to cross one grid line on each axis
	deltaDistanceX, deltaDistanceY := math.Inf(1), math.Inf(1)
	if rayDirectionX != 0 {
		deltaDistanceX = math.Abs(1 / rayDirectionX)
	}
	if rayDirectionY != 0 {
		deltaDistanceY = math.Abs(1 / rayDirectionY)
	}

	var stepDirectionX, stepDirectionY int
	var distanceToNextGridLineX, distanceToNextGridLineY float64
	if rayDirectionX < 0 {
		stepDirectionX = -1
		distanceToNextGridLineX = positionInTileX * deltaDistanceX
	} else {
		stepDirectionX = 1
		distanceToNextGridLineX = (1.0 - positionInTileX) * deltaDistanceX
	}
	if rayDirectionY < 0 {
		stepDirectionY = -1
		distanceToNextGridLineY = positionInTileY * deltaDistanceY
	} else {
		stepDirectionY = 1
		distanceToNextGridLineY = (1.0 - positionInTileY) * deltaDistanceY
	}

	maxSteps := maze.Rows() + maze.MaxCols() + 2
	for steps := 0; steps < maxSteps; steps++ {
		var t float64
		vertical := false
		if distanceToNextGridLineX < distanceToNextGridLineY {
			t = distanceToNextGridLineX
			distanceToNextGridLineX += deltaDistanceX
			currentTileX += stepDirectionX
			vertical = true
		} else {
			t = distanceToNextGridLineY
			distanceToNextGridLineY += deltaDistanceY
			currentTileY += stepDirectionY
		}

		distance := t * blockSize
		x := ox + distance*rayDirectionX
		y := oy + distance*rayDirectionY
		if debug != nil && debug.Target != nil {
			debug.Target.Plot(x, y, debug.Color)
		}

		if !maze.IsBlocked(currentTileX, currentTileY) {
			continue
		}
		return Intersect{
			Distance: distance,
			Impact:   maze.At(currentTileX, currentTileY),
			U:        edgeOffset(x, y, blockSize, vertical),
			HitX:     x,
			HitY:     y,
		}
	}

	return Intersect{Impact: world.CellVoid, HitX: ox, HitY: oy}
}

// edgeOffset returns the sub-cell position of a strike point along the crossed edge.
// A vertical edge (x = const) is parameterised by y, a horizontal one by x.
func edgeOffset(x, y, blockSize float64, vertical bool) float64 {
	if vertical {
		return mathutil.Frac(y / blockSize)
	}
	return mathutil.Frac(x / blockSize)
}
