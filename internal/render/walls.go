package render

import (
	"math"
	"mazecaster/internal/graphics"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/world"
)

// minCorrectedDistance keeps the projected height finite when the camera touches a wall.
const minCorrectedDistance = 1e-6

// ParallelRunner runs fn for every index in [start, end) and returns when all calls are done.
type ParallelRunner interface {
	ParallelFor(start, end int, fn func(int))
}

// WallRenderer draws the sky/floor backdrop and one textured wall strip per column.
type WallRenderer struct {
	Maze       world.Maze
	BlockSize  float64
	Scale      float64
	Textures   *graphics.Store
	SkyColor   uint32
	FloorColor uint32
	Cast       CastOptions

	// Runner, when set, casts the column rays concurrently. Compositing stays sequential.
	Runner ParallelRunner

	intersects []Intersect
}

// Render draws the backdrop, then the walls, into fb and depth.
func (r *WallRenderer) Render(fb *Framebuffer, depth DepthBuffer, player world.Player) {
	r.RenderBackdrop(fb)
	hits := r.CastColumns(player, fb.Width)
	for i, hit := range hits {
		r.RenderColumn(fb, depth, player, i, hit)
	}
}

// RenderBackdrop fills every column with the tiling sky above the horizon and the flat
// floor colour below it. It leaves the depth buffer untouched.
func (r *WallRenderer) RenderBackdrop(fb *Framebuffer) {
	sky := r.Textures.Sky()
	horizon := fb.Height / 2
	for y := 0; y < fb.Height; y++ {
		row := y * fb.Width
		for x := 0; x < fb.Width; x++ {
			if row+x >= len(fb.Pixels) {
				return
			}
			switch {
			case y >= horizon:
				fb.Pixels[row+x] = r.FloorColor
			case sky != nil:
				fb.Pixels[row+x] = sky.PixelAt(mathutil.WrapInt(x, sky.Width), mathutil.WrapInt(y, sky.Height))
			default:
				fb.Pixels[row+x] = r.SkyColor
			}
		}
	}
}

// CastColumns casts one ray per screen column, left to right across the FOV.
// The returned slice is reused by the next call.
func (r *WallRenderer) CastColumns(player world.Player, width int) []Intersect {
	if cap(r.intersects) < width {
		r.intersects = make([]Intersect, width)
	}
	hits := r.intersects[:width]

	opts := r.Cast
	opts.Debug = nil
	cast := func(i int) {
		angle := player.RayAngle(i, width)
		hits[i] = CastRay(r.Maze, player.X, player.Y, angle, r.BlockSize, opts)
	}

	if r.Runner != nil {
		r.Runner.ParallelFor(0, width, cast)
	} else {
		for i := 0; i < width; i++ {
			cast(i)
		}
	}
	return hits
}

// CorrectedDistance removes the fisheye effect from a raw ray length.
func CorrectedDistance(raw, rayAngle, playerAngle float64) float64 {
	return raw * math.Cos(rayAngle-playerAngle)
}

// StakeBounds returns the unclipped top and bottom screen rows of a wall strip.
func StakeBounds(corrected, screenHeight, scale float64) (top, bottom float64) {
	if corrected < minCorrectedDistance {
		corrected = minCorrectedDistance
	}
	stake := screenHeight / corrected * scale
	half := screenHeight / 2
	return half - stake/2, half + stake/2
}

// RenderColumn draws the wall strip for column x from its intersect.
func (r *WallRenderer) RenderColumn(fb *Framebuffer, depth DepthBuffer, player world.Player, x int, hit Intersect) {
	if x < 0 || x >= fb.Width {
		return
	}
	angle := player.RayAngle(x, fb.Width)
	distance := CorrectedDistance(hit.Distance, angle, player.Angle)
	top, bottom := StakeBounds(distance, float64(fb.Height), r.Scale)
	span := bottom - top

	tex := r.Textures.Wall(hit.Impact)
	tx := 0
	if tex != nil {
		tx = hit.TexX(tex.Width)
	}

	yStart := int(math.Max(math.Floor(top), 0))
	yEnd := int(math.Min(math.Ceil(bottom), float64(fb.Height)))
	for y := yStart; y < yEnd; y++ {
		idx := y*fb.Width + x
		if idx >= len(fb.Pixels) || !depth.Nearer(idx, distance) {
			continue
		}

		var color uint32
		if tex != nil {
			v := int((float64(y) - top) / span * float64(tex.Height))
			color = tex.PixelAt(tx, mathutil.ClampInt(v, 0, tex.Height-1))
		}
		fb.Pixels[idx] = color
		depth[idx] = distance
	}
}
