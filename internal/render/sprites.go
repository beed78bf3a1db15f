package render

import (
	"math"
	"mazecaster/internal/graphics"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/world"
)

// SpriteRenderer composites camera-facing billboards against the depth buffer.
type SpriteRenderer struct {
	Scale     float64
	Texture   *graphics.Texture
	ChromaKey uint32
	Threshold int // colour distance at or below which a texel is transparent

	// DepthWrite makes sprites record their distance, so nearer sprites hide farther
	// ones when drawn first. Off by default: sprites only read the depth buffer.
	DepthWrite bool
}

// SpriteQuad is the screen-space placement of one billboard.
type SpriteQuad struct {
	StartX, StartY float64
	Size           float64
	Distance       float64
}

// Project places a sprite on screen. ok is false when it is behind the camera or
// exactly at the camera position.
func Project(player world.Player, sprite world.Sprite, screenWidth, screenHeight int, scale float64) (SpriteQuad, bool) {
	dx, dy := sprite.X-player.X, sprite.Y-player.Y
	distance := math.Hypot(dx, dy)
	if distance <= 0 || math.IsNaN(distance) {
		return SpriteQuad{}, false
	}

	relative := mathutil.NormalizeAngle(math.Atan2(dy, dx) - player.Angle)
	// tan() mirrors anything at or past 90 degrees back onto the screen
	if math.Abs(relative) >= math.Pi/2 {
		return SpriteQuad{}, false
	}

	w, h := float64(screenWidth), float64(screenHeight)
	size := h / distance * scale
	return SpriteQuad{
		StartX:   math.Tan(relative)*(w/2)/(player.FOV/2) + w/2 - size/2,
		StartY:   h/2 - size/2,
		Size:     size,
		Distance: distance,
	}, true
}

// IsTransparent reports whether a texel matches the chroma key closely enough to skip.
func (r *SpriteRenderer) IsTransparent(color uint32) bool {
	return mathutil.ColorDistance(color, r.ChromaKey) <= r.Threshold
}

// Render draws every sprite. Order among sprites is the slice order.
func (r *SpriteRenderer) Render(fb *Framebuffer, depth DepthBuffer, player world.Player, sprites []world.Sprite) {
	for _, sprite := range sprites {
		r.RenderSprite(fb, depth, player, sprite)
	}
}

// RenderSprite draws one billboard, pixel by pixel, where it is nearer than the depth buffer.
func (r *SpriteRenderer) RenderSprite(fb *Framebuffer, depth DepthBuffer, player world.Player, sprite world.Sprite) {
	tex := r.Texture
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return
	}
	quad, ok := Project(player, sprite, fb.Width, fb.Height, r.Scale)
	if !ok || quad.Size < 1 {
		return
	}

	// Clip in float space: near the FOV edge tan() pushes StartX far past the int range
	w, h := float64(fb.Width), float64(fb.Height)
	xStart := int(mathutil.ClampFloat(math.Floor(quad.StartX), 0, w))
	xEnd := int(mathutil.ClampFloat(quad.StartX+quad.Size, 0, w))
	yStart := int(mathutil.ClampFloat(math.Floor(quad.StartY), 0, h))
	yEnd := int(mathutil.ClampFloat(quad.StartY+quad.Size, 0, h))
	if xStart >= xEnd || yStart >= yEnd {
		return
	}

	texScaleX := float64(tex.Width) / quad.Size
	texScaleY := float64(tex.Height) / quad.Size

	for x := xStart; x < xEnd; x++ {
		tx := mathutil.ClampInt(int((float64(x)-quad.StartX)*texScaleX), 0, tex.Width-1)
		for y := yStart; y < yEnd; y++ {
			idx := y*fb.Width + x
			if idx >= len(fb.Pixels) || !depth.Nearer(idx, quad.Distance) {
				continue
			}

			ty := mathutil.ClampInt(int((float64(y)-quad.StartY)*texScaleY), 0, tex.Height-1)
			color := tex.PixelAt(tx, ty)
			if r.IsTransparent(color) {
				continue
			}

			fb.Pixels[idx] = color
			if r.DepthWrite {
				depth[idx] = quad.Distance
			}
		}
	}
}
