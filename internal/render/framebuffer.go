package render

import "math"

// Framebuffer is a row-major grid of packed 0xRRGGBB pixels owned by the frame loop.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer allocates a width x height framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Clear fills the whole framebuffer with one colour.
func (fb *Framebuffer) Clear(color uint32) {
	for i := range fb.Pixels {
		fb.Pixels[i] = color
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height && y*fb.Width+x < len(fb.Pixels)
}

// Set writes one pixel. Out-of-range writes are dropped.
func (fb *Framebuffer) Set(x, y int, color uint32) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = color
}

// At reads one pixel, or 0 outside.
func (fb *Framebuffer) At(x, y int) uint32 {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// Plot writes the pixel containing the continuous point (x, y).
func (fb *Framebuffer) Plot(x, y float64, color uint32) {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 {
		return
	}
	fb.Set(int(x), int(y), color)
}

// FillRect fills [x0, x1) x [y0, y1), clipped to the framebuffer.
func (fb *Framebuffer) FillRect(x0, y0, x1, y1 int, color uint32) {
	x0, x1 = max(x0, 0), min(x1, fb.Width)
	y0, y1 = max(y0, 0), min(y1, fb.Height)
	for y := y0; y < y1; y++ {
		row := y * fb.Width
		for x := x0; x < x1; x++ {
			if row+x < len(fb.Pixels) {
				fb.Pixels[row+x] = color
			}
		}
	}
}

// CopyRGBA writes the framebuffer as opaque RGBA bytes into dst, which must hold
// 4*Width*Height bytes. This is the layout ebiten's WritePixels expects.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	n := min(len(fb.Pixels), len(dst)/4)
	for i := 0; i < n; i++ {
		c := fb.Pixels[i]
		o := i * 4
		dst[o] = uint8(c >> 16)
		dst[o+1] = uint8(c >> 8)
		dst[o+2] = uint8(c)
		dst[o+3] = 0xFF
	}
}

// DepthBuffer holds one distance per framebuffer pixel, row-major.
type DepthBuffer []float64

// NewDepthBuffer allocates a depth buffer for width x height pixels, already reset.
func NewDepthBuffer(width, height int) DepthBuffer {
	d := make(DepthBuffer, width*height)
	d.Reset()
	return d
}

// Reset marks every pixel as infinitely far away. Called at the start of each frame.
func (d DepthBuffer) Reset() {
	inf := math.Inf(1)
	for i := range d {
		d[i] = inf
	}
}

// Nearer reports whether distance beats the recorded depth at idx. Out-of-range is never nearer.
func (d DepthBuffer) Nearer(idx int, distance float64) bool {
	return idx >= 0 && idx < len(d) && distance < d[idx]
}
