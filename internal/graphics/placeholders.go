package graphics

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// PlaceholderSize is the edge length of generated wall textures
const PlaceholderSize = 128

// Palette for the generated placeholder textures
var placeholderPalette = struct {
	Stone, StoneDark     color.RGBA
	Brick, Mortar        color.RGBA
	Plank, PlankDark     color.RGBA
	GoalA, GoalB         color.RGBA
	SkyTop, SkyBottom    color.RGBA
	Star                 color.RGBA
	Statue, StatueShadow color.RGBA
}{
	Stone:        color.RGBA{150, 140, 130, 255},
	StoneDark:    color.RGBA{90, 84, 78, 255},
	Brick:        color.RGBA{150, 60, 45, 255},
	Mortar:       color.RGBA{200, 190, 175, 255},
	Plank:        color.RGBA{130, 95, 60, 255},
	PlankDark:    color.RGBA{80, 55, 35, 255},
	GoalA:        color.RGBA{230, 190, 40, 255},
	GoalB:        color.RGBA{40, 160, 70, 255},
	SkyTop:       color.RGBA{15, 20, 60, 255},
	SkyBottom:    color.RGBA{70, 90, 150, 255},
	Star:         color.RGBA{240, 240, 255, 255},
	Statue:       color.RGBA{120, 120, 110, 255},
	StatueShadow: color.RGBA{60, 60, 55, 255},
}

func newCanvas(w, h int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// StoneBlockImage creates large offset stone blocks.
func StoneBlockImage() *image.RGBA {
	p := placeholderPalette
	img := newCanvas(PlaceholderSize, PlaceholderSize, p.Stone)
	const block = 32
	for row := 0; row < PlaceholderSize/block; row++ {
		y := row * block
		fillRect(img, image.Rect(0, y, PlaceholderSize, y+2), p.StoneDark)
		offset := (row % 2) * block / 2
		for x := offset; x < PlaceholderSize; x += block {
			fillRect(img, image.Rect(x, y, x+2, y+block), p.StoneDark)
		}
	}
	return img
}

// BrickImage creates a running-bond brick wall.
func BrickImage() *image.RGBA {
	p := placeholderPalette
	img := newCanvas(PlaceholderSize, PlaceholderSize, p.Mortar)
	const bw, bh = 32, 16
	for row := 0; row < PlaceholderSize/bh; row++ {
		offset := (row % 2) * bw / 2
		for x := -offset; x < PlaceholderSize; x += bw {
			fillRect(img, image.Rect(x+1, row*bh+1, x+bw-1, row*bh+bh-1), p.Brick)
		}
	}
	return img
}

// PlankImage creates vertical wooden planks.
func PlankImage() *image.RGBA {
	p := placeholderPalette
	img := newCanvas(PlaceholderSize, PlaceholderSize, p.Plank)
	const plank = 16
	for x := 0; x < PlaceholderSize; x += plank {
		fillRect(img, image.Rect(x, 0, x+1, PlaceholderSize), p.PlankDark)
		knot := (x*7)%PlaceholderSize + 4
		fillRect(img, image.Rect(x+6, knot, x+10, knot+3), p.PlankDark)
	}
	return img
}

// GoalImage creates a bright checkerboard so the exit stands out.
func GoalImage() *image.RGBA {
	p := placeholderPalette
	img := newCanvas(PlaceholderSize, PlaceholderSize, p.GoalA)
	const cell = 16
	for y := 0; y < PlaceholderSize; y += cell {
		for x := 0; x < PlaceholderSize; x += cell {
			if (x/cell+y/cell)%2 == 1 {
				fillRect(img, image.Rect(x, y, x+cell, y+cell), p.GoalB)
			}
		}
	}
	return img
}

// SkyImage creates a night gradient with a deterministic star field. It tiles horizontally.
func SkyImage() *image.RGBA {
	p := placeholderPalette
	const w, h = 256, 128
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		row := color.RGBA{
			R: lerp8(p.SkyTop.R, p.SkyBottom.R, t),
			G: lerp8(p.SkyTop.G, p.SkyBottom.G, t),
			B: lerp8(p.SkyTop.B, p.SkyBottom.B, t),
			A: 255,
		}
		fillRect(img, image.Rect(0, y, w, y+1), row)
	}
	seed := uint32(2463534242)
	for i := 0; i < 60; i++ {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		img.SetRGBA(int(seed%w), int((seed/w)%(h*2/3)), p.Star)
	}
	return img
}

// SpriteImage creates a stone head on a chroma-key background.
func SpriteImage(key uint32) *image.RGBA {
	p := placeholderPalette
	r, g, b := UnpackRGB(key)
	const size = 64
	img := newCanvas(size, size, color.RGBA{r, g, b, 255})

	// Head: a tall rounded slab
	for y := 4; y < size-2; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x)-size/2) / 20
			dy := math.Abs(float64(y)-size/2) / 30
			if dx*dx+dy*dy*dy*dy <= 1 {
				img.SetRGBA(x, y, p.Statue)
			}
		}
	}
	// Brow, eyes, nose and mouth
	fillRect(img, image.Rect(14, 20, 50, 24), p.StatueShadow)
	fillRect(img, image.Rect(20, 24, 28, 28), p.StatueShadow)
	fillRect(img, image.Rect(36, 24, 44, 28), p.StatueShadow)
	fillRect(img, image.Rect(29, 24, 35, 42), p.StatueShadow)
	fillRect(img, image.Rect(22, 48, 42, 51), p.StatueShadow)
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// SavePNG writes an image to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// PlaceholderSet maps file names to generated images for one chroma key.
func PlaceholderSet(key uint32) map[string]image.Image {
	return map[string]image.Image{
		"wall_pillar.png":     StoneBlockImage(),
		"wall_horizontal.png": BrickImage(),
		"wall_vertical.png":   PlankImage(),
		"goal.png":            GoalImage(),
		"sky.png":             SkyImage(),
		"sprite.png":          SpriteImage(key),
	}
}
