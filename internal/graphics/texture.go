package graphics

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmptyTexture is returned for images with no pixels.
var ErrEmptyTexture = errors.New("texture has zero size")

// Texture is an immutable grid of packed 0xRRGGBB pixels.
type Texture struct {
	Width  int
	Height int
	pixels []uint32
}

// NewTexture wraps a row-major pixel slice of width*height entries.
func NewTexture(width, height int, pixels []uint32) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyTexture
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("texture %dx%d needs %d pixels, got %d", width, height, width*height, len(pixels))
	}
	return &Texture{Width: width, Height: height, pixels: pixels}, nil
}

// SolidTexture returns a width x height texture filled with one colour.
func SolidTexture(width, height int, color uint32) *Texture {
	pixels := make([]uint32, width*height)
	for i := range pixels {
		pixels[i] = color
	}
	return &Texture{Width: width, Height: height, pixels: pixels}
}

// FromImage converts a decoded image. Fully transparent pixels become transparentKey,
// so sprites authored with alpha still work with chroma-key compositing.
func FromImage(img image.Image, transparentKey uint32) (*Texture, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyTexture
	}

	pixels := make([]uint32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				pixels[y*width+x] = transparentKey
				continue
			}
			pixels[y*width+x] = PackRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return &Texture{Width: width, Height: height, pixels: pixels}, nil
}

// LoadTexture decodes a PNG, JPEG, BMP or WebP file.
func LoadTexture(path string, transparentKey uint32) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	tex, err := FromImage(img, transparentKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tex, nil
}

// PixelAt returns the colour at (x, y). Callers clamp; out-of-range reads return black.
func (t *Texture) PixelAt(x, y int) uint32 {
	if t == nil || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0
	}
	return t.pixels[y*t.Width+x]
}

// PackRGB packs 8-bit channels into 0xRRGGBB.
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackRGB splits a packed colour into channels.
func UnpackRGB(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}
