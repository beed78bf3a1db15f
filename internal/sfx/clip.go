package sfx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var (
	// ErrUnsupportedFormat is returned for clip files that are neither WAV nor MP3.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrEmptyClip is returned when a clip decodes to no samples.
	ErrEmptyClip = errors.New("audio clip has no samples")
)

// LoadClip decodes the file at path into 16-bit little-endian stereo PCM at sampleRate.
// The decoder is picked by file extension.
func LoadClip(path string, sampleRate int) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pcm, err := DecodeClip(filepath.Ext(path), raw, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return pcm, nil
}

// DecodeClip decodes raw file bytes; ext is the file extension including the dot.
func DecodeClip(ext string, raw []byte, sampleRate int) ([]byte, error) {
	var stream io.Reader
	var err error

	switch strings.ToLower(ext) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded stream: %w", err)
	}
	if len(decoded) == 0 {
		return nil, ErrEmptyClip
	}
	return decoded, nil
}
