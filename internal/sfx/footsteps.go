package sfx

import (
	"errors"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrNoClip is returned by Play when no footstep sound was loaded.
var ErrNoClip = errors.New("no footstep clip loaded")

// Footsteps plays one short clip on demand. Starting it again cuts off the
// previous playback.
type Footsteps struct {
	mu     sync.Mutex
	ctx    *audio.Context
	pcm    []byte
	player *audio.Player
}

// NewFootsteps wraps already decoded PCM. ctx must run at the clip's sample rate.
func NewFootsteps(ctx *audio.Context, pcm []byte) *Footsteps {
	return &Footsteps{ctx: ctx, pcm: pcm}
}

// LoadFootsteps decodes the clip at path and binds it to the process audio context,
// creating the context on first use.
func LoadFootsteps(path string, sampleRate int) (*Footsteps, error) {
	pcm, err := LoadClip(path, sampleRate)
	if err != nil {
		return nil, err
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	log.Printf("[Audio] Loaded footstep clip %s (%d bytes at %d Hz)", path, len(pcm), sampleRate)
	return NewFootsteps(ctx, pcm), nil
}

// Play starts the clip from the beginning.
func (f *Footsteps) Play() error {
	if f == nil || f.ctx == nil || len(f.pcm) == 0 {
		return ErrNoClip
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.player != nil {
		f.player.Pause()
		if err := f.player.Close(); err != nil {
			log.Printf("[Audio] Warning: closing previous footstep: %v", err)
		}
	}
	f.player = f.ctx.NewPlayerFromBytes(f.pcm)
	f.player.Play()
	return nil
}

// Close stops any playback in progress.
func (f *Footsteps) Close() error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.player == nil {
		return nil
	}
	err := f.player.Close()
	f.player = nil
	return err
}
