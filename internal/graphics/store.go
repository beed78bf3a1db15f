package graphics

import (
	"errors"
	"fmt"
	"log"
	"mazecaster/internal/config"
	"mazecaster/internal/world"
	"sort"
)

// ErrMissingTexture is returned when a configured texture file cannot be loaded.
var ErrMissingTexture = errors.New("missing texture")

// Store holds every texture the renderers sample. It is filled once at startup
// and only read afterwards.
type Store struct {
	walls  map[world.CellKind]*Texture
	sky    *Texture
	sprite *Texture
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{walls: make(map[world.CellKind]*Texture)}
}

// LoadStore loads every texture named in the config. The first file that fails
// is reported; nothing is loaded lazily later.
func LoadStore(cfg config.TextureConfig, chromaKey uint32) (*Store, error) {
	store := NewStore()

	// Sorted so the reported failure is deterministic
	symbols := make([]string, 0, len(cfg.Walls))
	for symbol := range cfg.Walls {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		path := cfg.Walls[symbol]
		kind, ok := world.ParseCell([]rune(symbol)[0])
		if !ok || !kind.IsWall() {
			return nil, fmt.Errorf("texture for %q: %w", symbol, world.ErrUnknownCell)
		}
		tex, err := LoadTexture(path, chromaKey)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrMissingTexture, path, err)
		}
		store.SetWall(kind, tex)
	}

	for _, kind := range world.WallKinds {
		if store.Wall(kind) == nil {
			log.Printf("[Textures] No texture for %v, it will render black", kind)
		}
	}

	if cfg.Sky != "" {
		tex, err := LoadTexture(cfg.Sky, chromaKey)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrMissingTexture, cfg.Sky, err)
		}
		store.sky = tex
	}

	if cfg.Sprite != "" {
		tex, err := LoadTexture(cfg.Sprite, chromaKey)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrMissingTexture, cfg.Sprite, err)
		}
		store.sprite = tex
	}

	log.Printf("[Textures] Loaded %d wall textures (sky: %t, sprite: %t)", len(store.walls), store.sky != nil, store.sprite != nil)
	return store, nil
}

// SetWall binds a texture to a wall kind.
func (s *Store) SetWall(kind world.CellKind, tex *Texture) {
	s.walls[kind] = tex
}

// SetSky sets the tiling sky texture.
func (s *Store) SetSky(tex *Texture) {
	s.sky = tex
}

// SetSprite sets the billboard texture.
func (s *Store) SetSprite(tex *Texture) {
	s.sprite = tex
}

// Wall returns the texture for a kind, or nil when none is bound.
func (s *Store) Wall(kind world.CellKind) *Texture {
	if s == nil {
		return nil
	}
	return s.walls[kind]
}

// Sky returns the sky texture, or nil.
func (s *Store) Sky() *Texture {
	if s == nil {
		return nil
	}
	return s.sky
}

// Sprite returns the billboard texture, or nil.
func (s *Store) Sprite() *Texture {
	if s == nil {
		return nil
	}
	return s.sprite
}
