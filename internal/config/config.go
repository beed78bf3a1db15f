package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer and game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Textures TextureConfig  `yaml:"textures"`
	Sprites  []SpriteSpawn  `yaml:"sprites"`
	Audio    AudioConfig    `yaml:"audio"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type WorldConfig struct {
	BlockSize float64 `yaml:"block_size"`
	MazeFile  string  `yaml:"maze_file"`
}

type CameraConfig struct {
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	StartAngleDeg  float64 `yaml:"start_angle_deg"`
	FieldOfViewDeg float64 `yaml:"field_of_view_deg"`
}

type MovementConfig struct {
	MoveSpeed           float64 `yaml:"move_speed"`
	RotationSpeedDeg    float64 `yaml:"rotation_speed_deg"`
	MouseSensitivityDeg float64 `yaml:"mouse_sensitivity_deg"`
	GamepadMoveSpeed    float64 `yaml:"gamepad_move_speed"`
	GamepadRotationDeg  float64 `yaml:"gamepad_rotation_deg"`
	GamepadDeadZone     float64 `yaml:"gamepad_dead_zone"`
}

type GraphicsConfig struct {
	WallScale        float64       `yaml:"wall_scale"`
	RayMode          string        `yaml:"ray_mode"` // "sampled" or "grid"
	RayStep          float64       `yaml:"ray_step"` // world units per sample, 0 = block_size/200
	SkyColor         Color         `yaml:"sky_color"`
	FloorColor       Color         `yaml:"floor_color"`
	BackgroundColor  Color         `yaml:"background_color"`
	ChromaKey        Color         `yaml:"chroma_key"`
	ChromaThreshold  int           `yaml:"chroma_threshold"`
	ParallelCasting  bool          `yaml:"parallel_casting"`
	Workers          int           `yaml:"workers"` // 0 = one per CPU
	SpriteDepthWrite bool          `yaml:"sprite_depth_write"`
	OverheadRays     int           `yaml:"overhead_rays"`
	DebugColor       Color         `yaml:"debug_color"`
	PerfLog          bool          `yaml:"perf_log"` // log a snapshot when FPS stays low
	Minimap          MinimapConfig `yaml:"minimap"`
}

type MinimapConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Scale      float64 `yaml:"scale"`
	OffsetX    int     `yaml:"offset_x"`
	OffsetY    int     `yaml:"offset_y"`
	MarkerSize int     `yaml:"marker_size"`
	OpenColor  Color   `yaml:"open_color"`
	Marker     Color   `yaml:"marker_color"`
}

// TextureConfig maps maze symbols to wall texture files
type TextureConfig struct {
	Walls  map[string]string `yaml:"walls"`
	Sky    string            `yaml:"sky"`
	Sprite string            `yaml:"sprite"`
}

type SpriteSpawn struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	FootstepFile string  `yaml:"footstep_file"`
	Stride       float64 `yaml:"stride"`
	SampleRate   int     `yaml:"sample_rate"`
}

var GlobalConfig *Config

// Default returns the built-in configuration. LoadConfig decodes on top of it.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1300,
			ScreenHeight: 900,
			WindowTitle:  "mazecaster",
		},
		World: WorldConfig{
			BlockSize: 100,
			MazeFile:  "maze.txt",
		},
		Camera: CameraConfig{
			StartX:         150,
			StartY:         150,
			StartAngleDeg:  60,
			FieldOfViewDeg: 60,
		},
		Movement: MovementConfig{
			MoveSpeed:           5,
			RotationSpeedDeg:    7.2,
			MouseSensitivityDeg: 2.4,
			GamepadMoveSpeed:    3,
			GamepadRotationDeg:  3.6,
			GamepadDeadZone:     0.5,
		},
		Graphics: GraphicsConfig{
			WallScale:       70,
			RayMode:         "sampled",
			SkyColor:        0x383838,
			FloorColor:      0x717171,
			BackgroundColor: 0x333355,
			ChromaKey:       0xFF66C4,
			ChromaThreshold: 150,
			OverheadRays:    100,
			DebugColor:      0xFFDDDD,
			Minimap: MinimapConfig{
				Enabled:    true,
				Scale:      10,
				OffsetX:    10,
				OffsetY:    10,
				MarkerSize: 4,
				OpenColor:  0x222222,
				Marker:     0x00FF00,
			},
		},
		Textures: TextureConfig{
			Walls: map[string]string{
				"+": "assets/wall_pillar.png",
				"-": "assets/wall_horizontal.png",
				"|": "assets/wall_vertical.png",
				"g": "assets/goal.png",
			},
			Sky:    "assets/sky.png",
			Sprite: "assets/sprite.png",
		},
		Sprites: []SpriteSpawn{{X: 150, Y: 400}},
		Audio: AudioConfig{
			Enabled:      true,
			FootstepFile: "assets/walking.wav",
			Stride:       30,
			SampleRate:   44100,
		},
	}
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.World.BlockSize <= 0:
		return fmt.Errorf("%w: block_size %v", ErrInvalidConfig, c.World.BlockSize)
	case c.Graphics.WallScale <= 0:
		return fmt.Errorf("%w: wall_scale %v", ErrInvalidConfig, c.Graphics.WallScale)
	case c.Graphics.RayStep < 0:
		return fmt.Errorf("%w: ray_step %v", ErrInvalidConfig, c.Graphics.RayStep)
	case c.Graphics.RayMode != "sampled" && c.Graphics.RayMode != "grid":
		return fmt.Errorf("%w: ray_mode %q", ErrInvalidConfig, c.Graphics.RayMode)
	case c.Graphics.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Graphics.Workers)
	case c.Camera.FieldOfViewDeg <= 0 || c.Camera.FieldOfViewDeg >= 180:
		return fmt.Errorf("%w: field_of_view_deg %v", ErrInvalidConfig, c.Camera.FieldOfViewDeg)
	case c.Graphics.Minimap.Enabled && c.Graphics.Minimap.Scale <= 0:
		return fmt.Errorf("%w: minimap scale %v", ErrInvalidConfig, c.Graphics.Minimap.Scale)
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	for symbol := range c.Textures.Walls {
		if len([]rune(symbol)) != 1 {
			return fmt.Errorf("%w: wall texture key %q must be a single symbol", ErrInvalidConfig, symbol)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetBlockSize() float64 {
	return c.World.BlockSize
}

func (c *Config) GetFOV() float64 {
	return degToRad(c.Camera.FieldOfViewDeg)
}

func (c *Config) GetStartAngle() float64 {
	return degToRad(c.Camera.StartAngleDeg)
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return degToRad(c.Movement.RotationSpeedDeg)
}

func (c *Config) GetMouseSensitivity() float64 {
	return degToRad(c.Movement.MouseSensitivityDeg)
}

func (c *Config) GetGamepadRotSpeed() float64 {
	return degToRad(c.Movement.GamepadRotationDeg)
}

// GetRayStep returns the ray sampling increment, defaulting to 1/200 of a cell.
func (c *Config) GetRayStep() float64 {
	if c.Graphics.RayStep > 0 {
		return c.Graphics.RayStep
	}
	return c.World.BlockSize / 200
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
