// Package config loads demo settings from YAML. Every field has a default in
// the embedded default.yaml; a user file only needs the keys it changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/plus3/ecscam/input"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole demo configuration, loaded from YAML.
type Config struct {
	Window     WindowConfig `yaml:"window"`
	Camera     CameraConfig `yaml:"camera"`
	Player     PlayerConfig `yaml:"player"`
	Grid       GridConfig   `yaml:"grid"`
	Input      InputConfig  `yaml:"input"`
	ContentDir string       `yaml:"content_dir"`
	Debug      bool         `yaml:"debug"`
	LogLevel   string       `yaml:"log_level"`
}

// WindowConfig sizes the ebiten window and sets its tick rate.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	TPS       int    `yaml:"tps"`
}

// CameraConfig sets the zoom and virtual resolution.
type CameraConfig struct {
	Zoom          float64 `yaml:"zoom"`
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
	VirtualWidth  int     `yaml:"virtual_width"`
	VirtualHeight int     `yaml:"virtual_height"`
	// Boxing selects a fixed virtual resolution. When false the virtual
	// size follows the window.
	Boxing bool `yaml:"boxing"`
}

// PlayerConfig places the player and sets its step per tick.
type PlayerConfig struct {
	Step    float64 `yaml:"step"`
	Texture string  `yaml:"texture"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

// GridConfig describes the square of background tiles. Tiles are placed at
// (x*TileSize, y*TileSize) for x and y in [Min, Max].
type GridConfig struct {
	Min      int     `yaml:"min"`
	Max      int     `yaml:"max"`
	TileSize float64 `yaml:"tile_size"`
	Texture  string  `yaml:"texture"`
}

// Len is the number of tiles in the grid.
func (g GridConfig) Len() int {
	n := g.Max - g.Min + 1
	if n < 0 {
		return 0
	}
	return n * n
}

// InputConfig names the movement keys as ebiten key names.
type InputConfig struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Bindings parses the key names.
func (c InputConfig) Bindings() (input.Bindings, error) {
	return input.ParseBindings(c.Up, c.Down, c.Left, c.Right)
}

// Default returns the embedded configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Errorf("config: embedded default: %w", err))
	}
	return &cfg
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := cfg.Overlay(data); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay decodes YAML on top of the current values.
func (c *Config) Overlay(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Clone returns a shallow copy; Config holds no reference fields.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports every problem found, not just the first.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window tps %d must be positive", c.Window.TPS)

	check(c.Camera.MinZoom > 0, "camera min_zoom %g must be positive", c.Camera.MinZoom)
	check(c.Camera.MaxZoom >= c.Camera.MinZoom, "camera max_zoom %g is below min_zoom %g", c.Camera.MaxZoom, c.Camera.MinZoom)
	check(c.Camera.Zoom >= c.Camera.MinZoom && c.Camera.Zoom <= c.Camera.MaxZoom,
		"camera zoom %g outside [%g, %g]", c.Camera.Zoom, c.Camera.MinZoom, c.Camera.MaxZoom)
	check(c.Camera.VirtualWidth > 0 && c.Camera.VirtualHeight > 0,
		"camera virtual size %dx%d must be positive", c.Camera.VirtualWidth, c.Camera.VirtualHeight)

	check(c.Player.Step >= 0, "player step %g must not be negative", c.Player.Step)
	check(c.Player.Texture != "", "player texture is empty")

	check(c.Grid.Min <= c.Grid.Max, "grid min %d is above max %d", c.Grid.Min, c.Grid.Max)
	check(c.Grid.TileSize > 0, "grid tile_size %g must be positive", c.Grid.TileSize)
	check(c.Grid.Texture != "", "grid texture is empty")

	if _, err := c.Input.Bindings(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// ParseLevel parses a slog level name. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// NewLogger builds the text logger every program writes to.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
