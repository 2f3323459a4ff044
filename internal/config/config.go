// Package config provides the light field's window, ray and color settings.
// Settings are loaded from a JSON file layered over built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// MaxTPS is the highest accepted update rate. Frame loops tick every second/TPS,
// which must stay a positive duration.
const MaxTPS = 1000

// Config holds all settings for a run
type Config struct {
	Window WindowConfig `json:"window"`
	Rays   RayConfig    `json:"rays"`
	Light  LightConfig  `json:"light"`
	Colors ColorConfig  `json:"colors"`

	// Scene is the path to a scene JSON file. Empty means the built-in scene.
	Scene string `json:"scene"`
}

// WindowConfig defines the window and frame rate
type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	TPS       int    `json:"tps"` // Updates per second
	Resizable bool   `json:"resizable"`
}

// RayConfig defines the sweep
type RayConfig struct {
	Length  float64 `json:"length"`  // Ray length; must exceed the farthest obstacle
	Count   int     `json:"count"`   // Rays per sweep
	Sweep   string  `json:"sweep"`   // "radians" or "degrees"
	Workers int     `json:"workers"` // Goroutines per sweep (0 = sequential)
}

// LightConfig defines the light source marker
type LightConfig struct {
	MarkerRadius float64 `json:"marker_radius"`
	Color        string  `json:"color"`
}

// ColorConfig defines draw colors. Values are "#rrggbb" or SVG color names.
type ColorConfig struct {
	Background string `json:"background"`
	Segment    string `json:"segment"`
	Circle     string `json:"circle"`
	Ray        string `json:"ray"`
}

// DefaultConfig returns the classic 1080x720, 360-ray light field
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1080,
			Height: 720,
			Title:  "Light Field - move the mouse, M: sweep, F: stats, Esc: quit",
			TPS:    60,
		},
		Rays: RayConfig{
			Length:  2000,
			Count:   360,
			Sweep:   "radians",
			Workers: 0,
		},
		Light: LightConfig{
			MarkerRadius: 3,
			Color:        "white",
		},
		Colors: ColorConfig{
			Background: "#141414",
			Segment:    "yellow",
			Circle:     "magenta",
			Ray:        "white",
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 || c.Window.TPS > MaxTPS {
		return fmt.Errorf("%w: tps %d (want 1..%d)", ErrInvalidConfig, c.Window.TPS, MaxTPS)
	}
	if !(c.Rays.Length > 0) {
		return fmt.Errorf("%w: ray length %g", ErrInvalidConfig, c.Rays.Length)
	}
	if c.Rays.Count <= 0 {
		return fmt.Errorf("%w: ray count %d", ErrInvalidConfig, c.Rays.Count)
	}
	if c.Rays.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Rays.Workers)
	}
	if c.Rays.Sweep != "radians" && c.Rays.Sweep != "degrees" {
		return fmt.Errorf("%w: sweep %q", ErrInvalidConfig, c.Rays.Sweep)
	}
	if c.Light.MarkerRadius < 0 {
		return fmt.Errorf("%w: marker radius %g", ErrInvalidConfig, c.Light.MarkerRadius)
	}

	for name, value := range map[string]string{
		"light":      c.Light.Color,
		"background": c.Colors.Background,
		"segment":    c.Colors.Segment,
		"circle":     c.Colors.Circle,
		"ray":        c.Colors.Ray,
	} {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%w: %s color: %v", ErrInvalidConfig, name, err)
		}
	}

	return nil
}

// Palette is the resolved set of draw colors
type Palette struct {
	Background color.NRGBA
	Segment    color.NRGBA
	Circle     color.NRGBA
	Ray        color.NRGBA
	Light      color.NRGBA
}

// Palette resolves the configured color strings. Call Validate first.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	var err error

	fields := []struct {
		dst   *color.NRGBA
		value string
	}{
		{&p.Background, c.Colors.Background},
		{&p.Segment, c.Colors.Segment},
		{&p.Circle, c.Colors.Circle},
		{&p.Ray, c.Colors.Ray},
		{&p.Light, c.Light.Color},
	}
	for _, f := range fields {
		if *f.dst, err = ParseColor(f.value); err != nil {
			return Palette{}, err
		}
	}

	return p, nil
}

// ParseColor parses "#rrggbb" or an SVG color name such as "magenta"
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return color.NRGBA{}, fmt.Errorf("color %q must be #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}

	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown color name %q", s)
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
}
