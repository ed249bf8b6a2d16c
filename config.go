package mapedit

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Zoom limits are percentages of the native scale.
const (
	DefaultMinZoom         = 5
	DefaultMaxZoom         = 500
	DefaultZoomSensitivity = 8
)

// ZoomConfig bounds and tunes wheel zoom.
type ZoomConfig struct {
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	Sensitivity float64 `yaml:"sensitivity"`
}

// MapSizeConfig is the size given to newly created maps.
type MapSizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config holds the editor settings read from YAML.
type Config struct {
	Zoom ZoomConfig    `yaml:"zoom"`
	Map  MapSizeConfig `yaml:"map"`
	// Background is a color name from golang.org/x/image/colornames or a
	// #rrggbb / #rrggbbaa hex value. It fills the map canvas.
	Background string `yaml:"background"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Zoom: ZoomConfig{
			Min:         DefaultMinZoom,
			Max:         DefaultMaxZoom,
			Sensitivity: DefaultZoomSensitivity,
		},
		Map:        MapSizeConfig{Width: DefaultMapWidth, Height: DefaultMapHeight},
		Background: "white",
		LogLevel:   "info",
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
// Keys that are absent keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("mapedit: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return ParseConfig(data)
}

// Validate reports the first invalid setting as a *ValidationError.
func (c Config) Validate() error {
	if !validDimension(c.Zoom.Min) {
		return &ValidationError{Field: "zoom.min", Value: formatFloat(c.Zoom.Min), Reason: "must be positive"}
	}
	if c.Zoom.Max < c.Zoom.Min {
		return &ValidationError{Field: "zoom.max", Value: formatFloat(c.Zoom.Max), Reason: "must not be below zoom.min"}
	}
	if !validDimension(c.Zoom.Sensitivity) {
		return &ValidationError{Field: "zoom.sensitivity", Value: formatFloat(c.Zoom.Sensitivity), Reason: "must be positive"}
	}
	if !validDimension(c.Map.Width) {
		return &ValidationError{Field: "map.width", Value: formatFloat(c.Map.Width), Reason: "must be positive"}
	}
	if !validDimension(c.Map.Height) {
		return &ValidationError{Field: "map.height", Value: formatFloat(c.Map.Height), Reason: "must be positive"}
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor resolves the Background setting.
func (c Config) BackgroundColor() (Color, error) {
	name := strings.ToLower(strings.TrimSpace(c.Background))
	if strings.HasPrefix(name, "#") {
		rgba, err := parseHexColor(name)
		if err != nil {
			return Color{}, &ValidationError{Field: "background", Value: c.Background, Reason: err.Error()}
		}
		return colorFromStd(rgba), nil
	}
	if rgba, ok := colornames.Map[name]; ok {
		return colorFromStd(rgba), nil
	}
	return Color{}, &ValidationError{Field: "background", Value: c.Background, Reason: "unknown color name"}
}

// Level resolves the LogLevel setting. An empty value means info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, &ValidationError{Field: "log_level", Value: c.LogLevel, Reason: "unknown level"}
	}
	return lvl, nil
}

// NewMap creates a map with the configured default size.
func (c Config) NewMap(project Project, name, path string) *Map {
	return NewMapSized(project, name, path, c.Map.Width, c.Map.Height)
}

func parseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
