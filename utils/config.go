package utils

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-gol-torus/surface"
)

// Recognized configuration keys. Any other key passed to Merge is ignored.
const (
	KeyCanvasID  = "canvasId"
	KeyWidth     = "width"
	KeyHeight    = "height"
	KeyCellWidth = "cellWidth"
	KeyCellColor = "cellColor"
	KeyFPS       = "fps"
)

var recognizedKeys = map[string]struct{}{
	KeyCanvasID:  {},
	KeyWidth:     {},
	KeyHeight:    {},
	KeyCellWidth: {},
	KeyCellColor: {},
	KeyFPS:       {},
}

// pixelKeys hold whole pixel counts.
var pixelKeys = map[string]struct{}{
	KeyWidth:     {},
	KeyHeight:    {},
	KeyCellWidth: {},
}

// Config holds the configuration of a single game
type Config struct {
	CanvasID  string  `json:"canvasId" yaml:"canvasId"`
	Width     int     `json:"width" yaml:"width"`
	Height    int     `json:"height" yaml:"height"`
	CellWidth int     `json:"cellWidth" yaml:"cellWidth"`
	CellColor string  `json:"cellColor" yaml:"cellColor"`
	FPS       float64 `json:"fps" yaml:"fps"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		CanvasID:  "gol",
		Width:     300,
		Height:    200,
		CellWidth: 20,
		CellColor: "black",
		FPS:       15,
	}
}

// Merge returns a copy of c with the recognized keys of partial applied.
// Unrecognized keys are silently ignored.
func (c Config) Merge(partial map[string]any) (Config, error) {
	known := make(map[string]any, len(partial))
	for k, v := range partial {
		if _, ok := recognizedKeys[k]; !ok {
			continue
		}
		if _, ok := pixelKeys[k]; ok {
			if err := checkWholeNumber(k, v); err != nil {
				return c, err
			}
		}
		known[k] = v
	}
	if len(known) == 0 {
		return c, nil
	}

	data, err := yaml.Marshal(known)
	if err != nil {
		return c, &ConfigurationError{Reason: "unencodable options", Err: err}
	}

	merged := c
	if err = yaml.Unmarshal(data, &merged); err != nil {
		return c, &ConfigurationError{Reason: "invalid option value", Err: err}
	}
	return merged, nil
}

// checkWholeNumber rejects anything but an integral number for key. Whole
// floats pass, as decoded JSON yields float64.
func checkWholeNumber(key string, v any) error {
	var f float64
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("%s must be an integer, got %T", key, v)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return &ConfigurationError{Reason: fmt.Sprintf("%s must be an integer, got %v", key, v)}
	}
	return nil
}

// Validate checks that the configuration can produce a non-empty grid
func (c Config) Validate() error {
	switch {
	case c.CanvasID == "":
		return &ConfigurationError{Reason: "canvasId must not be empty"}
	case c.CellWidth <= 0:
		return &ConfigurationError{Reason: "cellWidth must be positive"}
	case c.Width < c.CellWidth || c.Height < c.CellWidth:
		return &ConfigurationError{Reason: "width and height must hold at least one cell"}
	case !(c.FPS > 0) || math.IsInf(c.FPS, 0):
		return &ConfigurationError{Reason: "fps must be a positive finite number"}
	}
	if _, err := surface.ParseColor(c.CellColor); err != nil {
		return &ConfigurationError{Reason: "invalid cellColor", Err: err}
	}
	return nil
}

// Rows returns the number of grid rows that fit the configured height
func (c Config) Rows() int {
	return c.Height / c.CellWidth
}

// Cols returns the number of grid columns that fit the configured width
func (c Config) Cols() int {
	return c.Width / c.CellWidth
}

// FrameInterval returns the delay between two frames
func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.FPS)
}

// AppConfig holds the game configuration plus the settings of the terminal
// front end
type AppConfig struct {
	Game                Config `json:"game" yaml:"game"`
	AutoRestart         bool   `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int    `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	MaxGenerations      int    `json:"max_generations" yaml:"max_generations"`
	Seed                int64  `json:"seed" yaml:"seed"`
	TelemetryPath       string `json:"telemetry_path" yaml:"telemetry_path"`
	LogPath             string `json:"log_path" yaml:"log_path"`
	PixelsPerColumn     int    `json:"pixels_per_column" yaml:"pixels_per_column"`
	PixelsPerRow        int    `json:"pixels_per_row" yaml:"pixels_per_row"`
}

// DefaultAppConfig returns sensible defaults
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Game:                DefaultConfig(),
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      0,
		PixelsPerColumn:     surface.DefaultPixelsPerColumn,
		PixelsPerRow:        surface.DefaultPixelsPerRow,
	}
}

// LoadConfig loads configuration from a YAML (or JSON) file on top of the
// defaults
func LoadConfig(filename string) (AppConfig, error) {
	config := DefaultAppConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}
