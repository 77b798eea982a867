// Package config loads editor settings from TOML or YAML files and the
// environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/imageio"
)

// Config is the complete editor configuration.
type Config struct {
	Editor     EditorConfig     `toml:"editor" yaml:"editor"`
	Output     OutputConfig     `toml:"output" yaml:"output"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Processing ProcessingConfig `toml:"processing" yaml:"processing"`
	Detection  DetectionConfig  `toml:"detection" yaml:"detection"`
}

// EditorConfig holds the initial brush settings of a new session.
type EditorConfig struct {
	BrushSize  float64 `toml:"brush_size" yaml:"brush_size"`
	BrushColor string  `toml:"brush_color" yaml:"brush_color"`
}

// OutputConfig controls rendered output files.
type OutputConfig struct {
	Dir     string `toml:"dir" yaml:"dir"`
	Format  string `toml:"format" yaml:"format"`
	Quality int    `toml:"quality" yaml:"quality"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ProcessingConfig tunes the processing pipeline.
type ProcessingConfig struct {
	StepDelayMs int `toml:"step_delay_ms" yaml:"step_delay_ms"`
	Workers     int `toml:"workers" yaml:"workers"`
}

// DetectionConfig configures the sidecar face detector.
type DetectionConfig struct {
	SidecarSuffix string `toml:"sidecar_suffix" yaml:"sidecar_suffix"`
	SidecarPath   string `toml:"sidecar_path" yaml:"sidecar_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			BrushSize:  editor.DefaultBrushSize,
			BrushColor: "#000000",
		},
		Output: OutputConfig{
			Dir:     "output",
			Format:  "png",
			Quality: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Detection: DetectionConfig{
			SidecarSuffix: ".faces.json",
			SidecarPath:   "faces",
		},
	}
}

// ApplyEnvOverrides replaces settings with FACENOX_* environment variables
// when they are set.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FACENOX_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("FACENOX_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("FACENOX_OUTPUT_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			c.Output.Quality = q
		}
	}
	if v := os.Getenv("FACENOX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FACENOX_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() imageio.Format {
	f, _ := imageio.ParseFormat(c.Output.Format)
	return f
}

// BrushColor returns the parsed brush color, black when invalid.
func (c *Config) BrushColor() editor.RGBA {
	col, _ := editor.Hex(c.Editor.BrushColor)
	return col
}

// StepDelay returns the processing step delay.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.Processing.StepDelayMs) * time.Millisecond
}

// InitialState returns a new edit state for image with the configured
// brush.
func (c *Config) InitialState(projectID string, image editor.ImageRef) editor.EditState {
	st := editor.NewEditState(projectID, image)
	st = editor.Reduce(st, editor.ChangeBrushSize{Size: c.Editor.BrushSize})
	return editor.Reduce(st, editor.ChangeBrushColor{Color: c.BrushColor()})
}

// NewLogger builds a slog logger writing to w at the configured level
// and format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(c.Logging.Format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	return slog.New(h), nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return l, nil
}
