package config

import (
	"fmt"
	"strings"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/imageio"
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i := range e {
		msgs[i] = e[i].Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every setting and returns ValidationErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Editor.BrushSize < editor.MinBrushSize || c.Editor.BrushSize > editor.MaxBrushSize {
		add("editor.brush_size", "must be between %g and %g", float64(editor.MinBrushSize), float64(editor.MaxBrushSize))
	}
	if _, ok := editor.Hex(c.Editor.BrushColor); !ok {
		add("editor.brush_color", "invalid hex color %q", c.Editor.BrushColor)
	}

	if c.Output.Dir == "" {
		add("output.dir", "must not be empty")
	}
	if f, err := imageio.ParseFormat(c.Output.Format); err != nil {
		add("output.format", "unknown format %q", c.Output.Format)
	} else if !f.Encodable() {
		add("output.format", "%s output is not supported", f)
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		add("output.quality", "must be between 1 and 100")
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		add("logging.format", "must be text or json")
	}

	if c.Processing.StepDelayMs < 0 {
		add("processing.step_delay_ms", "must not be negative")
	}
	if c.Processing.Workers < 0 {
		add("processing.workers", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
