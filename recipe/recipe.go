// Package recipe describes edit sessions as YAML scripts and replays them
// against an editor.Session.
//
// A recipe looks like:
//
//	image: photos/beach.jpg
//	project: beach
//	steps:
//	  - filter: sepia
//	  - brightness: 0.2
//	  - tool: draw
//	  - brush_color: "#ff0000"
//	  - stroke: [[10, 10], [60, 40], [90, 90]]
//	  - detect_faces: true
//	  - select_face: 0
//	  - apply_crop: true
//	  - undo: 1
//
// Every step holds exactly one action.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	editor "github.com/facenox/editor"
)

// ErrInvalid is wrapped by every recipe validation error.
var ErrInvalid = errors.New("recipe: invalid")

// Recipe is a parsed edit script.
type Recipe struct {
	Image   string `yaml:"image"`
	Project string `yaml:"project"`
	Steps   []Step `yaml:"steps"`
}

// Step is one scripted action. Exactly one field is set.
type Step struct {
	Tool         *string      `yaml:"tool,omitempty"`
	Filter       *string      `yaml:"filter,omitempty"`
	RemoveFilter *string      `yaml:"remove_filter,omitempty"`
	Brightness   *float64     `yaml:"brightness,omitempty"`
	Contrast     *float64     `yaml:"contrast,omitempty"`
	Saturation   *float64     `yaml:"saturation,omitempty"`
	BrushSize    *float64     `yaml:"brush_size,omitempty"`
	BrushColor   *string      `yaml:"brush_color,omitempty"`
	Stroke       [][2]float64 `yaml:"stroke,omitempty"`
	Crop         *Rect        `yaml:"crop,omitempty"`
	ApplyCrop    bool         `yaml:"apply_crop,omitempty"`
	CancelCrop   bool         `yaml:"cancel_crop,omitempty"`
	DetectFaces  bool         `yaml:"detect_faces,omitempty"`
	SelectFace   *int         `yaml:"select_face,omitempty"`
	CutFaces     bool         `yaml:"cut_faces,omitempty"`
	Undo         int          `yaml:"undo,omitempty"`
	Redo         int          `yaml:"redo,omitempty"`
	Reset        bool         `yaml:"reset,omitempty"`
}

// Rect is a crop rectangle in image pixels.
type Rect struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Load reads and parses the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a recipe.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := r.Intents(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Intents translates the steps into editor intents in order.
func (r *Recipe) Intents() ([]editor.Intent, error) {
	var out []editor.Intent
	for i, s := range r.Steps {
		in, err := s.intents()
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalid, i+1, err)
		}
		out = append(out, in...)
	}
	return out, nil
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Tool != nil, s.Filter != nil, s.RemoveFilter != nil,
		s.Brightness != nil, s.Contrast != nil, s.Saturation != nil,
		s.BrushSize != nil, s.BrushColor != nil, s.Stroke != nil,
		s.Crop != nil, s.ApplyCrop, s.CancelCrop, s.DetectFaces,
		s.SelectFace != nil, s.CutFaces, s.Undo != 0, s.Redo != 0, s.Reset,
	} {
		if set {
			n++
		}
	}
	return n
}

func (s Step) intents() ([]editor.Intent, error) {
	if n := s.actions(); n != 1 {
		return nil, fmt.Errorf("want exactly one action, got %d", n)
	}

	switch {
	case s.Tool != nil:
		t, ok := editor.ParseTool(*s.Tool)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q", *s.Tool)
		}
		return one(editor.SelectTool{Tool: t})
	case s.Filter != nil:
		f, ok := editor.ParseFilter(*s.Filter)
		if !ok {
			return nil, fmt.Errorf("unknown filter %q", *s.Filter)
		}
		return one(editor.ApplyFilter{Filter: f})
	case s.RemoveFilter != nil:
		f, ok := editor.ParseFilter(*s.RemoveFilter)
		if !ok {
			return nil, fmt.Errorf("unknown filter %q", *s.RemoveFilter)
		}
		return one(editor.RemoveFilter{Filter: f})
	case s.Brightness != nil:
		return one(editor.UpdateBrightness{Value: *s.Brightness})
	case s.Contrast != nil:
		return one(editor.UpdateContrast{Value: *s.Contrast})
	case s.Saturation != nil:
		return one(editor.UpdateSaturation{Value: *s.Saturation})
	case s.BrushSize != nil:
		return one(editor.ChangeBrushSize{Size: *s.BrushSize})
	case s.BrushColor != nil:
		c, ok := editor.Hex(*s.BrushColor)
		if !ok {
			return nil, fmt.Errorf("invalid color %q", *s.BrushColor)
		}
		return one(editor.ChangeBrushColor{Color: c})
	case s.Stroke != nil:
		if len(s.Stroke) == 0 {
			return nil, fmt.Errorf("empty stroke")
		}
		out := []editor.Intent{editor.StartDrawing{Point: editor.Pt(s.Stroke[0][0], s.Stroke[0][1])}}
		for _, p := range s.Stroke[1:] {
			out = append(out, editor.ContinueDrawing{Point: editor.Pt(p[0], p[1])})
		}
		return append(out, editor.EndDrawing{}), nil
	case s.Crop != nil:
		return one(editor.UpdateCropRect{Rect: editor.R(s.Crop.Left, s.Crop.Top, s.Crop.Width, s.Crop.Height)})
	case s.ApplyCrop:
		return one(editor.ApplyCrop{})
	case s.CancelCrop:
		return one(editor.CancelCrop{})
	case s.DetectFaces:
		return one(editor.DetectFaces{})
	case s.SelectFace != nil:
		return one(editor.SelectFace{Index: *s.SelectFace})
	case s.CutFaces:
		return one(editor.CutFaces{})
	case s.Undo != 0:
		return repeat(editor.Undo{}, s.Undo)
	case s.Redo != 0:
		return repeat(editor.Redo{}, s.Redo)
	default:
		return one(editor.ResetToOriginal{})
	}
}

func one(in editor.Intent) ([]editor.Intent, error) {
	return []editor.Intent{in}, nil
}

func repeat(in editor.Intent, n int) ([]editor.Intent, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative count %d", n)
	}
	out := make([]editor.Intent, n)
	for i := range out {
		out[i] = in
	}
	return out, nil
}
