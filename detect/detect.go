// Package detect provides FaceDetector implementations that do not run a
// model themselves: a fixed list, and detections stored in a JSON sidecar
// file next to the image.
package detect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/imageio"
)

// ErrMalformed is returned when a sidecar is not valid detection JSON.
var ErrMalformed = errors.New("detect: malformed sidecar")

// Static always reports the same faces.
type Static []editor.Face

var _ editor.FaceDetector = Static(nil)

// DetectFaces implements editor.FaceDetector.
func (s Static) DetectFaces(ctx context.Context, _ editor.ImageRef) ([]editor.Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}

// DefaultSuffix is appended to the image path to locate its sidecar.
const DefaultSuffix = ".faces.json"

// Sidecar reads detections from "<image path><Suffix>". The file holds
//
//	{"faces": [{"x": 10, "y": 20, "width": 64, "height": 80, "confidence": 0.93}]}
//
// A missing sidecar means no faces were found.
type Sidecar struct {
	// Suffix defaults to DefaultSuffix.
	Suffix string
	// Path is the gjson path of the detection array. Defaults to "faces".
	Path string
}

var _ editor.FaceDetector = (*Sidecar)(nil)

// DetectFaces implements editor.FaceDetector.
func (s *Sidecar) DetectFaces(ctx context.Context, img editor.ImageRef) ([]editor.Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := imageio.PathFromURI(img.URI)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	data, err := os.ReadFile(path + s.suffix())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("detect: read sidecar: %w", err)
	}
	return s.Parse(data)
}

// Parse extracts faces from sidecar JSON.
func (s *Sidecar) Parse(data []byte) ([]editor.Face, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}
	list := gjson.GetBytes(data, s.path())
	if !list.Exists() {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformed, s.path())
	}

	var (
		faces  []editor.Face
		badErr error
	)
	list.ForEach(func(_, v gjson.Result) bool {
		for _, k := range []string{"x", "y", "width", "height"} {
			if !v.Get(k).Exists() {
				badErr = fmt.Errorf("%w: face %d missing %s", ErrMalformed, len(faces), k)
				return false
			}
		}
		faces = append(faces, editor.Face{
			Rect: editor.R(
				v.Get("x").Float(),
				v.Get("y").Float(),
				v.Get("width").Float(),
				v.Get("height").Float(),
			),
			Confidence: v.Get("confidence").Float(),
		})
		return true
	})
	if badErr != nil {
		return nil, badErr
	}
	return faces, nil
}

func (s *Sidecar) suffix() string {
	if s.Suffix == "" {
		return DefaultSuffix
	}
	return s.Suffix
}

func (s *Sidecar) path() string {
	if p := strings.TrimSpace(s.Path); p != "" {
		return p
	}
	return "faces"
}
