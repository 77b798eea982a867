package editor

import (
	"slices"
	"time"
)

// Edit limits.
const (
	// MaxHistory is the number of snapshots kept for undo/redo.
	MaxHistory = 50

	MinBrushSize     = 1
	MaxBrushSize     = 100
	DefaultBrushSize = 10
)

// ImageRef identifies the working image of a session. URI is opaque to the
// editor; it is interpreted only by collaborators.
type ImageRef struct {
	URI    string
	Width  int
	Height int
}

// Bounds returns the full image rectangle.
func (r ImageRef) Bounds() Rect {
	return Rect{Width: float64(r.Width), Height: float64(r.Height)}
}

// Face is a detected face region with the detector's confidence.
type Face struct {
	Rect       Rect
	Confidence float64
}

// DrawingPath is a committed freehand stroke. Color and StrokeWidth are
// captured when the stroke is committed.
type DrawingPath struct {
	Points      []Point
	Color       RGBA
	StrokeWidth float64
}

// Snapshot is an immutable capture of the edit-affecting fields at one
// point in history.
type Snapshot struct {
	Timestamp  time.Time
	Image      ImageRef
	CropRect   *Rect
	Brightness float64
	Contrast   float64
	Saturation float64
	Filters    []FilterType
	Paths      []DrawingPath
	Faces      []Face
	FacesCut   bool
}

// EditState is the complete state of one edit session.
//
// EditState values are treated as immutable: transitions return a new value
// and never write through slices or pointers shared with their input, so a
// published state can be read concurrently with later transitions.
type EditState struct {
	ProjectID string
	Image     ImageRef

	SelectedTool  Tool
	ShowToolPanel bool

	CropRect   *Rect
	Brightness float64
	Contrast   float64
	Saturation float64
	Filters    []FilterType

	Faces          []Face
	DetectingFaces bool
	// FacesCut is set once the working image is a face cut-out.
	FacesCut       bool

	Paths      []DrawingPath
	BrushSize  float64
	BrushColor RGBA

	History      []Snapshot
	HistoryIndex int

	Processing bool
	Saving     bool
	Err        string
}

// NewEditState returns the initial state for editing image in project.
// projectID may be empty for an unsaved session.
func NewEditState(projectID string, image ImageRef) EditState {
	return EditState{
		ProjectID:     projectID,
		Image:         image,
		SelectedTool:  ToolSelect,
		ShowToolPanel: true,
		BrushSize:     DefaultBrushSize,
		BrushColor:    Black,
		HistoryIndex:  -1,
	}
}

// RestoreState builds an initial state from a previously saved snapshot.
// The restored snapshot becomes the first history entry.
func RestoreState(projectID string, snap Snapshot) EditState {
	s := NewEditState(projectID, snap.Image)
	s = restoreFields(s, snap)
	s.History = []Snapshot{snap}
	s.HistoryIndex = 0
	return s
}

// CanUndo reports whether an earlier snapshot is available.
func (s EditState) CanUndo() bool {
	return s.HistoryIndex > 0
}

// CanRedo reports whether a later snapshot is available.
func (s EditState) CanRedo() bool {
	return s.HistoryIndex < len(s.History)-1
}

// HasFilter reports whether f is in the applied filter chain.
func (s EditState) HasFilter(f FilterType) bool {
	return slices.Contains(s.Filters, f)
}

// Snapshot captures the edit-affecting fields of s.
func (s EditState) Snapshot(at time.Time) Snapshot {
	return Snapshot{
		Timestamp:  at,
		Image:      s.Image,
		CropRect:   s.CropRect,
		Brightness: s.Brightness,
		Contrast:   s.Contrast,
		Saturation: s.Saturation,
		Filters:    s.Filters,
		Paths:      s.Paths,
		Faces:      s.Faces,
		FacesCut:   s.FacesCut,
	}
}

func restoreFields(s EditState, snap Snapshot) EditState {
	s.Image = snap.Image
	s.CropRect = snap.CropRect
	s.Brightness = snap.Brightness
	s.Contrast = snap.Contrast
	s.Saturation = snap.Saturation
	s.Filters = snap.Filters
	s.Paths = snap.Paths
	s.Faces = snap.Faces
	s.FacesCut = snap.FacesCut
	return s
}
