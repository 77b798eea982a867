// Package editor is the state machine behind the facenox photo editor.
//
// # Overview
//
// An edit session is a sequence of immutable EditState values. Each user
// action is an Intent; Reduce turns the current state and an intent into
// the next state. Adjustments (brightness, contrast, saturation) and the
// filter chain are non-destructive: they are folded into a single 4x5
// ColorMatrix at render time by BuildColorMatrix.
//
// History-producing intents (filters, committed strokes, committed crops,
// reset) append a Snapshot to a bounded history of MaxHistory entries.
// Undo and Redo move through it; a new entry after an undo drops the redo
// branch.
//
// # Quick Start
//
//	s := editor.NewSession(editor.NewEditState("", img),
//		editor.WithProcessor(renderer),
//		editor.WithFaceDetector(detector),
//	)
//	defer s.Close()
//
//	s.Dispatch(editor.ApplyFilter{Filter: editor.FilterSepia})
//	s.Dispatch(editor.UpdateBrightness{Value: 0.2})
//	m := s.ColorMatrix()
//
// # Sessions
//
// A Session is the only writer of its state. Dispatch applies intents one
// at a time and publishes every resulting state; State and Subscribe give
// readers consistent values. Face detection, cropping and saving run on
// collaborator goroutines and report back through intents, so the state
// never blocks on them. One-shot UI events arrive on Effects.
//
// # Coordinate System
//
// Rectangles, points and face boxes are in image pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package editor

// Version information
const (
	// Version is the current version of the editor core
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
