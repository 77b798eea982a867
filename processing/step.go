// Package processing turns a saved, exported or shared edit session into an
// output file, one named step at a time, reporting progress as it goes.
package processing

import (
	"fmt"

	editor "github.com/facenox/editor"
)

// Step is one stage of a processing run.
type Step int

const (
	StepLoading Step = iota
	StepApplyingEdits
	StepApplyingFilters
	StepDetectingFaces
	StepCuttingFaces
	StepRemovingBackground
	StepCompressing
	StepSaving
)

var stepNames = [...]string{
	"loading",
	"applying_edits",
	"applying_filters",
	"detecting_faces",
	"cutting_faces",
	"removing_background",
	"compressing",
	"saving",
}

var stepLabels = [...]string{
	"Loading image...",
	"Applying edits...",
	"Applying filters...",
	"Detecting faces...",
	"Cutting faces...",
	"Removing background...",
	"Optimizing...",
	"Saving...",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// DisplayName returns the title-cased step name, e.g. "Applying Edits".
func (s Step) DisplayName() string {
	return editor.DisplayName(s.String())
}

// Label is the progress text shown while the step runs.
func (s Step) Label() string {
	if s < 0 || int(s) >= len(stepLabels) {
		return s.String()
	}
	return stepLabels[s]
}

// Steps returns the steps run for destination d.
func Steps(d editor.Destination) []Step {
	switch d {
	case editor.DestinationShare:
		return []Step{StepLoading, StepApplyingEdits, StepCompressing}
	default:
		return []Step{StepLoading, StepApplyingEdits, StepApplyingFilters, StepCompressing, StepSaving}
	}
}
