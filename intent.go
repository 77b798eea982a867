package editor

// Intent is a discrete request to change edit state. The set of intents is
// closed; see the types below.
type Intent interface {
	intent()
}

// Operation names a long-running collaborator task started by the session.
type Operation int

const (
	OpLoad Operation = iota
	OpDetectFaces
	OpCrop
	OpCutFaces
	OpSave
)

var operationNames = [...]string{
	OpLoad:        "load",
	OpDetectFaces: "detect_faces",
	OpCrop:        "crop",
	OpCutFaces:    "cut_faces",
	OpSave:        "save",
}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return "unknown"
	}
	return operationNames[o]
}

type (
	// SelectTool switches the active tool and shows its panel.
	SelectTool struct{ Tool Tool }
	// ToggleToolPanel flips tool panel visibility.
	ToggleToolPanel struct{}

	// UpdateCropRect sets the pending crop rectangle.
	UpdateCropRect struct{ Rect Rect }
	// ApplyCrop asks the crop collaborator to commit the pending crop.
	ApplyCrop struct{}
	// CancelCrop discards the pending crop rectangle.
	CancelCrop struct{}

	// ApplyFilter appends a filter to the chain unless already present.
	ApplyFilter struct{ Filter FilterType }
	// RemoveFilter removes a filter from the chain if present.
	RemoveFilter struct{ Filter FilterType }

	UpdateBrightness struct{ Value float64 }
	UpdateContrast   struct{ Value float64 }
	UpdateSaturation struct{ Value float64 }

	// StartDrawing begins a stroke at Point.
	StartDrawing struct{ Point Point }
	// ContinueDrawing extends the stroke in progress.
	ContinueDrawing struct{ Point Point }
	// EndDrawing finishes the stroke in progress.
	EndDrawing struct{}
	// CommitStroke appends a stroke made of Points using the current brush.
	CommitStroke struct{ Points []Point }

	ChangeBrushSize  struct{ Size float64 }
	ChangeBrushColor struct{ Color RGBA }

	// DetectFaces asks the face detector to scan the working image.
	DetectFaces struct{}
	// SelectFace turns detected face Index into the pending crop.
	SelectFace struct{ Index int }
	// CutFaces asks the compositing collaborator to cut out detected faces.
	CutFaces struct{}

	Undo            struct{}
	Redo            struct{}
	ResetToOriginal struct{}

	Save   struct{}
	Export struct{}
	Share  struct{}

	DismissError struct{}

	// OperationStarted marks a collaborator task as in flight.
	OperationStarted struct{ Op Operation }
	// OperationFinished marks a task as done without other state changes.
	// Cancelled tasks also finish this way.
	OperationFinished struct{ Op Operation }
	// OperationFailed marks a task as done and records a user-visible error.
	OperationFailed struct {
		Op      Operation
		Message string
	}
	// FacesDetected stores detector output verbatim.
	FacesDetected struct{ Faces []Face }
	// CropCommitted replaces the working image with the cropped result.
	CropCommitted struct{ Image ImageRef }
	// FacesCutOut replaces the working image with the face cut-out result.
	FacesCutOut struct{ Image ImageRef }
	// SessionSaved records the project the session was saved under.
	SessionSaved struct{ ProjectID string }
)

func (SelectTool) intent()        {}
func (ToggleToolPanel) intent()   {}
func (UpdateCropRect) intent()    {}
func (ApplyCrop) intent()         {}
func (CancelCrop) intent()        {}
func (ApplyFilter) intent()       {}
func (RemoveFilter) intent()      {}
func (UpdateBrightness) intent()  {}
func (UpdateContrast) intent()    {}
func (UpdateSaturation) intent()  {}
func (StartDrawing) intent()      {}
func (ContinueDrawing) intent()   {}
func (EndDrawing) intent()        {}
func (CommitStroke) intent()      {}
func (ChangeBrushSize) intent()   {}
func (ChangeBrushColor) intent()  {}
func (DetectFaces) intent()       {}
func (SelectFace) intent()        {}
func (CutFaces) intent()          {}
func (Undo) intent()              {}
func (Redo) intent()              {}
func (ResetToOriginal) intent()   {}
func (Save) intent()              {}
func (Export) intent()            {}
func (Share) intent()             {}
func (DismissError) intent()      {}
func (OperationStarted) intent()  {}
func (OperationFinished) intent() {}
func (OperationFailed) intent()   {}
func (FacesDetected) intent()     {}
func (CropCommitted) intent()     {}
func (FacesCutOut) intent()       {}
func (SessionSaved) intent()      {}
