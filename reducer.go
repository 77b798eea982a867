package editor

import (
	"math"
	"slices"
	"time"
)

// Reducer applies intents to edit states. The zero value is ready to use
// and stamps snapshots with time.Now.
type Reducer struct {
	// Now returns the timestamp for new snapshots. Nil means time.Now.
	Now func() time.Time
}

// Reduce applies in to s using the default Reducer.
func Reduce(s EditState, in Intent) EditState {
	return Reducer{}.Reduce(s, in)
}

func (r Reducer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Reduce returns the state that results from applying in to s. It never
// fails: out-of-range values are clamped, and intents that do not apply
// (undo at the oldest entry, removing an absent filter, selecting a face
// that does not exist) return s unchanged. Intents that are handled by the
// session rather than the reducer are also returned unchanged.
func (r Reducer) Reduce(s EditState, in Intent) EditState {
	switch in := in.(type) {
	case SelectTool:
		s.SelectedTool = in.Tool
		s.ShowToolPanel = true
		return s

	case ToggleToolPanel:
		s.ShowToolPanel = !s.ShowToolPanel
		return s

	case UpdateCropRect:
		rect := in.Rect
		s.CropRect = &rect
		return s

	case CancelCrop:
		s.CropRect = nil
		s.SelectedTool = ToolSelect
		return s

	case ApplyFilter:
		if !s.HasFilter(in.Filter) {
			s.Filters = append(slices.Clip(s.Filters), in.Filter)
		}
		return pushHistory(s, r.now())

	case RemoveFilter:
		if i := slices.Index(s.Filters, in.Filter); i >= 0 {
			s.Filters = slices.Delete(slices.Clone(s.Filters), i, i+1)
		}
		return pushHistory(s, r.now())

	case UpdateBrightness:
		s.Brightness = clamp(in.Value, -1, 1)
		return s

	case UpdateContrast:
		s.Contrast = clamp(in.Value, -1, 1)
		return s

	case UpdateSaturation:
		s.Saturation = clamp(in.Value, -1, 1)
		return s

	case ChangeBrushSize:
		s.BrushSize = clamp(in.Size, MinBrushSize, MaxBrushSize)
		return s

	case ChangeBrushColor:
		s.BrushColor = in.Color
		return s

	case CommitStroke:
		if len(in.Points) < 2 {
			return s
		}
		path := DrawingPath{
			Points:      slices.Clone(in.Points),
			Color:       s.BrushColor,
			StrokeWidth: s.BrushSize,
		}
		s.Paths = append(slices.Clip(s.Paths), path)
		return pushHistory(s, r.now())

	case SelectFace:
		if in.Index < 0 || in.Index >= len(s.Faces) {
			return s
		}
		rect := s.Faces[in.Index].Rect
		s.CropRect = &rect
		s.SelectedTool = ToolCrop
		return s

	case Undo:
		if !s.CanUndo() {
			return s
		}
		return restoreHistory(s, max(0, s.HistoryIndex-1))

	case Redo:
		if !s.CanRedo() {
			return s
		}
		return restoreHistory(s, min(len(s.History)-1, s.HistoryIndex+1))

	case ResetToOriginal:
		s.CropRect = nil
		s.Brightness = 0
		s.Contrast = 0
		s.Saturation = 0
		s.Filters = nil
		s.Paths = nil
		return pushHistory(s, r.now())

	case DismissError:
		s.Err = ""
		return s

	case OperationStarted:
		return setBusy(s, in.Op, true)

	case OperationFinished:
		return setBusy(s, in.Op, false)

	case OperationFailed:
		s = setBusy(s, in.Op, false)
		s.Err = in.Message
		return s

	case FacesDetected:
		s.Faces = slices.Clone(in.Faces)
		s.DetectingFaces = false
		return s

	case CropCommitted:
		if s.CropRect != nil {
			s.Faces = cropFaces(s.Faces, *s.CropRect, s.Image.Bounds(), in.Image.Bounds())
		}
		s.Image = in.Image
		s.CropRect = nil
		s.SelectedTool = ToolSelect
		s.ShowToolPanel = true
		s.Processing = false
		return pushHistory(s, r.now())

	case FacesCutOut:
		s.Image = in.Image
		s.FacesCut = true
		s.Processing = false
		return pushHistory(s, r.now())

	case SessionSaved:
		s.ProjectID = in.ProjectID
		s.Saving = false
		return s

	default:
		return s
	}
}

func setBusy(s EditState, op Operation, busy bool) EditState {
	switch op {
	case OpDetectFaces:
		s.DetectingFaces = busy
	case OpSave:
		s.Saving = busy
	default:
		s.Processing = busy
	}
	return s
}

// cropFaces moves faces into the coordinate space of an image cropped to
// crop. Faces are clipped to the new bounds; faces left without area are
// dropped.
func cropFaces(faces []Face, crop, oldBounds, newBounds Rect) []Face {
	if !oldBounds.Empty() {
		crop = crop.Intersect(oldBounds)
	}
	// Pixel crops start at the floor of the requested origin.
	origin := Pt(math.Floor(crop.Left), math.Floor(crop.Top))
	if newBounds.Empty() {
		newBounds = Rect{Width: crop.Right() - origin.X, Height: crop.Bottom() - origin.Y}
	}

	var out []Face
	for _, f := range faces {
		r := f.Rect
		r.Left -= origin.X
		r.Top -= origin.Y
		r = r.Intersect(newBounds)
		if r.Empty() {
			continue
		}
		out = append(out, Face{Rect: r, Confidence: f.Confidence})
	}
	return out
}

// clamp limits v to [lo, hi]. NaN is treated as zero.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
