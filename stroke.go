package editor

// StrokeRecorder accumulates pointer samples for the stroke in progress.
// Points are kept outside EditState until the stroke ends so intermediate
// samples never reach the undo history.
//
// StrokeRecorder is not safe for concurrent use.
type StrokeRecorder struct {
	points []Point
	active bool
}

// Start begins a new stroke at p, discarding any unfinished stroke.
func (r *StrokeRecorder) Start(p Point) {
	r.points = append(r.points[:0:0], p)
	r.active = true
}

// Continue appends p to the stroke in progress. It is ignored when no
// stroke has been started.
func (r *StrokeRecorder) Continue(p Point) {
	if !r.active {
		return
	}
	r.points = append(r.points, p)
}

// Active reports whether a stroke is in progress.
func (r *StrokeRecorder) Active() bool {
	return r.active
}

// Len returns the number of points in the stroke in progress.
func (r *StrokeRecorder) Len() int {
	return len(r.points)
}

// End finishes the stroke. It returns the accumulated points and true when
// the stroke has at least two points; a single tap yields nothing.
func (r *StrokeRecorder) End() ([]Point, bool) {
	points := r.points
	r.points = nil
	r.active = false
	if len(points) < 2 {
		return nil, false
	}
	return points, true
}

// Cancel drops the stroke in progress.
func (r *StrokeRecorder) Cancel() {
	r.points = nil
	r.active = false
}
