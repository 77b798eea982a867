package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Session owns one EditState and is its only writer.
//
// Dispatch applies intents strictly one at a time. Every applied intent
// publishes exactly one new state, in application order; State and
// listeners observe immutable values. Long-running work (face detection,
// cropping, saving) runs on collaborator goroutines whose results re-enter
// the session as intents.
type Session struct {
	reducer   Reducer
	logger    *slog.Logger
	now       func() time.Time
	detector  FaceDetector
	processor Processor
	saver     SessionSaver

	mu        sync.Mutex // serializes writers
	stroke    StrokeRecorder
	listeners map[uint64]func(EditState)
	nextID    uint64
	closed    bool
	drained   bool // effects channel closed

	state   atomic.Pointer[EditState]
	effects chan Effect

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
}

// NewSession starts a session from initial.
func NewSession(initial EditState, opts ...Option) *Session {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger
	if logger == nil {
		logger = Logger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		reducer:   Reducer{Now: options.now},
		logger:    logger.With("project", initial.ProjectID),
		now:       options.now,
		detector:  options.detector,
		processor: options.processor,
		saver:     options.saver,
		listeners: make(map[uint64]func(EditState)),
		effects:   make(chan Effect, options.effectBuffer),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.state.Store(&initial)
	s.logger.Info("session started", "image", initial.Image.URI)
	return s
}

// State returns the latest published state. It is safe to call from any
// goroutine.
func (s *Session) State() EditState {
	return *s.state.Load()
}

// ColorMatrix derives the render transform from the latest state.
func (s *Session) ColorMatrix() ColorMatrix {
	return s.State().ColorMatrix()
}

// Effects returns the channel of one-shot UI effects. It is closed by Close.
func (s *Session) Effects() <-chan Effect {
	return s.effects
}

// Subscribe registers fn to be called with every newly published state.
// Calls happen in application order on the dispatching goroutine while the
// session is locked, so fn must not call Dispatch or unsubscribe. The returned function removes fn.
func (s *Session) Subscribe(fn func(EditState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Dispatch applies in. Drawing intents feed the stroke recorder; intents
// that need a collaborator start it in the background. Dispatch never
// blocks on collaborator work.
func (s *Session) Dispatch(in Intent) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.logger.Debug("intent ignored after close", "intent", fmt.Sprintf("%T", in))
		return
	}

	switch in := in.(type) {
	case StartDrawing:
		s.mu.Lock()
		if s.State().SelectedTool == ToolDraw {
			s.stroke.Start(in.Point)
		}
		s.mu.Unlock()

	case ContinueDrawing:
		s.mu.Lock()
		s.stroke.Continue(in.Point)
		s.mu.Unlock()

	case EndDrawing:
		s.mu.Lock()
		if points, ok := s.stroke.End(); ok {
			s.applyLocked(CommitStroke{Points: points})
		}
		s.mu.Unlock()

	case DetectFaces:
		s.startTask(OpDetectFaces, s.detectFaces)

	case ApplyCrop:
		s.startTask(OpCrop, s.applyCrop)

	case CutFaces:
		s.startTask(OpCutFaces, s.cutFaces)

	case Save:
		s.startTask(OpSave, s.save)

	case Export:
		s.emit(NavigateToProcessing{ProjectID: s.outputID("export"), Destination: DestinationExport})

	case Share:
		s.emit(NavigateToProcessing{ProjectID: s.outputID("share"), Destination: DestinationShare})

	default:
		s.mu.Lock()
		s.applyLocked(in)
		s.mu.Unlock()
	}
}

// Close cancels in-flight collaborator work, waits for it to settle, and
// closes the effect channel. Intents dispatched after Close are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.tasks.Wait()

	s.mu.Lock()
	s.drained = true
	close(s.effects)
	s.mu.Unlock()
	s.logger.Info("session closed")
}

// applyLocked reduces in against the current state and publishes the
// result. s.mu must be held.
func (s *Session) applyLocked(in Intent) EditState {
	prev := s.State()
	next := s.reducer.Reduce(prev, in)
	s.state.Store(&next)

	s.logger.Debug("intent applied",
		"intent", fmt.Sprintf("%T", in),
		"history", len(next.History),
		"index", next.HistoryIndex,
	)

	for _, fn := range s.listeners {
		fn(next)
	}
	return next
}

// finish applies the result of a collaborator task. Results are accepted
// after Close so in-flight flags are always cleared.
func (s *Session) finish(in Intent) {
	s.mu.Lock()
	s.applyLocked(in)
	s.mu.Unlock()
}

func (s *Session) emit(e Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drained {
		return
	}
	select {
	case s.effects <- e:
	default:
		s.logger.Warn("effect dropped", "effect", fmt.Sprintf("%T", e))
	}
}

func (s *Session) outputID(prefix string) string {
	if id := s.State().ProjectID; id != "" {
		return id
	}
	return fmt.Sprintf("%s_%d", prefix, s.now().UnixMilli())
}

// taskFunc runs a collaborator operation against the state at start time.
// It returns the intent that records the result and an optional effect that
// is emitted once the result is published.
type taskFunc func(ctx context.Context, st EditState) (Intent, Effect, error)

// busy reports whether op is already running in st.
func busy(st EditState, op Operation) bool {
	switch op {
	case OpDetectFaces:
		return st.DetectingFaces
	case OpSave:
		return st.Saving
	default:
		return st.Processing
	}
}

func (s *Session) startTask(op Operation, run taskFunc) {
	s.mu.Lock()
	if s.closed || busy(s.State(), op) {
		s.mu.Unlock()
		return
	}
	st := s.applyLocked(OperationStarted{Op: op})
	s.tasks.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.tasks.Done()

		result, effect, err := run(s.ctx, st)
		switch {
		case err == nil:
			s.finish(result)
			if effect != nil {
				s.emit(effect)
			}
		case errors.Is(err, context.Canceled) || s.ctx.Err() != nil:
			s.logger.Debug("operation cancelled", "op", op)
			s.finish(OperationFinished{Op: op})
		default:
			s.logger.Warn("operation failed", "op", op, "err", err)
			text := fmt.Sprintf("Failed to %s: %v", opVerb(op), err)
			s.finish(OperationFailed{Op: op, Message: text})
			s.emit(ShowError{Text: text})
		}
	}()
}

func opVerb(op Operation) string {
	switch op {
	case OpDetectFaces:
		return "detect faces"
	case OpCrop:
		return "apply crop"
	case OpCutFaces:
		return "cut faces"
	case OpSave:
		return "save"
	default:
		return "load image"
	}
}

func (s *Session) detectFaces(ctx context.Context, st EditState) (Intent, Effect, error) {
	var faces []Face
	if s.detector != nil {
		var err error
		faces, err = s.detector.DetectFaces(ctx, st.Image)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(faces) == 0 {
		return FacesDetected{}, ShowMessage{Text: "No faces detected"}, nil
	}
	return FacesDetected{Faces: faces}, ShowMessage{Text: fmt.Sprintf("%d face(s) detected", len(faces))}, nil
}

func (s *Session) applyCrop(ctx context.Context, st EditState) (Intent, Effect, error) {
	if st.CropRect == nil {
		return OperationFinished{Op: OpCrop}, nil, nil
	}
	if s.processor == nil {
		return nil, nil, ErrUnavailable
	}
	img, err := s.processor.Crop(ctx, st.Image, *st.CropRect)
	if err != nil {
		return nil, nil, err
	}
	return CropCommitted{Image: img}, ShowMessage{Text: "Crop applied"}, nil
}

func (s *Session) cutFaces(ctx context.Context, st EditState) (Intent, Effect, error) {
	if len(st.Faces) == 0 {
		return OperationFinished{Op: OpCutFaces}, ShowMessage{Text: "No faces to cut"}, nil
	}
	if s.processor == nil {
		return nil, nil, ErrUnavailable
	}
	img, err := s.processor.CutFaces(ctx, st.Image, st.Faces)
	if err != nil {
		return nil, nil, err
	}
	return FacesCutOut{Image: img}, ShowMessage{Text: "Faces cut successfully"}, nil
}

func (s *Session) save(ctx context.Context, st EditState) (Intent, Effect, error) {
	id := st.ProjectID
	if id == "" {
		id = fmt.Sprintf("project_%d", s.now().UnixMilli())
	}

	if s.saver != nil {
		err := s.saver.SaveSession(ctx, SavedSession{
			ProjectID: id,
			Snapshot:  st.Snapshot(s.now()),
			FacesCut:  st.FacesCut,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	s.logger.Info("session saved", "project_id", id)
	return SessionSaved{ProjectID: id}, NavigateToProcessing{ProjectID: id, Destination: DestinationSave}, nil
}
