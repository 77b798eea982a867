package editor

import (
	"log/slog"
	"time"
)

// Option configures a Session during creation.
// Use functional options to inject collaborators.
//
// Example:
//
//	// Bare session: adjustments, filters, drawing and history only
//	s := editor.NewSession(editor.NewEditState("", img))
//
//	// With collaborators
//	s := editor.NewSession(state,
//	    editor.WithFaceDetector(detector),
//	    editor.WithProcessor(renderer),
//	)
type Option func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	logger       *slog.Logger
	now          func() time.Time
	detector     FaceDetector
	processor    Processor
	saver        SessionSaver
	effectBuffer int
}

// defaultOptions returns the default session options.
func defaultOptions() sessionOptions {
	return sessionOptions{
		logger:       nil, // Will be set to Logger() if nil
		now:          time.Now,
		effectBuffer: 16,
	}
}

// WithLogger sets the session's logger instead of the package default.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = l
	}
}

// WithClock sets the time source used for snapshot timestamps and
// generated project ids.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithFaceDetector sets the collaborator used for DetectFaces.
// Without one, detection completes with no faces.
func WithFaceDetector(d FaceDetector) Option {
	return func(o *sessionOptions) {
		o.detector = d
	}
}

// WithProcessor sets the collaborator used for ApplyCrop and CutFaces.
func WithProcessor(p Processor) Option {
	return func(o *sessionOptions) {
		o.processor = p
	}
}

// WithSessionSaver sets the collaborator that persists sessions on Save.
func WithSessionSaver(s SessionSaver) Option {
	return func(o *sessionOptions) {
		o.saver = s
	}
}

// WithEffectBuffer sets the capacity of the effect channel. Effects that do
// not fit are dropped and logged.
func WithEffectBuffer(n int) Option {
	return func(o *sessionOptions) {
		if n >= 0 {
			o.effectBuffer = n
		}
	}
}
