package editor

import (
	"context"
	"errors"
)

// ErrUnavailable is returned for operations whose collaborator was not
// configured on the session.
var ErrUnavailable = errors.New("editor: collaborator not configured")

// FaceDetector finds faces in an image. Implementations may return an empty
// slice; confidences are stored as reported.
type FaceDetector interface {
	DetectFaces(ctx context.Context, img ImageRef) ([]Face, error)
}

// Processor performs destructive image operations and returns a reference
// to the resulting image.
type Processor interface {
	Crop(ctx context.Context, img ImageRef, rect Rect) (ImageRef, error)
	CutFaces(ctx context.Context, img ImageRef, faces []Face) (ImageRef, error)
}

// SavedSession is what a session hands to its SessionSaver on Save.
type SavedSession struct {
	ProjectID string
	Snapshot  Snapshot
	// FacesCut reports whether the saved image is a face cut-out.
	FacesCut  bool
}

// SessionSaver persists a session so that it can be reopened by project id.
type SessionSaver interface {
	SaveSession(ctx context.Context, saved SavedSession) error
}
