package project

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	editor "github.com/facenox/editor"
)

// SessionStore keeps the last saved editor snapshot per project.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]editor.Snapshot
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]editor.Snapshot)}
}

// Save stores snap for projectID, replacing any earlier snapshot.
func (s *SessionStore) Save(projectID string, snap editor.Snapshot) {
	s.mu.Lock()
	s.sessions[projectID] = snap
	s.mu.Unlock()
}

// Get returns the snapshot saved for projectID.
func (s *SessionStore) Get(projectID string) (editor.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[projectID]
	return snap, ok
}

// Clear forgets the snapshot for projectID.
func (s *SessionStore) Clear(projectID string) {
	s.mu.Lock()
	delete(s.sessions, projectID)
	s.mu.Unlock()
}

// Saver records saved editor sessions in a SessionStore and keeps the
// matching dashboard project up to date.
type Saver struct {
	Projects *Store
	Sessions *SessionStore
	Logger   *slog.Logger
}

var _ editor.SessionSaver = (*Saver)(nil)

// SaveSession implements editor.SessionSaver.
func (s *Saver) SaveSession(ctx context.Context, saved editor.SavedSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if saved.ProjectID == "" {
		return fmt.Errorf("project: save session: empty project id")
	}

	s.Sessions.Save(saved.ProjectID, saved.Snapshot)

	at := saved.Snapshot.Timestamp
	p, err := s.Projects.Get(saved.ProjectID)
	if err != nil {
		p = Project{
			ID:        saved.ProjectID,
			Name:      displayName(saved.ProjectID, saved.Snapshot.Image.URI),
			CreatedAt: at,
			Type:      TypeBasicEdit,
		}
	}
	p.ImageURI = saved.Snapshot.Image.URI
	p.ModifiedAt = at
	switch {
	case saved.FacesCut:
		p.Type = TypeFaceCut
	case p.Type == TypeFaceCut:
		// The cut-out was undone before this save.
		p.Type = TypeBasicEdit
	}
	s.Projects.Upsert(p)

	s.logger().Info("project saved", "id", p.ID, "type", p.Type)
	return nil
}

// Open returns the initial editor state for a saved project.
func (s *Saver) Open(projectID string) (editor.EditState, error) {
	snap, ok := s.Sessions.Get(projectID)
	if !ok {
		return editor.EditState{}, fmt.Errorf("project: open %s: %w", projectID, ErrNotFound)
	}
	return editor.RestoreState(projectID, snap), nil
}

// Delete removes the project and its saved session.
func (s *Saver) Delete(projectID string) {
	s.Projects.Delete(projectID)
	s.Sessions.Clear(projectID)
}

func (s *Saver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return editor.Logger()
}

func displayName(id, uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		uri = uri[i+3:]
	}
	if base := path.Base(uri); base != "." && base != "/" && base != "" {
		return strings.TrimSuffix(base, path.Ext(base))
	}
	return id
}
