package recipe

import (
	"context"
	"errors"

	editor "github.com/facenox/editor"
)

// Apply dispatches the recipe's intents to s in order. After an intent
// that starts background work it waits for that work to settle, so later
// steps see its result. A collaborator failure stops the replay; the
// error is dismissed from the session and returned.
func Apply(ctx context.Context, s *editor.Session, r *Recipe) error {
	intents, err := r.Intents()
	if err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	unsubscribe := s.Subscribe(func(editor.EditState) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for _, in := range intents {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Dispatch(in)
		if !async(in) {
			continue
		}
		if err := waitIdle(ctx, s, changed); err != nil {
			return err
		}
		if msg := s.State().Err; msg != "" {
			s.Dispatch(editor.DismissError{})
			return errors.New(msg)
		}
	}
	return nil
}

func async(in editor.Intent) bool {
	switch in.(type) {
	case editor.ApplyCrop, editor.DetectFaces, editor.CutFaces, editor.Save:
		return true
	}
	return false
}

func idle(st editor.EditState) bool {
	return !st.Processing && !st.DetectingFaces && !st.Saving
}

func waitIdle(ctx context.Context, s *editor.Session, changed <-chan struct{}) error {
	for !idle(s.State()) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
	return nil
}
