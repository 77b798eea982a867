package project

import (
	"cmp"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrNotFound is returned when no project has the requested id.
var ErrNotFound = errors.New("project: not found")

// Store holds projects keyed by id. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	projects map[string]Project
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{projects: make(map[string]Project)}
}

// Upsert inserts p or replaces the project with the same id.
func (s *Store) Upsert(p Project) {
	s.mu.Lock()
	s.projects[p.ID] = p
	s.mu.Unlock()
}

// Get returns the project with the given id.
func (s *Store) Get(id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

// Delete removes the project with the given id. Deleting an unknown id is
// not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.projects, id)
	s.mu.Unlock()
}

// All returns every project, most recently modified first. Ties are
// ordered by id.
func (s *Store) All() []Project {
	s.mu.RLock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Project) int {
		if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Search returns the projects whose name fuzzily matches query, closest
// match first. An empty query returns All.
func (s *Store) Search(query string) []Project {
	all := s.All()
	if query == "" {
		return all
	}

	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]Project, len(ranks))
	for i, r := range ranks {
		out[i] = all[r.OriginalIndex]
	}
	return out
}

// Stats computes the dashboard counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalProjects: len(s.projects),
		ImagesEdited:  len(s.projects),
	}
	for _, p := range s.projects {
		if p.Type == TypeFaceCut {
			st.FacesCut++
		}
	}
	return st
}
