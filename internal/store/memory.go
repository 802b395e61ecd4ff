package store

import (
	"context"
	"sync"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// MemoryStore implements Store with an in-memory map. Used in tests and
// when the server runs without a database path.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*model.CTRLProject
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*model.CTRLProject)}
}

func (s *MemoryStore) SaveProject(_ context.Context, p *model.CTRLProject) error {
	clone, err := p.Clone()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = clone
	return nil
}

func (s *MemoryStore) LoadProject(_ context.Context, id string) (*model.CTRLProject, error) {
	s.mu.RLock()
	p, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone()
}

func (s *MemoryStore) LatestProject(_ context.Context) (*model.CTRLProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *model.CTRLProject
	for _, p := range s.projects {
		if latest == nil || p.Modified.After(latest.Modified) {
			latest = p
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest.Clone()
}

func (s *MemoryStore) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}
