package store

import (
	"context"
	"sync"

	"github.com/matzehuels/recipecard/pkg/template"
)

// MemoryStore keeps templates in memory. The zero value is not usable;
// create one with NewMemoryStore.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]template.Template
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{templates: make(map[string]template.Template)}
}

func (s *MemoryStore) Create(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[t.ID]; ok {
		return conflict(t.ID)
	}
	s.templates[t.ID] = t.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return template.Template{}, notFound(id)
	}
	return t.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.templates[t.ID]
	if !ok {
		return notFound(t.ID)
	}
	s.templates[t.ID] = prepareUpdate(stored, t).Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return notFound(id)
	}
	if err := checkDelete(t); err != nil {
		return err
	}
	delete(s.templates, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]template.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t.Clone())
	}
	sortTemplates(out)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
