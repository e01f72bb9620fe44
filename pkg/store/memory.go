package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// MemoryStore keeps documents in process memory. Stored data is deep-copied
// on the way in and out so callers cannot alias it.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]mindmap.Data
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]mindmap.Data)}
}

func (s *MemoryStore) Load(ctx context.Context, name string) (*mindmap.Data, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[name]
	if !ok {
		return nil, nil
	}
	cp := copyData(data)
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, name string, data mindmap.Data) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = copyData(data)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close() error { return nil }

func copyData(d mindmap.Data) mindmap.Data {
	out := d
	out.Nodes = append([]mindmap.Node(nil), d.Nodes...)
	out.Links = append([]mindmap.Link(nil), d.Links...)
	if d.View != nil {
		v := *d.View
		out.View = &v
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
