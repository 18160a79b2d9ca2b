package sources

import (
	"fmt"
	"sort"
	"sync"
)

// Source identifies where a manga was downloaded from. Only the identity is
// needed to locate downloads on disk.
type Source interface {
	ID() int64
	Name() string
}

type source struct {
	id   int64
	name string
}

func (s source) ID() int64    { return s.id }
func (s source) Name() string { return s.name }

func New(id int64, name string) Source {
	return source{id: id, name: name}
}

// StubSource stands in for a source id that is no longer installed.
type StubSource struct {
	id int64
}

func (s StubSource) ID() int64 { return s.id }

func (s StubSource) Name() string {
	return fmt.Sprintf("Unknown (%d)", s.id)
}

const (
	LocalSourceID    int64 = 0
	MangaDexSourceID int64 = 2499283573021220255
)

var (
	Local    = New(LocalSourceID, "Local source")
	MangaDex = New(MangaDexSourceID, "MangaDex")
)

// Manager resolves source ids. It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	sources map[int64]Source
}

func NewManager(extra ...Source) *Manager {
	m := &Manager{sources: make(map[int64]Source)}
	m.Register(Local)
	m.Register(MangaDex)
	for _, s := range extra {
		m.Register(s)
	}
	return m
}

func (m *Manager) Register(s Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[s.ID()] = s
}

func (m *Manager) Get(id int64) (Source, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sources[id]
	return s, ok
}

// GetOrStub never fails: unknown ids resolve to a StubSource.
func (m *Manager) GetOrStub(id int64) Source {
	if s, ok := m.Get(id); ok {
		return s
	}
	return StubSource{id: id}
}

// All returns registered sources ordered by name.
func (m *Manager) All() []Source {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]Source, 0, len(m.sources))
	for _, s := range m.sources {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}
