package metacache

import (
	"maps"
	"slices"
	"sync"
)

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

func (m *Memory) Get(repository string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[repository]
	return rec, ok
}

func (m *Memory) Put(repository string, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[repository] = rec
	return nil
}

func (m *Memory) Delete(repository string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, repository)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*Record)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.records))
}

func (m *Memory) Close() error {
	return nil
}
