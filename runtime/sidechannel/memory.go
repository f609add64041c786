package sidechannel

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jymfony/scriba/runtime/reflection"
)

// Memory is an in-process provider table.
type Memory struct {
	mu      sync.RWMutex
	classes map[reflection.ClassID]*reflection.ClassData
}

var _ Backend = (*Memory)(nil)

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{classes: make(map[reflection.ClassID]*reflection.ClassData)}
}

// NewMemoryFromTable creates an in-memory provider holding the table's classes.
func NewMemoryFromTable(t *Table) *Memory {
	m := NewMemory()
	if t == nil {
		return m
	}
	for id, data := range t.Classes {
		m.classes[id] = data
	}
	return m
}

// ReflectionData returns the stored data for id.
func (m *Memory) ReflectionData(id reflection.ClassID) (*reflection.ClassData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.classes[id]
	return data, ok
}

// Put stores data for id, replacing any previous entry.
func (m *Memory) Put(_ context.Context, id reflection.ClassID, data *reflection.ClassData) error {
	if data == nil {
		return fmt.Errorf("class data cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes[id] = data
	return nil
}

// Delete removes id.
func (m *Memory) Delete(id reflection.ClassID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.classes, id)
}

// ClassIDs returns the stored ids in sorted order.
func (m *Memory) ClassIDs(context.Context) ([]reflection.ClassID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]reflection.ClassID, 0, len(m.classes))
	for id := range m.classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// Table snapshots the provider into a side-channel table.
func (m *Memory) Table() *Table {
	t := NewTable()

	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, data := range m.classes {
		t.Classes[id] = data
	}
	return t
}
