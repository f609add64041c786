// Package symbol provides opaque, identity-compared tokens used as member
// names and well-known property keys.
package symbol

import (
	"fmt"
	"sync"
)

// Symbol is an opaque token. Two symbols are equal only if they are the same
// pointer, regardless of description.
type Symbol struct {
	description string
	key         string
	shared      bool
}

// New creates a fresh, unique symbol.
func New(description string) *Symbol {
	return &Symbol{description: description}
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Symbol)
)

// For returns the process-wide symbol registered under key, creating it on
// first use. Repeated calls with the same key return the same pointer.
func For(key string) *Symbol {
	registryMu.Lock()
	defer registryMu.Unlock()

	if s, ok := registry[key]; ok {
		return s
	}

	s := &Symbol{description: key, key: key, shared: true}
	registry[key] = s
	return s
}

// KeyFor returns the registry key of a shared symbol created by For.
func KeyFor(s *Symbol) (string, bool) {
	if s == nil || !s.shared {
		return "", false
	}
	return s.key, true
}

// Description returns the description given at creation time.
func (s *Symbol) Description() string {
	if s == nil {
		return ""
	}
	return s.description
}

// String formats the symbol as Symbol(description).
func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.Description())
}
