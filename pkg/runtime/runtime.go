// Package runtime provides the entry points called by compiler-emitted code.
// Decorator bindings, construction, and reflection lookups all go through the
// installed registry and dispatcher, which default to the process-wide ones.
package runtime

import (
	"sync"

	"github.com/jymfony/scriba/runtime/construct"
	"github.com/jymfony/scriba/runtime/reflection"
)

var (
	mu         sync.RWMutex
	registry   *reflection.Registry
	dispatcher *construct.Dispatcher
)

// Install replaces the registry and dispatcher used by this package. A nil
// argument restores the corresponding process-wide default.
func Install(reg *reflection.Registry, d *construct.Dispatcher) {
	mu.Lock()
	defer mu.Unlock()
	registry = reg
	dispatcher = d
}

// Registry returns the installed registry.
func Registry() *reflection.Registry {
	mu.RLock()
	defer mu.RUnlock()
	if registry != nil {
		return registry
	}
	return reflection.Default()
}

// Dispatcher returns the installed dispatcher.
func Dispatcher() *construct.Dispatcher {
	mu.RLock()
	defer mu.RUnlock()
	if dispatcher != nil {
		return dispatcher
	}
	return construct.Default()
}

// Reflect returns the reflection decorator for a class, or for one of its
// members when a member index is given.
// Emitted for: every class and member decorator site.
func Reflect(id reflection.ClassID, memberIndex ...int) reflection.Decorator {
	if len(memberIndex) > 0 {
		return Registry().BindMember(id, memberIndex[0])
	}
	return Registry().Bind(id)
}

// Construct builds an instance and applies its construction hooks.
// Emitted for: every instantiation of a compiled class.
func Construct(ctor construct.Constructor, args ...any) (any, error) {
	return Dispatcher().Construct(ctor, args...)
}

// GetReflectionData returns the record for a class, an instance, a wrapped
// instance, or a class id.
func GetReflectionData(v any) (*reflection.Record, bool) {
	return Registry().Lookup(v)
}

// Parameters returns the reconstructed parameters of a member.
func Parameters(id reflection.ClassID, memberIndex int) []reflection.Parameter {
	return Registry().ResolveParameters(id, memberIndex)
}

// Docblock returns the doc comment of a member.
func Docblock(id reflection.ClassID, memberIndex int) (string, bool) {
	return Registry().ResolveDocblock(id, memberIndex)
}
