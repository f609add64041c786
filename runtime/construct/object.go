package construct

import (
	"sync"

	"github.com/jymfony/scriba/runtime/symbol"
)

// ClassKey is the well-known key under which a Wrapper exposes the object it
// wraps.
var ClassKey = symbol.For("jymfony.namespace.class")

// PropertyDescriptor describes one own property.
type PropertyDescriptor struct {
	Value        any
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Object is the structural protocol of instances: keyed properties, an
// extension prototype, and an extensibility flag. Keys are strings or
// *symbol.Symbol values.
type Object interface {
	Get(key any) (any, bool)
	Set(key, value any) bool
	Has(key any) bool
	Delete(key any) bool
	OwnKeys() []any
	OwnPropertyDescriptor(key any) (PropertyDescriptor, bool)
	DefineProperty(key any, desc PropertyDescriptor) bool
	Prototype() Object
	SetPrototype(proto Object) bool
	IsExtensible() bool
	PreventExtensions() bool
}

// Base is an ordinary Object. Embed it in instance types to give them
// structural behavior. The zero value is an empty, extensible object.
type Base struct {
	mu            sync.RWMutex
	props         map[any]*PropertyDescriptor
	keys          []any
	proto         Object
	nonExtensible bool
}

var _ Object = (*Base)(nil)

// Get reads key from the object or its prototype chain.
func (b *Base) Get(key any) (any, bool) {
	b.mu.RLock()
	desc, ok := b.props[key]
	proto := b.proto
	b.mu.RUnlock()

	if ok {
		return desc.Value, true
	}
	if proto != nil {
		return proto.Get(key)
	}
	return nil, false
}

// Set writes key. Existing read-only properties and new keys on a
// non-extensible object are rejected.
func (b *Base) Set(key, value any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if desc, ok := b.props[key]; ok {
		if !desc.Writable {
			return false
		}
		desc.Value = value
		return true
	}
	if b.nonExtensible {
		return false
	}

	b.define(key, &PropertyDescriptor{Value: value, Writable: true, Enumerable: true, Configurable: true})
	return true
}

// Has reports whether key exists on the object or its prototype chain.
func (b *Base) Has(key any) bool {
	b.mu.RLock()
	_, ok := b.props[key]
	proto := b.proto
	b.mu.RUnlock()

	if ok {
		return true
	}
	return proto != nil && proto.Has(key)
}

// Delete removes a configurable own property.
func (b *Base) Delete(key any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	desc, ok := b.props[key]
	if !ok {
		return true
	}
	if !desc.Configurable {
		return false
	}

	delete(b.props, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys lists own keys in definition order, enumerable or not.
func (b *Base) OwnKeys() []any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]any, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// OwnPropertyDescriptor returns a copy of the own property descriptor.
func (b *Base) OwnPropertyDescriptor(key any) (PropertyDescriptor, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	desc, ok := b.props[key]
	if !ok {
		return PropertyDescriptor{}, false
	}
	return *desc, true
}

// DefineProperty creates or redefines an own property.
func (b *Base) DefineProperty(key any, desc PropertyDescriptor) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.props[key]; ok {
		if !existing.Configurable {
			return false
		}
		*existing = desc
		return true
	}
	if b.nonExtensible {
		return false
	}

	d := desc
	b.define(key, &d)
	return true
}

func (b *Base) define(key any, desc *PropertyDescriptor) {
	if b.props == nil {
		b.props = make(map[any]*PropertyDescriptor)
	}
	b.props[key] = desc
	b.keys = append(b.keys, key)
}

// Prototype returns the extension prototype, or nil.
func (b *Base) Prototype() Object {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.proto
}

// SetPrototype replaces the extension prototype. Non-extensible objects and
// cycles are rejected.
func (b *Base) SetPrototype(proto Object) bool {
	for p := proto; p != nil; p = p.Prototype() {
		if ob, ok := p.(baser); ok && ob.objectBase() == b {
			return false
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.nonExtensible {
		return false
	}
	b.proto = proto
	return true
}

// baser is satisfied by *Base and by every type embedding it.
type baser interface {
	objectBase() *Base
}

func (b *Base) objectBase() *Base { return b }

// IsExtensible reports whether new properties may be added.
func (b *Base) IsExtensible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.nonExtensible
}

// PreventExtensions makes the object non-extensible.
func (b *Base) PreventExtensions() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nonExtensible = true
	return true
}
