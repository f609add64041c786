package construct

// Wrapper presents an instance as a callable object. Every structural
// operation is forwarded to the wrapped instance, except that ClassKey
// resolves to the instance itself and is described as a non-enumerable own
// property.
type Wrapper struct {
	target any
}

var (
	_ Object    = (*Wrapper)(nil)
	_ Invokable = (*Wrapper)(nil)
)

// NewWrapper wraps target.
func NewWrapper(target any) *Wrapper {
	return &Wrapper{target: target}
}

// Unwrap returns the wrapped instance.
func (w *Wrapper) Unwrap() any {
	if w == nil {
		return nil
	}
	return w.target
}

// Invoke calls the wrapped instance's invocation handler.
func (w *Wrapper) Invoke(args ...any) (any, error) {
	inv, ok := w.Unwrap().(Invokable)
	if !ok {
		return nil, ErrNotInvokable
	}
	return inv.Invoke(args...)
}

func (w *Wrapper) object() (Object, bool) {
	obj, ok := w.Unwrap().(Object)
	return obj, ok
}

// Get returns the wrapped instance for ClassKey and forwards any other key.
func (w *Wrapper) Get(key any) (any, bool) {
	if key == ClassKey {
		return w.Unwrap(), true
	}
	if obj, ok := w.object(); ok {
		return obj.Get(key)
	}
	return nil, false
}

// Set forwards to the wrapped instance.
func (w *Wrapper) Set(key, value any) bool {
	if obj, ok := w.object(); ok {
		return obj.Set(key, value)
	}
	return false
}

// Has reports ClassKey as present and forwards any other key.
func (w *Wrapper) Has(key any) bool {
	if key == ClassKey {
		return true
	}
	if obj, ok := w.object(); ok {
		return obj.Has(key)
	}
	return false
}

// Delete forwards to the wrapped instance.
func (w *Wrapper) Delete(key any) bool {
	if obj, ok := w.object(); ok {
		return obj.Delete(key)
	}
	return false
}

// OwnKeys forwards to the wrapped instance.
func (w *Wrapper) OwnKeys() []any {
	if obj, ok := w.object(); ok {
		return obj.OwnKeys()
	}
	return []any{}
}

// OwnPropertyDescriptor describes ClassKey as a configurable, non-enumerable
// property holding the wrapped instance, and forwards any other key.
func (w *Wrapper) OwnPropertyDescriptor(key any) (PropertyDescriptor, bool) {
	if key == ClassKey {
		return PropertyDescriptor{Value: w.Unwrap(), Configurable: true}, true
	}
	if obj, ok := w.object(); ok {
		return obj.OwnPropertyDescriptor(key)
	}
	return PropertyDescriptor{}, false
}

// DefineProperty forwards to the wrapped instance.
func (w *Wrapper) DefineProperty(key any, desc PropertyDescriptor) bool {
	if obj, ok := w.object(); ok {
		return obj.DefineProperty(key, desc)
	}
	return false
}

// Prototype forwards to the wrapped instance.
func (w *Wrapper) Prototype() Object {
	if obj, ok := w.object(); ok {
		return obj.Prototype()
	}
	return nil
}

// SetPrototype forwards to the wrapped instance.
func (w *Wrapper) SetPrototype(proto Object) bool {
	if obj, ok := w.object(); ok {
		return obj.SetPrototype(proto)
	}
	return false
}

// IsExtensible forwards to the wrapped instance.
func (w *Wrapper) IsExtensible() bool {
	if obj, ok := w.object(); ok {
		return obj.IsExtensible()
	}
	return false
}

// PreventExtensions forwards to the wrapped instance.
func (w *Wrapper) PreventExtensions() bool {
	if obj, ok := w.object(); ok {
		return obj.PreventExtensions()
	}
	return false
}
