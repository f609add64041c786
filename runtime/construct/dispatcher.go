package construct

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNilConstructor is returned when Construct is called without a constructor.
	ErrNilConstructor = errors.New("nil constructor")

	// ErrNotInvokable is returned when a Wrapper around a non-invokable value is called.
	ErrNotInvokable = errors.New("wrapped value is not invokable")

	// ErrMissingTarget is returned when WrapperConstructor is called without a target.
	ErrMissingTarget = errors.New("wrapper target missing")
)

// Constructor is the ordinary construction procedure of a class.
type Constructor interface {
	New(args ...any) (any, error)
}

// ConstructorFunc adapts a function to Constructor.
type ConstructorFunc func(args ...any) (any, error)

// New calls f(args...).
func (f ConstructorFunc) New(args ...any) (any, error) {
	return f(args...)
}

// CustomConstructor is implemented by instances with a construction hook. A
// non-nil result different from the instance replaces it.
type CustomConstructor interface {
	Construct(args ...any) (any, error)
}

// MixinInitializer is implemented by instances with mixin state to set up
// after construction.
type MixinInitializer interface {
	InitializeMixins(args ...any) error
}

// Invokable is implemented by instances that can be called once wrapped.
type Invokable interface {
	Invoke(args ...any) (any, error)
}

type wrapperConstructor struct{}

func (wrapperConstructor) New(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, ErrMissingTarget
	}
	return NewWrapper(args[0]), nil
}

// WrapperConstructor builds a Wrapper around its first argument. Construct
// returns its result as is, without wrapping it again.
var WrapperConstructor Constructor = wrapperConstructor{}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher applies construction hooks to freshly built instances.
type Dispatcher struct {
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var (
	defaultMu         sync.RWMutex
	defaultDispatcher = NewDispatcher()
)

// Default returns the process-wide dispatcher.
func Default() *Dispatcher {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultDispatcher
}

// SetDefault replaces the process-wide dispatcher.
func SetDefault(d *Dispatcher) {
	if d == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultDispatcher = d
}

// Construct builds an instance with ctor and applies its capabilities, in
// order: the construction hook, the mixin initializer, factory substitution,
// and callable wrapping. Errors from ctor and hooks are returned unchanged.
func (d *Dispatcher) Construct(ctor Constructor, args ...any) (any, error) {
	if ctor == nil {
		return nil, ErrNilConstructor
	}

	r, err := ctor.New(args...)
	if err != nil {
		return nil, err
	}

	if _, ok := ctor.(wrapperConstructor); ok {
		return r, nil
	}

	var c any
	if cc, ok := r.(CustomConstructor); ok {
		if c, err = cc.Construct(args...); err != nil {
			return nil, err
		}
	}

	if mi, ok := r.(MixinInitializer); ok {
		if err := mi.InitializeMixins(args...); err != nil {
			return nil, err
		}
	}

	if c != nil && !identical(c, r) {
		d.logger.Debug("construction hook substituted instance",
			zap.String("instance", typeName(r)),
			zap.String("substitute", typeName(c)),
		)
		return c, nil
	}

	if _, ok := r.(Invokable); ok {
		d.logger.Debug("wrapping invokable instance", zap.String("instance", typeName(r)))
		return NewWrapper(r), nil
	}

	return r, nil
}

// Construct dispatches through the process-wide dispatcher.
func Construct(ctor Constructor, args ...any) (any, error) {
	return Default().Construct(ctor, args...)
}

// identical compares two values by identity without panicking on
// uncomparable types.
func identical(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if ta.Comparable() {
		return a == b
	}
	return false
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
