package reflection

// DecoratorContext describes one decoration site. It is built fresh for every
// decorator invocation.
type DecoratorContext struct {
	Kind Kind
	// Name is absent for computed keys that did not resolve and for
	// destructured parameters.
	Name     MemberName
	Static   bool
	Private  bool
	Access   *Access
	Metadata *Metadata

	// Parameter decorators only.
	Index    int
	Rest     bool
	Function *FunctionContext
}

// FunctionContext identifies the function enclosing a decorated parameter.
// Constructor parameters report KindClass and an absent name.
type FunctionContext struct {
	Kind Kind
	Name MemberName
}

// Decorator is a decorator function. A non-nil return value replaces the
// decorated value.
type Decorator func(value any, ctx *DecoratorContext) any
