package reflection

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jymfony/scriba/runtime/symbol"
)

// ClassID is the opaque token assigned by the compiler to a class declaration.
// It is the only key into the Registry.
type ClassID string

// NewClassID mints a fresh class identifier.
func NewClassID() ClassID {
	return ClassID(uuid.NewString())
}

// String returns the identifier text.
func (id ClassID) String() string {
	return string(id)
}

// Kind identifies the decoration site or member kind.
type Kind string

const (
	KindClass       Kind = "class"
	KindConstructor Kind = "constructor"
	KindMethod      Kind = "method"
	KindGetter      Kind = "getter"
	KindSetter      Kind = "setter"
	KindField       Kind = "field"
	KindAccessor    Kind = "accessor"
	KindParameter   Kind = "parameter"
)

// IsCallable reports whether members of this kind carry a parameter list.
func (k Kind) IsCallable() bool {
	switch k {
	case KindConstructor, KindMethod, KindGetter, KindSetter:
		return true
	default:
		return false
	}
}

// MemberName is either a string or a symbol. The zero value is the absent
// name produced by computed keys that fail to resolve.
type MemberName struct {
	str string
	sym *symbol.Symbol
}

// StringName builds a string member name.
func StringName(s string) MemberName {
	return MemberName{str: s}
}

// SymbolName builds a symbol member name.
func SymbolName(s *symbol.Symbol) MemberName {
	return MemberName{sym: s}
}

// IsZero reports whether the name is absent. An empty string counts as absent.
func (n MemberName) IsZero() bool {
	return n.sym == nil && n.str == ""
}

// Symbol returns the symbol if the name is symbol-valued.
func (n MemberName) Symbol() (*symbol.Symbol, bool) {
	return n.sym, n.sym != nil
}

// String returns the string name, or Symbol(description) for symbols.
func (n MemberName) String() string {
	if n.sym != nil {
		return n.sym.String()
	}
	return n.str
}

// MarshalJSON encodes the name as a JSON string, or null when absent.
func (n MemberName) MarshalJSON() ([]byte, error) {
	if n.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(n.String())
}

// Access is the accessor pair bound to a decorated member.
type Access struct {
	Get func(target any) any
	Set func(target any, value any)
}

// HasGet reports whether a getter is available.
func (a *Access) HasGet() bool {
	return a != nil && a.Get != nil
}

// HasSet reports whether a setter is available.
func (a *Access) HasSet() bool {
	return a != nil && a.Set != nil
}
