package reflection

import (
	"encoding/json"
)

// resolver serves the lazily computed parts of records and members.
type resolver interface {
	ResolveParameters(id ClassID, memberIndex int) []Parameter
	ResolveDocblock(id ClassID, memberIndex int) (string, bool)
	resolveClassDocblock(id ClassID) (string, bool)
}

// Record is the reflection data of one decorated class. Members are ordered
// by decorator application, not by source position.
//
// Records returned by the Registry are shared; callers must not modify them.
// Members grows while its class is being decorated, so read it once the class
// definition has been evaluated.
type Record struct {
	FQCN      string
	ClassName string
	Namespace string
	Filename  string
	Members   []*Member

	id       ClassID
	resolver resolver

	// synthesized records carry a placeholder name until the class site runs.
	synthesized bool
}

// ID returns the class identifier the record is stored under.
func (r *Record) ID() ClassID {
	return r.id
}

// Docblock returns the class doc comment, re-read from the provider.
func (r *Record) Docblock() (string, bool) {
	return r.resolver.resolveClassDocblock(r.id)
}

// Member returns the first member with the given name.
func (r *Record) Member(name MemberName) (*Member, bool) {
	for _, m := range r.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record with its lazily resolved parts.
func (r *Record) MarshalJSON() ([]byte, error) {
	type recordJSON struct {
		ID        ClassID   `json:"id"`
		FQCN      string    `json:"fqcn"`
		ClassName string    `json:"className"`
		Namespace string    `json:"namespace,omitempty"`
		Filename  string    `json:"filename,omitempty"`
		Docblock  *string   `json:"docblock"`
		Members   []*Member `json:"members"`
	}

	out := recordJSON{
		ID:        r.id,
		FQCN:      r.FQCN,
		ClassName: r.ClassName,
		Namespace: r.Namespace,
		Filename:  r.Filename,
		Members:   r.Members,
	}
	if doc, ok := r.Docblock(); ok {
		out.Docblock = &doc
	}
	if out.Members == nil {
		out.Members = []*Member{}
	}
	return json.Marshal(out)
}

// Member describes one decorated class member.
type Member struct {
	// MemberIndex is the compiler-assigned join key into the provider.
	MemberIndex int
	Kind        Kind
	Name        MemberName
	Static      bool
	Private     bool
	Access      *Access

	classID  ClassID
	resolver resolver
}

// ClassID returns the identifier of the owning class.
func (m *Member) ClassID() ClassID {
	return m.classID
}

// Parameters resolves the member's parameter list. The provider is queried on
// every call.
func (m *Member) Parameters() []Parameter {
	return m.resolver.ResolveParameters(m.classID, m.MemberIndex)
}

// Docblock resolves the member's doc comment. The provider is queried on
// every call.
func (m *Member) Docblock() (string, bool) {
	return m.resolver.ResolveDocblock(m.classID, m.MemberIndex)
}

// MarshalJSON encodes the member with resolved parameters and docblock.
func (m *Member) MarshalJSON() ([]byte, error) {
	type memberJSON struct {
		MemberIndex int         `json:"memberIndex"`
		Kind        Kind        `json:"kind"`
		Name        MemberName  `json:"name"`
		Static      bool        `json:"static"`
		Private     bool        `json:"private"`
		Parameters  []Parameter `json:"parameters,omitempty"`
		Docblock    *string     `json:"docblock"`
	}

	out := memberJSON{
		MemberIndex: m.MemberIndex,
		Kind:        m.Kind,
		Name:        m.Name,
		Static:      m.Static,
		Private:     m.Private,
	}
	if m.Kind.IsCallable() {
		out.Parameters = m.Parameters()
	}
	if doc, ok := m.Docblock(); ok {
		out.Docblock = &doc
	}
	return json.Marshal(out)
}

// Parameter describes one parameter of a callable member.
type Parameter struct {
	Index           int
	Name            string
	HasDefault      bool
	IsObjectPattern bool
	IsArrayPattern  bool
	IsRestElement   bool

	// Default holds the reconstructed literal default when DefaultSet is true.
	// A null literal is DefaultSet with a nil Default. Big integers are
	// *big.Int, regular expressions are Pattern.
	Default    any
	DefaultSet bool
}

// MarshalJSON omits "default" unless a literal default was reconstructed.
func (p Parameter) MarshalJSON() ([]byte, error) {
	type parameterJSON struct {
		Index           int    `json:"index"`
		Name            string `json:"name,omitempty"`
		HasDefault      bool   `json:"hasDefault"`
		IsObjectPattern bool   `json:"isObjectPattern"`
		IsArrayPattern  bool   `json:"isArrayPattern"`
		IsRestElement   bool   `json:"isRestElement"`
		Default         *any   `json:"default,omitempty"`
	}

	out := parameterJSON{
		Index:           p.Index,
		Name:            p.Name,
		HasDefault:      p.HasDefault,
		IsObjectPattern: p.IsObjectPattern,
		IsArrayPattern:  p.IsArrayPattern,
		IsRestElement:   p.IsRestElement,
	}
	if p.DefaultSet {
		v := p.Default
		out.Default = &v
	}
	return json.Marshal(out)
}
