package reflection

// ClassDefinition describes a class literal under evaluation: its members and
// the decorators attached to each decoration site.
type ClassDefinition struct {
	Name  string
	Value any
	// Parent is the superclass metadata, if any.
	Parent     *Metadata
	Decorators []Decorator
	// ConstructorParameters are decorated as part of the class-level site.
	ConstructorParameters []ParameterDefinition
	Members               []MemberDefinition
}

// MemberDefinition describes one class member.
type MemberDefinition struct {
	Kind Kind
	Name MemberName
	// Key computes the member name. When set it is evaluated exactly once and
	// Name is ignored.
	Key        func() MemberName
	Static     bool
	Private    bool
	Value      any
	Access     *Access
	Decorators []Decorator
	Parameters []ParameterDefinition
}

// ParameterDefinition describes one decorated parameter.
type ParameterDefinition struct {
	Index int
	// Name is empty for destructured parameters.
	Name       string
	Rest       bool
	Decorators []Decorator
}

// Applied is the outcome of Apply.
type Applied struct {
	Class    any
	Metadata *Metadata
	Members  []AppliedMember
}

// AppliedMember is a member after decoration, with its resolved name and
// possibly replaced value.
type AppliedMember struct {
	Name  MemberName
	Value any
}

// Apply runs every decorator of def. Members are processed in source order;
// for each member, parameter decorators run before member decorators, and
// decorators on one site run innermost (last listed) first. Constructor
// parameter decorators and class decorators run after all members.
func Apply(def ClassDefinition) *Applied {
	md := NewMetadata(def.Parent)
	out := &Applied{
		Class:    def.Value,
		Metadata: md,
		Members:  make([]AppliedMember, len(def.Members)),
	}

	for i, m := range def.Members {
		name := m.Name
		if m.Key != nil {
			name = m.Key()
		}

		applyParameters(m.Parameters, md, &FunctionContext{Kind: m.Kind, Name: name})

		value := m.Value
		for j := len(m.Decorators) - 1; j >= 0; j-- {
			ctx := &DecoratorContext{
				Kind:     m.Kind,
				Name:     name,
				Static:   m.Static,
				Private:  m.Private,
				Access:   m.Access,
				Metadata: md,
			}
			if replaced := m.Decorators[j](value, ctx); replaced != nil {
				value = replaced
			}
		}

		out.Members[i] = AppliedMember{Name: name, Value: value}
	}

	applyParameters(def.ConstructorParameters, md, &FunctionContext{Kind: KindClass})

	for j := len(def.Decorators) - 1; j >= 0; j-- {
		ctx := &DecoratorContext{
			Kind:     KindClass,
			Name:     StringName(def.Name),
			Metadata: md,
		}
		if replaced := def.Decorators[j](out.Class, ctx); replaced != nil {
			out.Class = replaced
		}
	}

	return out
}

func applyParameters(params []ParameterDefinition, md *Metadata, fn *FunctionContext) {
	for _, p := range params {
		for j := len(p.Decorators) - 1; j >= 0; j-- {
			p.Decorators[j](nil, &DecoratorContext{
				Kind:     KindParameter,
				Name:     StringName(p.Name),
				Metadata: md,
				Index:    p.Index,
				Rest:     p.Rest,
				Function: fn,
			})
		}
	}
}
