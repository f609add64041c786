package reflection

// Provider is the internal reflection data source populated by the compiler.
// Lookups are synchronous; an unknown class reports false.
type Provider interface {
	ReflectionData(id ClassID) (*ClassData, bool)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(id ClassID) (*ClassData, bool)

// ReflectionData calls f(id).
func (f ProviderFunc) ReflectionData(id ClassID) (*ClassData, bool) {
	return f(id)
}

type noProvider struct{}

func (noProvider) ReflectionData(ClassID) (*ClassData, bool) { return nil, false }

// ClassData is the pre-decoration structural data of one class.
type ClassData struct {
	FQCN      string       `json:"fqcn"`
	ClassName string       `json:"className"`
	Namespace string       `json:"namespace,omitempty"`
	Filename  string       `json:"filename,omitempty"`
	Docblock  string       `json:"docblock,omitempty"`
	Members   []MemberData `json:"members"`
}

// QualifiedName returns FQCN, deriving it from namespace and class name when
// the provider left it empty.
func (d *ClassData) QualifiedName() string {
	if d.FQCN != "" {
		return d.FQCN
	}
	if d.Namespace != "" {
		return d.Namespace + "." + d.ClassName
	}
	return d.ClassName
}

// Member returns the member whose compiler-assigned index equals index.
func (d *ClassData) Member(index int) (*MemberData, bool) {
	for i := range d.Members {
		if d.Members[i].Index == index {
			return &d.Members[i], true
		}
	}
	return nil, false
}

// MemberData is the raw structural data of one class member.
type MemberData struct {
	Kind     string         `json:"kind"` // "method" or "field"
	Index    int            `json:"index"`
	Params   []RawParameter `json:"params,omitempty"`
	Docblock string         `json:"docblock,omitempty"`
}

// RawParameter is one parameter as emitted by the compiler.
type RawParameter struct {
	Name            string          `json:"name,omitempty"`
	Index           int             `json:"index"`
	HasDefault      bool            `json:"hasDefault"`
	IsObjectPattern bool            `json:"isObjectPattern"`
	IsArrayPattern  bool            `json:"isArrayPattern"`
	IsRestElement   bool            `json:"isRestElement"`
	Default         *LiteralDefault `json:"default,omitempty"`
}

// LiteralKind tags a literal default value.
type LiteralKind string

const (
	LiteralString  LiteralKind = "string"
	LiteralBoolean LiteralKind = "bool"
	LiteralNumber  LiteralKind = "number"
	LiteralNull    LiteralKind = "null"
	LiteralBigInt  LiteralKind = "bigint"
	LiteralRegExp  LiteralKind = "regex"
)

// LiteralDefault describes a literal default value. BigInt values carry their
// decimal (or 0x/0o/0b prefixed) text in Value; regular expressions use
// Pattern and Flags.
type LiteralDefault struct {
	Kind    LiteralKind `json:"kind"`
	Value   any         `json:"value"`
	Pattern string      `json:"pattern,omitempty"`
	Flags   string      `json:"flags,omitempty"`
}
