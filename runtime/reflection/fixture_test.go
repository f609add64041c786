package reflection

import (
	"sync"
)

// tableProvider is a mutable in-memory provider that counts lookups.
type tableProvider struct {
	mu      sync.Mutex
	classes map[ClassID]*ClassData
	calls   int
}

func newTableProvider() *tableProvider {
	return &tableProvider{classes: make(map[ClassID]*ClassData)}
}

func (p *tableProvider) ReflectionData(id ClassID) (*ClassData, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	d, ok := p.classes[id]
	return d, ok
}

func (p *tableProvider) put(id ClassID, d *ClassData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.classes[id] = d
}

func (p *tableProvider) lookups() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// widget is a decorated class value; its instances share the class metadata.
type widget struct {
	meta *Metadata
}

func (w *widget) ClassMetadata() *Metadata { return w.meta }

type widgetInstance struct {
	class *widget
}

func (i *widgetInstance) ClassMetadata() *Metadata { return i.class.meta }

func str(s string) *LiteralDefault {
	return &LiteralDefault{Kind: LiteralString, Value: s}
}

// sampleClassData mirrors:
//
//	/** class docblock */
//	export default class x {
//	    publicField;                                    // 0
//	    /** constructor docblock */
//	    constructor(constructorParam1) {}               // 1
//	    /**
//	     * public method docblock
//	     */
//	    publicMethod({a, b} = {}, c = new Object(), ...x) {}  // 2
//	    act(param1) {}                                  // 3
//	    publicMethodWithDefaults(a = {}, b = 1, c = 'test', d = /test/g, e = 42n, f = true, g = null) {} // 4
//	    get b() {}                                      // 5
//	}
func sampleClassData() *ClassData {
	return &ClassData{
		ClassName: "x",
		Namespace: "App",
		Filename:  "/app/x.js",
		Docblock:  "/** class docblock */",
		Members: []MemberData{
			{Kind: "field", Index: 0},
			{
				Kind:     "method",
				Index:    1,
				Docblock: "/** constructor docblock */",
				Params:   []RawParameter{{Name: "constructorParam1", Index: 0}},
			},
			{
				Kind:     "method",
				Index:    2,
				Docblock: "/**\n     * public method docblock\n     */",
				Params: []RawParameter{
					{Index: 0, HasDefault: true, IsObjectPattern: true},
					{Name: "c", Index: 1, HasDefault: true},
					{Name: "x", Index: 2, IsRestElement: true},
				},
			},
			{
				Kind:   "method",
				Index:  3,
				Params: []RawParameter{{Name: "param1", Index: 0}},
			},
			{
				Kind:  "method",
				Index: 4,
				Params: []RawParameter{
					{Name: "a", Index: 0, HasDefault: true},
					{Name: "b", Index: 1, HasDefault: true, Default: &LiteralDefault{Kind: LiteralNumber, Value: float64(1)}},
					{Name: "c", Index: 2, HasDefault: true, Default: str("test")},
					{Name: "d", Index: 3, HasDefault: true, Default: &LiteralDefault{Kind: LiteralRegExp, Pattern: "test", Flags: "g"}},
					{Name: "e", Index: 4, HasDefault: true, Default: &LiteralDefault{Kind: LiteralBigInt, Value: "42"}},
					{Name: "f", Index: 5, HasDefault: true, Default: &LiteralDefault{Kind: LiteralBoolean, Value: true}},
					{Name: "g", Index: 6, HasDefault: true, Default: &LiteralDefault{Kind: LiteralNull}},
				},
			},
			{Kind: "method", Index: 5},
		},
	}
}

// defineSample evaluates the sample class the way compiler-emitted code does:
// one reflection decorator per member plus one class-level decorator bound to
// the constructor index.
func defineSample(reg *Registry, id ClassID) *widget {
	w := &widget{}
	method := func(name string, index int) MemberDefinition {
		return MemberDefinition{
			Kind:       KindMethod,
			Name:       StringName(name),
			Value:      name,
			Decorators: []Decorator{reg.BindMember(id, index)},
		}
	}

	applied := Apply(ClassDefinition{
		Name:       "x",
		Value:      w,
		Decorators: []Decorator{reg.BindMember(id, 1)},
		Members: []MemberDefinition{
			{
				Kind:       KindField,
				Name:       StringName("publicField"),
				Access:     &Access{Get: func(any) any { return "field" }},
				Decorators: []Decorator{reg.BindMember(id, 0)},
			},
			method("publicMethod", 2),
			method("act", 3),
			method("publicMethodWithDefaults", 4),
			{
				Kind:       KindGetter,
				Name:       StringName("b"),
				Decorators: []Decorator{reg.BindMember(id, 5)},
			},
		},
	})
	w.meta = applied.Metadata
	return w
}
