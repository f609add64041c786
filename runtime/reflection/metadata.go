package reflection

// Metadata is the mutable dictionary shared by every decorator applied to one
// class. Keys must be comparable; symbols and strings are typical.
//
// The zero value is an empty dictionary without a parent.
//
// A Metadata is not safe for concurrent mutation. Decoration happens while a
// class definition is evaluated, on a single goroutine.
type Metadata struct {
	parent *Metadata
	values map[any]any
	keys   []any
}

// NewMetadata creates a dictionary whose lookups fall back to parent. Pass nil
// for a class without a decorated superclass.
func NewMetadata(parent *Metadata) *Metadata {
	return &Metadata{
		parent: parent,
		values: make(map[any]any),
	}
}

// Parent returns the superclass dictionary, or nil.
func (m *Metadata) Parent() *Metadata {
	if m == nil {
		return nil
	}
	return m.parent
}

// Get returns the value for key, walking the parent chain.
func (m *Metadata) Get(key any) (any, bool) {
	for md := m; md != nil; md = md.parent {
		if v, ok := md.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set stores value under key on this dictionary only.
func (m *Metadata) Set(key, value any) {
	if m.values == nil {
		m.values = make(map[any]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key from this dictionary. Parent entries are untouched.
func (m *Metadata) Delete(key any) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// OwnKeys returns local keys in insertion order.
func (m *Metadata) OwnKeys() []any {
	keys := make([]any, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// MetadataCarrier is implemented by class values and instances that expose
// their class's metadata dictionary.
type MetadataCarrier interface {
	ClassMetadata() *Metadata
}
