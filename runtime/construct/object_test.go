package construct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jymfony/scriba/runtime/symbol"
)

func TestBase_SetGet(t *testing.T) {
	var b Base

	assert.True(t, b.Set("name", "x"))
	v, ok := b.Get("name")
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = b.Get("missing")
	assert.False(t, ok)
}

func TestBase_SymbolKeys(t *testing.T) {
	var b Base
	key := symbol.New("secret")
	other := symbol.New("secret")

	b.Set(key, 1)
	assert.True(t, b.Has(key))
	assert.False(t, b.Has(other))
}

func TestBase_OwnKeysInDefinitionOrder(t *testing.T) {
	var b Base
	b.Set("b", 1)
	b.Set("a", 2)
	b.DefineProperty("hidden", PropertyDescriptor{Value: 3})
	b.Set("b", 4)

	assert.Equal(t, []any{"b", "a", "hidden"}, b.OwnKeys())

	require.True(t, b.Delete("a"))
	assert.Equal(t, []any{"b", "hidden"}, b.OwnKeys())
}

func TestBase_ReadOnlyAndNonConfigurable(t *testing.T) {
	var b Base
	b.DefineProperty("fixed", PropertyDescriptor{Value: 1})

	assert.False(t, b.Set("fixed", 2))
	assert.False(t, b.Delete("fixed"))
	assert.False(t, b.DefineProperty("fixed", PropertyDescriptor{Value: 3}))

	v, _ := b.Get("fixed")
	assert.Equal(t, 1, v)
}

func TestBase_PrototypeChain(t *testing.T) {
	parent := &Base{}
	parent.Set("inherited", "yes")

	child := &Base{}
	require.True(t, child.SetPrototype(parent))

	v, ok := child.Get("inherited")
	require.True(t, ok)
	assert.Equal(t, "yes", v)
	assert.True(t, child.Has("inherited"))

	_, own := child.OwnPropertyDescriptor("inherited")
	assert.False(t, own)
}

func TestBase_PrototypeCycleRejected(t *testing.T) {
	a := &Base{}
	b := &Base{}
	require.True(t, b.SetPrototype(a))

	assert.False(t, a.SetPrototype(b))
	assert.False(t, a.SetPrototype(a))
}

type embedded struct {
	Base
}

func TestBase_PrototypeCycleThroughEmbedding(t *testing.T) {
	a := &embedded{}
	b := &embedded{}
	require.True(t, b.SetPrototype(a))

	assert.False(t, a.SetPrototype(b))
}

func TestBase_PreventExtensions(t *testing.T) {
	var b Base
	b.Set("x", 1)
	require.True(t, b.PreventExtensions())

	assert.False(t, b.IsExtensible())
	assert.False(t, b.Set("y", 2))
	assert.True(t, b.Set("x", 3))
	assert.False(t, b.SetPrototype(&Base{}))
}
