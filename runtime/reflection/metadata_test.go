package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_SetGetDelete(t *testing.T) {
	md := NewMetadata(nil)

	_, ok := md.Get("missing")
	assert.False(t, ok)

	md.Set("a", 1)
	md.Set("b", 2)
	md.Set("a", 3)

	v, ok := md.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []any{"a", "b"}, md.OwnKeys())

	md.Delete("a")
	md.Delete("missing")
	assert.Equal(t, []any{"b"}, md.OwnKeys())
}

func TestMetadata_ParentFallback(t *testing.T) {
	parent := NewMetadata(nil)
	parent.Set("shared", "parent")
	parent.Set("only-parent", true)

	child := NewMetadata(parent)
	child.Set("shared", "child")

	v, _ := child.Get("shared")
	assert.Equal(t, "child", v)

	v, ok := child.Get("only-parent")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	// Deleting locally re-exposes the parent entry.
	child.Delete("shared")
	v, _ = child.Get("shared")
	assert.Equal(t, "parent", v)

	assert.Empty(t, child.OwnKeys())
}

func TestMetadata_NilReceiver(t *testing.T) {
	var md *Metadata
	assert.Nil(t, md.Parent())

	_, ok := md.Get("x")
	assert.False(t, ok)
}

func TestMetadata_ZeroValue(t *testing.T) {
	var md Metadata

	_, ok := md.Get("x")
	assert.False(t, ok)
	md.Delete("x")

	md.Set("x", 1)
	v, ok := md.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []any{"x"}, md.OwnKeys())
	assert.Nil(t, md.Parent())
}
