package schemelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable_InternFoldsCase(t *testing.T) {
	tab := newSymbolTable()
	a, isNewA := tab.intern("Hello")
	b, isNewB := tab.intern("hello")

	assert.True(t, isNewA)
	assert.False(t, isNewB)
	assert.Same(t, a, b)
	assert.Equal(t, "hello", a.Name)
}

func TestSymbolTable_CaseSensitiveIsSeparate(t *testing.T) {
	tab := newSymbolTable()
	insensitive, _ := tab.intern("Hello")
	sensitive, _ := tab.internCase("Hello")

	assert.NotSame(t, insensitive, sensitive)
	assert.True(t, sensitive.CaseSensitive)

	other, isNew := tab.internCase("hello")
	assert.True(t, isNew)
	assert.NotSame(t, sensitive, other)
}

func TestSymbolTable_Delete(t *testing.T) {
	tab := newSymbolTable()
	s, _ := tab.intern("gone")
	tab.delete(s)

	_, isNew := tab.intern("gone")
	assert.True(t, isNew, "deleting a symbol must let it be re-interned as new")
}
