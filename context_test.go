package schemelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SimpleArithmetic(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.ExecuteString("(add2 1 2)", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.(*Number).F)
}

func TestExecute_MultipleTopLevelForms(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.ExecuteString("(define x 1) (define y 2) (add2 x y)", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.(*Number).F)
}

func TestExecute_ReaderErrorClearsPendingForNextCall(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.ExecuteString("(a b", nil)
	require.Error(t, err)
	assert.False(t, ctx.HasError(), "Execute must clear pending state so the Context is reusable")

	v, err := ctx.ExecuteString("(add2 1 1)", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(2), v.(*Number).F)
}

func TestExecute_RuntimeErrorReportsSymbolAndPosition(t *testing.T) {
	ctx := NewContext()
	file := ctx.SymCase("test.scm")
	_, err := ctx.Execute([]byte("undefined-thing"), file)
	require.Error(t, err)
	se, ok := err.(*SchemeError)
	require.True(t, ok)
	assert.Equal(t, ErrUnboundVariable, se.Symbol)
	assert.Equal(t, "test.scm:1:1", se.Pos.String())
}

func TestExecute_EmptySourceIsNil(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.ExecuteString("", nil)
	require.NoError(t, err)
	assert.True(t, IsNil(v))
}

func TestExecute_GCBetweenCallsKeepsTopLevelBindings(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.ExecuteString("(define counter 0)", nil)
	require.NoError(t, err)

	ctx.GC()

	v, err := ctx.ExecuteString("(set! counter (add2 counter 1)) counter", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), v.(*Number).F)
}
