package schemelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyClosure_TooFewArguments(t *testing.T) {
	ctx := NewContext()
	code := ctx.makeCode()
	code.Formals = []*Symbol{ctx.Sym("a"), ctx.Sym("b")}
	closure := ctx.makeClosure(ctx.topEnv, code)

	_, err := ctx.applyClosure(closure, ctx.MakePair(ctx.MakeInteger(1), ctx.Nil()))
	require.Error(t, err)
	sym, _, _ := ctx.GetError()
	assert.Equal(t, ErrBadArgumentCount, sym.Name)
}

func TestApplyClosure_TooManyArgumentsNoRest(t *testing.T) {
	ctx := NewContext()
	code := ctx.makeCode()
	code.Formals = []*Symbol{ctx.Sym("a")}
	closure := ctx.makeClosure(ctx.topEnv, code)

	args := ctx.MakePair(ctx.MakeInteger(1), ctx.MakePair(ctx.MakeInteger(2), ctx.Nil()))
	_, err := ctx.applyClosure(closure, args)
	require.Error(t, err)
	sym, _, _ := ctx.GetError()
	assert.Equal(t, ErrBadArgumentCount, sym.Name)
}

func TestApplyClosure_RestCatchesRemainder(t *testing.T) {
	ctx := NewContext()
	code := ctx.makeCode()
	a := ctx.Sym("a")
	rest := ctx.Sym("rest")
	code.Formals = []*Symbol{a}
	code.Rest = rest
	closure := ctx.makeClosure(ctx.topEnv, code)

	args := ctx.MakePair(ctx.MakeInteger(1), ctx.MakePair(ctx.MakeInteger(2), ctx.Nil()))
	frame, err := ctx.applyClosure(closure, args)
	require.NoError(t, err)

	restVal, ok := frame.Env.findSymbol(rest)
	require.True(t, ok)
	items := list(restVal)
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(*Number).F)
}

func TestContextApply_PanicsOutsideNativeProcedure(t *testing.T) {
	ctx := NewContext()
	assert.Panics(t, func() {
		ctx.Apply(ctx.MakeProcedure("noop", func(ctx *Context, args Value) Value { return ctx.Nil() }), ctx.Nil())
	})
}

func TestNotCallableDefault(t *testing.T) {
	ctx := NewContext()
	c := ctx.makeContinuation(nil, nil)
	ctx.apply(c, ctx.MakeInteger(5), ctx.Nil())
	require.True(t, ctx.HasError())
	sym, _, _ := ctx.GetError()
	assert.Equal(t, ErrNotCallable, sym.Name)
}
