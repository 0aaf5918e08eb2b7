package schemelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins_ConsCarCdr(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, float64(1), runSource(t, ctx, "(car (cons 1 2))").(*Number).F)
	assert.Equal(t, float64(2), runSource(t, ctx, "(cdr (cons 1 2))").(*Number).F)
}

func TestBuiltins_SetCarSetCdr(t *testing.T) {
	ctx := NewContext()
	v := runSource(t, ctx, "(begin (define p (cons 1 2)) (set-car! p 9) (set-cdr! p 8) p)")
	p := v.(*Pair)
	assert.Equal(t, float64(9), p.Car.(*Number).F)
	assert.Equal(t, float64(8), p.Cdr.(*Number).F)
}

func TestBuiltins_Arithmetic(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, float64(7), runSource(t, ctx, "(add2 3 4)").(*Number).F)
	assert.Equal(t, float64(-1), runSource(t, ctx, "(sub2 3 4)").(*Number).F)
	assert.Equal(t, float64(12), runSource(t, ctx, "(mul2 3 4)").(*Number).F)
	assert.Equal(t, float64(2), runSource(t, ctx, "(div2 8 4)").(*Number).F)
}

func TestBuiltins_DivisionByZero(t *testing.T) {
	ctx := NewContext()
	code := compileSource(t, ctx, "(div2 1 0)")
	closure := ctx.makeClosure(ctx.topEnv, code)
	cont := ctx.makeContinuation([]Frame{{Env: ctx.topEnv, Closure: closure, IP: 0}}, nil)
	_, err := ctx.Run(cont)
	require.Error(t, err)
	se := err.(*SchemeError)
	assert.Equal(t, ErrDivisionByZero, se.Symbol)
}

func TestBuiltins_Comparisons(t *testing.T) {
	ctx := NewContext()
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(< 1 2)"))
	assert.Same(t, ctx.falseValue, runSource(t, ctx, "(> 1 2)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(= 2 2)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(<= 2 2)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(>= 2 2)"))
}

func TestBuiltins_EqAndPredicates(t *testing.T) {
	ctx := NewContext()
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(eq? 'a 'a)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(null? '())"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(pair? (cons 1 2))"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(boolean? #t)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(number? 1)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(symbol? 'a)"))
	assert.Same(t, ctx.trueValue, runSource(t, ctx, "(port? stdout-port)"))
}

func TestBuiltins_Assert(t *testing.T) {
	ctx := NewContext()
	code := compileSource(t, ctx, "(assert #f)")
	closure := ctx.makeClosure(ctx.topEnv, code)
	cont := ctx.makeContinuation([]Frame{{Env: ctx.topEnv, Closure: closure, IP: 0}}, nil)
	_, err := ctx.Run(cont)
	require.Error(t, err)
	assert.Equal(t, ErrUserError, err.(*SchemeError).Symbol)
}

func TestBuiltins_Error(t *testing.T) {
	ctx := NewContext()
	code := compileSource(t, ctx, "(error 'oops \"details\")")
	closure := ctx.makeClosure(ctx.topEnv, code)
	cont := ctx.makeContinuation([]Frame{{Env: ctx.topEnv, Closure: closure, IP: 0}}, nil)
	_, err := ctx.Run(cont)
	require.Error(t, err)
	assert.Equal(t, "oops", err.(*SchemeError).Symbol)
}

func TestBuiltins_WriteCharToBufferPort(t *testing.T) {
	ctx := NewContext()
	port := ctx.NewBufferPort()
	ctx.topEnv.setSymbolLocal(ctx.Sym("out"), port)

	runSource(t, ctx, `(write-char #\A out)`)
	bp, ok := bufferPortOf(port)
	require.True(t, ok)
	assert.Equal(t, "A", bp.String())
}

func TestBuiltins_ArgumentTypeMismatch(t *testing.T) {
	ctx := NewContext()
	code := compileSource(t, ctx, "(car 5)")
	closure := ctx.makeClosure(ctx.topEnv, code)
	cont := ctx.makeContinuation([]Frame{{Env: ctx.topEnv, Closure: closure, IP: 0}}, nil)
	_, err := ctx.Run(cont)
	require.Error(t, err)
	assert.Equal(t, ErrBadArgument, err.(*SchemeError).Symbol)
}

func TestBuiltins_ArgumentCountMismatch(t *testing.T) {
	ctx := NewContext()
	code := compileSource(t, ctx, "(car)")
	closure := ctx.makeClosure(ctx.topEnv, code)
	cont := ctx.makeContinuation([]Frame{{Env: ctx.topEnv, Closure: closure, IP: 0}}, nil)
	_, err := ctx.Run(cont)
	require.Error(t, err)
	assert.Equal(t, ErrBadArgumentCount, err.(*SchemeError).Symbol)
}
