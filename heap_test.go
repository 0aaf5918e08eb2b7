package schemelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_SymbolInterning(t *testing.T) {
	ctx := NewContext()
	a := ctx.Sym("foo")
	b := ctx.Sym("FOO")
	assert.Same(t, a, b)

	c := ctx.SymCase("FOO")
	assert.NotSame(t, a, c)
}

func TestContext_PinSurvivesGC(t *testing.T) {
	ctx := NewContext()
	v := ctx.MakePair(ctx.MakeInteger(1), ctx.Nil())
	ctx.Pin(v)

	// detach from every other root by not storing v anywhere the
	// collector can see except the pin itself
	ctx.GC()

	assert.Contains(t, ctx.values, Value(v), "pinned value must survive a GC with no other roots")
	ctx.Unpin(v)
}

func TestContext_UnreachableValueIsSwept(t *testing.T) {
	ctx := NewContext()
	before := len(ctx.values)
	ctx.MakePair(ctx.Nil(), ctx.Nil()) // unreachable after this line
	ctx.GC()
	assert.Equal(t, before, len(ctx.values))
}

func TestContext_ErrorIsSticky(t *testing.T) {
	ctx := NewContext()
	require.False(t, ctx.HasError())
	ctx.SetError(ErrUserError, ctx.MakeString("boom"))
	require.True(t, ctx.HasError())

	assert.Panics(t, func() {
		ctx.SetError(ErrUserError, ctx.MakeString("again"))
	})

	sym, param, _ := ctx.GetError()
	assert.Equal(t, ErrUserError, sym.Name)
	assert.Equal(t, "boom", string(param.(*String).Bytes))

	ctx.ClearError()
	assert.False(t, ctx.HasError())
}

func TestConfig_Defaults(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.config.ReaderCaseSensitiveDefault)
	assert.Equal(t, 4096, ctx.config.GCAllocationThreshold)
}

func TestConfig_GCThresholdGrowsAfterCollection(t *testing.T) {
	ctx := NewContext()
	before := ctx.config.GCAllocationThreshold
	ctx.GC()
	assert.Equal(t, before*ctx.config.GCGrowthFactorPercent/100, ctx.config.GCAllocationThreshold)
}
