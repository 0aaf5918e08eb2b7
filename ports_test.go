package schemelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPort_WriteAndRead(t *testing.T) {
	ctx := NewContext()
	port := ctx.NewBufferPort()
	bp, ok := bufferPortOf(port)
	require.True(t, ok)

	n, err := port.Impl.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", bp.String())

	buf := make([]byte, 5)
	n, err = port.Impl.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestBufferPort_Mode(t *testing.T) {
	ctx := NewContext()
	port := ctx.NewBufferPort()
	assert.Equal(t, PortRead|PortWrite, port.Impl.Mode())
}

func TestContext_StandardPortsAreBound(t *testing.T) {
	ctx := NewContext()
	for _, name := range []string{"stdin-port", "stdout-port", "stderr-port"} {
		v, ok := ctx.topEnv.findSymbol(ctx.Sym(name))
		require.True(t, ok, name)
		_, isPort := v.(*Port)
		assert.True(t, isPort, name)
	}
}
