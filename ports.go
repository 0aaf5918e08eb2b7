package schemelet

import (
	"bytes"
	"io"
)

// filePort adapts an os.File (or any io.ReadWriteCloser) to PortImpl.
// stdin-port/stdout-port/stderr-port are instances of this wrapping
// os.Stdin/os.Stdout/os.Stderr (see Context.initStandardLibrary in
// builtins.go).
type filePort struct {
	rwc  io.ReadWriteCloser
	mode PortMode
}

// NewFilePort wraps an already-open io.ReadWriteCloser as a Port
// usable from Scheme code via write-char and friends. Closing the
// returned *Port's underlying file happens automatically if it's
// collected without being reachable (see Context.GC), or the host can
// call Impl.Close() directly.
func (ctx *Context) NewFilePort(rwc io.ReadWriteCloser, mode PortMode) *Port {
	return ctx.makePort(&filePort{rwc: rwc, mode: mode})
}

func (p *filePort) Write(b []byte) (int, error) { return p.rwc.Write(b) }
func (p *filePort) Read(b []byte) (int, error)  { return p.rwc.Read(b) }
func (p *filePort) Mode() PortMode              { return p.mode }
func (p *filePort) Close() error                { return p.rwc.Close() }

// BufferPort is an in-memory Port backed by a bytes.Buffer — a
// supplemental host convenience for tests that want to assert on
// written bytes without touching the filesystem, or for embedding
// programs that want to capture interpreter output into a string
// instead of a real file descriptor.
type BufferPort struct {
	buf bytes.Buffer
}

// NewBufferPort constructs a Port around a fresh in-memory buffer,
// readable and writable from Scheme code the same way any other Port
// is.
func (ctx *Context) NewBufferPort() *Port {
	return ctx.makePort(&BufferPort{})
}

func (p *BufferPort) Write(b []byte) (int, error) { return p.buf.Write(b) }
func (p *BufferPort) Read(b []byte) (int, error)   { return p.buf.Read(b) }
func (p *BufferPort) Mode() PortMode                { return PortRead | PortWrite }
func (p *BufferPort) Close() error                  { return nil }

// String returns everything written to the buffer so far.
func (p *BufferPort) String() string { return p.buf.String() }

// bufferPortOf is a small accessor used by tests that construct a
// Port via NewBufferPort and want back the concrete *BufferPort to
// inspect captured output.
func bufferPortOf(v Value) (*BufferPort, bool) {
	port, ok := v.(*Port)
	if !ok {
		return nil, false
	}
	bp, ok := port.Impl.(*BufferPort)
	return bp, ok
}
