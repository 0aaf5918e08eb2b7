// Package schemelet implements a small, embeddable interpreter for a
// Scheme-like S-expression language.
//
// The pipeline is: a reader turns source text into a heap-allocated
// value graph (reader.go), a macro expander rewrites top-level forms
// through a user-installed closure (macro.go), a compiler lowers the
// result into a stack-based bytecode (compiler.go, opcodes.go), and a
// continuation-based virtual machine executes that bytecode one
// opcode at a time (vm.go, apply.go). The heap backing all of this is
// a mark-and-sweep collector owned by a Context (heap.go).
//
// Host code embeds the interpreter through Context: it registers
// native procedures, seeds the top-level environment, executes source
// buffers, and inspects errors. See context.go for the entry points.
package schemelet
