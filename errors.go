package schemelet

import (
	"errors"
	"fmt"
)

// errParse is the sentinel returned by Reader methods when they set a
// pending Context error; callers distinguish it from io.EOF but don't
// need to inspect it directly — the real information is in
// ctx.GetError().
var errParse = errors.New("schemelet: parse error")

// errUnannotate mirrors errParse for the unannotate failure path.
var errUnannotate = errors.New("schemelet: unannotate failed")

// Canonical error symbol names. These are interned the same way any
// other symbol is (via Context.Sym), so host code that wants to
// compare against one of these just calls ctx.Sym("undefined-identifier")
// and compares pointers — there is no separate error-code enum.
const (
	ErrBadCharacter         = "bad-character"
	ErrBadString            = "bad-string"
	ErrParseErrorParen      = "parse-error-parenthesis"
	ErrParseErrorUnexpected = "parse-error-unexpected"
	ErrUnboundVariable      = "undefined-identifier"
	ErrNotCallable          = "not-callable"
	ErrBadArgument          = "bad-argument-type"
	ErrBadArgumentCount     = "bad-argument-count"
	ErrUserError            = "user-error"
	ErrDivisionByZero       = "division-by-zero"
	ErrBadMacroExpander     = "bad-macro-expander"
	ErrUnannotateFailed     = "unannotate-failed"
	ErrBadSyntax            = "bad-syntax"
)

// schemeError is the interpreter's own error representation: a
// symbol naming the condition, an optional parameter value giving
// context (the offending value, the unbound symbol, ...), and the
// continuation active when the error was raised (nil if raised
// outside VM execution, e.g. during reading). It is intentionally not
// Go's error type — see Context.SetError/HasError/GetError/ClearError
// in heap.go, which is the sticky (symbol, param, continuation)
// contract described in the embedding API.
type schemeError struct {
	Symbol       *Symbol
	Param        Value
	Continuation *Continuation
}

// SchemeError is the host-facing wrapper returned by Context.Execute
// when execution stops with a pending error. It implements the
// standard error interface so callers can use it with errors.As the
// way they would any other Go error, while still exposing the
// underlying symbol/param pair for programmatic handling: a plain
// struct with a String()-shaped Error() method, no wrapped-error
// chain machinery beyond what's needed here.
type SchemeError struct {
	Symbol string
	Param  Value
	Pos    FilePos
}

func (e *SchemeError) Error() string {
	if e.Pos.Line != 0 {
		return fmt.Sprintf("%s @ %s", e.Symbol, e.Pos)
	}
	return e.Symbol
}
