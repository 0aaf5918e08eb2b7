package main

import (
	"fmt"
	"strings"

	"github.com/corvid-lang/schemelet"
)

// writeString renders v the way a REPL or run result line should look.
// This is deliberately a cmd-only convenience, not part of the core
// package: schemelet itself names no core pretty-printer as a Non-goal.
func writeString(v schemelet.Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v schemelet.Value) {
	switch {
	case schemelet.IsNil(v):
		b.WriteString("()")
	case v == nil:
		b.WriteString("#<omitted>")
	default:
		switch x := v.(type) {
		case *schemelet.Boolean:
			if x.B {
				b.WriteString("#t")
			} else {
				b.WriteString("#f")
			}
		case *schemelet.Number:
			fmt.Fprintf(b, "%g", x.F)
		case *schemelet.Symbol:
			b.WriteString(x.Name)
		case *schemelet.Char:
			fmt.Fprintf(b, "#\\%c", x.R)
		case *schemelet.String:
			b.WriteByte('"')
			b.Write(x.Bytes)
			b.WriteByte('"')
		case *schemelet.Pair:
			b.WriteByte('(')
			writeValue(b, x.Car)
			rest := x.Cdr
			for {
				if schemelet.IsNil(rest) {
					break
				}
				p, ok := rest.(*schemelet.Pair)
				if !ok {
					b.WriteString(" . ")
					writeValue(b, rest)
					break
				}
				b.WriteByte(' ')
				writeValue(b, p.Car)
				rest = p.Cdr
			}
			b.WriteByte(')')
		case *schemelet.Vector:
			b.WriteString("#(")
			for i, item := range x.Items {
				if i > 0 {
					b.WriteByte(' ')
				}
				writeValue(b, item)
			}
			b.WriteByte(')')
		case *schemelet.Closure:
			b.WriteString("#<closure>")
		case *schemelet.Procedure:
			fmt.Fprintf(b, "#<procedure %s>", x.Name)
		case *schemelet.Continuation:
			b.WriteString("#<continuation>")
		case *schemelet.Port:
			b.WriteString("#<port>")
		default:
			fmt.Fprintf(b, "#<%v>", v)
		}
	}
}
