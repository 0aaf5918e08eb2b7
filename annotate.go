package schemelet

// annotate/unannotate let the macro expander's user-level Scheme
// closure see and preserve source positions without the core Value
// union needing a dedicated "annotated" variant: a position is just
// wrapped into the ordinary Pair graph.
//
// annotate(v) rewrites v into:
//   - ((annotate(car) . annotate(cdr)) . posInfo)   if v is a Pair
//   - (v . posInfo)                                  otherwise
//
// where posInfo is `(file . cursor)` if ctx has a recorded position
// for v, or Nil if it doesn't. unannotate reverses this, and as it
// does, it repopulates a fresh position side-table keyed by the
// *new* values it builds (positions don't survive macro rewriting
// unless unannotate reattaches them to whatever the macro's output
// reuses from its input).

func (ctx *Context) annotate(v Value) Value {
	var posInfo Value = ctx.Nil()
	if pos, ok := ctx.positions[v]; ok {
		var file Value = ctx.Nil()
		if pos.File != nil {
			file = pos.File
		}
		posInfo = ctx.MakePair(file, ctx.MakeInteger(int64(pos.Cursor)))
	}

	if p, ok := v.(*Pair); ok {
		inner := ctx.MakePair(ctx.annotate(p.Car), ctx.annotate(p.Cdr))
		return ctx.MakePair(inner, posInfo)
	}
	return ctx.MakePair(v, posInfo)
}

// unannotate reverses annotate. It returns an error (via
// ctx.SetError(ErrUnannotateFailed, v) and a non-nil error value) if
// v isn't a Pair, since anything annotate produced is one; this can
// only happen if a macro discarded the position wrapper entirely
// instead of passing its input through unchanged or rebuilding it
// with cons. newPositions accumulates FilePos entries for the values
// unannotate constructs, which the caller merges into ctx.positions
// once the whole macro-expanded form has been unwrapped.
func (ctx *Context) unannotate(v Value, newPositions map[Value]FilePos) (Value, error) {
	p, ok := v.(*Pair)
	if !ok {
		ctx.SetError(ErrUnannotateFailed, v)
		return nil, errUnannotate
	}

	var pos FilePos
	if posPair, ok := p.Cdr.(*Pair); ok {
		if sym, ok := posPair.Car.(*Symbol); ok {
			pos.File = sym
		}
		if n, ok := posPair.Cdr.(*Number); ok {
			pos.Cursor = int(n.F)
			pos.Line = 1 // cursor-only provenance; exact line is not recoverable post-rewrite
		}
	}

	var ret Value
	if inner, ok := p.Car.(*Pair); ok {
		car, err := ctx.unannotate(inner.Car, newPositions)
		if err != nil {
			return nil, err
		}
		cdr, err := ctx.unannotate(inner.Cdr, newPositions)
		if err != nil {
			return nil, err
		}
		ret = ctx.MakePair(car, cdr)
	} else {
		ret = p.Car
	}

	if pos.Line != 0 {
		newPositions[ret] = pos
	}
	return ret, nil
}
