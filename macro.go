package schemelet

import "errors"

var errMacro = errors.New("schemelet: macro expansion error")

// MacroExpand rewrites each top-level form of v by applying the
// user-installed `macro-expander` closure to it, one form at a time.
// If no such binding exists in the top environment, v is returned
// unchanged — macro expansion is opt-in.
//
// Each form is annotated (wrapped with its source position, see
// annotate.go) before being handed to the expander closure, and the
// expander's output is unannotated afterward so positions survive a
// macro that passes its argument through unchanged or reuses pieces
// of it.
//
// The re-entrant hazard this function has to defend against: driving
// the expander closure means stepping a Continuation to completion,
// and a native procedure invoked along the way (including the
// expander itself, by calling back into the host) might trigger a GC.
// The remaining, not-yet-processed tail of v is reachable only from
// this Go stack frame's local variable at that point — invisible to
// the collector — so it's pinned for the duration.
func (ctx *Context) MacroExpand(v Value) (Value, error) {
	expanderVal, ok := ctx.topEnv.findSymbol(ctx.Sym("macro-expander"))
	if !ok {
		return v, nil
	}
	expander, ok := expanderVal.(*Closure)
	if !ok {
		ctx.SetError(ErrBadMacroExpander, expanderVal)
		return nil, errMacro
	}

	newPositions := make(map[Value]FilePos)
	var result Value = ctx.Nil()

	cur := v
	for {
		p, ok := cur.(*Pair)
		if !ok {
			break
		}

		annotated := ctx.annotate(p.Car)
		frame, err := ctx.applyClosure(expander, ctx.MakePair(annotated, ctx.Nil()))
		if err != nil {
			return nil, err
		}

		rest := p.Cdr
		ctx.Pin(rest)

		c := ctx.makeContinuation([]Frame{frame}, nil)
		for len(c.Frames) > 0 {
			ctx.step(c)
			if ctx.HasError() {
				ctx.Unpin(rest)
				sym, param, _ := ctx.GetError()
				return nil, &SchemeError{Symbol: sym.Name, Param: param, Pos: ctx.PosOf(param)}
			}
		}
		ctx.Unpin(rest)

		if len(c.Stack) != 1 {
			ctx.SetError(ErrBadMacroExpander, expanderVal)
			return nil, errMacro
		}

		expanded, err := ctx.unannotate(c.Stack[0], newPositions)
		if err != nil {
			return nil, err
		}

		result = ctx.MakePair(expanded, result)
		cur = rest
	}

	for val, pos := range newPositions {
		ctx.positions[val] = pos
	}

	return reverseList(result, ctx.Nil()), nil
}

// reverseList destructively reverses the proper list v onto tail.
// It's safe to mutate in place here because every Pair involved was
// just constructed by the caller and isn't reachable from anywhere
// else yet.
func reverseList(v, tail Value) Value {
	for {
		p, ok := v.(*Pair)
		if !ok {
			return tail
		}
		cdr := p.Cdr
		p.Cdr = tail
		if _, ok := cdr.(*Pair); !ok {
			return p
		}
		tail = p
		v = cdr
	}
}
