package schemelet

// Compile lowers a top-level form (normally the result of
// MacroExpand) into a Code block: a flat instruction stream plus the
// (empty, for a top-level program) formal parameter list.
func (ctx *Context) Compile(v Value) (*Code, error) {
	code := ctx.makeCode()
	ctx.compileBegin(code, v)
	if ctx.HasError() {
		sym, param, _ := ctx.GetError()
		return nil, &SchemeError{Symbol: sym.Name, Param: param, Pos: ctx.PosOf(param)}
	}
	tailAnalyze(code)
	return code, nil
}

// compileBegin compiles a sequence of forms, discarding every
// intermediate result (via POP) except the last, which is left on the
// stack. An empty sequence compiles to PUSH NIL: a begin with nothing
// in it evaluates to nil.
func (ctx *Context) compileBegin(code *Code, v Value) {
	wrote := false
	for {
		p, ok := v.(*Pair)
		if !ok {
			break
		}
		if wrote {
			code.emit(OpPop, 0, nil, ctx.PosOf(v))
		}
		ctx.compile(code, p.Car)
		if ctx.HasError() {
			return
		}
		wrote = true
		v = p.Cdr
	}
	if !wrote {
		code.emit(OpPush, 0, ctx.Nil(), ctx.PosOf(v))
	}
}

// compile lowers a single form into code. Symbols compile to a
// variable lookup; anything else that isn't a Pair is a self-quoting
// literal; Pairs are either one of the seven special forms (begin,
// quote, quasiquote, set!, define, lambda, if) or an application.
func (ctx *Context) compile(code *Code, v Value) {
	if sym, ok := v.(*Symbol); ok {
		code.emit(OpLookup, 0, sym, ctx.PosOf(v))
		return
	}

	p, ok := v.(*Pair)
	if !ok {
		code.emit(OpPush, 0, v, ctx.PosOf(v))
		return
	}

	var cdr, cddr, cdddr *Pair
	if x, ok := p.Cdr.(*Pair); ok {
		cdr = x
	}
	if cdr != nil {
		if x, ok := cdr.Cdr.(*Pair); ok {
			cddr = x
		}
	}
	if cddr != nil {
		if x, ok := cddr.Cdr.(*Pair); ok {
			cdddr = x
		}
	}

	car := p.Car
	var cadr, caddr, cadddr Value
	if cdr != nil {
		cadr = cdr.Car
	}
	if cddr != nil {
		caddr = cddr.Car
	}
	if cdddr != nil {
		cadddr = cdddr.Car
	}

	if sym, ok := car.(*Symbol); ok {
		switch sym.Name {
		case "begin":
			ctx.compileBegin(code, p.Cdr)
			return

		case "quote":
			if cadr == nil {
				ctx.SetError(ErrBadSyntax, v)
				return
			}
			code.emit(OpPush, 0, cadr, ctx.PosOf(v))
			return

		case "quasiquote":
			if cadr == nil {
				ctx.SetError(ErrBadSyntax, v)
				return
			}
			ctx.compileQuasiquote(code, cadr)
			return

		case "set!":
			if cadr == nil || caddr == nil {
				ctx.SetError(ErrBadSyntax, v)
				return
			}
			ctx.compile(code, caddr)
			if ctx.HasError() {
				return
			}
			code.emit(OpSet, 0, cadr, ctx.PosOf(v))
			return

		case "define":
			if cadr == nil || caddr == nil {
				ctx.SetError(ErrBadSyntax, v)
				return
			}
			ctx.compile(code, caddr)
			if ctx.HasError() {
				return
			}
			code.emit(OpDefine, 0, cadr, ctx.PosOf(v))
			return

		case "lambda":
			if cadr == nil {
				ctx.SetError(ErrBadSyntax, v)
				return
			}
			code2 := ctx.makeCode()

			arg := cadr
			for {
				ap, ok := arg.(*Pair)
				if !ok {
					break
				}
				formal, ok := ap.Car.(*Symbol)
				if !ok {
					ctx.SetError(ErrBadSyntax, v)
					return
				}
				code2.Formals = append(code2.Formals, formal)
				arg = ap.Cdr
			}
			if !IsNil(arg) {
				rest, ok := arg.(*Symbol)
				if !ok {
					ctx.SetError(ErrBadSyntax, v)
					return
				}
				code2.Rest = rest
			}

			var body Value = ctx.Nil()
			if cdr != nil {
				body = cdr.Cdr
			}
			ctx.compileBegin(code2, body)
			if ctx.HasError() {
				return
			}
			tailAnalyze(code2)

			code.emit(OpLambda, 0, code2, ctx.PosOf(v))
			return

		case "if":
			if cadr == nil || caddr == nil {
				ctx.SetError(ErrBadSyntax, v)
				return
			}
			ctx.compile(code, cadr)
			if ctx.HasError() {
				return
			}

			p0 := len(code.Ops)
			code.emit(OpSkipIfFalse, 0, nil, ctx.PosOf(v))

			ctx.compile(code, caddr)
			if ctx.HasError() {
				return
			}

			p1 := len(code.Ops)
			code.emit(OpSkip, 0, nil, ctx.PosOf(v))

			if cadddr == nil {
				code.emit(OpPush, 0, ctx.Nil(), ctx.PosOf(v))
			} else {
				ctx.compile(code, cadddr)
				if ctx.HasError() {
					return
				}
			}

			p2 := len(code.Ops)
			code.Ops[p0].I = p1 - p0
			code.Ops[p1].I = p2 - p1 - 1
			return
		}
	}

	// Eval-apply: compile the callee, then each argument in order,
	// then APPLY with the argument count as its operand.
	ctx.compile(code, car)
	if ctx.HasError() {
		return
	}

	rest := p.Cdr
	n := 0
	for {
		rp, ok := rest.(*Pair)
		if !ok {
			break
		}
		ctx.compile(code, rp.Car)
		if ctx.HasError() {
			return
		}
		n++
		rest = rp.Cdr
	}

	code.emit(OpApply, n, nil, ctx.PosOf(v))
}

// compileQuasiquote lowers a quasiquote template into code that
// rebuilds the corresponding value at run time, descending into
// unquote and unquote-splicing forms as ordinary expressions to
// compile. It returns true when v is itself an unquote-splicing form,
// telling the caller (compiling the enclosing pair) to use SPLICING
// instead of CONS to attach it — splicing happens only one level
// deep.
func (ctx *Context) compileQuasiquote(code *Code, v Value) bool {
	p, ok := v.(*Pair)
	if !ok {
		code.emit(OpPush, 0, v, ctx.PosOf(v))
		return false
	}

	if sym, ok := p.Car.(*Symbol); ok {
		switch sym.Name {
		case "unquote":
			inner, ok := p.Cdr.(*Pair)
			if !ok {
				ctx.SetError(ErrBadSyntax, v)
				return false
			}
			ctx.compile(code, inner.Car)
			return false

		case "unquote-splicing":
			inner, ok := p.Cdr.(*Pair)
			if !ok {
				ctx.SetError(ErrBadSyntax, v)
				return false
			}
			ctx.compile(code, inner.Car)
			return true
		}
	}

	spliced := ctx.compileQuasiquote(code, p.Car)
	if ctx.HasError() {
		return false
	}
	ctx.compileQuasiquote(code, p.Cdr)
	if ctx.HasError() {
		return false
	}

	if spliced {
		code.emit(OpSplicing, 0, nil, ctx.PosOf(v))
	} else {
		code.emit(OpCons, 0, nil, ctx.PosOf(v))
	}
	return false
}

// testTailing reports whether instruction i, followed purely by
// unconditional/conditional jumps, always runs off the end of code —
// meaning an APPLY at the position that jumps here is in tail
// position.
func testTailing(code *Code, i int) bool {
	if i >= len(code.Ops) {
		return true
	}
	op := code.Ops[i]
	switch op.Type {
	case OpSkip:
		return testTailing(code, i+1+op.I)
	case OpSkipIfFalse:
		return testTailing(code, i+1) && testTailing(code, i+1+op.I)
	default:
		return false
	}
}

// tailAnalyze upgrades every APPLY immediately followed by nothing
// but control-flow jumps to the end of code into TAIL_APPLY.
func tailAnalyze(code *Code) {
	for i := range code.Ops {
		if code.Ops[i].Type == OpApply && testTailing(code, i+1) {
			code.Ops[i].Type = OpTailApply
		}
	}
}
