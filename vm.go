package schemelet

// step executes exactly one instruction of the frame on top of c.
// When that frame's instruction pointer has reached the end of its
// Code, step pops the frame (an implicit return — there is no
// explicit return opcode) and does nothing else; the frame's result,
// if any, is already sitting on the shared operand stack.
func (ctx *Context) step(c *Continuation) {
	if len(c.Frames) == 0 {
		return
	}

	fi := len(c.Frames) - 1
	f := &c.Frames[fi]
	code := f.Closure.Code

	if f.IP >= len(code.Ops) {
		c.Frames = c.Frames[:fi]
		return
	}

	op := code.Ops[f.IP]
	f.IP++

	ctx.currentContinuation = c
	defer func() { ctx.currentContinuation = nil }()

	push := func(v Value) { c.Stack = append(c.Stack, v) }
	pop := func() Value {
		v := c.Stack[len(c.Stack)-1]
		c.Stack = c.Stack[:len(c.Stack)-1]
		return v
	}

	switch op.Type {
	case OpPush:
		push(op.Value)

	case OpPop:
		pop()

	case OpLookup:
		sym := op.Value.(*Symbol)
		v, ok := f.Env.findSymbol(sym)
		if !ok {
			ctx.SetError(ErrUnboundVariable, sym)
			return
		}
		push(v)

	case OpLambda:
		push(ctx.makeClosure(f.Env, op.Value.(*Code)))

	case OpDefine:
		sym := op.Value.(*Symbol)
		top := c.Stack[len(c.Stack)-1]
		f.Env.setSymbolLocal(sym, top)
		c.Stack[len(c.Stack)-1] = ctx.Nil()

	case OpSet:
		sym := op.Value.(*Symbol)
		top := c.Stack[len(c.Stack)-1]
		f.Env.setSymbol(sym, top)
		c.Stack[len(c.Stack)-1] = ctx.Nil()

	case OpSkipIfFalse:
		top := pop()
		if top == ctx.falseValue {
			f.IP += op.I
		}

	case OpSkip:
		f.IP += op.I

	case OpCons:
		cdr := pop()
		car := pop()
		push(ctx.MakePair(car, cdr))

	case OpSplicing:
		tail := pop()
		list := pop()
		push(ctx.appendList(list, tail))

	case OpApply, OpTailApply:
		var args Value = ctx.Nil()
		for i := 0; i < op.I; i++ {
			args = ctx.MakePair(pop(), args)
		}
		callee := pop()
		if op.Type == OpTailApply {
			// Discard the current frame before dispatching so a
			// self-tail-recursive loop runs in constant frame space
			// instead of growing one frame per call.
			c.Frames = c.Frames[:fi]
		}
		ctx.apply(c, callee, args)
	}
}

// appendList non-destructively prepends the proper list x onto y,
// copying x's spine. Used by the SPLICING opcode (unquote-splicing)
// and nowhere else.
func (ctx *Context) appendList(x, y Value) Value {
	p, ok := x.(*Pair)
	if !ok {
		return y
	}
	return ctx.MakePair(p.Car, ctx.appendList(p.Cdr, y))
}

// Run drives c to completion by stepping until its frame stack is
// empty or an error becomes pending. It returns the final single
// value left on c's operand stack, which the last frame's return
// sequence leaves there.
func (ctx *Context) Run(c *Continuation) (Value, error) {
	for len(c.Frames) > 0 {
		ctx.step(c)
		if ctx.HasError() {
			sym, param, _ := ctx.GetError()
			return nil, &SchemeError{Symbol: sym.Name, Param: param, Pos: ctx.PosOf(param)}
		}
	}
	if len(c.Stack) == 0 {
		return ctx.Nil(), nil
	}
	return c.Stack[len(c.Stack)-1], nil
}
