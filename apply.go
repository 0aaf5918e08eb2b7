package schemelet

// errApply signals that applyClosure already recorded a pending
// Context error (bad-argument-count); callers just need to
// distinguish "stop, an error is pending" from a normal return.
var errApply = errParse

// apply dispatches a single call for the OpApply/OpTailApply opcodes
// and is also what Context.Apply (the native-procedure-facing public
// entry point) delegates to:
//
//   - PROCEDURE: call straight through; push the result unless it's
//     the Omitted sentinel.
//   - CLOSURE: push a new frame for the surrounding VM loop to step
//     into; nothing is pushed onto the stack yet.
//   - CONTINUATION: overwrite c's frames and stack with the stored
//     snapshot (this is what makes call/cc's continuations
//     reentrant), then push the single argument given.
func (ctx *Context) apply(c *Continuation, callee Value, args Value) {
	switch callee := callee.(type) {
	case *Procedure:
		result := callee.Fn(ctx, args)
		if ctx.HasError() {
			return
		}
		if result != ctx.omittedValue {
			c.Stack = append(c.Stack, result)
		}

	case *Closure:
		frame, err := ctx.applyClosure(callee, args)
		if err != nil {
			return
		}
		c.Frames = append(c.Frames, frame)

	case *Continuation:
		snap := callee.snapshot()
		c.Frames = snap.Frames
		c.Stack = snap.Stack
		var arg Value = ctx.Nil()
		if p, ok := args.(*Pair); ok {
			arg = p.Car
		}
		c.Stack = append(c.Stack, arg)

	default:
		ctx.SetError(ErrNotCallable, callee)
	}
}

// applyClosure binds args positionally against c.Code.Formals (and,
// if present, the remainder against c.Code.Rest), in a fresh Env
// parented to the closure's captured environment, and returns the
// Frame ready to execute c.Code from instruction 0.
func (ctx *Context) applyClosure(c *Closure, args Value) (Frame, error) {
	env := ctx.makeEnv(c.Env)
	code := c.Code

	for _, formal := range code.Formals {
		p, ok := args.(*Pair)
		if !ok {
			ctx.SetError(ErrBadArgumentCount, args)
			return Frame{}, errApply
		}
		env.setSymbolLocal(formal, p.Car)
		args = p.Cdr
	}

	if code.Rest != nil {
		env.setSymbolLocal(code.Rest, args)
	} else if !IsNil(args) {
		ctx.SetError(ErrBadArgumentCount, args)
		return Frame{}, errApply
	}

	return Frame{Env: env, Closure: c, IP: 0}, nil
}

// Apply is the embedding API's apply(): it lets a native procedure
// invoke another callable value as part of its own work. It is only
// valid while a native procedure is executing (i.e. from inside a
// NativeFunc) — calling it with no VM step in progress is a host bug
// and panics.
//
// A native procedure that calls Apply should return ctx.Omitted() so
// the VM doesn't also push whatever Apply's caller happens to leave
// as a Go return value: for a CLOSURE callee, Apply only pushes a new
// frame — the result isn't known yet — and for a PROCEDURE or
// CONTINUATION callee, Apply has already pushed the result itself.
func (ctx *Context) Apply(callee, args Value) {
	if ctx.currentContinuation == nil {
		panic("schemelet: Apply called outside of a native procedure")
	}
	ctx.apply(ctx.currentContinuation, callee, args)
}
