package schemelet

// Execute is the top-level embedding entry point: it reads every
// top-level form out of source, macro-expands, compiles, and runs
// them in turn, returning the value of the last form. file names the
// source for diagnostics (see FilePos); pass nil for anonymous input
// such as a single REPL line.
//
// On error, Execute clears the Context's pending error after
// translating it into the returned *SchemeError, so the Context is
// immediately reusable for the next call — mirroring how a REPL loop
// wants one bad line to not wedge the session.
func (ctx *Context) Execute(source []byte, file *Symbol) (Value, error) {
	reader := NewReader(ctx, source, file)

	forms, err := reader.ParseSExpList()
	if err != nil {
		return nil, ctx.takeError(err)
	}

	var body Value = ctx.Nil()
	for i := len(forms) - 1; i >= 0; i-- {
		body = ctx.MakePair(forms[i], body)
	}

	expanded, err := ctx.MacroExpand(body)
	if err != nil {
		return nil, ctx.takeError(err)
	}

	code, err := ctx.Compile(expanded)
	if err != nil {
		return nil, ctx.takeError(err)
	}

	cont := ctx.makeContinuation([]Frame{{Env: ctx.topEnv, Closure: ctx.makeClosure(ctx.topEnv, code), IP: 0}}, nil)
	result, err := ctx.Run(cont)
	if err != nil {
		return nil, ctx.takeError(err)
	}

	ctx.maybeGC()
	return result, nil
}

// ExecuteString is a convenience wrapper around Execute for host code
// that already has source as a string rather than a byte slice.
func (ctx *Context) ExecuteString(source string, file *Symbol) (Value, error) {
	return ctx.Execute([]byte(source), file)
}

// takeError converts whatever error a reading/expanding/compiling/
// running stage returned into the host-facing *SchemeError, clearing
// the Context's pending error in the process. The conversion keys on
// the pending Context error, not on which error value the stage
// returned (a sentinel such as errParse, or a *SchemeError from
// Compile or Run); if no Context error is pending, err is returned
// unchanged.
func (ctx *Context) takeError(err error) error {
	if !ctx.HasError() {
		return err
	}
	sym, param, _ := ctx.GetError()
	se := &SchemeError{Symbol: sym.Name, Param: param, Pos: ctx.PosOf(param)}
	ctx.ClearError()
	return se
}
