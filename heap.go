package schemelet

// Context owns every heap-allocated Value reachable from a running
// program: the symbol table, the singleton objects, the top-level
// environment, the pending error (if any), and the bookkeeping the
// mark-and-sweep collector needs. A Context is not safe for
// concurrent use from multiple goroutines.
type Context struct {
	config *Config

	syms *symbolTable

	// values holds every heap object the Context has ever allocated
	// that hasn't been swept yet. Order is allocation order; sweep
	// compacts it in place.
	values []Value

	topEnv *Env

	nilValue     *Nil
	trueValue    *Boolean
	falseValue   *Boolean
	omittedValue *Omitted

	// pending is the sticky (symbol, param, continuation) error
	// triple. Setting it while one is already pending is a caller bug
	// (see SetError).
	pending *schemeError

	currentContinuation *Continuation

	allocSinceGC int

	// positions is the FilePos side-table the reader populates (see
	// reader.go) and annotate.go and PosOf (pos.go) consult for
	// diagnostics.
	// Keeping positions out-of-band means any value constructed by
	// host code, a macro, or the compiler simply has no entry here,
	// rather than needing a position field it can't fill in.
	positions map[Value]FilePos
}

// NewContext constructs a Context with its singletons, top-level
// environment, and standard library already installed.
func NewContext() *Context {
	ctx := &Context{
		config:    NewConfig(),
		syms:      newSymbolTable(),
		positions: make(map[Value]FilePos),
	}

	ctx.nilValue = &Nil{}
	ctx.trueValue = &Boolean{B: true}
	ctx.falseValue = &Boolean{B: false}
	ctx.omittedValue = &Omitted{}
	ctx.registerValue(ctx.nilValue)
	ctx.registerValue(ctx.trueValue)
	ctx.registerValue(ctx.falseValue)
	ctx.registerValue(ctx.omittedValue)

	ctx.topEnv = ctx.makeEnv(nil)
	ctx.initStandardLibrary()

	return ctx
}

// registerValue adds v to the set of objects the collector tracks and
// returns it, so constructors can be written as
// `return ctx.registerValue(&Pair{...}).(*Pair)`-shaped one-liners.
func (ctx *Context) registerValue(v Value) Value {
	ctx.values = append(ctx.values, v)
	ctx.allocSinceGC++
	return v
}

// --- singletons ----------------------------------------------------

func (ctx *Context) Nil() Value     { return ctx.nilValue }
func (ctx *Context) True() Value    { return ctx.trueValue }
func (ctx *Context) False() Value   { return ctx.falseValue }
func (ctx *Context) Omitted() Value { return ctx.omittedValue }

func (ctx *Context) Boolean(b bool) Value {
	if b {
		return ctx.trueValue
	}
	return ctx.falseValue
}

// TopEnv returns the Context's top-level (global) environment.
func (ctx *Context) TopEnv() *Env { return ctx.topEnv }

// --- symbols ---------------------------------------------------------

// Sym interns name case-insensitively, the default the reader uses
// for ordinary identifiers.
func (ctx *Context) Sym(name string) *Symbol {
	s, isNew := ctx.syms.intern(name)
	if isNew {
		ctx.registerValue(s)
	}
	return s
}

// SymCase interns name case-sensitively.
func (ctx *Context) SymCase(name string) *Symbol {
	s, isNew := ctx.syms.internCase(name)
	if isNew {
		ctx.registerValue(s)
	}
	return s
}

// --- constructors ----------------------------------------------------

func (ctx *Context) MakePair(car, cdr Value) *Pair {
	p := &Pair{Car: car, Cdr: cdr}
	ctx.registerValue(p)
	return p
}

func (ctx *Context) MakeNumber(f float64) *Number {
	n := &Number{F: f}
	ctx.registerValue(n)
	return n
}

// MakeInteger is a convenience constructor storing a whole float64;
// the interpreter has no separate integer representation, so integers
// and reals share one Number variant.
func (ctx *Context) MakeInteger(i int64) *Number {
	return ctx.MakeNumber(float64(i))
}

func (ctx *Context) MakeChar(r rune) *Char {
	c := &Char{R: r}
	ctx.registerValue(c)
	return c
}

func (ctx *Context) MakeString(s string) *String {
	v := &String{Bytes: []byte(s)}
	ctx.registerValue(v)
	return v
}

func (ctx *Context) MakeVector(items []Value) *Vector {
	v := &Vector{Items: items}
	ctx.registerValue(v)
	return v
}

func (ctx *Context) makeEnv(parent *Env) *Env {
	e := &Env{Parent: parent, Bindings: make(map[*Symbol]Value)}
	ctx.registerValue(e)
	return e
}

func (ctx *Context) makeCode() *Code {
	c := &Code{}
	ctx.registerValue(c)
	return c
}

func (ctx *Context) makeClosure(env *Env, code *Code) *Closure {
	c := &Closure{Env: env, Code: code}
	ctx.registerValue(c)
	return c
}

// MakeProcedure wraps fn as a callable native procedure named name
// (used only for diagnostics).
func (ctx *Context) MakeProcedure(name string, fn NativeFunc) *Procedure {
	p := &Procedure{Name: name, Fn: fn}
	ctx.registerValue(p)
	return p
}

func (ctx *Context) makeContinuation(frames []Frame, stack []Value) *Continuation {
	if stack == nil {
		stack = make([]Value, 0, ctx.config.VMInitialStackCapacity)
	}
	c := &Continuation{Frames: frames, Stack: stack}
	ctx.registerValue(c)
	return c
}

func (ctx *Context) makePort(impl PortImpl) *Port {
	p := &Port{Impl: impl}
	ctx.registerValue(p)
	return p
}

// --- pinning ---------------------------------------------------------

// Pin marks v as rooted independently of the live graph, so it
// survives a GC that happens to run while the only reference to it is
// a plain Go local variable the collector can't see — the re-entrant
// macro-expansion hazard exercised by TestMacroExpandSurvivesGC. Every
// Pin must be matched by an Unpin.
func (ctx *Context) Pin(v Value) {
	if v == nil {
		return
	}
	v.header().pins++
}

// Unpin releases one Pin on v.
func (ctx *Context) Unpin(v Value) {
	if v == nil {
		return
	}
	h := v.header()
	if h.pins > 0 {
		h.pins--
	}
}

// --- error state -------------------------------------------------------

// HasError reports whether a Scheme-level error is pending.
func (ctx *Context) HasError() bool { return ctx.pending != nil }

// GetError returns the pending error's (symbol, param, continuation)
// triple. It panics if no error is pending.
func (ctx *Context) GetError() (*Symbol, Value, *Continuation) {
	if ctx.pending == nil {
		panic("schemelet: GetError called with no pending error")
	}
	return ctx.pending.Symbol, ctx.pending.Param, ctx.pending.Continuation
}

// ClearError clears the pending error, if any.
func (ctx *Context) ClearError() {
	ctx.pending = nil
}

// SetError raises a Scheme-level error: symbol names the condition
// (e.g. "undefined-identifier"), param carries whatever value gives it
// context (may be nil). Calling SetError while an error is already
// pending is a host bug and panics: error state is never silently
// overwritten.
func (ctx *Context) SetError(symbol string, param Value) {
	if ctx.pending != nil {
		panic("schemelet: SetError called while an error is already pending")
	}
	ctx.pending = &schemeError{
		Symbol:       ctx.Sym(symbol),
		Param:        param,
		Continuation: ctx.currentContinuation,
	}
}

// --- garbage collection ------------------------------------------------

// GC runs a full stop-the-world mark-and-sweep collection. Roots are:
// the top-level environment (which keeps any installed macro expander
// reachable, since it's just a binding there), the four singletons,
// the pending error's param and continuation (if any), the active
// continuation, and every value with a positive pin count. Unreached
// Port values are closed during sweep. Afterward the allocation
// threshold that triggers the next collection is rescaled by
// GCGrowthFactorPercent.
func (ctx *Context) GC() {
	for _, v := range ctx.values {
		v.header().marked = false
	}

	var mark func(v Value)
	mark = func(v Value) {
		if v == nil {
			return
		}
		h := v.header()
		if h.marked {
			return
		}
		h.marked = true
		v.(interface{ markChildren(func(Value)) }).markChildren(mark)
	}

	markCont := func(c *Continuation) {
		if c != nil {
			mark(c)
		}
	}

	mark(ctx.topEnv)
	mark(ctx.nilValue)
	mark(ctx.trueValue)
	mark(ctx.falseValue)
	mark(ctx.omittedValue)
	if ctx.pending != nil {
		mark(ctx.pending.Symbol)
		mark(ctx.pending.Param)
		markCont(ctx.pending.Continuation)
	}
	markCont(ctx.currentContinuation)
	for _, v := range ctx.values {
		if v.header().pins > 0 {
			mark(v)
		}
	}

	kept := ctx.values[:0]
	for _, v := range ctx.values {
		h := v.header()
		if h.marked {
			kept = append(kept, v)
			continue
		}
		if port, ok := v.(*Port); ok {
			port.Impl.Close()
		}
		if sym, ok := v.(*Symbol); ok {
			ctx.syms.delete(sym)
		}
		delete(ctx.positions, v)
	}
	ctx.values = kept
	ctx.allocSinceGC = 0
	ctx.config.GCAllocationThreshold = ctx.config.GCAllocationThreshold * ctx.config.GCGrowthFactorPercent / 100
}

// maybeGC triggers a collection once enough allocations have
// accumulated since the last one, per config.GCAllocationThreshold.
// Execute calls it once after each successful run; other collections
// happen only through explicit Context.GC calls from the host.
func (ctx *Context) maybeGC() {
	if ctx.allocSinceGC >= ctx.config.GCAllocationThreshold {
		ctx.GC()
	}
}
