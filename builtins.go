package schemelet

import "os"

// match validates args (a proper list) against pattern, one type code
// per character: p=pair, n=number, b=boolean, s=symbol, q=callable
// (closure or procedure), w=code, o=port, c=char, l=list (nil or
// pair), .=anything. It sets a (bad-argument-type, <expecting-X
// symbol>) or (bad-argument-count, <too-few|too-many>) error and
// returns false on mismatch. Every native procedure below calls this
// before touching its arguments.
func match(ctx *Context, pattern string, args Value) bool {
	for i := 0; i < len(pattern); i++ {
		p, ok := args.(*Pair)
		if !ok {
			ctx.SetError(ErrBadArgumentCount, ctx.Sym("too-few"))
			return false
		}

		var expect string
		switch pattern[i] {
		case 'p':
			if !IsPair(p.Car) {
				expect = "expecting-pair"
			}
		case 'n':
			if !IsNumber(p.Car) {
				expect = "expecting-number"
			}
		case 'b':
			if !IsBoolean(p.Car) {
				expect = "expecting-boolean"
			}
		case 's':
			if !IsSymbol(p.Car) {
				expect = "expecting-symbol"
			}
		case 'q':
			if !IsCallable(p.Car) {
				expect = "expecting-closure"
			}
		case 'w':
			if _, ok := p.Car.(*Code); !ok {
				expect = "expecting-code"
			}
		case 'o':
			if _, ok := p.Car.(*Port); !ok {
				expect = "expecting-port"
			}
		case 'c':
			if _, ok := p.Car.(*Char); !ok {
				expect = "expecting-char"
			}
		case 'l':
			if !IsPair(p.Car) && !IsNil(p.Car) {
				expect = "expecting-list"
			}
		}
		if expect != "" {
			ctx.SetError(ErrBadArgument, ctx.Sym(expect))
			return false
		}

		args = p.Cdr
	}

	if !IsNil(args) {
		ctx.SetError(ErrBadArgumentCount, ctx.Sym("too-many"))
		return false
	}
	return true
}

func arg(args Value, n int) Value {
	for ; n > 0; n-- {
		args = args.(*Pair).Cdr
	}
	return args.(*Pair).Car
}

func (ctx *Context) installProc(name string, fn NativeFunc) {
	ctx.topEnv.setSymbolLocal(ctx.Sym(name), ctx.MakeProcedure(name, fn))
}

// initStandardLibrary installs the top-level environment's native
// procedure bindings: pairs, arithmetic, comparison, predicates,
// control, and the standard ports.
func (ctx *Context) initStandardLibrary() {
	ctx.installProc("cons", func(ctx *Context, args Value) Value {
		if !match(ctx, "..", args) {
			return nil
		}
		return ctx.MakePair(arg(args, 0), arg(args, 1))
	})
	ctx.installProc("car", func(ctx *Context, args Value) Value {
		if !match(ctx, "p", args) {
			return nil
		}
		return arg(args, 0).(*Pair).Car
	})
	ctx.installProc("cdr", func(ctx *Context, args Value) Value {
		if !match(ctx, "p", args) {
			return nil
		}
		return arg(args, 0).(*Pair).Cdr
	})
	ctx.installProc("set-car!", func(ctx *Context, args Value) Value {
		if !match(ctx, "p.", args) {
			return nil
		}
		arg(args, 0).(*Pair).Car = arg(args, 1)
		return ctx.Nil()
	})
	ctx.installProc("set-cdr!", func(ctx *Context, args Value) Value {
		if !match(ctx, "p.", args) {
			return nil
		}
		arg(args, 0).(*Pair).Cdr = arg(args, 1)
		return ctx.Nil()
	})
	ctx.installProc("add2", numericBinop(func(a, b float64) float64 { return a + b }))
	ctx.installProc("sub2", numericBinop(func(a, b float64) float64 { return a - b }))
	ctx.installProc("mul2", numericBinop(func(a, b float64) float64 { return a * b }))
	ctx.installProc("div2", func(ctx *Context, args Value) Value {
		if !match(ctx, "nn", args) {
			return nil
		}
		a := arg(args, 0).(*Number).F
		b := arg(args, 1).(*Number).F
		if b == 0 {
			ctx.SetError(ErrDivisionByZero, arg(args, 0))
			return nil
		}
		return ctx.MakeNumber(a / b)
	})
	ctx.installProc("<", numericCompare(func(a, b float64) bool { return a < b }))
	ctx.installProc(">", numericCompare(func(a, b float64) bool { return a > b }))
	ctx.installProc("<=", numericCompare(func(a, b float64) bool { return a <= b }))
	ctx.installProc(">=", numericCompare(func(a, b float64) bool { return a >= b }))
	ctx.installProc("=", numericCompare(func(a, b float64) bool { return a == b }))
	ctx.installProc("eq?", func(ctx *Context, args Value) Value {
		if !match(ctx, "..", args) {
			return nil
		}
		return ctx.Boolean(arg(args, 0) == arg(args, 1))
	})

	ctx.installProc("null?", predicate(IsNil))
	ctx.installProc("pair?", predicate(IsPair))
	ctx.installProc("boolean?", predicate(IsBoolean))
	ctx.installProc("number?", predicate(IsNumber))
	ctx.installProc("symbol?", predicate(IsSymbol))
	ctx.installProc("port?", predicate(func(v Value) bool { _, ok := v.(*Port); return ok }))

	ctx.installProc("assert", func(ctx *Context, args Value) Value {
		if !match(ctx, "b", args) {
			return nil
		}
		if arg(args, 0) == ctx.falseValue {
			ctx.SetError(ErrUserError, ctx.MakeString("assertion failed"))
			return nil
		}
		return ctx.Nil()
	})
	ctx.installProc("error", func(ctx *Context, args Value) Value {
		if !match(ctx, "s.", args) {
			return nil
		}
		ctx.SetError(arg(args, 0).(*Symbol).Name, arg(args, 1))
		return nil
	})
	ctx.installProc("write-char", func(ctx *Context, args Value) Value {
		if !match(ctx, "co", args) {
			return nil
		}
		ch := arg(args, 0).(*Char).R
		port := arg(args, 1).(*Port)
		buf := make([]byte, 4)
		n := encodeRune(buf, ch)
		port.Impl.Write(buf[:n])
		return ctx.Nil()
	})
	ctx.installProc("apply", func(ctx *Context, args Value) Value {
		if !match(ctx, "ql", args) {
			return nil
		}
		ctx.Apply(arg(args, 0), arg(args, 1))
		return ctx.Omitted()
	})
	ctx.installProc("call-with-current-continuation", func(ctx *Context, args Value) Value {
		if !match(ctx, "q", args) {
			return nil
		}
		snap := ctx.currentContinuation.snapshot()
		cont := ctx.registerValue(snap).(*Continuation)
		ctx.Apply(arg(args, 0), ctx.MakePair(cont, ctx.Nil()))
		return ctx.Omitted()
	})

	ctx.topEnv.setSymbolLocal(ctx.Sym("stdin-port"), ctx.NewFilePort(stdinCloser{}, PortRead))
	ctx.topEnv.setSymbolLocal(ctx.Sym("stdout-port"), ctx.NewFilePort(nopCloser{os.Stdout}, PortWrite))
	ctx.topEnv.setSymbolLocal(ctx.Sym("stderr-port"), ctx.NewFilePort(nopCloser{os.Stderr}, PortWrite))
}

func numericBinop(op func(a, b float64) float64) NativeFunc {
	return func(ctx *Context, args Value) Value {
		if !match(ctx, "nn", args) {
			return nil
		}
		a := arg(args, 0).(*Number).F
		b := arg(args, 1).(*Number).F
		return ctx.MakeNumber(op(a, b))
	}
}

func numericCompare(op func(a, b float64) bool) NativeFunc {
	return func(ctx *Context, args Value) Value {
		if !match(ctx, "nn", args) {
			return nil
		}
		a := arg(args, 0).(*Number).F
		b := arg(args, 1).(*Number).F
		return ctx.Boolean(op(a, b))
	}
}

func predicate(pred func(Value) bool) NativeFunc {
	return func(ctx *Context, args Value) Value {
		if !match(ctx, ".", args) {
			return nil
		}
		return ctx.Boolean(pred(arg(args, 0)))
	}
}

func encodeRune(buf []byte, r rune) int {
	if r < 0x80 {
		buf[0] = byte(r)
		return 1
	}
	n := 0
	for _, b := range []byte(string(r)) {
		buf[n] = b
		n++
	}
	return n
}

// nopCloser adapts an io.Writer that must not actually be closed
// (os.Stdout/os.Stderr) to io.ReadWriteCloser.
type nopCloser struct{ w interface{ Write([]byte) (int, error) } }

func (n nopCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopCloser) Read(p []byte) (int, error)  { return 0, os.ErrClosed }
func (n nopCloser) Close() error                { return nil }

// stdinCloser adapts os.Stdin the same way, for the read direction.
type stdinCloser struct{}

func (stdinCloser) Write(p []byte) (int, error) { return 0, os.ErrClosed }
func (stdinCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdinCloser) Close() error                { return nil }
