package schemelet

// findSymbol walks the environment chain upward from e, returning the
// first binding found, or false if s is unbound anywhere in the
// chain.
func (e *Env) findSymbol(s *Symbol) (Value, bool) {
	for env := e; env != nil; env = env.Parent {
		if v, ok := env.Bindings[s]; ok {
			return v, true
		}
	}
	return nil, false
}

// setSymbolLocal binds s to v in this frame only, shadowing any
// binding in an ancestor. Used for parameter binding and internal
// `define`.
func (e *Env) setSymbolLocal(s *Symbol, v Value) {
	e.Bindings[s] = v
}

// setSymbol assigns s to v in the nearest ancestor (including e
// itself) that already binds s; if nothing does, it binds locally.
// This is `set!`'s semantics: assigning an unbound variable silently
// creates it in the current frame rather than erroring.
func (e *Env) setSymbol(s *Symbol, v Value) {
	for env := e; env != nil; env = env.Parent {
		if _, ok := env.Bindings[s]; ok {
			env.Bindings[s] = v
			return
		}
	}
	e.Bindings[s] = v
}
