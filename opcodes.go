package schemelet

// Opcode is the tag of a single Op within a Code block's instruction
// stream.
type Opcode int

const (
	// OpNone never appears in a compiled Code block; it exists so
	// the zero value of Opcode is recognizably invalid.
	OpNone Opcode = iota

	// OpPush pushes Op.Value onto the operand stack unchanged.
	OpPush
	// OpPop discards the top of the operand stack.
	OpPop
	// OpLookup resolves Op.Value (a *Symbol) in the current frame's
	// environment and pushes the result.
	OpLookup
	// OpDefine binds Op.Value (a *Symbol) to the top of stack in the
	// current frame's environment only, then replaces the top with Nil.
	OpDefine
	// OpSet assigns Op.Value (a *Symbol) to the top of stack in the
	// nearest enclosing frame that binds it, then replaces the top
	// with Nil.
	OpSet
	// OpSkip unconditionally advances IP by Op.I instructions.
	OpSkip
	// OpSkipIfFalse pops the stack; if the popped value is not
	// true, advances IP by Op.I instructions.
	OpSkipIfFalse
	// OpLambda constructs a Closure from Op.Value (a *Code) and the
	// current frame's environment, and pushes it.
	OpLambda
	// OpApply pops the operand count from Op.I arguments plus the
	// callee below them, and invokes the callee by pushing a new
	// frame (CLOSURE), calling straight through (PROCEDURE), or
	// replacing the whole continuation (CONTINUATION).
	OpApply
	// OpTailApply behaves like OpApply but first discards the
	// current frame, so a self-tail-recursive loop runs in constant
	// frame space.
	OpTailApply
	// OpCons pops two values and pushes a Pair of them (cdr popped
	// first), used to build quasiquote skeletons at run time.
	OpCons
	// OpSplicing pops a tail and then a list, and pushes a copy of the
	// list whose terminating Nil is replaced by the tail, used for
	// unquote-splicing.
	OpSplicing
)

// emit appends an instruction to c's instruction stream.
func (c *Code) emit(t Opcode, i int, v Value, pos FilePos) {
	c.Ops = append(c.Ops, Op{Type: t, I: i, Value: v, Pos: pos})
}

func (op Opcode) String() string {
	switch op {
	case OpNone:
		return "NONE"
	case OpPush:
		return "PUSH"
	case OpPop:
		return "POP"
	case OpLookup:
		return "LOOKUP"
	case OpDefine:
		return "DEFINE"
	case OpSet:
		return "SET"
	case OpSkip:
		return "SKIP"
	case OpSkipIfFalse:
		return "SKIP_IF_FALSE"
	case OpLambda:
		return "LAMBDA"
	case OpApply:
		return "APPLY"
	case OpTailApply:
		return "TAIL_APPLY"
	case OpCons:
		return "CONS"
	case OpSplicing:
		return "SPLICING"
	default:
		return "UNKNOWN"
	}
}
