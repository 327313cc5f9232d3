package bytecode

// Compiler scans source text left to right and appends instructions as it
// goes. Bracket jumps are patched in place: `[` records its own program
// index on the pending stack and leaves Target unset until the matching `]`
// fills it in.
type Compiler struct {
	src        string
	pos        int
	program    Program
	pending    []pendingJump
	allowDebug bool
}

// pendingJump is an open `[` waiting for its partner.
type pendingJump struct {
	index  int // program index of the placeholder JumpIf
	offset int // source offset of the `[`, for error reporting
}

// Compile compiles source to a Program. `!` compiles to OpToggleDebug.
func Compile(source string) (Program, error) {
	return compile(source, true)
}

// CompileNoDebug compiles source with `!` instructions dropped. Used for
// top-level REPL lines and debugger-injected code, which must not be able
// to (re-)enter the debugger.
func CompileNoDebug(source string) (Program, error) {
	return compile(source, false)
}

func compile(source string, allowDebug bool) (Program, error) {
	c := &Compiler{
		src:        source,
		program:    make(Program, 0, len(source)),
		allowDebug: allowDebug,
	}
	if err := c.run(); err != nil {
		return nil, err
	}
	return c.program, nil
}

func (c *Compiler) run() error {
	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		opOffset := c.pos
		c.pos++

		switch ch {
		case '+', '-', '*', '/', '^':
			arg, err := c.scanArgument()
			if err != nil {
				return err
			}
			c.emit(Instruction{Op: OpApplyCell, Operator: operatorFor(ch), Arg: arg})

		case '@':
			arg, err := c.scanArgument()
			if err != nil {
				return err
			}
			c.emit(Instruction{Op: OpSetPointer, Arg: arg})

		case '<', '>':
			arg, err := c.scanArgument()
			if err != nil {
				return err
			}
			dir := DirRight
			if ch == '<' {
				dir = DirLeft
			}
			c.emit(Instruction{Op: OpMovePointer, Dir: dir, Arg: arg})

		case '[':
			if err := c.rejectArgument(ch, opOffset); err != nil {
				return err
			}
			c.pending = append(c.pending, pendingJump{index: len(c.program), offset: opOffset})
			c.emit(Instruction{Op: OpJumpIf, Compare: CompareEqual, Target: -1})

		case ']':
			if err := c.rejectArgument(ch, opOffset); err != nil {
				return err
			}
			if len(c.pending) == 0 {
				return &SyntaxError{Offset: opOffset, Msg: "] without a matching ["}
			}
			open := c.pending[len(c.pending)-1]
			c.pending = c.pending[:len(c.pending)-1]

			// `]` jumps back to the first instruction of the loop body;
			// the `[` placeholder jumps to the instruction just past here.
			c.emit(Instruction{Op: OpJumpIf, Compare: CompareNotEqual, Target: open.index + 1})
			c.program[open.index].Target = len(c.program)

		case '.':
			if err := c.rejectArgument(ch, opOffset); err != nil {
				return err
			}
			c.emit(Instruction{Op: OpOutput})

		case ',':
			if err := c.rejectArgument(ch, opOffset); err != nil {
				return err
			}
			c.emit(Instruction{Op: OpInput})

		case '!':
			if err := c.rejectArgument(ch, opOffset); err != nil {
				return err
			}
			if c.allowDebug {
				c.emit(Instruction{Op: OpToggleDebug})
			}

		default:
			// Comment transparency: everything else is ignored.
		}
	}

	if len(c.pending) > 0 {
		open := c.pending[len(c.pending)-1]
		return &SyntaxError{Offset: open.offset, Msg: "[ without a matching ]"}
	}
	return nil
}

func (c *Compiler) emit(inst Instruction) {
	c.program = append(c.program, inst)
}

// scanArgument consumes the argument immediately following an operator:
// the sentinel `V`, a run of decimal digits, or nothing (defaults to 1).
func (c *Compiler) scanArgument() (Argument, error) {
	if c.pos < len(c.src) && c.src[c.pos] == 'V' {
		c.pos++
		return CellArg(), nil
	}

	start := c.pos
	for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
		c.pos++
	}
	if c.pos == start {
		return LiteralArg(1), nil
	}

	value := 0
	for _, d := range []byte(c.src[start:c.pos]) {
		value = value*10 + int(d-'0')
		if value > 255 {
			return Argument{}, &SyntaxError{
				Offset: start,
				Msg:    "argument " + c.src[start:c.pos] + " out of range 0-255",
			}
		}
	}
	return LiteralArg(byte(value)), nil
}

// rejectArgument fails if an argument immediately follows an operator that
// takes none (`[ ] . , !`).
func (c *Compiler) rejectArgument(op byte, opOffset int) error {
	if c.pos < len(c.src) && (c.src[c.pos] == 'V' || isDigit(c.src[c.pos])) {
		return &SyntaxError{Offset: opOffset, Msg: string(op) + " takes no argument"}
	}
	return nil
}

func operatorFor(ch byte) Operator {
	switch ch {
	case '+':
		return OperatorAdd
	case '-':
		return OperatorSub
	case '*':
		return OperatorMul
	case '/':
		return OperatorDiv
	default:
		return OperatorSet
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
