package bytecode

import "fmt"

// Op identifies an instruction variant.
type Op byte

const (
	OpApplyCell   Op = iota // Apply an operator to the current cell: covers + - * / ^
	OpSetPointer            // Set the cell pointer to an absolute index: covers @
	OpMovePointer           // Move the cell pointer left or right: covers < >
	OpJumpIf                // Conditional jump with a precomputed absolute target: covers [ ]
	OpOutput                // Emit the current cell as a byte: covers .
	OpInput                 // Read one byte into the current cell: covers ,
	OpToggleDebug           // Flip debug mode: covers !
)

// Operator is a cell operator applied by OpApplyCell.
type Operator byte

const (
	OperatorAdd Operator = iota
	OperatorSub
	OperatorMul
	OperatorDiv
	OperatorSet // absolute assignment, discards the previous cell value
)

// Direction is the movement direction for OpMovePointer.
type Direction byte

const (
	DirLeft Direction = iota
	DirRight
)

// Compare is the comparison used by OpJumpIf.
type Compare byte

const (
	CompareEqual Compare = iota
	CompareNotEqual
)

// Argument is an instruction operand: either a literal byte or the sentinel
// `V`, which reads the cell under the pointer when the instruction executes.
type Argument struct {
	CurrentCell bool
	Value       byte
}

// LiteralArg returns a literal byte argument.
func LiteralArg(v byte) Argument {
	return Argument{Value: v}
}

// CellArg returns the `V` sentinel argument.
func CellArg() Argument {
	return Argument{CurrentCell: true}
}

// Resolve returns the argument's effective value given the current cell.
func (a Argument) Resolve(currentCell byte) byte {
	if a.CurrentCell {
		return currentCell
	}
	return a.Value
}

func (a Argument) String() string {
	if a.CurrentCell {
		return "V"
	}
	return fmt.Sprintf("%d", a.Value)
}

// Instruction is one compiled Ezfuck instruction. Which fields are
// meaningful depends on Op; the zero value of the rest is ignored.
type Instruction struct {
	Op       Op
	Operator Operator  // OpApplyCell
	Dir      Direction // OpMovePointer
	Arg      Argument  // OpApplyCell, OpSetPointer, OpMovePointer
	Compare  Compare   // OpJumpIf
	Match    byte      // OpJumpIf comparison value (always 0 in compiled code)
	Target   int       // OpJumpIf absolute jump target
}

// Program is a compiled, read-only instruction sequence.
type Program []Instruction

// OpInfo provides metadata about an instruction variant.
type OpInfo struct {
	Name     string // Mnemonic used by the disassembler
	TakesArg bool   // Whether the source operator accepts an argument
}

var opInfoTable = map[Op]OpInfo{
	OpApplyCell:   {"APPLY", true},
	OpSetPointer:  {"SETPTR", true},
	OpMovePointer: {"MOVE", true},
	OpJumpIf:      {"JUMP_IF", false},
	OpOutput:      {"OUT", false},
	OpInput:       {"IN", false},
	OpToggleDebug: {"DEBUG", false},
}

// GetOpInfo returns metadata for an op.
// Returns a placeholder named "UNKNOWN" if the op is not recognized.
func GetOpInfo(op Op) OpInfo {
	if info, ok := opInfoTable[op]; ok {
		return info
	}
	return OpInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

func (op Op) String() string {
	return GetOpInfo(op).Name
}

// TakesArg returns true if the op's source operator accepts an argument.
func (op Op) TakesArg() bool {
	return GetOpInfo(op).TakesArg
}

// IsJump returns true if this op redirects the instruction pointer.
func (op Op) IsJump() bool {
	return op == OpJumpIf
}

var operatorSymbols = map[Operator]string{
	OperatorAdd: "+",
	OperatorSub: "-",
	OperatorMul: "*",
	OperatorDiv: "/",
	OperatorSet: "^",
}

func (o Operator) String() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", byte(o))
}

func (d Direction) String() string {
	if d == DirLeft {
		return "LEFT"
	}
	return "RIGHT"
}

func (c Compare) String() string {
	if c == CompareEqual {
		return "=="
	}
	return "!="
}

// AllOps returns a slice of all defined ops.
// Useful for testing that every op has metadata.
func AllOps() []Op {
	ops := make([]Op, 0, len(opInfoTable))
	for op := range opInfoTable {
		ops = append(ops, op)
	}
	return ops
}
