package bytecode

import (
	"fmt"
	"strings"
)

// String returns a one-line mnemonic for the instruction.
func (inst Instruction) String() string {
	switch inst.Op {
	case OpApplyCell:
		return fmt.Sprintf("CELL %s %s", inst.Operator, inst.Arg)
	case OpSetPointer:
		return fmt.Sprintf("SETPTR %s", inst.Arg)
	case OpMovePointer:
		return fmt.Sprintf("MOVE %s %s", inst.Dir, inst.Arg)
	case OpJumpIf:
		return fmt.Sprintf("JUMP_IF %s %d -> %d", inst.Compare, inst.Match, inst.Target)
	case OpOutput:
		return "OUT"
	case OpInput:
		return "IN"
	case OpToggleDebug:
		return "DEBUG"
	default:
		return GetOpInfo(inst.Op).Name
	}
}

// Disassemble returns a human-readable listing of the whole program.
func (p Program) Disassemble() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("; %d instructions\n", len(p)))
	for i, inst := range p {
		sb.WriteString(fmt.Sprintf("%04d  %s\n", i, inst))
	}
	return sb.String()
}

// Window returns the instructions within `around` of ip, for debugger
// display. The returned slice aliases the program; callers treat it as
// read-only. The first return value is the program index of window[0].
func (p Program) Window(ip, around int) (int, []Instruction) {
	if len(p) == 0 {
		return 0, nil
	}
	start := ip - around
	if start < 0 {
		start = 0
	}
	end := ip + around
	if end > len(p)-1 {
		end = len(p) - 1
	}
	if start > end {
		return 0, nil
	}
	return start, p[start : end+1]
}
