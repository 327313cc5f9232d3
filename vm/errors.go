package vm

import "fmt"

// PointerUnderflowError reports a pointer move that would take the cell
// pointer below index 0. It is fatal to the execution of the current source
// unit; tape effects up to the failure remain applied.
type PointerUnderflowError struct {
	Instruction int // instruction pointer at the failing move
	Pointer     int // cell pointer before the move
	Step        int // attempted leftward step
}

func (e *PointerUnderflowError) Error() string {
	return fmt.Sprintf("cell pointer underflow at instruction %d: pointer %d moved left by %d",
		e.Instruction, e.Pointer, e.Step)
}
