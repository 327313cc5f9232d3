// Package vm executes compiled Ezfuck programs against a growable byte
// tape. A Machine owns the tape, the cell pointer, the instruction pointer,
// and the debug-mode flag; it reads program input and writes program output
// through the streams it was constructed with.
//
// Machines are single-threaded. The debugger sub-loop never runs
// concurrently with normal execution, only nested inside it, so the tape
// needs no locking.
package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/carcigenicate/ezfuck/pkg/bytecode"
)

var log = commonlog.GetLogger("ezfuck.vm")

// DefaultDebugWindow is the look-ahead/behind radius shown at each
// debugger pause.
const DefaultDebugWindow = 3

// Machine is the execution engine. A Machine may be reused across source
// units: Execute resets the instruction pointer but tape, cell pointer, and
// debug flag persist, which is what gives the REPL its session semantics.
type Machine struct {
	tape      Tape
	cellPtr   int
	ip        int
	debugging bool

	in  io.Reader
	out io.Writer

	debug  DebugClient
	window int
}

// NewMachine returns a machine with a fresh single-cell tape reading
// program input from in and writing program output to out.
func NewMachine(in io.Reader, out io.Writer) *Machine {
	return &Machine{
		tape:   NewTape(),
		in:     in,
		out:    out,
		window: DefaultDebugWindow,
	}
}

// AttachDebugClient sets the interactive collaborator used while debug mode
// is on. Without a client, OpToggleDebug still flips the flag but execution
// never pauses.
func (m *Machine) AttachDebugClient(c DebugClient) {
	m.debug = c
}

// SetDebugWindow sets the instruction look-ahead radius shown at each pause.
func (m *Machine) SetDebugWindow(n int) {
	if n > 0 {
		m.window = n
	}
}

// CurrentCell returns the value of the cell under the pointer.
func (m *Machine) CurrentCell() byte {
	return m.tape.Get(m.cellPtr)
}

// CellPointer returns the current cell pointer.
func (m *Machine) CellPointer() int {
	return m.cellPtr
}

// InstructionPointer returns the current instruction pointer.
func (m *Machine) InstructionPointer() int {
	return m.ip
}

// Cells returns a copy of the tape contents for display.
func (m *Machine) Cells() []byte {
	return m.tape.Cells()
}

// Debugging reports whether the machine is in debug mode.
func (m *Machine) Debugging() bool {
	return m.debugging
}

// Reset discards all machine state except the I/O streams and debug client.
func (m *Machine) Reset() {
	m.tape = NewTape()
	m.cellPtr = 0
	m.ip = 0
	m.debugging = false
}

// Execute runs a program from its first instruction until the instruction
// pointer passes the end of the sequence or an execution error occurs.
func (m *Machine) Execute(program bytecode.Program) error {
	m.ip = 0
	return m.run(program)
}

func (m *Machine) run(program bytecode.Program) error {
	for m.ip < len(program) {
		if m.debugging && m.debug != nil {
			if err := m.debugStep(program); err != nil {
				return err
			}
			continue
		}
		if err := m.step(program); err != nil {
			return err
		}
	}
	return nil
}

// step executes the instruction under the instruction pointer and advances
// it, except when a jump fires: jump targets are absolute "land here"
// indices, so a firing jump sets the pointer directly.
func (m *Machine) step(program bytecode.Program) error {
	inst := program[m.ip]

	switch inst.Op {
	case bytecode.OpApplyCell:
		cur := m.tape.Get(m.cellPtr)
		m.tape.Set(m.cellPtr, applyOperator(cur, inst.Operator, inst.Arg.Resolve(cur)))

	case bytecode.OpSetPointer:
		ptr := int(inst.Arg.Resolve(m.CurrentCell()))
		m.tape.Ensure(ptr)
		m.cellPtr = ptr

	case bytecode.OpMovePointer:
		step := int(inst.Arg.Resolve(m.CurrentCell()))
		if inst.Dir == bytecode.DirLeft {
			if step > m.cellPtr {
				return &PointerUnderflowError{Instruction: m.ip, Pointer: m.cellPtr, Step: step}
			}
			m.cellPtr -= step
		} else {
			m.cellPtr += step
			m.tape.Ensure(m.cellPtr)
		}

	case bytecode.OpJumpIf:
		matched := m.CurrentCell() == inst.Match
		if inst.Compare == bytecode.CompareNotEqual {
			matched = !matched
		}
		if matched {
			m.ip = inst.Target
			return nil
		}

	case bytecode.OpOutput:
		if _, err := m.out.Write([]byte{m.CurrentCell()}); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

	case bytecode.OpInput:
		b, err := readByte(m.in)
		switch {
		case err == nil:
			m.tape.Set(m.cellPtr, b)
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			// Input exhausted: the cell keeps its value.
		default:
			return fmt.Errorf("read input: %w", err)
		}

	case bytecode.OpToggleDebug:
		m.debugging = !m.debugging
		log.Debugf("debug mode: %v (instruction %d)", m.debugging, m.ip)
	}

	m.ip++
	return nil
}

// applyOperator applies op to the current cell value with byte-wrapping
// arithmetic. Division is integer and truncating; division by zero leaves
// the cell unchanged.
func applyOperator(cur byte, op bytecode.Operator, val byte) byte {
	switch op {
	case bytecode.OperatorAdd:
		return cur + val
	case bytecode.OperatorSub:
		return cur - val
	case bytecode.OperatorMul:
		return cur * val
	case bytecode.OperatorDiv:
		if val == 0 {
			return cur
		}
		return cur / val
	default: // OperatorSet
		return val
	}
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	return buf[0], err
}
