package vm

import (
	"strings"

	"github.com/carcigenicate/ezfuck/pkg/bytecode"
)

// DebugClient is the interactive collaborator for debug mode. The machine
// calls Pause before each instruction while the debug flag is set, handing
// over a read-only state snapshot and a look-ahead window of upcoming
// instructions; the client renders them and returns the user's submission.
//
// Submission handling, per pause:
//   - empty: no injection, just step the next instruction
//   - leading `!`: leave debug mode
//   - anything else: compiled and run immediately against the live tape
//
// One instruction of the outer program executes after every pause; the
// debugger pauses immediately before it, it does not skip it.
type DebugClient interface {
	// Pause presents the machine state and returns the next submission.
	// windowStart is the program index of window[0]; the paused
	// instruction's index is snap.InstructionPointer.
	Pause(snap Snapshot, window []bytecode.Instruction, windowStart int) (string, error)

	// ReportError reports a compile or execution failure of injected code.
	ReportError(err error)
}

// debugStep runs one outer debug iteration: pause, handle the submission,
// then execute exactly one instruction of the outer program.
func (m *Machine) debugStep(program bytecode.Program) error {
	start, window := program.Window(m.ip, m.window)
	line, err := m.debug.Pause(m.Snapshot(), window, start)
	if err != nil {
		// The client's input is gone; drop out of debug mode rather
		// than pause forever.
		log.Errorf("debug client detached: %v", err)
		m.debugging = false
		return m.step(program)
	}

	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "!"):
		m.debugging = false
	case line != "":
		if err := m.inject(line); err != nil {
			m.debug.ReportError(err)
		}
	}

	return m.step(program)
}

// inject compiles source and runs it against the live tape. The injected
// code executes through the same dispatch loop but against its own
// disposable instruction sequence and pointer; the outer program's
// instruction pointer and cell pointer are restored afterwards, so only
// tape effects persist. Compilation strips `!`, so injected code cannot
// re-enter the debugger.
func (m *Machine) inject(source string) error {
	injected, err := bytecode.CompileNoDebug(source)
	if err != nil {
		return err
	}

	savedIP, savedPtr := m.ip, m.cellPtr
	m.debugging = false
	m.ip = 0
	runErr := m.run(injected)
	m.ip, m.cellPtr = savedIP, savedPtr
	m.debugging = true
	return runErr
}
