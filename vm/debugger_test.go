package vm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/carcigenicate/ezfuck/pkg/bytecode"
)

// scriptedClient feeds a fixed sequence of submissions to the debugger and
// records what it was shown.
type scriptedClient struct {
	submissions []string
	pauseErr    error

	snaps        []Snapshot
	windowStarts []int
	reported     []error
}

func (c *scriptedClient) Pause(snap Snapshot, window []bytecode.Instruction, windowStart int) (string, error) {
	if c.pauseErr != nil {
		return "", c.pauseErr
	}
	c.snaps = append(c.snaps, snap)
	c.windowStarts = append(c.windowStarts, windowStart)
	if len(c.submissions) == 0 {
		return "", nil
	}
	line := c.submissions[0]
	c.submissions = c.submissions[1:]
	return line, nil
}

func (c *scriptedClient) ReportError(err error) {
	c.reported = append(c.reported, err)
}

func debugRun(t *testing.T, source string, client *scriptedClient) *Machine {
	t.Helper()
	program, err := bytecode.Compile(source)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", source, err)
	}

	var out bytes.Buffer
	m := NewMachine(strings.NewReader(""), &out)
	m.AttachDebugClient(client)
	if err := m.Execute(program); err != nil {
		t.Fatalf("Execute(%q) failed: %v", source, err)
	}
	return m
}

func TestDebuggerPausesBeforeEachInstruction(t *testing.T) {
	// After `!` fires at index 1, the two remaining additions each get a
	// pause, with empty submissions meaning plain stepping.
	client := &scriptedClient{submissions: []string{"", ""}}
	m := debugRun(t, "+3!+2+2", client)

	if len(client.snaps) != 2 {
		t.Fatalf("expected 2 pauses, got %d", len(client.snaps))
	}
	if client.snaps[0].InstructionPointer != 2 || client.snaps[1].InstructionPointer != 3 {
		t.Errorf("expected pauses at 2 and 3, got %d and %d",
			client.snaps[0].InstructionPointer, client.snaps[1].InstructionPointer)
	}
	if client.snaps[0].Cells[0] != 3 {
		t.Errorf("first pause should see the cell at 3, got %d", client.snaps[0].Cells[0])
	}
	if m.CurrentCell() != 7 {
		t.Errorf("expected final cell 7, got %d", m.CurrentCell())
	}
}

func TestDebuggerInjectionAffectsTapeOnly(t *testing.T) {
	// The injected `+5` runs before the paused instruction, so the first
	// pause's `+2` lands on 8, not 3.
	client := &scriptedClient{submissions: []string{"+5", "!"}}
	m := debugRun(t, "+3!+2+2", client)

	if m.CurrentCell() != 12 {
		t.Errorf("expected final cell 12, got %d", m.CurrentCell())
	}
	if m.InstructionPointer() != 4 {
		t.Errorf("injection must not move the outer instruction pointer: ip=%d", m.InstructionPointer())
	}
	if m.Debugging() {
		t.Error("! submission should have ended debug mode")
	}
	if len(client.snaps) != 2 {
		t.Errorf("expected 2 pauses, got %d", len(client.snaps))
	}
}

func TestDebuggerInjectionRestoresCellPointer(t *testing.T) {
	client := &scriptedClient{submissions: []string{">+5", "!"}}
	m := debugRun(t, "!++", client)

	if m.CellPointer() != 0 {
		t.Errorf("cell pointer should be restored after injection, got %d", m.CellPointer())
	}
	cells := m.Cells()
	if len(cells) < 2 || cells[1] != 5 {
		t.Errorf("injected tape effects should persist, got %v", cells)
	}
	if cells[0] != 2 {
		t.Errorf("expected cell 0 at 2, got %d", cells[0])
	}
}

func TestDebuggerInjectedToggleIsStripped(t *testing.T) {
	// `!` inside injected code compiles away, so injection cannot recurse
	// into a nested pause.
	client := &scriptedClient{submissions: []string{"+2!+2", "!"}}
	m := debugRun(t, "!++", client)

	if m.CurrentCell() != 6 {
		t.Errorf("expected 6, got %d", m.CurrentCell())
	}
	if len(client.snaps) != 2 {
		t.Errorf("expected exactly 2 pauses, got %d", len(client.snaps))
	}
}

func TestDebuggerReportsInjectionCompileError(t *testing.T) {
	client := &scriptedClient{submissions: []string{"[+", "!"}}
	m := debugRun(t, "!++", client)

	if len(client.reported) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(client.reported))
	}
	var syntaxErr *bytecode.SyntaxError
	if !errors.As(client.reported[0], &syntaxErr) {
		t.Errorf("expected SyntaxError, got %v", client.reported[0])
	}
	if m.CurrentCell() != 2 {
		t.Errorf("outer program should still complete, got cell %d", m.CurrentCell())
	}
}

func TestDebuggerReportsInjectionRuntimeError(t *testing.T) {
	client := &scriptedClient{submissions: []string{"<5", "!"}}
	m := debugRun(t, "!++", client)

	if len(client.reported) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(client.reported))
	}
	var underflow *PointerUnderflowError
	if !errors.As(client.reported[0], &underflow) {
		t.Errorf("expected PointerUnderflowError, got %v", client.reported[0])
	}
	if m.CurrentCell() != 2 {
		t.Errorf("outer program should still complete, got cell %d", m.CurrentCell())
	}
}

func TestDebuggerClientFailureExitsDebugMode(t *testing.T) {
	client := &scriptedClient{pauseErr: errors.New("stdin closed")}
	m := debugRun(t, "!+3", client)

	if m.Debugging() {
		t.Error("machine should leave debug mode when the client fails")
	}
	if m.CurrentCell() != 3 {
		t.Errorf("execution should continue without the debugger, got %d", m.CurrentCell())
	}
}

func TestDebuggerWindowStart(t *testing.T) {
	client := &scriptedClient{submissions: []string{"!"}}
	debugRun(t, "+3!+2+2", client)

	// Pause at index 2 with the default radius of 3 clamps the window to
	// the program start.
	if len(client.windowStarts) != 1 || client.windowStarts[0] != 0 {
		t.Errorf("expected window start 0, got %v", client.windowStarts)
	}
}
