package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/carcigenicate/ezfuck/pkg/bytecode"
	"github.com/carcigenicate/ezfuck/vm"
)

// DebugConsole implements vm.DebugClient on a line-oriented stream pair.
// At each pause it prints the cell grid and the instruction window, then
// reads one submission.
type DebugConsole struct {
	In     *bufio.Reader
	Out    io.Writer
	Prompt string // defaults to "EZ> "
}

// Pause renders the machine state and reads the next submission.
func (c *DebugConsole) Pause(snap vm.Snapshot, window []bytecode.Instruction, windowStart int) (string, error) {
	fmt.Fprintln(c.Out)
	fmt.Fprint(c.Out, CellGrid(snap.Cells, snap.CellPointer))
	fmt.Fprint(c.Out, formatWindow(window, windowStart, snap.InstructionPointer))

	prompt := c.Prompt
	if prompt == "" {
		prompt = "EZ> "
	}
	fmt.Fprint(c.Out, prompt)

	line, err := c.In.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// ReportError prints a failure of injected code.
func (c *DebugConsole) ReportError(err error) {
	fmt.Fprintf(c.Out, "Error: %v\n", err)
}

// formatWindow lists the window instructions with zero-padded indices and a
// marker on the paused instruction.
func formatWindow(window []bytecode.Instruction, windowStart, ip int) string {
	width := len(strconv.Itoa(windowStart + len(window)))
	out := ""
	for i, inst := range window {
		index := windowStart + i
		marker := "  "
		if index == ip {
			marker = "> "
		}
		out += fmt.Sprintf("%0*d %s%s\n", width, index, marker, inst)
	}
	return out
}
