// Package repl implements the interactive Ezfuck session: a persistent
// machine fed one compiled line at a time, plus the console renderings the
// debugger and the cell display use.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/term"

	"github.com/carcigenicate/ezfuck/manifest"
	"github.com/carcigenicate/ezfuck/pkg/bytecode"
	"github.com/carcigenicate/ezfuck/vm"
)

var log = commonlog.GetLogger("ezfuck.repl")

// Session is one interactive session. Tape and cell pointer persist across
// submitted lines; each line is compiled and executed as its own source
// unit, so a bad line reports its error and the session carries on.
type Session struct {
	machine     *vm.Machine
	in          *bufio.Reader
	out         io.Writer
	cfg         *manifest.Manifest
	interactive bool
}

// NewSession creates a session reading lines (and program input) from in
// and writing to out. The cell grid and prompt are only rendered when in is
// an interactive terminal, keeping piped sessions clean.
func NewSession(in io.Reader, out io.Writer, cfg *manifest.Manifest) *Session {
	if cfg == nil {
		cfg = manifest.Default()
	}

	br := bufio.NewReader(in)
	m := vm.NewMachine(br, out)
	m.SetDebugWindow(cfg.Debug.Window)

	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	return &Session{
		machine:     m,
		in:          br,
		out:         out,
		cfg:         cfg,
		interactive: interactive,
	}
}

// Machine returns the session's machine, mainly for tests and tooling.
func (s *Session) Machine() *vm.Machine {
	return s.machine
}

// Run loops until a line starting with `!` or end of input. Returns an
// error only when the input stream itself fails.
func (s *Session) Run() error {
	log.Debug("session started")

	for {
		if s.interactive {
			fmt.Fprint(s.out, CellGrid(s.machine.Cells(), s.machine.CellPointer()))
			fmt.Fprint(s.out, s.cfg.REPL.Prompt)
		}

		line, readErr := s.in.ReadString('\n')
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "!"):
			return nil
		case strings.HasPrefix(trimmed, ":"):
			s.command(trimmed)
		case trimmed != "":
			s.eval(trimmed)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", readErr)
		}
	}
}

// eval compiles and runs one line against the persistent machine. `!` is
// stripped: the stepping debugger is only reachable from whole-program
// execution, while a bare leading `!` ends the session.
func (s *Session) eval(source string) {
	program, err := bytecode.CompileNoDebug(source)
	if err != nil {
		fmt.Fprintf(s.out, "Compile error: %v\n", err)
		return
	}

	fmt.Fprint(s.out, s.cfg.REPL.OutputPrefix)
	if err := s.machine.Execute(program); err != nil {
		fmt.Fprintf(s.out, "\nError: %v\n", err)
		return
	}
	fmt.Fprintln(s.out)
}

// command handles `:` meta-commands.
func (s *Session) command(line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, "REPL Commands:")
		fmt.Fprintln(s.out, "  :help, :h, :?     Show this help")
		fmt.Fprintln(s.out, "  :reset            Reset tape and pointers")
		fmt.Fprintln(s.out, "  :save FILE        Save machine state to FILE (CBOR)")
		fmt.Fprintln(s.out, "  :load FILE        Load machine state from FILE")
		fmt.Fprintln(s.out, "  :dis CODE         Disassemble CODE without running it")
		fmt.Fprintln(s.out, "  !                 End the session")

	case ":reset":
		s.machine.Reset()
		fmt.Fprintln(s.out, "Machine reset")

	case ":save":
		if rest == "" {
			fmt.Fprintln(s.out, "Usage: :save FILE")
			return
		}
		snap := s.machine.Snapshot()
		data, err := snap.MarshalBinary()
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		if err := os.WriteFile(rest, data, 0o644); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(s.out, "Saved %d cells to %s\n", len(snap.Cells), rest)

	case ":load":
		if rest == "" {
			fmt.Fprintln(s.out, "Usage: :load FILE")
			return
		}
		data, err := os.ReadFile(rest)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		var snap vm.Snapshot
		if err := snap.UnmarshalBinary(data); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		s.machine.Restore(snap)
		fmt.Fprintf(s.out, "Loaded %d cells from %s\n", len(snap.Cells), rest)

	case ":dis":
		if rest == "" {
			fmt.Fprintln(s.out, "Usage: :dis CODE")
			return
		}
		program, err := bytecode.Compile(rest)
		if err != nil {
			fmt.Fprintf(s.out, "Compile error: %v\n", err)
			return
		}
		fmt.Fprint(s.out, program.Disassemble())

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}
