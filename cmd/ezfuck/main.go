// Ezfuck CLI - run Ezfuck programs from files or start the interactive REPL
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/carcigenicate/ezfuck/manifest"
	"github.com/carcigenicate/ezfuck/pkg/bytecode"
	"github.com/carcigenicate/ezfuck/repl"
	"github.com/carcigenicate/ezfuck/vm"
)

func main() {
	interactive := flag.Bool("i", false, "Start interactive REPL")
	eval := flag.String("e", "", "Compile and run CODE, then exit")
	dis := flag.Bool("dis", false, "Print the disassembled program instead of executing it")
	noDebug := flag.Bool("no-debug", false, "Strip ! instructions from the program")
	statePath := flag.String("state", "", "Load machine state from FILE before running, save it back after")
	configPath := flag.String("config", "", "Path to ezfuck.toml")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ezfuck [options] [file.ez]\n\n")
		fmt.Fprintf(os.Stderr, "Runs an Ezfuck program, or starts a REPL when no program is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ezfuck hello.ez           # Run a program (! pauses into the debugger)\n")
		fmt.Fprintf(os.Stderr, "  ezfuck -e '^72.^105.'     # Run code from the command line\n")
		fmt.Fprintf(os.Stderr, "  ezfuck -dis hello.ez      # Show the compiled instruction listing\n")
		fmt.Fprintf(os.Stderr, "  ezfuck -i                 # Start the REPL (! on its own line exits)\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	source, err := readSource(flag.Args(), *eval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if source == "" || *interactive {
		session := repl.NewSession(os.Stdin, os.Stdout, cfg)
		if err := session.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runProgram(source, cfg, *noDebug, *dis, *statePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*manifest.Manifest, error) {
	if path != "" {
		return manifest.LoadFile(path)
	}
	return manifest.FindAndLoad(".")
}

// readSource resolves the program source: -e code wins, otherwise the file
// argument, otherwise empty (REPL mode).
func readSource(args []string, eval string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 0 {
		return "", nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("expected at most one program file, got %d", len(args))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runProgram(source string, cfg *manifest.Manifest, noDebug, dis bool, statePath string) error {
	var program bytecode.Program
	var err error
	if noDebug {
		program, err = bytecode.CompileNoDebug(source)
	} else {
		program, err = bytecode.Compile(source)
	}
	if err != nil {
		return err
	}

	if dis {
		fmt.Print(program.Disassemble())
		return nil
	}

	in := bufio.NewReader(os.Stdin)
	machine := vm.NewMachine(in, os.Stdout)
	machine.SetDebugWindow(cfg.Debug.Window)
	machine.AttachDebugClient(&repl.DebugConsole{In: in, Out: os.Stdout, Prompt: cfg.Debug.Prompt})

	if statePath != "" {
		if data, readErr := os.ReadFile(statePath); readErr == nil {
			var snap vm.Snapshot
			if err := snap.UnmarshalBinary(data); err != nil {
				return err
			}
			machine.Restore(snap)
		}
	}

	execErr := machine.Execute(program)

	if statePath != "" {
		// Tape effects up to a failure remain applied, so the snapshot is
		// saved even when execution errored.
		snap := machine.Snapshot()
		data, marshalErr := snap.MarshalBinary()
		if marshalErr != nil {
			return marshalErr
		}
		if writeErr := os.WriteFile(statePath, data, 0o644); writeErr != nil {
			return writeErr
		}
	}

	return execErr
}
