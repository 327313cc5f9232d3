// Package manifest handles ezfuck.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an ezfuck.toml configuration.
type Manifest struct {
	REPL  REPL  `toml:"repl"`
	Debug Debug `toml:"debug"`

	// Dir is the directory containing the ezfuck.toml file (set at load time).
	Dir string `toml:"-"`
}

// REPL configures the interactive session.
type REPL struct {
	Prompt       string `toml:"prompt"`
	OutputPrefix string `toml:"output-prefix"`
}

// Debug configures the stepping debugger.
type Debug struct {
	Prompt string `toml:"prompt"`
	Window int    `toml:"window"` // instruction look-ahead radius per pause
}

// Default returns the configuration used when no ezfuck.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.REPL.Prompt == "" {
		m.REPL.Prompt = "EZ> "
	}
	if m.REPL.OutputPrefix == "" {
		m.REPL.OutputPrefix = "Output: "
	}
	if m.Debug.Prompt == "" {
		m.Debug.Prompt = "EZ> "
	}
	if m.Debug.Window <= 0 {
		m.Debug.Window = 3
	}
}

// Load parses an ezfuck.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, "ezfuck.toml"))
}

// LoadFile parses the manifest at an explicit path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.applyDefaults()
	return &m, nil
}

// FindAndLoad walks up from startDir to find an ezfuck.toml file, then
// loads and returns it. Returns the defaults if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}

	for {
		path := filepath.Join(dir, "ezfuck.toml")
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
