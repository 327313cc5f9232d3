package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `
[repl]
prompt = "ez$ "

[debug]
window = 5
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "ezfuck.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	m := Default()
	if m.REPL.Prompt != "EZ> " || m.REPL.OutputPrefix != "Output: " {
		t.Errorf("unexpected REPL defaults: %+v", m.REPL)
	}
	if m.Debug.Prompt != "EZ> " || m.Debug.Window != 3 {
		t.Errorf("unexpected debug defaults: %+v", m.Debug)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.REPL.Prompt != "ez$ " {
		t.Errorf("expected prompt %q, got %q", "ez$ ", m.REPL.Prompt)
	}
	if m.Debug.Window != 5 {
		t.Errorf("expected window 5, got %d", m.Debug.Window)
	}

	// Unset fields fall back to the defaults.
	if m.REPL.OutputPrefix != "Output: " || m.Debug.Prompt != "EZ> " {
		t.Errorf("defaults not applied: %+v", m)
	}

	if m.Dir != dir {
		t.Errorf("expected Dir %q, got %q", dir, m.Dir)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "ezfuck.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[repl\nnot toml")
	if _, err := LoadFile(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, sampleManifest)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m.Debug.Window != 5 {
		t.Errorf("expected window 5 from the root manifest, got %d", m.Debug.Window)
	}
	if m.Dir != root {
		t.Errorf("expected Dir %q, got %q", root, m.Dir)
	}
}

func TestFindAndLoadReturnsDefaults(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m.REPL.Prompt != "EZ> " || m.Debug.Window != 3 {
		t.Errorf("expected defaults, got %+v", m)
	}
}
