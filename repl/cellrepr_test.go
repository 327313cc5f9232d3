package repl

import "testing"

func TestCellGridSingleCell(t *testing.T) {
	expected := "     V  \n" +
		"i | 000 |\n" +
		"d | 072 |\n" +
		"a |  H  |\n"

	if got := CellGrid([]byte{72}, 0); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestCellGridShowsUpToLastNonzero(t *testing.T) {
	// Pointer on cell 0, but cell 1 holds a value, so both are shown.
	expected := "     V        \n" +
		"i | 000 | 001 |\n" +
		"d | 000 | 065 |\n" +
		"a |     |  A  |\n"

	if got := CellGrid([]byte{0, 65, 0, 0}, 0); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestCellGridShowsUpToPointer(t *testing.T) {
	expected := "           V  \n" +
		"i | 000 | 001 |\n" +
		"d | 000 | 000 |\n" +
		"a |     |     |\n"

	if got := CellGrid([]byte{0, 0, 0}, 1); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestCellGridNonPrintableAscii(t *testing.T) {
	expected := "     V  \n" +
		"i | 000 |\n" +
		"d | 010 |\n" +
		"a |     |\n"

	if got := CellGrid([]byte{10}, 0); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestCellGridEmptyTape(t *testing.T) {
	if got := CellGrid(nil, 0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
