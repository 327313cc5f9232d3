package vm

// Tape is the growable sequence of byte cells a program manipulates.
// It starts as a single zero cell and grows rightward on demand; it never
// shrinks.
type Tape []byte

// NewTape returns a tape with one zero cell.
func NewTape() Tape {
	return Tape{0}
}

// Get returns the value of cell i. The engine ensures i is in range before
// reading.
func (t Tape) Get(i int) byte {
	return t[i]
}

// Set stores v in cell i.
func (t Tape) Set(i int, v byte) {
	t[i] = v
}

// Ensure grows the tape with zero cells until index i is addressable.
func (t *Tape) Ensure(i int) {
	for len(*t) <= i {
		*t = append(*t, 0)
	}
}

// Len returns the current number of cells.
func (t Tape) Len() int {
	return len(t)
}

// Cells returns a copy of the tape contents.
func (t Tape) Cells() []byte {
	out := make([]byte, len(t))
	copy(out, t)
	return out
}
