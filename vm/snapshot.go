package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a read-only copy of machine state. The debugger hands one to
// its client at every pause, and the REPL's :save/:load commands persist
// them as canonical CBOR.
type Snapshot struct {
	Cells              []byte `cbor:"cells"`
	CellPointer        int    `cbor:"cell_ptr"`
	InstructionPointer int    `cbor:"instruction_ptr"`
	Debugging          bool   `cbor:"debugging"`
}

// Canonical mode keeps the encoding deterministic.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// snapshotWire avoids the BinaryMarshaler interface so encoding the struct
// fields does not call back into MarshalBinary/UnmarshalBinary.
type snapshotWire Snapshot

// MarshalBinary serializes the snapshot to CBOR bytes.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	return cborEncMode.Marshal((*snapshotWire)(s))
}

// UnmarshalBinary deserializes a snapshot from CBOR bytes.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if err := cbor.Unmarshal(data, (*snapshotWire)(s)); err != nil {
		return fmt.Errorf("vm: unmarshal snapshot: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the machine's current state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Cells:              m.tape.Cells(),
		CellPointer:        m.cellPtr,
		InstructionPointer: m.ip,
		Debugging:          m.debugging,
	}
}

// Restore replaces the machine's tape, cell pointer, and debug flag with the
// snapshot's. The instruction pointer is not restored: a snapshot belongs to
// whatever program produced it, and the next Execute starts from 0 anyway.
func (m *Machine) Restore(snap Snapshot) {
	m.tape = NewTape()
	if len(snap.Cells) > 0 {
		m.tape = append(Tape(nil), snap.Cells...)
	}
	m.cellPtr = snap.CellPointer
	if m.cellPtr < 0 {
		m.cellPtr = 0
	}
	m.tape.Ensure(m.cellPtr)
	m.debugging = snap.Debugging
}
