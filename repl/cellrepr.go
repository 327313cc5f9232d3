package repl

import (
	"fmt"
	"strings"
)

// CellGrid renders the tape as a four-row grid: a pointer marker row, cell
// indices, decimal values, and printable ASCII. Cells are shown up to the
// last nonzero cell or the pointer, whichever is further right.
//
//	     V
//	i | 000 | 001 |
//	d | 072 | 000 |
//	a |  H  |     |
func CellGrid(cells []byte, cellPtr int) string {
	if len(cells) == 0 {
		return ""
	}

	last := 0
	for i, v := range cells {
		if v != 0 {
			last = i
		}
	}
	if cellPtr > last {
		last = cellPtr
	}

	var ptrRow, indexRow, rawRow, asciiRow strings.Builder
	ptrRow.WriteString("  ")
	indexRow.WriteString("i ")
	rawRow.WriteString("d ")
	asciiRow.WriteString("a ")

	for i := 0; i <= last; i++ {
		v := cells[i]
		ascii := byte(' ')
		if v >= 32 && v < 127 {
			ascii = v
		}
		if i == cellPtr {
			ptrRow.WriteString("   V  ")
		} else {
			ptrRow.WriteString("      ")
		}
		indexRow.WriteString(fmt.Sprintf("| %03d ", i))
		rawRow.WriteString(fmt.Sprintf("| %03d ", v))
		asciiRow.WriteString(fmt.Sprintf("|  %c  ", ascii))
	}

	return fmt.Sprintf("%s\n%s|\n%s|\n%s|\n",
		ptrRow.String(), indexRow.String(), rawRow.String(), asciiRow.String())
}
