// cellrepr.go: the tape rendering shared by the REPL and the stepper.
package ezfuck

import (
	"fmt"
	"strings"
)

// renderCells draws the tape out to the furthest interesting cell: the
// last nonzero one or the pointer, whichever is further right. Four rows:
// the pointer marker, the cell indices (i), the raw byte values (d), and a
// printable-ASCII projection (a) that blanks everything else.
func renderCells(cells []uint8, cellPtr int) string {
	last := 0
	for i, c := range cells {
		if c != 0 {
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
		fmt.Fprintf(&indexRow, "| %03d ", i)
		fmt.Fprintf(&rawRow, "| %03d ", v)
		fmt.Fprintf(&asciiRow, "|  %c  ", ascii)
	}

	return fmt.Sprintf("%s\n%s|\n%s|\n%s|\n", ptrRow.String(), indexRow.String(), rawRow.String(), asciiRow.String())
}
