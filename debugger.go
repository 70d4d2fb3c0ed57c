// debugger.go: the interactive stepper behind break instructions.
//
// Once armed, the machine pauses before every instruction. A pause renders
// the tape and a window of surrounding instructions, then reads one
// command line: a line of ezfuck code runs against the live tape with the
// outer cursors saved and restored, a blank line just steps, and the quit
// sentinel disarms the stepper. Every pause ends by stepping the
// instruction it froze on exactly once, with debugging off for that step.
package ezfuck

import (
	"fmt"
	"strings"
)

func (m *Machine) pauseAtBreakpoint(prog []Instruction, st *State) error {
	fmt.Fprintln(m.Out)
	fmt.Fprint(m.Out, renderCells(st.Cells, st.CellPtr))
	fmt.Fprint(m.Out, renderInstructionWindow(prog, st.InstrPtr, 3))

	line, err := m.promptLine(Prompt)
	if err != nil {
		return &RuntimeError{Instr: st.InstrPtr, Msg: fmt.Sprintf("debugger prompt: %v", err)}
	}

	switch {
	case strings.HasPrefix(line, QuitSentinel):
		st.Debugging = false

	case line != "":
		if err := m.runDebugLine(line, st); err != nil {
			return err
		}
		fmt.Fprintln(m.Out)
	}

	// The frozen instruction steps on every path, quit included, with
	// debugging off so a break instruction cannot re-arm its own pause.
	if err := m.exec(prog[st.InstrPtr], st, false); err != nil {
		return err
	}
	fmt.Fprintln(m.Out)
	return nil
}

// runDebugLine compiles and runs one line against the live tape. The outer
// instruction and cell pointers are restored afterwards; cell mutations
// persist.
func (m *Machine) runDebugLine(line string, st *State) error {
	nested, err := Compile(line, false)
	if err != nil {
		return WrapErrorWithSource(err, line)
	}

	savedInstr, savedCell := st.InstrPtr, st.CellPtr
	st.InstrPtr = 0
	runErr := m.Run(nested, st, false)
	st.InstrPtr, st.CellPtr = savedInstr, savedCell
	return runErr
}

// renderInstructionWindow formats the instructions around ip, one per
// line. Indices are zero-padded to the decimal width of the instruction
// count and the current instruction carries a marker.
func renderInstructionWindow(prog []Instruction, ip, around int) string {
	start := ip - around
	if start < 0 {
		start = 0
	}
	end := ip + around
	if last := len(prog) - 1; end > last {
		end = last
	}

	width := 1
	for n := len(prog); n >= 10; n /= 10 {
		width++
	}

	var b strings.Builder
	for i := start; i <= end; i++ {
		marker := "  "
		if i == ip {
			marker = "> "
		}
		fmt.Fprintf(&b, "%0*d %s%s\n", width, i, marker, prog[i])
	}
	return b.String()
}
