// machine.go: the tape machine.
//
// State is the mutable half of an execution session; Machine binds the
// outside world (input, output, an optional line editor) and drives a
// compiled instruction list against a State. Runtime failures abort the
// run with the tape left exactly as the faulting instruction found it.
package ezfuck

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// State holds the tape, the two cursors and the stepper flag. The tape
// starts as a single zeroed cell and only ever grows; CellPtr always
// indexes an existing cell.
type State struct {
	Cells     []uint8
	CellPtr   int
	InstrPtr  int
	Debugging bool
}

// NewState returns a fresh state with a one-cell zeroed tape.
func NewState() *State {
	return &State{Cells: []uint8{0}}
}

// CurrentCell returns the byte under the cell pointer.
func (st *State) CurrentCell() uint8 {
	return st.Cells[st.CellPtr]
}

// SetCurrentCell stores v under the cell pointer.
func (st *State) SetCurrentCell(v uint8) {
	st.Cells[st.CellPtr] = v
}

// SetCellPointer moves the cell pointer to ptr, growing the tape with
// zeroed cells so the pointer lands on a valid index. Negative pointers
// are the caller's error to reject.
func (st *State) SetCellPointer(ptr int) {
	for len(st.Cells) <= ptr {
		st.Cells = append(st.Cells, 0)
	}
	st.CellPtr = ptr
}

// Prompter supplies one line of interactive input with the trailing
// newline already stripped. *liner.State satisfies it directly.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Machine executes compiled instructions against a State. In feeds read
// instructions and, when no Prompter is set, interactive command lines;
// Out receives program output one byte at a time, plus the renderings of
// the debug stepper.
type Machine struct {
	In       *bufio.Reader
	Out      io.Writer
	Prompter Prompter
}

// NewMachine wraps in and out for execution. Pass os.Stdin and os.Stdout
// for a console run.
func NewMachine(in io.Reader, out io.Writer) *Machine {
	return &Machine{In: bufio.NewReader(in), Out: out}
}

// Run executes prog from the state's current instruction pointer until it
// reaches one past the final instruction. With allowDebugging set, a break
// instruction arms the stepper and every armed step pauses at the prompt
// first.
func (m *Machine) Run(prog []Instruction, st *State, allowDebugging bool) error {
	for st.InstrPtr < len(prog) {
		if st.Debugging {
			if err := m.pauseAtBreakpoint(prog, st); err != nil {
				return err
			}
		} else if err := m.exec(prog[st.InstrPtr], st, allowDebugging); err != nil {
			return err
		}
		st.InstrPtr++
	}
	return nil
}

func (m *Machine) exec(in Instruction, st *State, allowDebugging bool) error {
	switch in.Op {
	case OpArith:
		operand := in.Operand.Resolve(st.CurrentCell())
		if in.Math == MathDiv && operand == 0 {
			return &RuntimeError{Instr: st.InstrPtr, Msg: "division by zero"}
		}
		st.SetCurrentCell(applyMathOp(st.CurrentCell(), in.Math, operand))

	case OpMove:
		offset := int(in.Operand.Resolve(st.CurrentCell()))
		if in.Dir == DirLeft {
			offset = -offset
		}
		next := st.CellPtr + offset
		if next < 0 {
			return &RuntimeError{Instr: st.InstrPtr, Msg: fmt.Sprintf("cell pointer moved below zero (%d)", next)}
		}
		st.SetCellPointer(next)

	case OpSeek:
		st.SetCellPointer(int(in.Operand.Resolve(st.CurrentCell())))

	case OpJump:
		cell := st.CurrentCell()
		jump := cell != 0
		if in.Cond == JumpIfZero {
			jump = cell == 0
		}
		if jump {
			st.InstrPtr = in.Target
		}

	case OpSet:
		st.SetCurrentCell(in.Operand.Resolve(st.CurrentCell()))

	case OpPrint:
		if _, err := m.Out.Write([]byte{st.CurrentCell()}); err != nil {
			return &RuntimeError{Instr: st.InstrPtr, Msg: fmt.Sprintf("writing output: %v", err)}
		}

	case OpRead:
		b, err := m.In.ReadByte()
		if err != nil {
			return &RuntimeError{Instr: st.InstrPtr, Msg: fmt.Sprintf("reading input: %v", err)}
		}
		st.SetCurrentCell(b)

	case OpBreak:
		if allowDebugging {
			st.Debugging = true
		}
	}
	return nil
}

// applyMathOp applies op to the cell value. Add, sub and mul wrap modulo
// 256; div is unsigned floor division with a nonzero operand, which the
// caller has already checked.
func applyMathOp(cell uint8, op MathOp, operand uint8) uint8 {
	switch op {
	case MathAdd:
		return cell + operand
	case MathSub:
		return cell - operand
	case MathMul:
		return cell * operand
	case MathDiv:
		return cell / operand
	}
	return cell
}

// promptLine reads one interactive line, preferring the configured
// Prompter and falling back to the machine's input stream. A final line
// missing its trailing newline is still accepted; end of input surfaces as
// io.EOF.
func (m *Machine) promptLine(prompt string) (string, error) {
	if m.Prompter != nil {
		return m.Prompter.Prompt(prompt)
	}

	fmt.Fprint(m.Out, prompt)
	line, err := m.In.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return line, nil
}
