package ezfuck

import (
	"fmt"
	"strconv"
)

// Operand is the value a command applies: either a byte literal or a
// deferred reference to the cell under the pointer, resolved at the moment
// the instruction executes.
type Operand struct {
	FromCell bool
	Value    uint8
}

// Lit returns a literal operand.
func Lit(n uint8) Operand { return Operand{Value: n} }

// CellRef returns the operand written as V in source.
func CellRef() Operand { return Operand{FromCell: true} }

// Resolve returns the concrete byte this operand stands for, given the
// current cell's value.
func (o Operand) Resolve(cell uint8) uint8 {
	if o.FromCell {
		return cell
	}
	return o.Value
}

func (o Operand) String() string {
	if o.FromCell {
		return "cell"
	}
	return strconv.Itoa(int(o.Value))
}

// MathOp selects the arithmetic an instruction applies to the current cell.
type MathOp uint8

const (
	MathAdd MathOp = iota // +
	MathSub               // -
	MathMul               // *
	MathDiv               // /
)

func (op MathOp) String() string {
	switch op {
	case MathAdd:
		return "add"
	case MathSub:
		return "sub"
	case MathMul:
		return "mul"
	case MathDiv:
		return "div"
	}
	return fmt.Sprintf("math(%d)", uint8(op))
}

// Direction is the movement sense of a pointer-move instruction.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
)

func (d Direction) String() string {
	if d == DirLeft {
		return "left"
	}
	return "right"
}

// JumpCond is the test a jump applies to the current cell. Jumps always
// compare against zero: a loop open skips forward when the cell is zero, a
// loop close jumps back while it is not.
type JumpCond uint8

const (
	JumpIfZero JumpCond = iota
	JumpIfNotZero
)

func (c JumpCond) String() string {
	if c == JumpIfZero {
		return "=="
	}
	return "!="
}

// Opcode identifies what an instruction does. Which of the remaining
// Instruction fields are meaningful depends on it.
type Opcode uint8

const (
	OpArith Opcode = iota // apply Math with Operand to the current cell
	OpMove                // move the cell pointer Operand cells in Dir
	OpSeek                // set the cell pointer to Operand
	OpJump                // jump to Target when Cond holds for the cell
	OpSet                 // store Operand in the current cell
	OpPrint               // write the current cell to output
	OpRead                // read one input byte into the current cell
	OpBreak               // arm the debug stepper
)

// Instruction is one position-addressed unit of execution. Instructions are
// immutable once compiled; list indices are the only valid jump targets.
type Instruction struct {
	Op      Opcode
	Math    MathOp
	Dir     Direction
	Cond    JumpCond
	Target  int
	Operand Operand
}

// String renders the instruction the way the debug stepper lists it.
func (in Instruction) String() string {
	switch in.Op {
	case OpArith:
		return fmt.Sprintf("%s %s", in.Math, in.Operand)
	case OpMove:
		return fmt.Sprintf("move %s %s", in.Dir, in.Operand)
	case OpSeek:
		return fmt.Sprintf("seek to %s", in.Operand)
	case OpJump:
		return fmt.Sprintf("jump to %d if cell %s 0", in.Target, in.Cond)
	case OpSet:
		return fmt.Sprintf("set %s", in.Operand)
	case OpPrint:
		return "print"
	case OpRead:
		return "read"
	case OpBreak:
		return "break"
	}
	return fmt.Sprintf("op(%d)", uint8(in.Op))
}
