// machine_test.go
package ezfuck

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func runSrc(t *testing.T, src, input string) (string, *State) {
	t.Helper()
	prog := mustCompile(t, src, false)
	var out bytes.Buffer
	st := NewState()
	if err := NewMachine(strings.NewReader(input), &out).Run(prog, st, false); err != nil {
		t.Fatalf("Run error for %q: %v", src, err)
	}
	return out.String(), st
}

func runWantRuntimeError(t *testing.T, src, input string) *RuntimeError {
	t.Helper()
	prog := mustCompile(t, src, false)
	var out bytes.Buffer
	err := NewMachine(strings.NewReader(input), &out).Run(prog, NewState(), false)
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("want *RuntimeError for %q, got %v", src, err)
	}
	return rtErr
}

func wantCell(t *testing.T, st *State, i int, v uint8) {
	t.Helper()
	if i >= len(st.Cells) || st.Cells[i] != v {
		t.Fatalf("want cell %d == %d, got tape %v", i, v, st.Cells)
	}
}

// --- arithmetic ------------------------------------------------------------

func Test_Machine_Arith_AddAndSubWrap(t *testing.T) {
	_, st := runSrc(t, "+200+100", "")
	wantCell(t, st, 0, 44)

	_, st = runSrc(t, "-1", "")
	wantCell(t, st, 0, 255)
}

func Test_Machine_Arith_MulWraps(t *testing.T) {
	_, st := runSrc(t, "^100*3", "")
	wantCell(t, st, 0, 44)
}

func Test_Machine_Arith_DivFloors(t *testing.T) {
	_, st := runSrc(t, "^7/2", "")
	wantCell(t, st, 0, 3)
}

func Test_Machine_Arith_DivisionByZeroFails(t *testing.T) {
	rtErr := runWantRuntimeError(t, "+3/0", "")
	if rtErr.Instr != 1 || !strings.Contains(rtErr.Msg, "division by zero") {
		t.Fatalf("want division by zero at instruction 1, got %v", rtErr)
	}
}

func Test_Machine_Arith_CellOperandUsesLiveValue(t *testing.T) {
	_, st := runSrc(t, "+9+V", "")
	wantCell(t, st, 0, 18)

	_, st = runSrc(t, "^3*V", "")
	wantCell(t, st, 0, 9)
}

// --- pointer movement ------------------------------------------------------

func Test_Machine_Move_GrowsTapeWithZeroes(t *testing.T) {
	_, st := runSrc(t, "+2>3", "")
	if st.CellPtr != 3 || len(st.Cells) != 4 {
		t.Fatalf("want pointer 3 on a 4-cell tape, got pointer %d on %v", st.CellPtr, st.Cells)
	}
	wantCell(t, st, 0, 2)
	wantCell(t, st, 3, 0)
}

func Test_Machine_Move_UnderflowChecksEveryInstruction(t *testing.T) {
	rtErr := runWantRuntimeError(t, ">1<2>5", "")
	if rtErr.Instr != 1 {
		t.Fatalf("want underflow at instruction 1, got %v", rtErr)
	}
}

func Test_Machine_Seek_SetsAbsolutePointer(t *testing.T) {
	_, st := runSrc(t, "@3+5", "")
	if st.CellPtr != 3 {
		t.Fatalf("want pointer 3, got %d on %v", st.CellPtr, st.Cells)
	}
	wantCell(t, st, 3, 5)

	_, st = runSrc(t, "@", "")
	if st.CellPtr != 1 {
		t.Fatalf("want the bare seek to default to cell 1, got %d", st.CellPtr)
	}

	_, st = runSrc(t, "@5@0", "")
	if st.CellPtr != 0 || len(st.Cells) != 6 {
		t.Fatalf("want pointer back at 0 on the grown tape, got pointer %d on %v", st.CellPtr, st.Cells)
	}

	_, st = runSrc(t, "^3@V", "")
	if st.CellPtr != 3 {
		t.Fatalf("want pointer at the seeked cell value, got %d", st.CellPtr)
	}
}

// --- loops -----------------------------------------------------------------

func Test_Machine_Loop_SkipsWhenCellIsZero(t *testing.T) {
	_, st := runSrc(t, "[+5]", "")
	wantCell(t, st, 0, 0)
}

func Test_Machine_Loop_RunsUntilCellIsZero(t *testing.T) {
	_, st := runSrc(t, "+3[-]", "")
	wantCell(t, st, 0, 0)
	if st.InstrPtr != 4 {
		t.Fatalf("want the run to halt one past the close bracket, got %d", st.InstrPtr)
	}
}

func Test_Machine_Loop_MovesValueAcrossCells(t *testing.T) {
	_, st := runSrc(t, "+5[->+<]", "")
	wantCell(t, st, 0, 0)
	wantCell(t, st, 1, 5)
}

// --- io --------------------------------------------------------------------

func Test_Machine_Print_WritesRawBytes(t *testing.T) {
	out, _ := runSrc(t, "^65.^66.", "")
	if out != "AB" {
		t.Fatalf("want %q, got %q", "AB", out)
	}

	out, _ = runSrc(t, "^200.", "")
	if !bytes.Equal([]byte(out), []byte{200}) {
		t.Fatalf("want the raw byte 200, got %v", []byte(out))
	}
}

func Test_Machine_Read_ConsumesOneBytePerCommand(t *testing.T) {
	out, st := runSrc(t, ",+1.", "A")
	if out != "B" {
		t.Fatalf("want %q, got %q", "B", out)
	}
	wantCell(t, st, 0, 66)

	_, st = runSrc(t, ",,", "AB")
	wantCell(t, st, 0, 66)
}

func Test_Machine_Read_EndOfInputFails(t *testing.T) {
	rtErr := runWantRuntimeError(t, ",", "")
	if !strings.Contains(rtErr.Msg, "reading input") {
		t.Fatalf("want a read failure, got %v", rtErr)
	}
}

// --- breakpoints -----------------------------------------------------------

func Test_Machine_Break_InertWhenDebuggingDisallowed(t *testing.T) {
	prog := mustCompile(t, "+!+", true)
	var out bytes.Buffer
	st := NewState()
	if err := NewMachine(strings.NewReader(""), &out).Run(prog, st, false); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if st.Debugging {
		t.Fatalf("breakpoint armed the stepper with debugging disallowed")
	}
	wantCell(t, st, 0, 2)
}

// --- whole programs --------------------------------------------------------

func Test_Machine_Run_RepeatableAcrossFreshStates(t *testing.T) {
	src := "+8[>+4[>+2>+3>+3>+<4-]>+>+>->2+[<]<-]>2.>-3.+7..+3.>2.<-.<.+3.-6.-8.>2+.>+2."
	prog := mustCompile(t, src, false)

	runOnce := func() string {
		var out bytes.Buffer
		if err := NewMachine(strings.NewReader(""), &out).Run(prog, NewState(), false); err != nil {
			t.Fatalf("Run error: %v", err)
		}
		return out.String()
	}

	first, second := runOnce(), runOnce()
	if first != "Hello World!\n" || first != second {
		t.Fatalf("want %q on every run, got %q then %q", "Hello World!\n", first, second)
	}
}
