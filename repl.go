// repl.go: the interactive session. One persistent tape, driven a line of
// code at a time.
package ezfuck

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Interactive constants shared by the session and the debug stepper.
const (
	Prompt       = "EZ> "
	QuitSentinel = "!"
)

// Session is a REPL over one persistent execution state. Every line is
// compiled with debugging disabled and run against the same tape; the quit
// sentinel or end of input ends the session.
type Session struct {
	Machine *Machine
	State   *State

	// ReportError renders a failed line; the session then continues with
	// the tape exactly as the failed run left it. Defaults to plain
	// printing on the machine's output.
	ReportError func(error)
}

// NewSession builds a session on fresh state over in and out.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{Machine: NewMachine(in, out), State: NewState()}
}

// Run drives the prompt, compile, execute cycle until the quit sentinel.
// The instruction pointer is rewound after every line, so each line
// executes from its start against the accumulated tape.
func (s *Session) Run() error {
	for {
		fmt.Fprint(s.Machine.Out, renderCells(s.State.Cells, s.State.CellPtr))

		line, err := s.Machine.promptLine(Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.Machine.Out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, QuitSentinel) {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		prog, err := Compile(line, false)
		if err != nil {
			s.reportError(WrapErrorWithSource(err, line))
			continue
		}

		fmt.Fprint(s.Machine.Out, "Output: ")
		runErr := s.Machine.Run(prog, s.State, false)
		s.State.InstrPtr = 0
		fmt.Fprintln(s.Machine.Out)
		if runErr != nil {
			s.reportError(runErr)
		}
	}
}

func (s *Session) reportError(err error) {
	if s.ReportError != nil {
		s.ReportError(err)
		return
	}
	fmt.Fprintln(s.Machine.Out, err)
}
