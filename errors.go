// errors.go: typed failure tiers and source-snippet rendering.
//
// Failures split into two tiers. Compilation failures are *LexError or
// *ParseError, both carrying a source position; execution failures are
// *RuntimeError, positioned by instruction index. WrapErrorWithSource
// upgrades positioned compile errors into a multi-line caret snippet
// against the source that produced them and passes every other error
// through untouched.
package ezfuck

import (
	"fmt"
	"strings"
)

// LexError reports a lexeme that cannot become a token. Line is 1-based,
// Col is 0-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// ParseError reports a malformed command sequence. Line is 1-based, Col is
// 0-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// RuntimeError aborts a run. Instr is the index of the faulting
// instruction in the compiled list.
type RuntimeError struct {
	Instr int
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at instruction %d: %s", e.Instr, e.Msg)
}

// WrapErrorWithSource returns err annotated with a caret snippet of src
// when err is a positioned compile error, and err unchanged otherwise.
func WrapErrorWithSource(err error, src string) error {
	var line, col int
	switch e := err.(type) {
	case *LexError:
		line, col = e.Line, e.Col
	case *ParseError:
		line, col = e.Line, e.Col
	default:
		return err
	}
	return fmt.Errorf("%w\n\n%s", err, caretSnippet(src, line, col+1))
}

// caretSnippet renders the offending line with one line of context on each
// side and a caret under the reported column. line and col are 1-based
// here; col may point one past the end of a line.
func caretSnippet(src string, line, col int) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "\n%4d | %s", line+1, lines[line])
	}
	return b.String()
}
