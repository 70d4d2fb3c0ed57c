// lexer.go: ezfuck source to tokens.
//
// Scanning runs in two passes. The first splits the raw text into lexemes:
// every instruction symbol and every V is its own lexeme, consecutive
// digits merge into one lexeme, and everything else is dropped. A dropped
// character still ends the digit run it interrupts. The second pass
// classifies each lexeme into a token or fails the whole compilation.
package ezfuck

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the kind of a token.
type TokenType int

const (
	COMMAND TokenType = iota // one instruction symbol
	INTEGER                  // decimal byte literal, 0-255
	CELLREF                  // the V marker: operand is the current cell
)

// Token is one lexical unit with its source position. Line is 1-based, Col
// is 0-based. Value is set for INTEGER tokens only.
type Token struct {
	Type   TokenType
	Lexeme string
	Value  uint8
	Line   int
	Col    int
}

// The source alphabet. Symbols listed in valuelessSymbols never take an
// operand; every character outside these classes is ignored.
const (
	commandSymbols   = "+-*/<>[]^.,!@"
	valuelessSymbols = "[],.!"
	cellRefSymbol    = 'V'
)

func isCommandSymbol(ch byte) bool { return strings.IndexByte(commandSymbols, ch) >= 0 }

func isValuelessSymbol(ch byte) bool { return strings.IndexByte(valuelessSymbols, ch) >= 0 }

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// lexeme is a pre-classification slice of source.
type lexeme struct {
	text string
	line int
	col  int
}

// Lexer scans one piece of ezfuck source.
type Lexer struct {
	src string
}

// NewLexer creates a Lexer for src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Scan tokenizes the whole source. The only failure is a lexeme that fits
// no token class, such as a digit run that overflows a byte.
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for _, lx := range l.scanLexemes() {
		tok, err := classifyLexeme(lx)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// scanLexemes splits the source into lexemes, tracking the position each
// one starts at.
func (l *Lexer) scanLexemes() []lexeme {
	var out []lexeme

	line, col := 1, 0
	runStart := -1 // byte index of the pending digit run, -1 when none
	runLine, runCol := 0, 0

	flushRun := func(end int) {
		if runStart >= 0 {
			out = append(out, lexeme{text: l.src[runStart:end], line: runLine, col: runCol})
			runStart = -1
		}
	}

	for i := 0; i < len(l.src); i++ {
		ch := l.src[i]
		switch {
		case isCommandSymbol(ch) || ch == cellRefSymbol:
			flushRun(i)
			out = append(out, lexeme{text: l.src[i : i+1], line: line, col: col})
		case isDigit(ch):
			if runStart < 0 {
				runStart, runLine, runCol = i, line, col
			}
		default:
			flushRun(i)
		}

		if ch == '\n' {
			line, col = line+1, 0
		} else {
			col++
		}
	}
	flushRun(len(l.src))

	return out
}

func classifyLexeme(lx lexeme) (Token, error) {
	switch first := lx.text[0]; {
	case len(lx.text) == 1 && isCommandSymbol(first):
		return Token{Type: COMMAND, Lexeme: lx.text, Line: lx.line, Col: lx.col}, nil
	case first == cellRefSymbol:
		return Token{Type: CELLREF, Lexeme: lx.text, Line: lx.line, Col: lx.col}, nil
	case isDigit(first):
		n, err := strconv.ParseUint(lx.text, 10, 8)
		if err != nil {
			return Token{}, &LexError{
				Line: lx.line,
				Col:  lx.col,
				Msg:  fmt.Sprintf("integer literal %s does not fit in a byte (0-255)", lx.text),
			}
		}
		return Token{Type: INTEGER, Lexeme: lx.text, Value: uint8(n), Line: lx.line, Col: lx.col}, nil
	}
	return Token{}, &LexError{
		Line: lx.line,
		Col:  lx.col,
		Msg:  fmt.Sprintf("unrecognized lexeme %q", lx.text),
	}
}
