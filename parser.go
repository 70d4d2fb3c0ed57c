// parser.go: tokens to a jump-resolved instruction list.
//
// Compilation runs in three stages. Assembly pairs every instruction
// symbol with the operand token that follows it, if any. Loop resolution
// matches brackets by stack discipline and records both jump directions.
// Lowering maps each command to exactly one instruction, so the loop maps
// built over command indices hold for instruction indices too.
package ezfuck

import "fmt"

// Command is one instruction symbol plus its operand as written in source.
// HasOperand distinguishes a bare symbol from one with an explicit operand.
type Command struct {
	Symbol     byte
	Operand    Operand
	HasOperand bool
	Line       int
	Col        int
}

// DefaultedOperand returns the written operand, or the literal 1 when the
// command was written bare.
func (c Command) DefaultedOperand() Operand {
	if c.HasOperand {
		return c.Operand
	}
	return Lit(1)
}

// Compile turns source text into a flat instruction list ready to execute.
// With allowDebugging unset, breakpoint commands are dropped before loops
// are resolved, so jump targets stay aligned with the instructions that
// actually remain.
func Compile(src string, allowDebugging bool) ([]Instruction, error) {
	tokens, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}

	cmds, err := assembleCommands(tokens)
	if err != nil {
		return nil, err
	}
	if !allowDebugging {
		cmds = dropBreakpoints(cmds)
	}

	openToClose, closeToOpen, err := findLoopPairs(cmds)
	if err != nil {
		return nil, err
	}

	return lowerCommands(cmds, openToClose, closeToOpen), nil
}

// assembleCommands pairs symbols with operands. A symbol stays pending
// until the next token shows whether it owns an operand; operand tokens
// must follow an operand-taking symbol.
func assembleCommands(tokens []Token) ([]Command, error) {
	var cmds []Command
	var pending *Command

	finish := func() {
		if pending != nil {
			cmds = append(cmds, *pending)
			pending = nil
		}
	}

	for _, tok := range tokens {
		switch tok.Type {
		case COMMAND:
			finish()
			pending = &Command{Symbol: tok.Lexeme[0], Line: tok.Line, Col: tok.Col}
		case INTEGER, CELLREF:
			if pending == nil {
				return nil, &ParseError{
					Line: tok.Line,
					Col:  tok.Col,
					Msg:  fmt.Sprintf("operand %s has no command to apply to", tok.Lexeme),
				}
			}
			if isValuelessSymbol(pending.Symbol) {
				return nil, &ParseError{
					Line: tok.Line,
					Col:  tok.Col,
					Msg:  fmt.Sprintf("command %c takes no operand", pending.Symbol),
				}
			}
			pending.Operand = Lit(tok.Value)
			if tok.Type == CELLREF {
				pending.Operand = CellRef()
			}
			pending.HasOperand = true
			finish()
		}
	}
	finish()

	return cmds, nil
}

// dropBreakpoints removes every ! command. Runs before loop resolution so
// the surviving command indices are final.
func dropBreakpoints(cmds []Command) []Command {
	kept := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Symbol != '!' {
			kept = append(kept, cmd)
		}
	}
	return kept
}

// findLoopPairs matches brackets and returns the open-to-close and
// close-to-open index maps. Unbalanced brackets fail compilation; an
// unclosed [ is reported at the outermost one left open.
func findLoopPairs(cmds []Command) (map[int]int, map[int]int, error) {
	openToClose := make(map[int]int)
	closeToOpen := make(map[int]int)
	var stack []int

	for i, cmd := range cmds {
		switch cmd.Symbol {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				return nil, nil, &ParseError{Line: cmd.Line, Col: cmd.Col, Msg: "] without a matching ["}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			openToClose[open] = i
			closeToOpen[i] = open
		}
	}
	if len(stack) > 0 {
		dangling := cmds[stack[0]]
		return nil, nil, &ParseError{Line: dangling.Line, Col: dangling.Col, Msg: "[ without a matching ]"}
	}

	return openToClose, closeToOpen, nil
}

// lowerCommands maps commands one to one onto instructions. The lexer
// guarantees every symbol is covered here.
func lowerCommands(cmds []Command, openToClose, closeToOpen map[int]int) []Instruction {
	out := make([]Instruction, 0, len(cmds))
	for i, cmd := range cmds {
		op := cmd.DefaultedOperand()
		switch cmd.Symbol {
		case '+':
			out = append(out, Instruction{Op: OpArith, Math: MathAdd, Operand: op})
		case '-':
			out = append(out, Instruction{Op: OpArith, Math: MathSub, Operand: op})
		case '*':
			out = append(out, Instruction{Op: OpArith, Math: MathMul, Operand: op})
		case '/':
			out = append(out, Instruction{Op: OpArith, Math: MathDiv, Operand: op})
		case '<':
			out = append(out, Instruction{Op: OpMove, Dir: DirLeft, Operand: op})
		case '>':
			out = append(out, Instruction{Op: OpMove, Dir: DirRight, Operand: op})
		case '@':
			out = append(out, Instruction{Op: OpSeek, Operand: op})
		case '[':
			out = append(out, Instruction{Op: OpJump, Cond: JumpIfZero, Target: openToClose[i]})
		case ']':
			out = append(out, Instruction{Op: OpJump, Cond: JumpIfNotZero, Target: closeToOpen[i]})
		case '^':
			out = append(out, Instruction{Op: OpSet, Operand: op})
		case '.':
			out = append(out, Instruction{Op: OpPrint})
		case ',':
			out = append(out, Instruction{Op: OpRead})
		case '!':
			out = append(out, Instruction{Op: OpBreak})
		}
	}
	return out
}
