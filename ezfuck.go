// Package ezfuck interprets the ezfuck language, a Brainfuck superset with
// multi-digit operands, a current-cell operand marker V, multiplication
// and division, absolute pointer seeks, and breakpoints that drop into an
// interactive stepper.
//
// Source compiles through a scanner, a command assembler and a loop
// resolver into a flat instruction list (Compile) that a Machine executes
// against a growable byte tape. Run and RunWithDebugger cover the common
// one-shot case; Session wraps the same pieces into a persistent-tape
// REPL.
package ezfuck

import "io"

// Version is the interpreter version reported by the CLI.
const Version = "0.4.0"

// Run compiles src with breakpoints stripped and executes it on a fresh
// machine over in and out.
func Run(src string, in io.Reader, out io.Writer) error {
	prog, err := Compile(src, false)
	if err != nil {
		return err
	}
	return NewMachine(in, out).Run(prog, NewState(), false)
}

// RunWithDebugger is Run with breakpoints compiled in and live.
func RunWithDebugger(src string, in io.Reader, out io.Writer) error {
	prog, err := Compile(src, true)
	if err != nil {
		return err
	}
	return NewMachine(in, out).Run(prog, NewState(), true)
}
