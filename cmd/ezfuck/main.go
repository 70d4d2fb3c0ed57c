package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/tebeka/atexit"

	"github.com/carcigenicate/ezfuck"
)

const (
	appName     = "ezfuck"
	historyFile = ".ezfuck_history"
)

var banner = fmt.Sprintf("ezfuck %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type %s to exit.", ezfuck.Version, ezfuck.QuitSentinel)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	showVersion := flag.Bool("version", false, "print the interpreter version")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(ezfuck.Version)
		atexit.Exit(0)
	}

	switch flag.NArg() {
	case 0:
		atexit.Exit(cmdRepl())
	case 1:
		atexit.Exit(cmdRun(flag.Arg(0)))
	default:
		usage()
		atexit.Exit(2)
	}
}

func usage() {
	fmt.Printf(`ezfuck %s

Usage:
  %s <file.ez>   Interpret a source file. Breakpoints are live.
  %s             Start the REPL on a fresh tape.
  %s -version    Print the interpreter version.

`, ezfuck.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(file string) int {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	if err := ezfuck.RunWithDebugger(string(src), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, red(ezfuck.WrapErrorWithSource(err, string(src)).Error()))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	atexit.Register(func() { saveHistory(ln, histPath) })

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		atexit.Exit(130)
	}()

	session := ezfuck.NewSession(os.Stdin, os.Stdout)
	session.Machine.Prompter = historyPrompter{ln}
	session.ReportError = func(err error) {
		fmt.Fprintln(os.Stderr, red(err.Error()))
	}

	if err := session.Run(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}

func saveHistory(ln *liner.State, path string) {
	if f, err := os.Create(path); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// historyPrompter reads lines through liner, recording every non-blank
// line in the history. A Ctrl+C abort comes back as an empty line, which
// the session skips.
type historyPrompter struct {
	ln *liner.State
}

func (p historyPrompter) Prompt(prompt string) (string, error) {
	line, err := p.ln.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		fmt.Println()
		return "", nil
	}
	if err == nil && strings.TrimSpace(line) != "" {
		p.ln.AppendHistory(line)
	}
	return line, err
}
