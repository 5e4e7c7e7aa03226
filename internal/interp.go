package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface, receives one line per print statement
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
}

// IReporter receives lexical, syntax and runtime diagnostics
type IReporter interface {
	Report(line int, where, message string)
}

// Interpreter runs programs against a global scope that survives
// between runs, so a REPL session keeps its definitions.
type Interpreter struct {
	printer  IPrinter
	reporter IReporter
	logger   *logrus.Entry

	globals *env
}

// NewInterpreter creates an interpreter writing to p and reporting to r
func NewInterpreter(p IPrinter, r IReporter) *Interpreter {
	i := &Interpreter{
		printer:  p,
		reporter: r,
	}
	i.SetLogger(logrus.StandardLogger())
	i.Reset()
	return i
}

// SetLogger replaces the logger used for pipeline tracing
func (i *Interpreter) SetLogger(l *logrus.Logger) {
	i.logger = l.WithField("component", "interpreter")
}

// Reset drops every global definition
func (i *Interpreter) Reset() {
	i.globals = newEnv(nil)
	defineGlobals(i.globals)
}

// Run scans, parses and evaluates source. Nothing is evaluated if a
// static error was reported; the returned error wraps ErrStatic then.
// Runtime errors are reported and returned as *RuntimeError.
func (i *Interpreter) Run(source string) error {
	state := i.parse(source)
	if !state.Valid() {
		return fmt.Errorf("%w: %d error(s)", ErrStatic, state.errorCount)
	}

	exec := &exec{
		state:   state,
		globals: i.globals,
		env:     i.globals,
		printer: i.printer,
	}
	return exec.interpret()
}

// Tokens scans source and renders one line per token
func (i *Interpreter) Tokens(source string) ([]string, error) {
	state := newInterpreterState(source, i.reporter, i.logger)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()

	out := make([]string, len(state.tokens))
	for idx := range state.tokens {
		out[idx] = state.tokens[idx].String()
	}
	if !state.Valid() {
		return out, fmt.Errorf("%w: %d error(s)", ErrStatic, state.errorCount)
	}
	return out, nil
}

// Tree parses source and renders its syntax tree, one declaration per line
func (i *Interpreter) Tree(source string) (string, error) {
	state := i.parse(source)
	if !state.Valid() {
		return "", fmt.Errorf("%w: %d error(s)", ErrStatic, state.errorCount)
	}
	return stringVisitor{}.print(state.stmts), nil
}

func (i *Interpreter) parse(source string) *interpreterState {
	state := newInterpreterState(source, i.reporter, i.logger)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	parser := &parser{
		state: state,
	}

	lexer.scan()
	parser.parse()

	return state
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance
func RunSourceWithPrinter(source string, p IPrinter, r IReporter) bool {
	return NewInterpreter(p, r).Run(source) == nil
}
