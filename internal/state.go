package internal

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// interpreterState stores the state of a single run
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt

	errorCount   int
	runtimeError *RuntimeError

	reporter IReporter
	logger   *logrus.Entry
}

func newInterpreterState(source string, reporter IReporter, logger *logrus.Entry) *interpreterState {
	return &interpreterState{
		source:   source,
		reporter: reporter,
		logger:   logger,
	}
}

// parseError is the signal used to unwind the parser up to the
// enclosing declaration.
type parseError struct {
	err error
}

func (e *parseError) Error() string {
	return e.err.Error()
}

// RuntimeError is a fatal error raised while evaluating a program
type RuntimeError struct {
	Line    int
	Message string

	err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

func (e *RuntimeError) Unwrap() error {
	return e.err
}

func (s *interpreterState) lexError(err error, line int) {
	s.errorCount++
	s.reporter.Report(line, "", err.Error())
}

// setError reports a syntax error without unwinding the parser
func (s *interpreterState) setError(err error, tk *token) {
	s.errorCount++
	s.reporter.Report(tk.line, where(tk), err.Error())
}

// fatalError reports a syntax error and unwinds to the enclosing declaration
func (s *interpreterState) fatalError(err error, tk *token) {
	s.setError(err, tk)
	panic(&parseError{err: err})
}

func (s *interpreterState) runtimeErr(err error, tk *token) {
	s.runtimeErrf(err, tk, "%s", err.Error())
}

func (s *interpreterState) runtimeErrf(err error, tk *token, format string, a ...interface{}) {
	s.runtimeError = &RuntimeError{
		Line:    tk.line,
		Message: fmt.Sprintf(format, a...),
		err:     err,
	}
	panic(s.runtimeError)
}

// Valid returns true if no static error was reported
func (s *interpreterState) Valid() bool {
	return s.errorCount == 0
}

func where(tk *token) string {
	if tk.token == tkEOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tk.lexeme)
}

// ErrStatic is returned when lexical or syntax errors prevented evaluation
var ErrStatic = errors.New("static errors reported")

// Lexer errors
var errUnexpectedChar = errors.New("Unexpected character.")
var errUnclosedString = errors.New("Unterminated string.")

// Parser errors
var errExpectedExpr = errors.New("Expect expression.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errUnclosedArguments = errors.New("Expect ')' after arguments.")
var errUnclosedParams = errors.New("Expect ')' after parameters.")
var errUnclosedBlock = errors.New("Expect '}' after block.")
var errUnclosedClassBody = errors.New("Expect '}' after class body.")
var errExpectedClassName = errors.New("Expect class name.")
var errExpectedSuperclassName = errors.New("Expect superclass name.")
var errExpectedClassBody = errors.New("Expect '{' before class body.")
var errExpectedFunctionName = errors.New("Expect function name.")
var errExpectedMethodName = errors.New("Expect method name.")
var errExpectedParamsParen = errors.New("Expect '(' after function name.")
var errExpectedParamName = errors.New("Expect parameter name.")
var errExpectedFunctionBody = errors.New("Expect '{' before function body.")
var errExpectedVarName = errors.New("Expect variable name.")
var errExpectedSemicolonVar = errors.New("Expect ';' after variable declaration.")
var errExpectedSemicolonValue = errors.New("Expect ';' after value.")
var errExpectedSemicolonExpr = errors.New("Expect ';' after expression.")
var errExpectedSemicolonReturn = errors.New("Expect ';' after return value.")
var errExpectedSemicolonLoop = errors.New("Expect ';' after loop condition.")
var errExpectedForParen = errors.New("Expect '(' after 'for'.")
var errUnclosedForClauses = errors.New("Expect ')' after for clauses.")
var errExpectedIfParen = errors.New("Expect '(' after 'if'.")
var errUnclosedIfCondition = errors.New("Expect ')' after if condition.")
var errExpectedWhileParen = errors.New("Expect '(' after 'while'.")
var errUnclosedWhileCondition = errors.New("Expect ')' after condition.")
var errExpectedProp = errors.New("Expect property name after '.'.")
var errExpectedSuperDot = errors.New("Expect '.' after 'super'.")
var errExpectedSuperMethod = errors.New("Expect superclass method name.")
var errInvalidAssignment = errors.New("Invalid assignment target.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")
var errTopLevelReturn = errors.New("Can't return from top-level code.")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class.")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class.")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass.")
var errInheritFromSelf = errors.New("A class can't inherit from itself.")

// Runtime errors
var errUndefinedVar = errors.New("Undefined variable")
var errUndefinedProp = errors.New("Undefined property")
var errOnlyNumber = errors.New("Operand must be a number.")
var errOnlyNumbers = errors.New("Operands must be numbers.")
var errInvalidPlus = errors.New("Operands must be two numbers or two strings.")
var errOnlyFunction = errors.New("Can only call functions and classes.")
var errInvalidNumberArguments = errors.New("Invalid number of arguments")
var errExpectedObject = errors.New("Only instances have properties.")
var errExpectedObjectFields = errors.New("Only instances have fields.")
var errExpectedClass = errors.New("Superclass must be a class.")
var errStackOverflow = errors.New("Stack overflow.")
