package internal

import (
	"errors"
	"testing"
)

func TestInterpreterKeepsGlobals(t *testing.T) {
	tp := &testPrinter{}
	tr := &testReporter{}
	i := NewInterpreter(tp, tr)

	for _, source := range []string{
		"var a = 1;",
		"fun inc() { a = a + 1; return a; }",
		"inc();",
		"print a;",
	} {
		if err := i.Run(source); err != nil {
			t.Fatalf("Unexpected error running %q: %v\n%s", source, err, tr)
		}
	}
	if !tp.Equals("2") {
		t.Errorf("Definitions should persist between runs, printed %q", tp.printed)
	}

	i.Reset()
	if err := i.Run("print a;"); err == nil {
		t.Errorf("Reset should drop global definitions")
	}
	if err := i.Run("print clock() > 0;"); err != nil {
		t.Errorf("Reset should keep native functions: %v", err)
	}
}

func TestInterpreterRecoversAfterErrors(t *testing.T) {
	tp := &testPrinter{}
	tr := &testReporter{}
	i := NewInterpreter(tp, tr)

	i.Run("var a = 1;")
	if err := i.Run("{ var a = 2; print missing; }"); err == nil {
		t.Fatalf("Expected a runtime error")
	}
	if err := i.Run("print ;"); err == nil {
		t.Fatalf("Expected a static error")
	}
	if err := i.Run("print a;"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !tp.Equals("1") {
		t.Errorf("Global scope should be intact after errors, printed %q", tp.printed)
	}
}

func TestInterpreterErrorKinds(t *testing.T) {
	i := NewInterpreter(&testPrinter{}, &testReporter{})

	err := i.Run("print ;")
	if !errors.Is(err, ErrStatic) {
		t.Errorf("Syntax errors should wrap ErrStatic, found %v", err)
	}

	err = i.Run("\nprint -nil;")
	var runErr *RuntimeError
	if !errors.As(err, &runErr) {
		t.Fatalf("Expected a *RuntimeError, found %v", err)
	}
	if runErr.Line != 2 || runErr.Message != "Operand must be a number." {
		t.Errorf("Unexpected runtime error %q at line %d", runErr.Message, runErr.Line)
	}
	if !errors.Is(err, errOnlyNumber) {
		t.Errorf("Runtime error should wrap its cause")
	}
	if runErr.Error() != "Operand must be a number.\n[line 2]" {
		t.Errorf("Unexpected error text %q", runErr.Error())
	}
}

func TestInterpreterTokens(t *testing.T) {
	i := NewInterpreter(&testPrinter{}, &testReporter{})
	tokens, err := i.Tokens("var a = 1.5;\nprint \"x\";")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []string{
		"1 VAR var",
		"1 IDENTIFIER a",
		"1 EQUAL =",
		"1 NUMBER 1.5 1.5",
		"1 SEMICOLON ;",
		"2 PRINT print",
		"2 STRING \"x\" x",
		"2 SEMICOLON ;",
		"2 EOF ",
	}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, found %v", len(expected), tokens)
	}
	for idx := range expected {
		if tokens[idx] != expected[idx] {
			t.Errorf("Token %d should be %q, found %q", idx, expected[idx], tokens[idx])
		}
	}

	if _, err := i.Tokens("\"open"); !errors.Is(err, ErrStatic) {
		t.Errorf("Lexical errors should wrap ErrStatic, found %v", err)
	}
}

func TestInterpreterTree(t *testing.T) {
	i := NewInterpreter(&testPrinter{}, &testReporter{})
	tree, err := i.Tree("var a = 1;\nprint a + 2;")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tree != "(var a = 1)\n(print (+ a 2))\n" {
		t.Errorf("Unexpected tree %q", tree)
	}
	if _, err := i.Tree("print"); !errors.Is(err, ErrStatic) {
		t.Errorf("Syntax errors should wrap ErrStatic, found %v", err)
	}
}

func TestRunSourceWithPrinter(t *testing.T) {
	tp := &testPrinter{}
	if !RunSourceWithPrinter("print 1;", tp, &testReporter{}) || !tp.Equals("1") {
		t.Errorf("Expected a successful run printing 1, found %q", tp.printed)
	}
	if RunSourceWithPrinter("print x;", tp, &testReporter{}) {
		t.Errorf("Expected a failed run")
	}
}

type nopPrinter struct{}

func (nopPrinter) Println(a ...interface{}) (n int, err error) {
	return 0, nil
}

func BenchmarkWhileLoop(b *testing.B) {
	const source = `
var i = 0;
while (i < 1000) {
	i = i + 1;
}`
	i := NewInterpreter(nopPrinter{}, &testReporter{})
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		i.Run(source)
	}
}

func BenchmarkFib(b *testing.B) {
	const source = `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
fib(15);`
	i := NewInterpreter(nopPrinter{}, &testReporter{})
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		i.Run(source)
	}
}

func TestUnterminatedStringThroughRun(t *testing.T) {
	tp := &testPrinter{}
	tr := &testReporter{}
	err := NewInterpreter(tp, tr).Run("print \"abc")
	if !errors.Is(err, ErrStatic) {
		t.Fatalf("Expected a static error, found %v", err)
	}
	// The string is dropped by the scanner, so the parser sees a bare print
	expected := "[line 1] Error: Unterminated string.\n[line 1] Error at end: Expect expression."
	if tr.String() != expected {
		t.Errorf("Unexpected reports:\n%s", tr)
	}
	if tp.printed != "" {
		t.Errorf("Nothing should be printed, found %q", tp.printed)
	}
}
