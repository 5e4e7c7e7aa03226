package internal

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func parseSource(source string) (*interpreterState, *testReporter) {
	tr := &testReporter{}
	i := &Interpreter{
		reporter: tr,
		logger:   logrus.WithField("component", "test"),
	}
	return i.parse(source), tr
}

func checkTree(t *testing.T, source string, lines ...string) {
	t.Helper()
	state, tr := parseSource(source)
	if !state.Valid() {
		t.Errorf("Unexpected errors parsing %q:\n%s", source, tr)
		return
	}
	expected := ""
	for _, line := range lines {
		expected += line + "\n"
	}
	if found := (stringVisitor{}).print(state.stmts); found != expected {
		t.Errorf("Parsing %q\n\texpected:\n%s\tfound:\n%s", source, expected, found)
	}
}

func checkParseErrors(t *testing.T, source string, errors ...string) {
	t.Helper()
	_, tr := parseSource(source)
	if tr.String() != strings.Join(errors, "\n") {
		t.Errorf("Parsing %q\n\texpected:\n%s\n\tfound:\n%s", source, strings.Join(errors, "\n"), tr)
	}
}

func TestParsePrecedence(t *testing.T) {
	checkTree(t, "print 1 + 2 * 3;", "(print (+ 1 (* 2 3)))")
	checkTree(t, "print (1 + 2) * 3;", "(print (* (group (+ 1 2)) 3))")
	checkTree(t, "print 1 - 2 - 3;", "(print (- (- 1 2) 3))")
	checkTree(t, "print -1 - -2;", "(print (- (- 1) (- 2)))")
	checkTree(t, "print !!true;", "(print (! (! true)))")
	checkTree(t, "print !true == false;", "(print (== (! true) false))")
	checkTree(t, "print 1 < 2 == 3 >= 4;", "(print (== (< 1 2) (>= 3 4)))")
	checkTree(t, "print a or b and c;", "(print (or a (and b c)))")
	checkTree(t, "print a and b or c;", "(print (or (and a b) c))")
	checkTree(t, `print "s" + nil;`, `(print (+ "s" nil))`)
}

func TestParseCallsAndProperties(t *testing.T) {
	checkTree(t, "f(1, 2)(3);", "(; (call (call f 1 2) 3))")
	checkTree(t, "a.b.c();", "(; (call (. (. a b) c)))")
	checkTree(t, "a().b;", "(; (. (call a) b))")
}

func TestParseAssignment(t *testing.T) {
	checkTree(t, "a = b = 1;", "(; (= a (= b 1)))")
	checkTree(t, "a.b.c = 1;", "(; (= (. a b) c 1))")
	checkTree(t, "a().b = c = 2;", "(; (= (call a) b (= c 2)))")
	checkTree(t, "a = b or c;", "(; (= a (or b c)))")
}

func TestParseDeclarations(t *testing.T) {
	checkTree(t, "var x;", "(var x)")
	checkTree(t, `var x = "s";`, `(var x = "s")`)
	checkTree(t, "fun f(a, b) { return a; }", "(fun f (a b) (return a))")
	checkTree(t, "fun f() { return; }", "(fun f () (return))")
	checkTree(t, "{ var a = 1; print a; }", "(block (var a = 1) (print a))")
	checkTree(t, "var a; print a;", "(var a)", "(print a)")
}

func TestParseClass(t *testing.T) {
	checkTree(t, `
class A < B {
	init(x) {
		this.x = x;
	}
	get() {
		return super.get();
	}
}`, "(class A (< B) (fun init (x) (; (= this x x))) (fun get () (return (call (super get)))))")
	checkTree(t, "class Empty {}", "(class Empty)")
}

func TestParseControlFlow(t *testing.T) {
	checkTree(t, "if (a) print 1;", "(if a (print 1))")
	checkTree(t, "if (a) print 1; else print 2;", "(if-else a (print 1) (print 2))")
	// Dangling else binds to the nearest if
	checkTree(t, "if (a) if (b) print 1; else print 2;", "(if a (if-else b (print 1) (print 2)))")
	checkTree(t, "while (a) print 1;", "(while a (print 1))")
}

func TestParseForDesugar(t *testing.T) {
	checkTree(t, "for (var i = 0; i < 3; i = i + 1) print i;",
		"(block (var i = 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))")
	checkTree(t, "for (i = 0; i < 3;) print i;",
		"(block (; (= i 0)) (while (< i 3) (print i)))")
	checkTree(t, "for (;;) print 1;", "(while true (print 1))")
}

func TestParseRecovery(t *testing.T) {
	state, tr := parseSource("var = 1;\nprint 2;\nvar x = ;")
	if state.errorCount != 2 {
		t.Errorf("Expected 2 errors, found %d:\n%s", state.errorCount, tr)
	}
	checkParseErrors(t, "var = 1;\nprint 2;\nvar x = ;",
		"[line 1] Error at '=': Expect variable name.",
		"[line 3] Error at ';': Expect expression.",
	)
	if len(state.stmts) != 1 {
		t.Errorf("Only the valid declaration should be kept, found %d", len(state.stmts))
	}

	// Errors inside a block recover within the block
	state, _ = parseSource("{ var a = 1; var = 2; }\nprint 3;")
	if state.errorCount != 1 || len(state.stmts) != 2 {
		t.Errorf("Expected 1 error and 2 statements, found %d and %d", state.errorCount, len(state.stmts))
	}

	// Scanning errors do not stop parsing
	checkParseErrors(t, "print @;",
		"[line 1] Error: Unexpected character.",
		"[line 1] Error at ';': Expect expression.",
	)
}

func TestParseErrorMessages(t *testing.T) {
	checkParseErrors(t, "print 1", "[line 1] Error at end: Expect ';' after value.")
	checkParseErrors(t, "1 = 2;", "[line 1] Error at '=': Invalid assignment target.")
	checkParseErrors(t, "a + b = c;", "[line 1] Error at '=': Invalid assignment target.")
	checkParseErrors(t, "print (1;", "[line 1] Error at ';': Expect ')' after expression.")
	checkParseErrors(t, "f(1;", "[line 1] Error at ';': Expect ')' after arguments.")
	checkParseErrors(t, "a.1;", "[line 1] Error at '1': Expect property name after '.'.")
	checkParseErrors(t, "{ print 1;", "[line 1] Error at end: Expect '}' after block.")
	checkParseErrors(t, "class { }", "[line 1] Error at '{': Expect class name.")
	checkParseErrors(t, "fun (a) {}", "[line 1] Error at '(': Expect function name.")
	checkParseErrors(t, "if a) print 1;", "[line 1] Error at 'a': Expect '(' after 'if'.")
	checkParseErrors(t, "while (a print 1;", "[line 1] Error at 'print': Expect ')' after condition.")
	checkParseErrors(t, "for (var i = 0; i < 1 print i;", "[line 1] Error at 'print': Expect ';' after loop condition.")
}

func TestParseInvalidAssignmentKeepsStatement(t *testing.T) {
	state, _ := parseSource("1 = 2;")
	if state.errorCount != 1 || len(state.stmts) != 1 {
		t.Errorf("Expected 1 error and 1 statement, found %d and %d", state.errorCount, len(state.stmts))
	}
}

func TestParseMaxArguments(t *testing.T) {
	args := make([]string, 300)
	for i := range args {
		args[i] = fmt.Sprintf("a%d", i)
	}
	checkParseErrors(t, "f("+strings.Join(args, ", ")+");",
		"[line 1] Error at 'a255': Can't have more than 255 arguments.")
	checkParseErrors(t, "fun f("+strings.Join(args, ", ")+") {}",
		"[line 1] Error at 'a255': Can't have more than 255 parameters.")

	// Exactly 255 is fine
	checkParseErrors(t, "f("+strings.Join(args[:255], ", ")+");")
}

func TestParseContextErrors(t *testing.T) {
	checkParseErrors(t, "return 1;", "[line 1] Error at 'return': Can't return from top-level code.")
	checkParseErrors(t, "print this;", "[line 1] Error at 'this': Can't use 'this' outside of a class.")
	checkParseErrors(t, "fun f() { return this; }", "[line 1] Error at 'this': Can't use 'this' outside of a class.")
	checkParseErrors(t, "print super.x;", "[line 1] Error at 'super': Can't use 'super' outside of a class.")
	checkParseErrors(t, "class A { f() { super.f(); } }",
		"[line 1] Error at 'super': Can't use 'super' in a class with no superclass.")
	checkParseErrors(t, "class A < A {}", "[line 1] Error at 'A': A class can't inherit from itself.")

	// Valid uses
	checkParseErrors(t, "fun f() { return 1; }")
	checkParseErrors(t, "class A { f() { fun g() { return this; } return g; } }")
	checkParseErrors(t, "class A { init() { return 1; } }")
	checkParseErrors(t, "class A {} class B < A { f() { return super.f; } }")

	// The class context ends with the class body
	checkParseErrors(t, "class A {} print this;", "[line 1] Error at 'this': Can't use 'this' outside of a class.")
}
