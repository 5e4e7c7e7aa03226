package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
)

//go:generate sh -c "go run . Expr > ../../internal/expr.go && go run . Stmt > ../../internal/stmt.go"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ast Expr|Stmt")
		os.Exit(64)
	}

	var out string
	switch os.Args[1] {
	case "Stmt":
		out = generateAst("Stmt", []string{
			"Block: stmts []stmt",
			"Class: name *token, superclass *variableExpr, methods []*fnStmt",
			"Expr: expression expr",
			"Fn: name *token, params []*token, body []stmt",
			"If: keyword *token, condition expr, thenBranch stmt, elseBranch stmt",
			"Print: keyword *token, expression expr",
			"Return: keyword *token, value expr",
			"Var: name *token, initializer expr",
			"While: keyword *token, condition expr, body stmt",
		})
	case "Expr":
		out = generateAst("Expr", []string{
			"Assign: name *token, value expr",
			"Binary: left expr, operator *token, right expr",
			"Call: callee expr, paren *token, arguments []expr",
			"Get: object expr, name *token",
			"Grouping: expression expr",
			"Literal: value interface{}",
			"Logical: left expr, operator *token, right expr",
			"Set: object expr, name *token, value expr",
			"Super: keyword *token, method *token",
			"This: keyword *token",
			"Unary: operator *token, right expr",
			"Variable: name *token",
		})
	default:
		fmt.Fprintf(os.Stderr, "Unknown node family %q\n", os.Args[1])
		os.Exit(64)
	}

	formatted, err := format.Source([]byte(out))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(string(formatted))
}

func generateAst(baseName string, types []string) string {
	lowerBase := strings.ToLower(baseName)
	out := "// Code generated by cmd/ast. DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "type " + lowerBase + " interface {\n"
	out += "\taccept(" + lowerBase + "Visitor) R\n"
	out += "}\n\n"
	// End base interface

	// Start Visitor interface
	out += fmt.Sprintf("type %sVisitor interface {\n", lowerBase)
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		name := strings.TrimSpace(typeDef[0])
		out += "\tvisit" + name + baseName + "(" + lowerBase + " *" + structName(baseName, name) + ") R\n"
	}
	out += "}\n\n"
	// End Visitor interface

	// Start  structs
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		name := strings.TrimSpace(typeDef[0])
		fields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, name, fields)
	}
	// End structs

	return out
}

func structName(baseName, name string) string {
	return strings.ToLower(string(name[0])) + name[1:] + baseName
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	typeName := structName(baseName, name)
	out := "type " + typeName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Method Definition
	out += "func (s *" + typeName + ") accept(visitor " + strings.ToLower(baseName) + "Visitor) R {\n"
	out += "\treturn visitor.visit" + name + baseName + "(s)\n"
	out += "}\n\n"
	// End Method Definition

	return out
}
