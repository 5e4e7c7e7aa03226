package internal

import (
	"fmt"
	"strings"
)

//R generic type
type R interface{}

// stringVisitor renders the AST as s-expressions
type stringVisitor struct{}

func (v stringVisitor) print(stmts []stmt) string {
	var out strings.Builder
	for _, st := range stmts {
		out.WriteString(st.accept(v).(string))
		out.WriteString("\n")
	}
	return out.String()
}

func (v stringVisitor) parenthesize(name string, parts ...interface{}) string {
	out := "(" + name
	for _, part := range parts {
		switch p := part.(type) {
		case expr:
			out += " " + p.accept(v).(string)
		case stmt:
			out += " " + p.accept(v).(string)
		case *token:
			out += " " + p.lexeme
		default:
			out += fmt.Sprintf(" %v", p)
		}
	}
	return out + ")"
}

func (v stringVisitor) visitBlockStmt(stmt *blockStmt) R {
	parts := make([]interface{}, len(stmt.stmts))
	for i, s := range stmt.stmts {
		parts[i] = s
	}
	return v.parenthesize("block", parts...)
}

func (v stringVisitor) visitClassStmt(stmt *classStmt) R {
	parts := []interface{}{stmt.name}
	if stmt.superclass != nil {
		parts = append(parts, v.parenthesize("<", stmt.superclass.name))
	}
	for _, m := range stmt.methods {
		parts = append(parts, m)
	}
	return v.parenthesize("class", parts...)
}

func (v stringVisitor) visitExprStmt(stmt *exprStmt) R {
	return v.parenthesize(";", stmt.expression)
}

func (v stringVisitor) visitFnStmt(stmt *fnStmt) R {
	params := make([]string, len(stmt.params))
	for i, param := range stmt.params {
		params[i] = param.lexeme
	}
	parts := []interface{}{stmt.name, "(" + strings.Join(params, " ") + ")"}
	for _, s := range stmt.body {
		parts = append(parts, s)
	}
	return v.parenthesize("fun", parts...)
}

func (v stringVisitor) visitIfStmt(stmt *ifStmt) R {
	if stmt.elseBranch == nil {
		return v.parenthesize("if", stmt.condition, stmt.thenBranch)
	}
	return v.parenthesize("if-else", stmt.condition, stmt.thenBranch, stmt.elseBranch)
}

func (v stringVisitor) visitPrintStmt(stmt *printStmt) R {
	return v.parenthesize("print", stmt.expression)
}

func (v stringVisitor) visitReturnStmt(stmt *returnStmt) R {
	if stmt.value == nil {
		return "(return)"
	}
	return v.parenthesize("return", stmt.value)
}

func (v stringVisitor) visitVarStmt(stmt *varStmt) R {
	if stmt.initializer == nil {
		return v.parenthesize("var", stmt.name)
	}
	return v.parenthesize("var", stmt.name, "=", stmt.initializer)
}

func (v stringVisitor) visitWhileStmt(stmt *whileStmt) R {
	return v.parenthesize("while", stmt.condition, stmt.body)
}

func (v stringVisitor) visitAssignExpr(expr *assignExpr) R {
	return v.parenthesize("=", expr.name, expr.value)
}

func (v stringVisitor) visitBinaryExpr(expr *binaryExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.left, expr.right)
}

func (v stringVisitor) visitCallExpr(expr *callExpr) R {
	parts := []interface{}{expr.callee}
	for _, arg := range expr.arguments {
		parts = append(parts, arg)
	}
	return v.parenthesize("call", parts...)
}

func (v stringVisitor) visitGetExpr(expr *getExpr) R {
	return v.parenthesize(".", expr.object, expr.name)
}

func (v stringVisitor) visitGroupingExpr(expr *groupingExpr) R {
	return v.parenthesize("group", expr.expression)
}

func (v stringVisitor) visitLiteralExpr(expr *literalExpr) R {
	if s, isStr := expr.value.(string); isStr {
		return fmt.Sprintf("%q", s)
	}
	return stringify(expr.value)
}

func (v stringVisitor) visitLogicalExpr(expr *logicalExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.left, expr.right)
}

func (v stringVisitor) visitSetExpr(expr *setExpr) R {
	return v.parenthesize("=", expr.object, expr.name, expr.value)
}

func (v stringVisitor) visitSuperExpr(expr *superExpr) R {
	return v.parenthesize("super", expr.method)
}

func (v stringVisitor) visitThisExpr(expr *thisExpr) R {
	return "this"
}

func (v stringVisitor) visitUnaryExpr(expr *unaryExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.right)
}

func (v stringVisitor) visitVariableExpr(expr *variableExpr) R {
	return expr.name.lexeme
}
