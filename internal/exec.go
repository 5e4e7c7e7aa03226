package internal

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// maxCallDepth bounds nested calls so runaway recursion is reported
// instead of exhausting the Go stack.
const maxCallDepth = 1000

type exec struct {
	state *interpreterState

	globals *env
	env     *env
	depth   int

	printer IPrinter
}

func (e *exec) interpret() (err error) {
	defer func() {
		if r := recover(); r != nil {
			runErr, isRunErr := r.(*RuntimeError)
			if !isRunErr {
				panic(r)
			}
			e.env = e.globals
			e.state.reporter.Report(runErr.Line, "", runErr.Message)
			e.state.logger.WithFields(logrus.Fields{
				"line":  runErr.Line,
				"error": runErr.Message,
			}).Debug("interpret aborted")
			err = runErr
		}
	}()
	for _, s := range e.state.stmts {
		s.accept(e)
	}
	e.state.logger.WithField("statements", len(e.state.stmts)).Debug("interpret finished")
	return nil
}

func (e *exec) visitExprStmt(stmt *exprStmt) R {
	stmt.expression.accept(e)
	return nil
}

func (e *exec) visitPrintStmt(stmt *printStmt) R {
	value := stmt.expression.accept(e)
	e.printer.Println(stringify(value))
	return nil
}

func (e *exec) visitVarStmt(stmt *varStmt) R {
	var val interface{}
	if stmt.initializer != nil {
		val = stmt.initializer.accept(e)
	}
	e.env.define(stmt.name.lexeme, val)
	return nil
}

func (e *exec) visitBlockStmt(stmt *blockStmt) R {
	return e.executeBlock(stmt.stmts, newEnv(e.env))
}

// executeBlock runs stmts inside env and restores the current env on
// every way out, including returns and runtime errors.
func (e *exec) executeBlock(stmts []stmt, env *env) R {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		if ret, isReturn := s.accept(e).(*returnValue); isReturn {
			return ret
		}
	}
	return nil
}

func (e *exec) visitIfStmt(stmt *ifStmt) R {
	if e.truthy(stmt.condition.accept(e)) {
		return stmt.thenBranch.accept(e)
	}
	if stmt.elseBranch != nil {
		return stmt.elseBranch.accept(e)
	}
	return nil
}

func (e *exec) visitWhileStmt(stmt *whileStmt) R {
	for e.truthy(stmt.condition.accept(e)) {
		if ret, isReturn := stmt.body.accept(e).(*returnValue); isReturn {
			return ret
		}
	}
	return nil
}

func (e *exec) visitFnStmt(stmt *fnStmt) R {
	e.env.define(stmt.name.lexeme, &function{
		declaration:   stmt,
		closure:       e.env,
		isInitializer: false,
	})
	return nil
}

func (e *exec) visitReturnStmt(stmt *returnStmt) R {
	var value interface{}
	if stmt.value != nil {
		value = stmt.value.accept(e)
	}
	return &returnValue{value: value}
}

func (e *exec) visitClassStmt(stmt *classStmt) R {
	klass := &class{
		name:    stmt.name.lexeme,
		methods: make(map[string]*function, len(stmt.methods)),
	}

	if stmt.superclass != nil {
		superclass, ok := stmt.superclass.accept(e).(*class)
		if !ok {
			e.state.runtimeErr(errExpectedClass, stmt.superclass.name)
		}
		klass.superclass = superclass
	}

	previous := e.env
	if klass.superclass != nil {
		e.env = newEnv(e.env)
		e.env.define("super", klass.superclass)
	}

	for _, m := range stmt.methods {
		klass.methods[m.name.lexeme] = &function{
			declaration:   m,
			closure:       e.env,
			isInitializer: m.name.lexeme == initializerName,
		}
	}

	e.env = previous
	e.env.define(klass.name, klass)

	return nil
}

func (e *exec) visitAssignExpr(expr *assignExpr) R {
	val := expr.value.accept(e)
	e.env.assign(e.state, expr.name, val)
	return val
}

func (e *exec) visitBinaryExpr(expr *binaryExpr) R {
	left := expr.left.accept(e)
	right := expr.right.accept(e)
	switch expr.operator.token {
	case tkEqualEqual:
		return isEqual(left, right)
	case tkBangEqual:
		return !isEqual(left, right)
	case tkGreater:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum > rightNum
	case tkGreaterEqual:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum >= rightNum
	case tkLess:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum < rightNum
	case tkLessEqual:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum <= rightNum
	case tkPlus:
		return e.plus(expr, left, right)
	case tkMinus:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum - rightNum
	case tkSlash:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum / rightNum
	case tkStar:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum * rightNum
	}
	return nil
}

// plus adds two numbers or concatenates two strings, nothing else
func (e *exec) plus(binExpr *binaryExpr, left, right interface{}) interface{} {
	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return l + r
		}
	case string:
		if r, ok := right.(string); ok {
			return l + r
		}
	}
	e.state.runtimeErr(errInvalidPlus, binExpr.operator)
	return nil
}

func (e *exec) getNums(binExpr *binaryExpr, left, right interface{}) (float64, float64) {
	leftNum, ok := left.(float64)
	if !ok {
		e.state.runtimeErr(errOnlyNumbers, binExpr.operator)
	}
	rightNum, ok := right.(float64)
	if !ok {
		e.state.runtimeErr(errOnlyNumbers, binExpr.operator)
	}
	return leftNum, rightNum
}

func (e *exec) visitCallExpr(expr *callExpr) R {
	callee := expr.callee.accept(e)
	arguments := make([]interface{}, len(expr.arguments))
	for i := range expr.arguments {
		arguments[i] = expr.arguments[i].accept(e)
	}

	fn, isFn := callee.(callable)
	if !isFn {
		e.state.runtimeErr(errOnlyFunction, expr.paren)
	}

	if len(arguments) != fn.arity() {
		e.state.runtimeErrf(
			errInvalidNumberArguments,
			expr.paren,
			"Expected %d arguments but got %d.",
			fn.arity(),
			len(arguments),
		)
	}

	if e.depth >= maxCallDepth {
		e.state.runtimeErr(errStackOverflow, expr.paren)
	}
	e.depth++
	defer func() {
		e.depth--
	}()

	return fn.call(e, arguments)
}

func (e *exec) visitGetExpr(expr *getExpr) R {
	object := expr.object.accept(e)
	if obj, ok := object.(*instance); ok {
		return obj.get(e.state, expr.name)
	}
	e.state.runtimeErr(errExpectedObject, expr.name)
	return nil
}

func (e *exec) visitSetExpr(expr *setExpr) R {
	obj, ok := expr.object.accept(e).(*instance)
	if !ok {
		e.state.runtimeErr(errExpectedObjectFields, expr.name)
	}

	val := expr.value.accept(e)
	obj.set(expr.name, val)
	return val
}

// visitSuperExpr looks the method up from the superclass captured when the
// class was declared and binds it to the current receiver.
func (e *exec) visitSuperExpr(expr *superExpr) R {
	superclass, ok := e.env.get(e.state, expr.keyword).(*class)
	if !ok {
		e.state.runtimeErr(errExpectedClass, expr.keyword)
	}
	this := &token{
		token:  tkThis,
		lexeme: "this",
		line:   expr.keyword.line,
	}
	object, ok := e.env.get(e.state, this).(*instance)
	if !ok {
		e.state.runtimeErr(errExpectedObject, expr.keyword)
	}
	method := superclass.findMethod(expr.method.lexeme)
	if method == nil {
		e.state.runtimeErrf(errUndefinedProp, expr.method, "%s '%s'.", errUndefinedProp, expr.method.lexeme)
	}
	return method.bind(object)
}

func (e *exec) visitGroupingExpr(expr *groupingExpr) R {
	return expr.expression.accept(e)
}

func (e *exec) visitLiteralExpr(expr *literalExpr) R {
	return expr.value
}

// visitLogicalExpr yields the operand that decided the result
func (e *exec) visitLogicalExpr(expr *logicalExpr) R {
	left := expr.left.accept(e)

	if expr.operator.token == tkOr {
		if e.truthy(left) {
			return left
		}
	} else if !e.truthy(left) {
		return left
	}

	return expr.right.accept(e)
}

func (e *exec) visitThisExpr(expr *thisExpr) R {
	return e.env.get(e.state, expr.keyword)
}

func (e *exec) visitUnaryExpr(expr *unaryExpr) R {
	value := expr.right.accept(e)
	switch expr.operator.token {
	case tkBang:
		return !e.truthy(value)
	case tkMinus:
		valueNum, ok := value.(float64)
		if !ok {
			e.state.runtimeErr(errOnlyNumber, expr.operator)
		}
		return -valueNum
	}
	return nil
}

func (e *exec) visitVariableExpr(expr *variableExpr) R {
	return e.env.get(e.state, expr.name)
}

// truthy: nil and false are falsy, everything else is truthy
func (e *exec) truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if valueBool, isBool := value.(bool); isBool {
		return valueBool
	}
	return true
}

func isEqual(left, right interface{}) bool {
	return left == right
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
