package internal

import "fmt"

type callable interface {
	arity() int
	call(exec *exec, arguments []interface{}) interface{}
}

// returnValue unwinds statement execution up to the function being called
type returnValue struct {
	value interface{}
}

type function struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

func (f *function) arity() int {
	return len(f.declaration.params)
}

func (f *function) call(exec *exec, arguments []interface{}) interface{} {
	env := newEnv(f.closure)
	for i := range f.declaration.params {
		env.define(f.declaration.params[i].lexeme, arguments[i])
	}

	result := exec.executeBlock(f.declaration.body, env)

	// Initializers always yield the instance, even on an explicit return
	if f.isInitializer {
		return f.closure.values["this"]
	}
	if returnVal, isReturn := result.(*returnValue); isReturn {
		return returnVal.value
	}
	return nil
}

func (f *function) bind(object *instance) *function {
	environment := newEnv(f.closure)
	environment.define("this", object)
	return &function{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}

type nativeFn struct {
	arityValue int
	callFn     func(exec *exec, arguments []interface{}) interface{}
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []interface{}) interface{} {
	return n.callFn(exec, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}
