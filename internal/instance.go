package internal

import "fmt"

type instance struct {
	class  *class
	fields map[string]interface{}
}

func newInstance(c *class) *instance {
	return &instance{
		class:  c,
		fields: make(map[string]interface{}),
	}
}

// get looks at fields first so they shadow methods of the same name
func (o *instance) get(state *interpreterState, name *token) interface{} {
	if val, ok := o.fields[name.lexeme]; ok {
		return val
	}
	if method := o.class.findMethod(name.lexeme); method != nil {
		return method.bind(o)
	}
	state.runtimeErrf(errUndefinedProp, name, "%s '%s'.", errUndefinedProp, name.lexeme)
	return nil
}

func (o *instance) set(name *token, value interface{}) {
	o.fields[name.lexeme] = value
}

func (o *instance) String() string {
	return fmt.Sprintf("%s instance", o.class.name)
}
