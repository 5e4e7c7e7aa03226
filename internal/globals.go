package internal

import "time"

func defineGlobals(globals *env) {
	globals.define("clock", &nativeFn{
		arityValue: 0,
		callFn: func(exec *exec, arguments []interface{}) interface{} {
			return float64(time.Now().UnixNano()) / float64(time.Second)
		},
	})
}
