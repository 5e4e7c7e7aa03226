package internal

import "github.com/sirupsen/logrus"

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	clsNone classType = iota
	clsClass
	clsSubclass
)

type callStack struct {
	kind functionType
}

// parser stores parser data
type parser struct {
	current int

	cls          []*callStack
	currentClass classType

	state *interpreterState
}

const maxFunctionParams = 255

const initializerName = "init"

func (p *parser) getParsingContext() *callStack {
	return p.cls[len(p.cls)-1]
}

func (p *parser) enterFunction(kind functionType) {
	p.cls = append(p.cls, &callStack{
		kind: kind,
	})
}

func (p *parser) leaveFunction() {
	p.cls = p.cls[:len(p.cls)-1]
}

func (p *parser) parse() {
	p.cls = make([]*callStack, 0)
	p.enterFunction(fnNone)
	defer p.leaveFunction()
	for !p.isAtEnd() {
		// Declarations that failed to parse leave an empty slot
		if st := p.declaration(); st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
	p.state.logger.WithFields(logrus.Fields{
		"statements": len(p.state.stmts),
		"errors":     p.state.errorCount,
	}).Debug("parse finished")
}

func (p *parser) declaration() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(*parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.fn(fnFunction)
	}
	if p.match(tkVar) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectedClassName)

	var superclass *variableExpr
	if p.match(tkLess) {
		superclass = &variableExpr{
			name: p.consume(tkIdentifier, errExpectedSuperclassName),
		}
		if superclass.name.lexeme == name.lexeme {
			p.state.setError(errInheritFromSelf, superclass.name)
		}
	}

	enclosingClass := p.currentClass
	defer func() {
		p.currentClass = enclosingClass
	}()
	p.currentClass = clsClass
	if superclass != nil {
		p.currentClass = clsSubclass
	}

	p.consume(tkLeftCurlyBrace, errExpectedClassBody)

	methods := make([]*fnStmt, 0)
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		methods = append(methods, p.fn(fnMethod))
	}

	p.consume(tkRightCurlyBrace, errUnclosedClassBody)

	return &classStmt{
		name:       name,
		superclass: superclass,
		methods:    methods,
	}
}

func (p *parser) fn(kind functionType) *fnStmt {
	nameErr := errExpectedFunctionName
	if kind == fnMethod {
		nameErr = errExpectedMethodName
	}
	name := p.consume(tkIdentifier, nameErr)
	if kind == fnMethod && name.lexeme == initializerName {
		kind = fnInitializer
	}

	p.enterFunction(kind)
	defer p.leaveFunction()

	p.consume(tkLeftParen, errExpectedParamsParen)

	params := make([]*token, 0)
	if !p.check(tkRightParen) {
		for {
			if len(params) == maxFunctionParams {
				p.state.setError(errMaxParameters, p.peek())
			}
			params = append(params, p.consume(tkIdentifier, errExpectedParamName))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, errUnclosedParams)

	p.consume(tkLeftCurlyBrace, errExpectedFunctionBody)
	body := p.block()

	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) varDecl() stmt {
	name := p.consume(tkIdentifier, errExpectedVarName)

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}

	p.consume(tkSemicolon, errExpectedSemicolonVar)

	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.print()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftCurlyBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars a classic for into a while loop wrapped in blocks:
// { initializer; while (condition) { body; increment; } }
func (p *parser) forLoop() stmt {
	keyword := p.previous()

	p.consume(tkLeftParen, errExpectedForParen)

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDecl()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonLoop)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errUnclosedForClauses)

	body := p.statement()

	if inc != nil {
		body = &blockStmt{
			stmts: []stmt{body, &exprStmt{expression: inc}},
		}
	}

	if cond == nil {
		cond = &literalExpr{value: true}
	}
	body = &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}

	if init != nil {
		body = &blockStmt{
			stmts: []stmt{init, body},
		}
	}

	return body
}

func (p *parser) ifStmt() stmt {
	keyword := p.previous()

	p.consume(tkLeftParen, errExpectedIfParen)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedIfCondition)

	thenBranch := p.statement()
	var elseBranch stmt
	if p.match(tkElse) {
		elseBranch = p.statement()
	}

	return &ifStmt{
		keyword:    keyword,
		condition:  cond,
		thenBranch: thenBranch,
		elseBranch: elseBranch,
	}
}

func (p *parser) print() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolonValue)
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	keyword := p.previous()
	if p.getParsingContext().kind == fnNone {
		p.state.setError(errTopLevelReturn, keyword)
	}

	var value expr
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonReturn)

	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedWhileParen)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedWhileCondition)
	body := p.statement()
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) block() []stmt {
	stmts := make([]stmt, 0)
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightCurlyBrace, errUnclosedBlock)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolonExpr)
	return &exprStmt{expression: expr}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		if variable, isVar := expr.(*variableExpr); isVar {
			return &assignExpr{
				name:  variable.name,
				value: value,
			}
		} else if get, isGet := expr.(*getExpr); isGet {
			return &setExpr{
				object: get.object,
				name:   get.name,
				value:  value,
			}
		}

		p.state.setError(errInvalidAssignment, equal)
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.equality()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.equality()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) equality() expr {
	expr := p.comparison()
	for p.match(tkEqualEqual, tkBangEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) comparison() expr {
	expr := p.addition()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous()
		right := p.addition()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) addition() expr {
	expr := p.multiplication()
	for p.match(tkPlus, tkMinus) {
		operator := p.previous()
		right := p.multiplication()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) multiplication() expr {
	expr := p.unary()
	for p.match(tkSlash, tkStar) {
		operator := p.previous()
		right := p.unary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for {
		if p.match(tkLeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectedProp)
			expr = &getExpr{
				object: expr,
				name:   name,
			}
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) == maxFunctionParams {
				p.state.setError(errMaxArguments, p.peek())
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, errUnclosedArguments)
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(tkFalse) {
		return &literalExpr{value: false}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: true}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkSuper) {
		return p.superExpr()
	}
	if p.match(tkThis) {
		keyword := p.previous()
		if p.currentClass == clsNone {
			p.state.setError(errThisOutsideClass, keyword)
		}
		return &thisExpr{keyword: keyword}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(errExpectedExpr, p.peek())
	return nil
}

func (p *parser) superExpr() expr {
	keyword := p.previous()
	switch p.currentClass {
	case clsNone:
		p.state.setError(errSuperOutsideClass, keyword)
	case clsClass:
		p.state.setError(errSuperWithoutSuperclass, keyword)
	}
	p.consume(tkDot, errExpectedSuperDot)
	method := p.consume(tkIdentifier, errExpectedSuperMethod)
	return &superExpr{
		keyword: keyword,
		method:  method,
	}
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, token := range tokens {
		if p.check(token) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

// synchronize discards tokens until the start of the next statement
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}

		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn:
			return
		default:
		}

		p.advance()
	}
}
