package internal

import "fmt"

// tokenType Holds a token
type tokenType int

const (
	tkEOF tokenType = iota

	// Single-character tokens.
	// (, ), {, }, ',', ., -, +, ;, /, *
	tkLeftParen
	tkRightParen
	tkLeftCurlyBrace
	tkRightCurlyBrace
	tkComma
	tkDot
	tkMinus
	tkPlus
	tkSemicolon
	tkSlash
	tkStar

	// One or two character tokens.
	// !, !=, =, ==, >, >=, <, <=
	tkBang
	tkBangEqual
	tkEqual
	tkEqualEqual
	tkGreater
	tkGreaterEqual
	tkLess
	tkLessEqual

	// Literals.
	// *variable*, string, number
	tkIdentifier
	tkString
	tkNumber

	// Keywords.
	// and, class, else, false, fun, for, if, nil, or,
	// print, return, super, this, true, var, while
	tkAnd
	tkClass
	tkElse
	tkFalse
	tkFun
	tkFor
	tkIf
	tkNil
	tkOr
	tkPrint
	tkReturn
	tkSuper
	tkThis
	tkTrue
	tkVar
	tkWhile
)

var tokenNames = [...]string{
	tkEOF:             "EOF",
	tkLeftParen:       "LEFT_PAREN",
	tkRightParen:      "RIGHT_PAREN",
	tkLeftCurlyBrace:  "LEFT_CURLY_BRACE",
	tkRightCurlyBrace: "RIGHT_CURLY_BRACE",
	tkComma:           "COMMA",
	tkDot:             "DOT",
	tkMinus:           "MINUS",
	tkPlus:            "PLUS",
	tkSemicolon:       "SEMICOLON",
	tkSlash:           "SLASH",
	tkStar:            "STAR",
	tkBang:            "BANG",
	tkBangEqual:       "BANG_EQUAL",
	tkEqual:           "EQUAL",
	tkEqualEqual:      "EQUAL_EQUAL",
	tkGreater:         "GREATER",
	tkGreaterEqual:    "GREATER_EQUAL",
	tkLess:            "LESS",
	tkLessEqual:       "LESS_EQUAL",
	tkIdentifier:      "IDENTIFIER",
	tkString:          "STRING",
	tkNumber:          "NUMBER",
	tkAnd:             "AND",
	tkClass:           "CLASS",
	tkElse:            "ELSE",
	tkFalse:           "FALSE",
	tkFun:             "FUN",
	tkFor:             "FOR",
	tkIf:              "IF",
	tkNil:             "NIL",
	tkOr:              "OR",
	tkPrint:           "PRINT",
	tkReturn:          "RETURN",
	tkSuper:           "SUPER",
	tkThis:            "THIS",
	tkTrue:            "TRUE",
	tkVar:             "VAR",
	tkWhile:           "WHILE",
}

func (t tokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("tokenType(%d)", int(t))
	}
	return tokenNames[t]
}

type token struct {
	token   tokenType
	lexeme  string
	literal interface{}
	line    int
}

func (t *token) String() string {
	if t.literal != nil {
		return fmt.Sprintf("%d %s %s %v", t.line, t.token, t.lexeme, t.literal)
	}
	return fmt.Sprintf("%d %s %s", t.line, t.token, t.lexeme)
}
