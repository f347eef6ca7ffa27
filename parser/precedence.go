package parser

import "github.com/minic-lang/minic/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	OR          // ||
	AND         // &&
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.ASSIGN: ASSIGN,
	token.OR:     OR,
	token.AND:    AND,
	token.EQ:     EQUALS,
	token.NEQ:    EQUALS,
	token.LT:     LESSGREATER,
	token.LEQ:    LESSGREATER,
	token.GT:     LESSGREATER,
	token.GEQ:    LESSGREATER,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.TIMES:  PRODUCT,
	token.DIVIDE: PRODUCT,
}
