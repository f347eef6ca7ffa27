package parser

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/token"
)

// Expression parsing methods for the Parser.
// Each method starts with the current token on the first token of the
// expression and returns with the current token on its last token.

// literalTypes maps literal token kinds to the primitive type they denote.
var literalTypes = map[token.Type]string{
	token.INT_NUM:    "int",
	token.FLOAT_NUM:  "float",
	token.DOUBLE_NUM: "double",
	token.CHAR_LIT:   "char",
	token.BOOL_LIT:   "bool",
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.hadNewError() {
		return nil
	}
	// Check recursion depth
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setTokenError(errors.E1104, p.curToken, "maximum nesting depth exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil || p.hadNewError() {
		return nil
	}
	for !p.peekTokenIs(token.SEMI) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		if left = infix(left); left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	context := p.parsing
	if context == "" {
		context = "expression"
	}
	p.unexpectedCode(errors.E1102, context, "expression", t)
}

func (p *Parser) parseIdent() ast.Expr {
	ident := p.newIdent(p.curToken)
	// An identifier immediately followed by '(' is a call. Only bare
	// identifiers can be called.
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		return p.parseCall(ident)
	}
	return ident
}

// newIdent creates a new Identifier node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Identifier {
	return &ast.Identifier{NamePos: tok.StartPosition, Name: tok.Literal}
}

func (p *Parser) parseCall(callee *ast.Identifier) ast.Expr {
	call := &ast.CallExpression{Callee: callee, Lparen: p.curToken.StartPosition}
	outer := p.parsing
	p.parsing = "function call"
	defer func() { p.parsing = outer }()
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.Rparen = p.curToken.StartPosition
		return call
	}
	p.nextToken()
	for {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // move to ','
		p.nextToken() // move past ','
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.peekError(p.parsing, "',' or ')'", p.peekToken)
		return nil
	}
	p.nextToken()
	call.Rparen = p.curToken.StartPosition
	return call
}

func (p *Parser) parseLiteral() ast.Expr {
	tok := p.curToken
	return &ast.Literal{
		ValuePos: tok.StartPosition,
		Type:     literalTypes[tok.Type],
		Value:    tok.Value,
		Raw:      tok.Literal,
	}
}

// parseGroupedExpr parses a parenthesized expression. Parentheses only
// regroup and do not produce a node.
func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken() // move past '('
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("parenthesized expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opTok := p.curToken
	precedence := p.currentPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpression{X: left, OpPos: opTok.StartPosition, Op: opTok.Type, Y: right}
}

// parseAssign parses the right-hand side of an assignment. Assignment is
// right-associative, so the value is parsed at the lowest precedence.
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	eq := p.curToken
	target, ok := left.(*ast.Identifier)
	if !ok {
		p.addError(errors.Newf(errors.SyntaxError, errors.E1103, left.Pos(), left.End(),
			"invalid assignment target %s (only variables can be assigned)", left.String()))
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Assignment{Target: target, EqPos: eq.StartPosition, Value: value}
}
