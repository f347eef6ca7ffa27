package parser

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/token"
)

// Statement parsing methods for the Parser.
// Each method starts with the current token on the first token of the
// construct and returns with the current token on its last token, usually
// the terminating ';' or '}'. On failure a method records an error and
// returns nil, leaving recovery to the enclosing statement loop.

// parseTopLevel parses a function definition or a global declaration.
func (p *Parser) parseTopLevel() ast.Decl {
	p.parsing = "top-level declaration"
	if !p.curTokenIs(token.TYPE) {
		p.unexpected("top-level declaration", "type name", p.curToken)
		return nil
	}
	typ := p.newTypeName(p.curToken)
	if !p.expectPeek("declaration", token.ID) {
		return nil
	}
	name := p.newIdent(p.curToken)
	if p.peekTokenIs(token.LPAREN) {
		if fn := p.parseFunction(typ, name); fn != nil {
			return fn
		}
		return nil
	}
	if decl := p.parseDeclarationRest(typ, name); decl != nil {
		return decl
	}
	return nil
}

func (p *Parser) newTypeName(tok token.Token) ast.TypeName {
	return ast.TypeName{NamePos: tok.StartPosition, Name: tok.Literal}
}

func (p *Parser) parseFunction(typ ast.TypeName, name *ast.Identifier) *ast.FunctionDefinition {
	p.parsing = "function definition"
	p.nextToken() // move to '('
	fn := &ast.FunctionDefinition{ReturnType: typ, Name: name, Lparen: p.curToken.StartPosition}
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	fn.Params = params
	fn.Rparen = p.curToken.StartPosition
	if !p.expectPeek("function definition", token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseParams parses a parenthesized parameter list starting at '('.
func (p *Parser) parseParams() ([]*ast.Parameter, bool) {
	params := []*ast.Parameter{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	for {
		if !p.expectPeek("parameter list", token.TYPE) {
			return nil, false
		}
		typ := p.newTypeName(p.curToken)
		if !p.expectPeek("parameter list", token.ID) {
			return nil, false
		}
		params = append(params, &ast.Parameter{Type: typ, Name: p.newIdent(p.curToken)})
		switch {
		case p.peekTokenIs(token.COMMA):
			p.nextToken()
		case p.peekTokenIs(token.RPAREN):
			p.nextToken()
			return params, true
		default:
			p.peekError("parameter list", "',' or ')'", p.peekToken)
			return nil, false
		}
	}
}

// parseBlock parses statements up to the matching '}'. A statement that
// fails to parse is skipped and parsing continues with the next one, so the
// returned block is never nil.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	p.nextToken() // move past '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.cancelled() || p.tooManyErrors() {
			break
		}
		start := p.curToken.StartPosition
		p.beginStatement()
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else if p.hadNewError() && p.synchronize(start) {
			continue
		}
		p.nextToken()
	}
	if p.curTokenIs(token.EOF) {
		p.unexpected("block", "'}'", p.curToken)
	}
	block.Rbrace = p.curToken.StartPosition
	// Errors inside the block have been recovered from.
	p.stmtErrorCount = p.errorCount()
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setTokenError(errors.E1104, p.curToken, "maximum nesting depth exceeded")
		return nil
	}
	switch p.curToken.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.TYPE:
		if decl := p.parseDeclaration(); decl != nil {
			return decl
		}
	case token.IF:
		if stmt := p.parseIf(); stmt != nil {
			return stmt
		}
	case token.FOR:
		if stmt := p.parseFor(); stmt != nil {
			return stmt
		}
	case token.WHILE:
		if stmt := p.parseWhile(); stmt != nil {
			return stmt
		}
	case token.RETURN:
		if stmt := p.parseReturn(); stmt != nil {
			return stmt
		}
	case token.SEMI:
		return &ast.EmptyStatement{Semi: p.curToken.StartPosition}
	default:
		if stmt := p.parseExpressionStatement(); stmt != nil {
			return stmt
		}
	}
	return nil
}

func (p *Parser) parseDeclaration() *ast.Declaration {
	typ := p.newTypeName(p.curToken)
	if !p.expectPeek("declaration", token.ID) {
		return nil
	}
	return p.parseDeclarationRest(typ, p.newIdent(p.curToken))
}

// parseDeclarationRest parses the optional initializer and the ';' that
// follow the declared name.
func (p *Parser) parseDeclarationRest(typ ast.TypeName, name *ast.Identifier) *ast.Declaration {
	p.parsing = "declaration"
	decl := &ast.Declaration{Type: typ, Name: name}
	switch {
	case p.peekTokenIs(token.ASSIGN):
		p.nextToken() // move to '='
		p.nextToken() // move past '='
		if decl.Init = p.parseExpression(LOWEST); decl.Init == nil {
			return nil
		}
		if !p.expectPeek("declaration", token.SEMI) {
			return nil
		}
	case p.peekTokenIs(token.SEMI):
		p.nextToken()
	default:
		p.peekError("declaration", "'=' or ';'", p.peekToken)
		return nil
	}
	decl.Semi = p.curToken.StartPosition
	return decl
}

func (p *Parser) parseIf() *ast.IfStatement {
	p.parsing = "if statement"
	stmt := &ast.IfStatement{If: p.curToken.StartPosition}
	if stmt.Cond = p.parseCondition("if statement"); stmt.Cond == nil {
		return nil
	}
	p.nextToken()
	if stmt.Then = p.parseStatement(); stmt.Then == nil {
		return nil
	}
	// A dangling else binds to the nearest if.
	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // move to 'else'
		p.nextToken() // move past 'else'
		if stmt.Else = p.parseStatement(); stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhile() *ast.WhileStatement {
	p.parsing = "while statement"
	stmt := &ast.WhileStatement{While: p.curToken.StartPosition}
	if stmt.Cond = p.parseCondition("while statement"); stmt.Cond == nil {
		return nil
	}
	p.nextToken()
	if stmt.Body = p.parseStatement(); stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseCondition parses "( expr )" following an if or while keyword and
// leaves the current token on ')'.
func (p *Parser) parseCondition(context string) ast.Expr {
	if !p.expectPeek(context, token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(context, token.RPAREN) {
		return nil
	}
	return cond
}

func (p *Parser) parseFor() *ast.ForStatement {
	p.parsing = "for statement"
	stmt := &ast.ForStatement{For: p.curToken.StartPosition}
	if !p.expectPeek("for statement", token.LPAREN) {
		return nil
	}
	p.nextToken()

	// Initializer: a declaration, an expression or nothing.
	switch {
	case p.curTokenIs(token.SEMI):
	case p.curTokenIs(token.TYPE):
		decl := p.parseDeclaration()
		if decl == nil {
			return nil
		}
		stmt.Init = decl
		p.parsing = "for statement"
	default:
		x := p.parseExpression(LOWEST)
		if x == nil {
			return nil
		}
		if !p.expectPeek("for statement", token.SEMI) {
			return nil
		}
		stmt.Init = &ast.ExpressionStatement{X: x, Semi: p.curToken.StartPosition}
	}

	// Condition
	p.nextToken()
	if !p.curTokenIs(token.SEMI) {
		if stmt.Cond = p.parseExpression(LOWEST); stmt.Cond == nil {
			return nil
		}
		if !p.expectPeek("for statement", token.SEMI) {
			return nil
		}
	}

	// Increment
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		if stmt.Post = p.parseExpression(LOWEST); stmt.Post == nil {
			return nil
		}
		if !p.expectPeek("for statement", token.RPAREN) {
			return nil
		}
	}

	p.nextToken()
	if stmt.Body = p.parseStatement(); stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	p.parsing = "return statement"
	stmt := &ast.ReturnStatement{Return: p.curToken.StartPosition}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
		stmt.Semi = p.curToken.StartPosition
		return stmt
	}
	p.nextToken()
	if stmt.Value = p.parseExpression(LOWEST); stmt.Value == nil {
		return nil
	}
	if !p.expectPeek("return statement", token.SEMI) {
		return nil
	}
	stmt.Semi = p.curToken.StartPosition
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	p.parsing = "expression statement"
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	if !p.expectPeek("expression statement", token.SEMI) {
		return nil
	}
	return &ast.ExpressionStatement{X: x, Semi: p.curToken.StartPosition}
}
