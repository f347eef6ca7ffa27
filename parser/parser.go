// Package parser builds the abstract syntax tree (AST) for a minic program.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
//
// Parsing does not stop at the first syntax error. A statement that fails to
// parse is reported, the parser skips ahead to the next statement boundary,
// and parsing resumes. The returned program then holds every declaration that
// parsed successfully.
package parser

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/lexer"
	"github.com/minic-lang/minic/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parse the provided input as minic source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	var cfg Parser
	for _, opt := range options {
		opt(&cfg)
	}
	l := lexer.New(input, lexer.WithFilename(cfg.filename))
	p := New(l, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in diagnostics.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithMaxErrors sets how many syntax errors are collected before the parser
// gives up. The default is 50.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = logger
	}
}

const (
	// DefaultMaxDepth is the default maximum nesting depth for parsing.
	DefaultMaxDepth = 500

	// DefaultMaxErrors is the default number of syntax errors collected
	// before parsing stops.
	DefaultMaxErrors = 50
)

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// lexSeen is the number of lexer diagnostics already collected.
	lexSeen int

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// syntax errors collected during parsing
	errors []*errors.Diagnostic

	// lexical errors drained from the lexer
	lexErrors []*errors.Diagnostic

	// stmtErrorCount tracks error count at start of current statement.
	// Used by inner methods to detect if an error was added during this statement.
	stmtErrorCount int

	// parens counts the '(' tokens opened and not yet closed since the
	// start of the current statement.
	parens int

	// eofReported is set once an error has been reported at end of input.
	// Later errors at end of input are counted in silenced but not reported.
	eofReported bool
	silenced    int

	// cancelledErr is set when the context is cancelled mid-parse.
	cancelledErr error

	// parsing names the construct being parsed, for diagnostics.
	parsing string

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	filename  string
	depth     int
	maxDepth  int
	maxErrors int
	log       zerolog.Logger
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
		maxErrors:      DefaultMaxErrors,
		log:            zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" && l.Filename() == "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	p.registerPrefix(token.ID, p.parseIdent)
	p.registerPrefix(token.INT_NUM, p.parseLiteral)
	p.registerPrefix(token.FLOAT_NUM, p.parseLiteral)
	p.registerPrefix(token.DOUBLE_NUM, p.parseLiteral)
	p.registerPrefix(token.CHAR_LIT, p.parseLiteral)
	p.registerPrefix(token.BOOL_LIT, p.parseLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)

	// Register infix functions
	p.registerInfix(token.ASSIGN, p.parseAssign)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.NEQ, p.parseInfixExpr)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.LEQ, p.parseInfixExpr)
	p.registerInfix(token.GEQ, p.parseInfixExpr)
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.TIMES, p.parseInfixExpr)
	p.registerInfix(token.DIVIDE, p.parseInfixExpr)

	return p
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken = p.l.Next()
	switch p.curToken.Type {
	case token.LPAREN:
		p.parens++
	case token.RPAREN:
		if p.parens > 0 {
			p.parens--
		}
	}
	// Lexical errors are kept apart from syntax errors so that a skipped
	// character does not make a well-formed statement look broken.
	if diags := p.l.Diagnostics(); len(diags) > p.lexSeen {
		p.lexErrors = append(p.lexErrors, diags[p.lexSeen:]...)
		p.lexSeen = len(diags)
	}
}

// Parse the program that is provided via the lexer.
// Returns the AST and any errors encountered. If there are errors, the AST
// may be partial (containing only successfully parsed declarations).
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil, p.cancelledErr
		}
		if p.tooManyErrors() {
			break
		}
		start := p.curToken.StartPosition
		p.beginStatement()
		decl := p.parseTopLevel()
		if p.cancelledErr != nil {
			return nil, p.cancelledErr
		}
		if decl != nil {
			program.Decls = append(program.Decls, decl)
		} else if p.hadNewError() && p.synchronize(start) {
			continue
		}
		p.nextToken()
	}
	diags := p.Diagnostics()
	p.log.Debug().
		Str("file", p.filename).
		Int("decls", len(program.Decls)).
		Int("errors", len(diags)).
		Msg("parsed program")
	if len(diags) > 0 {
		return program, NewErrors(diags)
	}
	return program, nil
}

// Diagnostics returns the lexical and syntax errors found so far, ordered by
// source position.
func (p *Parser) Diagnostics() []*errors.Diagnostic {
	diags := make([]*errors.Diagnostic, 0, len(p.lexErrors)+len(p.errors))
	diags = append(diags, p.lexErrors...)
	diags = append(diags, p.errors...)
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return diags
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// addError appends an error to the errors slice.
func (p *Parser) addError(d *errors.Diagnostic) {
	p.errors = append(p.errors, d)
}

// tooManyErrors returns true if error limit has been reached.
func (p *Parser) tooManyErrors() bool {
	return p.maxErrors > 0 && len(p.errors) >= p.maxErrors
}

// beginStatement marks the current token as the first token of a statement.
func (p *Parser) beginStatement() {
	p.stmtErrorCount = p.errorCount()
	p.parens = 0
	if p.curTokenIs(token.LPAREN) {
		p.parens = 1
	}
}

// hadNewError returns true if an error was added during the current statement.
func (p *Parser) hadNewError() bool {
	return p.errorCount() > p.stmtErrorCount
}

// errorCount returns the number of syntax errors found, reported or not.
func (p *Parser) errorCount() int {
	return len(p.errors) + p.silenced
}

// synchronize skips tokens after a failed statement until a statement
// boundary. Braces are balanced along the way so a nested block is skipped
// as a unit. A keyword or type name inside an unclosed '(' is part of the
// failed statement and never starts a new one. It returns true when the
// current token begins the next statement, or false when the current token
// closes the failed statement and should be consumed by the caller.
func (p *Parser) synchronize(start token.Position) bool {
	depth := 0
	for !p.curTokenIs(token.EOF) {
		moved := p.curToken.StartPosition != start
		switch p.curToken.Type {
		case token.LBRACE:
			depth++
			p.parens = 0
		case token.RBRACE:
			if depth == 0 && moved {
				return true
			}
			if depth > 0 {
				depth--
				if depth == 0 {
					return false
				}
			}
		case token.SEMI:
			if depth == 0 {
				return false
			}
		case token.IF, token.FOR, token.WHILE, token.RETURN, token.TYPE:
			if depth == 0 && p.parens == 0 && moved {
				return true
			}
		}
		p.nextToken()
	}
	return true
}

// cancelled checks if the parsing context has been cancelled.
// Returns true if cancelled, in which case parsing should stop.
func (p *Parser) cancelled() bool {
	if p.cancelledErr != nil {
		return true
	}
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.cancelledErr = p.ctx.Err()
		return true
	default:
		return false
	}
}

// peekError records that the next token cannot continue the construct.
func (p *Parser) peekError(context string, expected string, got token.Token) {
	p.unexpected(context, expected, got)
}

// unexpected records an "unexpected X while parsing Y (expected Z)" error
// at the given token.
func (p *Parser) unexpected(context string, expected string, got token.Token) {
	p.unexpectedCode(errors.E1101, context, expected, got)
}

func (p *Parser) unexpectedCode(code errors.ErrorCode, context string, expected string, got token.Token) {
	if got.Type == token.EOF {
		// Only the first complaint about end of input is useful.
		if p.eofReported {
			p.silenced++
			return
		}
		p.eofReported = true
	}
	p.addError(errors.Newf(errors.SyntaxError, code, got.StartPosition, got.EndPosition,
		"unexpected %s while parsing %s (expected %s)", tokenDescription(got), context, expected))
}

func (p *Parser) setTokenError(code errors.ErrorCode, t token.Token, msg string, args ...any) {
	p.addError(errors.New(errors.SyntaxError, code, t.StartPosition, t.EndPosition, fmt.Sprintf(msg, args...)))
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, tokenTypeDescription(t), p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}
