// Package minic is the front end of a compiler for a small C-like language.
//
// Source text flows through three stages: the lexer turns it into tokens,
// the parser builds a syntax tree and the semantic checker resolves names
// and checks types. Each stage reports problems as diagnostics and keeps
// going, so a single run finds as many errors as possible.
//
//	result, err := minic.Analyze(ctx, source, minic.WithFilename("main.c"))
//	if err != nil {
//		return err // ctx was cancelled
//	}
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
package minic

import (
	"context"
	stderrors "errors"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/lexer"
	"github.com/minic-lang/minic/parser"
	"github.com/minic-lang/minic/semantic"
	"github.com/minic-lang/minic/token"
)

// Result holds the output of every stage of Analyze.
type Result struct {
	// Tokens is the token stream, without the trailing EOF token.
	Tokens []token.Token

	// Program is the syntax tree. It holds only the declarations that
	// parsed successfully when there are syntax errors.
	Program *ast.Program

	// Diagnostics are the problems found, lexical and syntax errors ordered
	// by position followed by semantic errors in the order they were found.
	Diagnostics []*errors.Diagnostic
}

// Valid reports whether the source passed every stage without errors.
func (r *Result) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Err returns the diagnostics combined into one error, or nil.
func (r *Result) Err() error {
	return errors.List(r.Diagnostics).Err()
}

// Tokenize lexes the source and returns the tokens and any lexical errors.
func Tokenize(source string, opts ...Option) ([]token.Token, []*errors.Diagnostic) {
	o := collectOptions(opts...)
	return lexer.Tokenize(source, o.lexerOpts()...)
}

// Parse lexes and parses the source. The returned program is never nil
// unless ctx is cancelled, in which case the context error is returned.
// Lexical and syntax errors are returned as diagnostics.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, []*errors.Diagnostic, error) {
	o := collectOptions(opts...)
	return parse(ctx, lexer.New(source, o.lexerOpts()...), o)
}

func parse(ctx context.Context, l *lexer.Lexer, o *options) (*ast.Program, []*errors.Diagnostic, error) {
	program, err := parser.New(l, o.parserOpts()...).Parse(ctx)
	if err == nil {
		return program, nil, nil
	}
	var perrs *parser.Errors
	if stderrors.As(err, &perrs) {
		return program, perrs.Diagnostics(), nil
	}
	return nil, nil, err
}

// Check resolves names and checks types in a parsed program.
func Check(program *ast.Program, opts ...Option) []*errors.Diagnostic {
	o := collectOptions(opts...)
	return semantic.Check(program, o.checkerOpts()...)
}

// Analyze runs every stage over the source. The semantic check is skipped
// when there are lexical or syntax errors, since a partial tree would
// produce misleading name errors.
func Analyze(ctx context.Context, source string, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	var tokens []token.Token
	record := lexer.WithTokenHook(func(tok token.Token) {
		tokens = append(tokens, tok)
	})
	l := lexer.New(source, append(o.lexerOpts(), record)...)
	program, diags, err := parse(ctx, l, o)
	if err != nil {
		return nil, err
	}
	// The parser stops early once the error limit is reached.
	for l.Next().Type != token.EOF {
	}
	result := &Result{Tokens: tokens, Program: program, Diagnostics: diags}
	if len(diags) == 0 {
		result.Diagnostics = semantic.Check(program, o.checkerOpts()...)
	}
	o.logger.Debug().
		Str("file", o.filename).
		Int("tokens", len(tokens)).
		Int("errors", len(result.Diagnostics)).
		Bool("valid", result.Valid()).
		Msg("analyzed source")
	return result, nil
}
