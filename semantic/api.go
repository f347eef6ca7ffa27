// Package semantic implements name resolution and type checking for minic
// programs.
//
// Check walks a parsed program, maintains nested lexical scopes and reports
// every name, type and control flow error it can find. It never stops at the
// first error: an expression whose type cannot be determined is given the
// Invalid type, which is accepted everywhere so that one mistake produces
// one diagnostic.
package semantic

import (
	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
)

// Info holds the results of checking.
type Info struct {
	// Types maps expressions to their type.
	Types map[ast.Expr]Type

	// Defs maps declaring identifiers to the symbols they declare.
	Defs map[*ast.Identifier]*Symbol

	// Uses maps referencing identifiers to the symbols they refer to,
	// including the callee of each call.
	Uses map[*ast.Identifier]*Symbol

	// Scopes maps function definitions, blocks and statements that open a
	// scope to that scope.
	Scopes map[ast.Node]*Scope

	// Global is the file scope.
	Global *Scope
}

// TypeOf returns the recorded type of e, or Invalid.
func (info *Info) TypeOf(e ast.Expr) Type {
	return info.Types[e]
}

// Option configures a Check call.
type Option func(*Checker)

// WithInfo records the results of checking in info.
func WithInfo(info *Info) Option {
	return func(c *Checker) {
		c.info = info
	}
}

// WithFilename sets the file name reported in diagnostics that do not
// already carry one.
func WithFilename(filename string) Option {
	return func(c *Checker) {
		c.filename = filename
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Checker) {
		c.log = logger
	}
}

// Check checks the program and returns the diagnostics found, in the order
// they were found. The program is not modified.
//
// A malformed tree, such as one with a nil required child, stops the pass.
// The diagnostics gathered so far are returned followed by one
// InternalError.
func Check(program *ast.Program, options ...Option) (diags []*errors.Diagnostic) {
	c := newChecker(options...)
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			var malformed *ast.MalformedError
			if !ok || !stderrors.As(err, &malformed) {
				panic(r)
			}
			c.diags.Add(&errors.Diagnostic{
				Kind:    errors.InternalError,
				Code:    errors.E9001,
				Message: malformed.Error(),
				File:    c.filename,
			})
			c.log.Debug().Err(err).Msg("check aborted")
			diags = c.diags
		}
	}()
	if program == nil {
		panic(&ast.MalformedError{What: "program"})
	}
	c.checkProgram(program)
	c.log.Debug().
		Str("file", c.filename).
		Int("functions", len(program.Functions())).
		Int("errors", len(c.diags)).
		Msg("checked program")
	return c.diags
}
