// Package ast defines the abstract syntax tree representation of minic code.
//
// The node set is closed. Statements, expressions and top-level
// declarations are sealed interfaces, and the typed visitors in this package
// have one method per variant so that adding a node kind breaks every
// visitor until it handles the new kind.
package ast

import (
	"strings"

	"github.com/minic-lang/minic/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Decl represents a top-level declaration: a function definition or a
// global variable declaration.
type Decl interface {
	Node
	declNode()
}

// TypeName is a primitive type name as written in the source.
type TypeName struct {
	NamePos token.Position
	Name    string // int, float, double, char, bool or void
}

func (t TypeName) Pos() token.Position { return t.NamePos }
func (t TypeName) End() token.Position { return t.NamePos.Advance(len(t.Name)) }
func (t TypeName) String() string      { return t.Name }

// Program is the root node of a parsed source file.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() token.Position {
	if len(p.Decls) > 0 {
		return p.Decls[0].Pos()
	}
	return token.Position{}
}

func (p *Program) End() token.Position {
	if n := len(p.Decls); n > 0 {
		return p.Decls[n-1].End()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var out strings.Builder
	for i, d := range p.Decls {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(d.String())
	}
	return out.String()
}

// Functions returns the function definitions of the program in order.
func (p *Program) Functions() []*FunctionDefinition {
	var funcs []*FunctionDefinition
	for _, d := range p.Decls {
		if fn, ok := d.(*FunctionDefinition); ok {
			funcs = append(funcs, fn)
		}
	}
	return funcs
}

// FunctionDefinition declares a function with its body.
type FunctionDefinition struct {
	ReturnType TypeName
	Name       *Identifier
	Lparen     token.Position
	Params     []*Parameter
	Rparen     token.Position
	Body       *Block
}

func (x *FunctionDefinition) declNode() {}

func (x *FunctionDefinition) Pos() token.Position { return x.ReturnType.Pos() }

func (x *FunctionDefinition) End() token.Position {
	if x.Body != nil {
		return x.Body.End()
	}
	return x.Rparen.Advance(1)
}

func (x *FunctionDefinition) String() string {
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.String())
	}
	var out strings.Builder
	out.WriteString(x.ReturnType.Name)
	out.WriteString(" ")
	if x.Name != nil {
		out.WriteString(x.Name.Name)
	}
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	if x.Body != nil {
		out.WriteString(x.Body.String())
	}
	return out.String()
}

// Parameter is one entry of a function's parameter list.
type Parameter struct {
	Type TypeName
	Name *Identifier
}

func (x *Parameter) Pos() token.Position { return x.Type.Pos() }
func (x *Parameter) End() token.Position { return x.Name.End() }
func (x *Parameter) String() string      { return x.Type.Name + " " + x.Name.Name }
