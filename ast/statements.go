package ast

import (
	"strings"

	"github.com/minic-lang/minic/token"
)

// Block is a braced sequence of statements.
type Block struct {
	Lbrace token.Position
	Stmts  []Stmt
	Rbrace token.Position
}

func (x *Block) stmtNode() {}

func (x *Block) Pos() token.Position { return x.Lbrace }
func (x *Block) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Block) String() string {
	var out strings.Builder
	out.WriteString("{")
	for _, s := range x.Stmts {
		out.WriteString(" ")
		out.WriteString(s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// Declaration declares a variable with an optional initializer. It is both
// a statement and, at file scope, a top-level declaration.
type Declaration struct {
	Type TypeName
	Name *Identifier
	Init Expr // may be nil
	Semi token.Position
}

func (x *Declaration) stmtNode() {}
func (x *Declaration) declNode() {}

func (x *Declaration) Pos() token.Position { return x.Type.Pos() }
func (x *Declaration) End() token.Position { return x.Semi.Advance(1) }

func (x *Declaration) String() string {
	s := x.Type.Name + " " + x.Name.Name
	if x.Init != nil {
		s += " = " + x.Init.String()
	}
	return s + ";"
}

// ExpressionStatement is an expression evaluated for its effect, such as an
// assignment or a call.
type ExpressionStatement struct {
	X    Expr
	Semi token.Position
}

func (x *ExpressionStatement) stmtNode() {}

func (x *ExpressionStatement) Pos() token.Position { return x.X.Pos() }
func (x *ExpressionStatement) End() token.Position { return x.Semi.Advance(1) }
func (x *ExpressionStatement) String() string      { return x.X.String() + ";" }

// ReturnStatement returns from the enclosing function.
type ReturnStatement struct {
	Return token.Position
	Value  Expr // may be nil
	Semi   token.Position
}

func (x *ReturnStatement) stmtNode() {}

func (x *ReturnStatement) Pos() token.Position { return x.Return }
func (x *ReturnStatement) End() token.Position { return x.Semi.Advance(1) }

func (x *ReturnStatement) String() string {
	if x.Value == nil {
		return "return;"
	}
	return "return " + x.Value.String() + ";"
}

// IfStatement is a conditional with an optional else branch.
type IfStatement struct {
	If   token.Position
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

func (x *IfStatement) stmtNode() {}

func (x *IfStatement) Pos() token.Position { return x.If }

func (x *IfStatement) End() token.Position {
	if x.Else != nil {
		return x.Else.End()
	}
	return x.Then.End()
}

func (x *IfStatement) String() string {
	s := "if (" + x.Cond.String() + ") " + x.Then.String()
	if x.Else != nil {
		s += " else " + x.Else.String()
	}
	return s
}

// ForStatement is a C-style for loop. Init, Cond and Post may each be nil.
type ForStatement struct {
	For  token.Position
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

func (x *ForStatement) stmtNode() {}

func (x *ForStatement) Pos() token.Position { return x.For }
func (x *ForStatement) End() token.Position { return x.Body.End() }

func (x *ForStatement) String() string {
	var out strings.Builder
	out.WriteString("for (")
	if x.Init != nil {
		out.WriteString(x.Init.String())
	} else {
		out.WriteString(";")
	}
	if x.Cond != nil {
		out.WriteString(" ")
		out.WriteString(x.Cond.String())
	}
	out.WriteString(";")
	if x.Post != nil {
		out.WriteString(" ")
		out.WriteString(x.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(x.Body.String())
	return out.String()
}

// WhileStatement is a pre-tested loop.
type WhileStatement struct {
	While token.Position
	Cond  Expr
	Body  Stmt
}

func (x *WhileStatement) stmtNode() {}

func (x *WhileStatement) Pos() token.Position { return x.While }
func (x *WhileStatement) End() token.Position { return x.Body.End() }

func (x *WhileStatement) String() string {
	return "while (" + x.Cond.String() + ") " + x.Body.String()
}

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	Semi token.Position
}

func (x *EmptyStatement) stmtNode() {}

func (x *EmptyStatement) Pos() token.Position { return x.Semi }
func (x *EmptyStatement) End() token.Position { return x.Semi.Advance(1) }
func (x *EmptyStatement) String() string      { return ";" }
