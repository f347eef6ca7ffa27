package ast

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/token"
)

// Identifier is a reference to a named variable or function.
type Identifier struct {
	NamePos token.Position
	Name    string
}

func (x *Identifier) exprNode() {}

func (x *Identifier) Pos() token.Position { return x.NamePos }
func (x *Identifier) End() token.Position { return x.NamePos.Advance(len(x.Name)) }
func (x *Identifier) String() string      { return x.Name }

// Literal is a constant value. Type is the primitive type of the value and
// Value holds the decoded payload: int64 for int, float64 for float and
// double, bool for bool and a one character string for char.
type Literal struct {
	ValuePos token.Position
	Type     string
	Value    any
	Raw      string // source text
}

func (x *Literal) exprNode() {}

func (x *Literal) Pos() token.Position { return x.ValuePos }
func (x *Literal) End() token.Position { return x.ValuePos.Advance(len(x.Raw)) }

func (x *Literal) String() string {
	if x.Raw != "" {
		return x.Raw
	}
	if v, ok := x.Value.(string); ok {
		return "'" + v + "'"
	}
	return fmt.Sprint(x.Value)
}

// BinaryExpression applies an infix operator to two operands.
type BinaryExpression struct {
	X     Expr
	OpPos token.Position
	Op    token.Type
	Y     Expr
}

func (x *BinaryExpression) exprNode() {}

func (x *BinaryExpression) Pos() token.Position { return x.X.Pos() }
func (x *BinaryExpression) End() token.Position { return x.Y.End() }

func (x *BinaryExpression) String() string {
	return "(" + x.X.String() + " " + x.Op.Symbol() + " " + x.Y.String() + ")"
}

// Assignment stores Value into the variable named by Target. Assignments
// are expressions and associate to the right.
type Assignment struct {
	Target *Identifier
	EqPos  token.Position
	Value  Expr
}

func (x *Assignment) exprNode() {}

func (x *Assignment) Pos() token.Position { return x.Target.Pos() }
func (x *Assignment) End() token.Position { return x.Value.End() }

func (x *Assignment) String() string {
	return x.Target.Name + " = " + x.Value.String()
}

// CallExpression calls a named function.
type CallExpression struct {
	Callee *Identifier
	Lparen token.Position
	Args   []Expr
	Rparen token.Position
}

func (x *CallExpression) exprNode() {}

func (x *CallExpression) Pos() token.Position { return x.Callee.Pos() }
func (x *CallExpression) End() token.Position { return x.Rparen.Advance(1) }

func (x *CallExpression) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	return x.Callee.Name + "(" + strings.Join(args, ", ") + ")"
}
