package ast

import (
	"encoding/json"

	"github.com/minic-lang/minic/token"
)

// ToMap converts a node into nested maps and slices suitable for JSON
// encoding. Every object carries a "node" field naming its variant. When
// withPositions is true, objects also carry 1-indexed "line" and "column".
func ToMap(n Node, withPositions bool) map[string]any {
	e := &mapEncoder{positions: withPositions}
	switch n := n.(type) {
	case *Program:
		return e.program(n)
	case *Parameter:
		return e.param(n)
	case Decl:
		return VisitDecl[map[string]any](e, n)
	case Stmt:
		return VisitStmt[map[string]any](e, n)
	case Expr:
		return VisitExpr[map[string]any](e, n)
	}
	return nil
}

// MarshalJSON encodes a node as indented JSON without positions.
func MarshalJSON(n Node) ([]byte, error) {
	return json.MarshalIndent(ToMap(n, false), "", "  ")
}

type mapEncoder struct {
	positions bool
}

func (e *mapEncoder) object(kind string, pos token.Position) map[string]any {
	m := map[string]any{"node": kind}
	if e.positions {
		m["line"] = pos.LineNumber()
		m["column"] = pos.ColumnNumber()
	}
	return m
}

func (e *mapEncoder) stmt(s Stmt) any {
	if s == nil {
		return nil
	}
	return VisitStmt[map[string]any](e, s)
}

func (e *mapEncoder) expr(x Expr) any {
	if x == nil {
		return nil
	}
	return VisitExpr[map[string]any](e, x)
}

func (e *mapEncoder) program(p *Program) map[string]any {
	decls := make([]any, 0, len(p.Decls))
	for _, d := range p.Decls {
		decls = append(decls, VisitDecl[map[string]any](e, d))
	}
	m := e.object("Program", p.Pos())
	m["declarations"] = decls
	return m
}

func (e *mapEncoder) param(p *Parameter) map[string]any {
	m := e.object("Parameter", p.Pos())
	m["type"] = p.Type.Name
	m["name"] = p.Name.Name
	return m
}

func (e *mapEncoder) VisitFunctionDefinition(x *FunctionDefinition) map[string]any {
	params := make([]any, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, e.param(p))
	}
	m := e.object("FunctionDefinition", x.Pos())
	m["return_type"] = x.ReturnType.Name
	m["name"] = x.Name.Name
	m["params"] = params
	m["body"] = e.VisitBlock(x.Body)
	return m
}

func (e *mapEncoder) VisitGlobalDeclaration(x *Declaration) map[string]any {
	return e.VisitDeclaration(x)
}

func (e *mapEncoder) VisitBlock(x *Block) map[string]any {
	stmts := make([]any, 0, len(x.Stmts))
	for _, s := range x.Stmts {
		stmts = append(stmts, e.stmt(s))
	}
	m := e.object("Block", x.Pos())
	m["statements"] = stmts
	return m
}

func (e *mapEncoder) VisitDeclaration(x *Declaration) map[string]any {
	m := e.object("Declaration", x.Pos())
	m["type"] = x.Type.Name
	m["name"] = x.Name.Name
	m["initializer"] = e.expr(x.Init)
	return m
}

func (e *mapEncoder) VisitExpressionStatement(x *ExpressionStatement) map[string]any {
	m := e.object("ExpressionStatement", x.Pos())
	m["expression"] = e.expr(x.X)
	return m
}

func (e *mapEncoder) VisitReturnStatement(x *ReturnStatement) map[string]any {
	m := e.object("ReturnStatement", x.Pos())
	m["value"] = e.expr(x.Value)
	return m
}

func (e *mapEncoder) VisitIfStatement(x *IfStatement) map[string]any {
	m := e.object("IfStatement", x.Pos())
	m["condition"] = e.expr(x.Cond)
	m["then_branch"] = e.stmt(x.Then)
	m["else_branch"] = e.stmt(x.Else)
	return m
}

func (e *mapEncoder) VisitForStatement(x *ForStatement) map[string]any {
	m := e.object("ForStatement", x.Pos())
	m["init"] = e.stmt(x.Init)
	m["condition"] = e.expr(x.Cond)
	m["increment"] = e.expr(x.Post)
	m["body"] = e.stmt(x.Body)
	return m
}

func (e *mapEncoder) VisitWhileStatement(x *WhileStatement) map[string]any {
	m := e.object("WhileStatement", x.Pos())
	m["condition"] = e.expr(x.Cond)
	m["body"] = e.stmt(x.Body)
	return m
}

func (e *mapEncoder) VisitEmptyStatement(x *EmptyStatement) map[string]any {
	return e.object("EmptyStatement", x.Pos())
}

func (e *mapEncoder) VisitAssignment(x *Assignment) map[string]any {
	m := e.object("Assignment", x.Pos())
	m["target"] = e.VisitIdentifier(x.Target)
	m["value"] = e.expr(x.Value)
	return m
}

func (e *mapEncoder) VisitBinaryExpression(x *BinaryExpression) map[string]any {
	m := e.object("BinaryExpression", x.Pos())
	m["operator"] = x.Op.Symbol()
	m["left"] = e.expr(x.X)
	m["right"] = e.expr(x.Y)
	return m
}

func (e *mapEncoder) VisitIdentifier(x *Identifier) map[string]any {
	m := e.object("Identifier", x.Pos())
	m["name"] = x.Name
	return m
}

func (e *mapEncoder) VisitLiteral(x *Literal) map[string]any {
	m := e.object("Literal", x.Pos())
	m["type"] = x.Type
	m["value"] = x.Value
	return m
}

func (e *mapEncoder) VisitCallExpression(x *CallExpression) map[string]any {
	args := make([]any, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, e.expr(a))
	}
	m := e.object("CallExpression", x.Pos())
	m["callee"] = x.Callee.Name
	m["arguments"] = args
	return m
}
