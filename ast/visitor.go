package ast

import (
	"fmt"
	"reflect"
)

// DeclVisitor has one method per top-level declaration variant.
type DeclVisitor[T any] interface {
	VisitFunctionDefinition(*FunctionDefinition) T
	VisitGlobalDeclaration(*Declaration) T
}

// StmtVisitor has one method per statement variant.
type StmtVisitor[T any] interface {
	VisitBlock(*Block) T
	VisitDeclaration(*Declaration) T
	VisitExpressionStatement(*ExpressionStatement) T
	VisitReturnStatement(*ReturnStatement) T
	VisitIfStatement(*IfStatement) T
	VisitForStatement(*ForStatement) T
	VisitWhileStatement(*WhileStatement) T
	VisitEmptyStatement(*EmptyStatement) T
}

// ExprVisitor has one method per expression variant.
type ExprVisitor[T any] interface {
	VisitAssignment(*Assignment) T
	VisitBinaryExpression(*BinaryExpression) T
	VisitIdentifier(*Identifier) T
	VisitLiteral(*Literal) T
	VisitCallExpression(*CallExpression) T
}

// MalformedError is the panic value raised when dispatch meets a node that
// is nil or not part of the closed node set.
type MalformedError struct {
	Node any
	What string
}

func (e *MalformedError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("malformed syntax tree: nil %s", e.What)
	}
	return fmt.Sprintf("malformed syntax tree: unexpected %s %T", e.What, e.Node)
}

// VisitDecl dispatches a top-level declaration to the matching method of v.
// It panics with a *MalformedError when d is nil.
func VisitDecl[T any](v DeclVisitor[T], d Decl) T {
	switch d := d.(type) {
	case *FunctionDefinition:
		if d != nil {
			return v.VisitFunctionDefinition(d)
		}
	case *Declaration:
		if d != nil {
			return v.VisitGlobalDeclaration(d)
		}
	}
	panic(&MalformedError{Node: nilIfNil(d), What: "declaration"})
}

// VisitStmt dispatches a statement to the matching method of v. It panics
// with a *MalformedError when s is nil.
func VisitStmt[T any](v StmtVisitor[T], s Stmt) T {
	switch s := s.(type) {
	case *Block:
		if s != nil {
			return v.VisitBlock(s)
		}
	case *Declaration:
		if s != nil {
			return v.VisitDeclaration(s)
		}
	case *ExpressionStatement:
		if s != nil {
			return v.VisitExpressionStatement(s)
		}
	case *ReturnStatement:
		if s != nil {
			return v.VisitReturnStatement(s)
		}
	case *IfStatement:
		if s != nil {
			return v.VisitIfStatement(s)
		}
	case *ForStatement:
		if s != nil {
			return v.VisitForStatement(s)
		}
	case *WhileStatement:
		if s != nil {
			return v.VisitWhileStatement(s)
		}
	case *EmptyStatement:
		if s != nil {
			return v.VisitEmptyStatement(s)
		}
	}
	panic(&MalformedError{Node: nilIfNil(s), What: "statement"})
}

// VisitExpr dispatches an expression to the matching method of v. It panics
// with a *MalformedError when e is nil.
func VisitExpr[T any](v ExprVisitor[T], e Expr) T {
	switch e := e.(type) {
	case *Assignment:
		if e != nil {
			return v.VisitAssignment(e)
		}
	case *BinaryExpression:
		if e != nil {
			return v.VisitBinaryExpression(e)
		}
	case *Identifier:
		if e != nil {
			return v.VisitIdentifier(e)
		}
	case *Literal:
		if e != nil {
			return v.VisitLiteral(e)
		}
	case *CallExpression:
		if e != nil {
			return v.VisitCallExpression(e)
		}
	}
	panic(&MalformedError{Node: nilIfNil(e), What: "expression"})
}

// nilIfNil collapses typed nil pointers so the error reads "nil".
func nilIfNil(n Node) any {
	if n == nil {
		return nil
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return n
}
