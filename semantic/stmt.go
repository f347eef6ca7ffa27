package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
)

func (c *Checker) VisitBlock(block *ast.Block) struct{} {
	c.openScope(block, "block")
	for _, stmt := range block.Stmts {
		ast.VisitStmt[struct{}](c, stmt)
	}
	c.closeScope()
	return struct{}{}
}

func (c *Checker) VisitDeclaration(decl *ast.Declaration) struct{} {
	c.declareVar(decl)
	return struct{}{}
}

func (c *Checker) VisitExpressionStatement(stmt *ast.ExpressionStatement) struct{} {
	c.expr(stmt.X)
	return struct{}{}
}

func (c *Checker) VisitReturnStatement(ret *ast.ReturnStatement) struct{} {
	fn := c.fn
	if fn == nil {
		malformed("enclosing function of return")
	}
	if ret.Value == nil {
		if fn.result != Void && fn.result != Invalid {
			fn.emptyReturns = append(fn.emptyReturns, ret)
		}
		return struct{}{}
	}
	typ := c.expr(ret.Value)
	fn.returnsValue = true
	switch {
	case fn.result == Void:
		// A void main is already reported for its signature.
		if !fn.isMain {
			c.errorf(errors.TypeError, errors.E3008, ret.Value,
				"void function '%s' must not return a value", fn.name)
		}
	case typ == Void:
		c.errorf(errors.TypeError, errors.E3009, ret.Value,
			"cannot return void value from function '%s' returning %s", fn.name, fn.result)
	case !AssignableTo(fn.result, typ):
		c.errorf(errors.TypeError, errors.E3008, ret.Value,
			"cannot return value of type '%s' from function '%s' returning %s", typ, fn.name, fn.result)
	}
	return struct{}{}
}

func (c *Checker) VisitIfStatement(stmt *ast.IfStatement) struct{} {
	c.condition(stmt.Cond, "if statement")
	c.body(stmt.Then, "if")
	if stmt.Else != nil {
		c.body(stmt.Else, "else")
	}
	return struct{}{}
}

func (c *Checker) VisitForStatement(stmt *ast.ForStatement) struct{} {
	// The header has its own scope, enclosing the body's.
	c.openScope(stmt, "for")
	if stmt.Init != nil {
		ast.VisitStmt[struct{}](c, stmt.Init)
	}
	if stmt.Cond != nil {
		c.condition(stmt.Cond, "for statement")
	}
	if stmt.Post != nil {
		c.expr(stmt.Post)
	}
	c.body(stmt.Body, "for body")
	c.closeScope()
	return struct{}{}
}

func (c *Checker) VisitWhileStatement(stmt *ast.WhileStatement) struct{} {
	c.condition(stmt.Cond, "while statement")
	c.body(stmt.Body, "while")
	return struct{}{}
}

func (c *Checker) VisitEmptyStatement(*ast.EmptyStatement) struct{} {
	return struct{}{}
}

// body checks the body or branch of a control statement in a new scope. A
// braced body uses that scope directly rather than opening a second one.
func (c *Checker) body(stmt ast.Stmt, comment string) {
	block, ok := stmt.(*ast.Block)
	if !ok || block == nil {
		c.openScope(stmt, comment)
		ast.VisitStmt[struct{}](c, stmt)
		c.closeScope()
		return
	}
	c.openScope(block, comment)
	for _, s := range block.Stmts {
		ast.VisitStmt[struct{}](c, s)
	}
	c.closeScope()
}

// condition checks that the controlling expression of a statement is bool.
func (c *Checker) condition(cond ast.Expr, what string) {
	typ := c.expr(cond)
	if typ != Bool && typ != Invalid {
		c.errorf(errors.TypeError, errors.E3004, cond,
			"condition of %s must be bool, but found %s", what, typ)
	}
}
