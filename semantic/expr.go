package semantic

import (
	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/token"
)

// expr checks e and returns its type, recording it when Info is set.
func (c *Checker) expr(e ast.Expr) Type {
	typ := ast.VisitExpr[Type](c, e)
	if c.info != nil {
		c.info.Types[e] = typ
	}
	return typ
}

func (c *Checker) VisitLiteral(lit *ast.Literal) Type {
	return TypeOf(lit.Type)
}

func (c *Checker) VisitIdentifier(ident *ast.Identifier) Type {
	sym := c.resolve(ident)
	if sym == nil {
		return Invalid
	}
	if !sym.IsValue() {
		c.errorf(errors.TypeError, errors.E3007, ident, "function '%s' used as a value", ident.Name)
		return Invalid
	}
	return sym.Type
}

// resolve looks up a variable reference. An undeclared name is reported
// once per innermost scope.
func (c *Checker) resolve(ident *ast.Identifier) *Symbol {
	sym, _ := c.scope.LookupParent(ident.Name)
	if sym == nil {
		if c.scope.markUnresolved(ident.Name) {
			d := c.errorf(errors.NameError, errors.E2001, ident, "'%s' not declared before use", ident.Name)
			c.suggest(d, ident.Name, (*Symbol).IsValue)
		}
		return nil
	}
	c.recordUse(ident, sym)
	return sym
}

// suggest attaches a "did you mean" hint naming similar visible symbols.
func (c *Checker) suggest(d *errors.Diagnostic, name string, keep func(*Symbol) bool) {
	candidates := c.scope.Visible(keep)
	if hint := errors.FormatSuggestions(errors.SuggestSimilar(name, candidates)); hint != "" {
		d.WithHint(hint)
	}
}

func (c *Checker) VisitAssignment(x *ast.Assignment) Type {
	if x.Target == nil {
		malformed("assignment target")
	}
	target := Invalid
	sym := c.resolve(x.Target)
	if sym != nil {
		if sym.IsValue() {
			target = sym.Type
		} else {
			c.errorf(errors.TypeError, errors.E3007, x.Target, "cannot assign to function '%s'", x.Target.Name)
		}
	}
	value := c.expr(x.Value)
	if !AssignableTo(target, value) {
		c.errorf(errors.TypeError, errors.E3002, x.Value,
			"cannot assign value of type '%s' to variable '%s' of type '%s'", value, x.Target.Name, target)
	}
	return target
}

func (c *Checker) VisitBinaryExpression(x *ast.BinaryExpression) Type {
	left := c.expr(x.X)
	right := c.expr(x.Y)
	op := x.Op.Symbol()
	if left == Invalid || right == Invalid {
		return Invalid
	}
	if left == Void || right == Void {
		c.errorf(errors.TypeError, errors.E3009, x, "void value used as operand of '%s'", op)
		return Invalid
	}
	switch x.Op {
	case token.PLUS, token.MINUS, token.TIMES, token.DIVIDE:
		if left.IsNumeric() && right.IsNumeric() {
			return Promote(left, right)
		}
		c.errorf(errors.TypeError, errors.E3003, x,
			"operator '%s' requires numeric operands, but found %s and %s", op, left, right)
	case token.LT, token.GT, token.LEQ, token.GEQ:
		if left.IsNumeric() && right.IsNumeric() {
			return Bool
		}
		c.errorf(errors.TypeError, errors.E3003, x,
			"operator '%s' requires numeric operands, but found %s and %s", op, left, right)
	case token.EQ, token.NEQ:
		if left == right || (left.IsNumeric() && right.IsNumeric()) {
			return Bool
		}
		c.errorf(errors.TypeError, errors.E3003, x,
			"cannot compare %s and %s with operator '%s'", left, right, op)
	case token.AND, token.OR:
		if left == Bool && right == Bool {
			return Bool
		}
		c.errorf(errors.TypeError, errors.E3003, x,
			"operator '%s' requires bool operands, but found %s and %s", op, left, right)
	default:
		malformed("binary operator " + string(x.Op))
	}
	return Invalid
}

func (c *Checker) VisitCallExpression(call *ast.CallExpression) Type {
	if call.Callee == nil {
		malformed("callee")
	}
	name := call.Callee.Name
	args := make([]Type, len(call.Args))
	for i, arg := range call.Args {
		args[i] = c.expr(arg)
	}

	sym, _ := c.scope.LookupParent(name)
	if sym == nil {
		if c.scope.markUnresolved(name) {
			d := c.errorf(errors.NameError, errors.E2002, call.Callee, "function '%s' not declared before use", name)
			c.suggest(d, name, func(s *Symbol) bool { return s.Kind == Function })
		}
		return Invalid
	}
	c.recordUse(call.Callee, sym)
	if sym.Kind != Function {
		c.errorf(errors.TypeError, errors.E3007, call.Callee, "'%s' is not a function", name)
		return Invalid
	}
	if len(args) != len(sym.Params) {
		c.errorf(errors.TypeError, errors.E3005, call,
			"function '%s' expects %d arguments, but found %d", name, len(sym.Params), len(args))
		return sym.Type
	}
	for i, arg := range args {
		if !AssignableTo(sym.Params[i], arg) {
			c.errorf(errors.TypeError, errors.E3006, call.Args[i],
				"argument %d of function '%s' expects %s, but found %s", i+1, name, sym.Params[i], arg)
		}
	}
	return sym.Type
}
