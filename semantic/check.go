package semantic

import (
	"github.com/rs/zerolog"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
)

// Checker is the semantic checker. It implements the declaration,
// statement and expression visitors of package ast; a Checker is used for
// a single Check call.
type Checker struct {
	info     *Info
	filename string
	log      zerolog.Logger

	global *Scope
	scope  *Scope // current scope

	// Function context
	fn *funcContext

	diags errors.List
}

// funcContext tracks the function whose body is being checked.
type funcContext struct {
	name   string
	result Type
	isMain bool

	// returnsValue is set once a return with a value has been seen.
	returnsValue bool

	// emptyReturns holds the bare return statements of the function.
	emptyReturns []*ast.ReturnStatement
}

var (
	_ ast.DeclVisitor[struct{}] = (*Checker)(nil)
	_ ast.StmtVisitor[struct{}] = (*Checker)(nil)
	_ ast.ExprVisitor[Type]     = (*Checker)(nil)
)

func newChecker(options ...Option) *Checker {
	c := &Checker{log: zerolog.Nop()}
	for _, opt := range options {
		opt(c)
	}
	if c.info != nil {
		if c.info.Types == nil {
			c.info.Types = make(map[ast.Expr]Type)
		}
		if c.info.Defs == nil {
			c.info.Defs = make(map[*ast.Identifier]*Symbol)
		}
		if c.info.Uses == nil {
			c.info.Uses = make(map[*ast.Identifier]*Symbol)
		}
		if c.info.Scopes == nil {
			c.info.Scopes = make(map[ast.Node]*Scope)
		}
	}
	return c
}

func (c *Checker) checkProgram(program *ast.Program) {
	c.global = NewScope(nil, "global")
	c.scope = c.global
	if c.info != nil {
		c.info.Global = c.global
		c.info.Scopes[program] = c.global
	}
	// Declarations are checked in source order, so a function is visible
	// to its own body and to later functions but not to earlier ones.
	for _, decl := range program.Decls {
		ast.VisitDecl[struct{}](c, decl)
	}
}

// openScope creates a new scope as a child of the current scope.
func (c *Checker) openScope(n ast.Node, comment string) *Scope {
	s := NewScope(c.scope, comment)
	c.scope = s
	if c.info != nil {
		c.info.Scopes[n] = s
	}
	return s
}

// closeScope returns to the parent scope.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// declare inserts sym into the current scope, reporting a redeclaration.
func (c *Checker) declare(name *ast.Identifier, sym *Symbol) bool {
	if existing := c.scope.Insert(sym); existing != nil {
		c.errorf(errors.NameError, errors.E2003, name, "'%s' already declared in this scope", name.Name).
			WithHint("previous declaration at " + existing.Pos.String())
		return false
	}
	if c.info != nil {
		c.info.Defs[name] = sym
	}
	return true
}

func (c *Checker) recordUse(name *ast.Identifier, sym *Symbol) {
	if c.info != nil {
		c.info.Uses[name] = sym
	}
}

// errorf records a diagnostic spanning the node n.
func (c *Checker) errorf(kind errors.Kind, code errors.ErrorCode, n ast.Node, format string, args ...any) *errors.Diagnostic {
	d := errors.Newf(kind, code, n.Pos(), n.End(), format, args...)
	if d.File == "" {
		d.File = c.filename
	}
	c.diags.Add(d)
	return d
}

// malformed aborts the pass on a tree that violates the node invariants.
func malformed(what string) {
	panic(&ast.MalformedError{What: what})
}

func (c *Checker) VisitFunctionDefinition(fn *ast.FunctionDefinition) struct{} {
	if fn.Name == nil {
		malformed("function name")
	}
	if fn.Body == nil {
		malformed("function body")
	}
	name := fn.Name.Name
	result := TypeOf(fn.ReturnType.Name)
	params := make([]Type, len(fn.Params))
	for i, p := range fn.Params {
		if p == nil || p.Name == nil {
			malformed("parameter")
		}
		params[i] = TypeOf(p.Type.Name)
	}

	// The function is declared before its body is checked so that it may
	// call itself.
	c.declare(fn.Name, &Symbol{
		Name:   name,
		Kind:   Function,
		Type:   result,
		Params: params,
		Pos:    fn.Name.Pos(),
	})

	ctx := &funcContext{name: name, result: result, isMain: name == "main"}
	if ctx.isMain {
		if result != Int {
			c.errorf(errors.ControlFlowError, errors.E4002, fn.ReturnType,
				"function 'main' must return int, not %s", result)
		}
		if len(fn.Params) > 0 {
			first, last := fn.Params[0], fn.Params[len(fn.Params)-1]
			d := errors.New(errors.ControlFlowError, errors.E4003, first.Pos(), last.End(),
				"function 'main' must not declare parameters")
			if d.File == "" {
				d.File = c.filename
			}
			c.diags.Add(d)
		}
	}

	outer := c.fn
	c.fn = ctx
	defer func() { c.fn = outer }()

	// Parameters and the top level of the body share one scope, so a local
	// may not redeclare a parameter.
	c.openScope(fn, "function "+name)
	for i, p := range fn.Params {
		typ := params[i]
		if typ == Void {
			c.errorf(errors.TypeError, errors.E3009, p, "parameter '%s' cannot have type void", p.Name.Name)
			typ = Invalid
		}
		c.declare(p.Name, &Symbol{Name: p.Name.Name, Kind: Parameter, Type: typ, Pos: p.Name.Pos()})
	}
	for _, stmt := range fn.Body.Stmts {
		ast.VisitStmt[struct{}](c, stmt)
	}
	c.closeScope()

	if result == Void || result == Invalid {
		return struct{}{}
	}
	if !ctx.returnsValue {
		c.errorf(errors.ControlFlowError, errors.E4001, fn.Name,
			"non-void function '%s' must return a value", name)
		return struct{}{}
	}
	for _, ret := range ctx.emptyReturns {
		c.errorf(errors.ControlFlowError, errors.E4004, ret,
			"empty return in function '%s' returning %s", name, result)
	}
	return struct{}{}
}

func (c *Checker) VisitGlobalDeclaration(decl *ast.Declaration) struct{} {
	c.declareVar(decl)
	return struct{}{}
}

// declareVar checks a variable declaration and adds the variable to the
// current scope. The initializer is checked first, so it cannot refer to
// the variable being declared.
func (c *Checker) declareVar(decl *ast.Declaration) {
	if decl.Name == nil {
		malformed("declaration name")
	}
	name := decl.Name.Name
	typ := TypeOf(decl.Type.Name)
	init := Invalid
	if decl.Init != nil {
		init = c.expr(decl.Init)
	}
	switch {
	case typ == Void:
		c.errorf(errors.TypeError, errors.E3009, decl.Name, "variable '%s' cannot have type void", name)
		typ = Invalid
	case decl.Init != nil && !AssignableTo(typ, init):
		c.errorf(errors.TypeError, errors.E3001, decl.Init,
			"cannot assign value of type '%s' to variable '%s' of type '%s'", init, name, typ)
	}
	c.declare(decl.Name, &Symbol{Name: name, Kind: Variable, Type: typ, Pos: decl.Name.Pos()})
}
