package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns true, Inspect continues into the children of the node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at root
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// children returns the non-nil child nodes of n in source order.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil && nilIfNil(c) != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *Program:
		for _, d := range n.Decls {
			add(d)
		}
	case *FunctionDefinition:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *Parameter:
		add(n.Name)
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Declaration:
		add(n.Name)
		add(n.Init)
	case *ExpressionStatement:
		add(n.X)
	case *ReturnStatement:
		add(n.Value)
	case *IfStatement:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *ForStatement:
		add(n.Init)
		add(n.Cond)
		add(n.Post)
		add(n.Body)
	case *WhileStatement:
		add(n.Cond)
		add(n.Body)
	case *Assignment:
		add(n.Target)
		add(n.Value)
	case *BinaryExpression:
		add(n.X)
		add(n.Y)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	}
	return out
}
