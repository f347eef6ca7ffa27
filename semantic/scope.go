package semantic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/minic-lang/minic/token"
)

// SymbolKind distinguishes the things a name can refer to.
type SymbolKind int

const (
	Variable SymbolKind = iota
	Parameter
	Function
)

func (k SymbolKind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Parameter:
		return "parameter"
	case Function:
		return "function"
	default:
		return "symbol"
	}
}

// Symbol is a declared name. For functions Type is the return type and
// Params holds the parameter types in order.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Type   Type
	Params []Type
	Pos    token.Position
}

// IsValue reports whether the symbol can be read or assigned as a variable.
func (s *Symbol) IsValue() bool {
	return s.Kind != Function
}

func (s *Symbol) String() string {
	if s.Kind != Function {
		return fmt.Sprintf("%s %s %s", s.Kind, s.Type, s.Name)
	}
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("func %s %s(%s)", s.Type, s.Name, strings.Join(params, ", "))
}

// Scope represents a lexical scope.
// Scopes form a tree starting from the global scope.
type Scope struct {
	parent   *Scope
	children []*Scope
	elems    map[string]*Symbol
	comment  string // e.g. "global", "function main", "block"

	// unresolved holds names already reported as undeclared in this scope.
	unresolved map[string]bool
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		elems:   make(map[string]*Symbol),
		comment: comment,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the parent scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Children returns the list of child scopes.
func (s *Scope) Children() []*Scope {
	return s.children
}

// Comment returns the scope's comment.
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the symbol with the given name in this scope only.
func (s *Scope) Lookup(name string) *Symbol {
	return s.elems[name]
}

// LookupParent returns the symbol with the given name by searching from
// this scope outward, along with the scope it was found in. It returns
// (nil, nil) if the name is not declared.
func (s *Scope) LookupParent(name string) (*Symbol, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym := scope.elems[name]; sym != nil {
			return sym, scope
		}
	}
	return nil, nil
}

// Insert adds a symbol to the scope. If a symbol with the same name is
// already declared in this scope, Insert returns it and leaves the scope
// unchanged. Otherwise it returns nil.
func (s *Scope) Insert(sym *Symbol) *Symbol {
	if existing := s.elems[sym.Name]; existing != nil {
		return existing
	}
	s.elems[sym.Name] = sym
	return nil
}

// Names returns the names declared in this scope, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Visible returns the names visible from this scope whose symbols satisfy
// keep, sorted and without duplicates.
func (s *Scope) Visible(keep func(*Symbol) bool) []string {
	var names []string
	for scope := s; scope != nil; scope = scope.parent {
		for name, sym := range scope.elems {
			if keep == nil || keep(sym) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// markUnresolved records name as reported undeclared in this scope and
// reports whether it was not already recorded.
func (s *Scope) markUnresolved(name string) bool {
	if s.unresolved[name] {
		return false
	}
	if s.unresolved == nil {
		s.unresolved = make(map[string]bool)
	}
	s.unresolved[name] = true
	return true
}

// String returns a string representation of the scope tree for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %s {\n", prefix, s.comment)
	for _, name := range s.Names() {
		fmt.Fprintf(buf, "%s  %s\n", prefix, s.elems[name])
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}
