// Package errors defines the diagnostics reported by the minic front end.
//
// Every stage of the pipeline reports problems as *Diagnostic values which
// are accumulated rather than returned one at a time. A List collects them in
// the order they were found.
package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/minic-lang/minic/token"
)

// Kind represents the category of a diagnostic.
type Kind int

const (
	// LexicalError indicates an illegal character or malformed literal.
	LexicalError Kind = iota
	// SyntaxError indicates an unexpected token for the grammar state.
	SyntaxError
	// NameError indicates an undeclared or redeclared name.
	NameError
	// TypeError indicates a type mismatch.
	TypeError
	// ControlFlowError indicates a missing return or malformed main.
	ControlFlowError
	// InternalError indicates a malformed syntax tree.
	InternalError
)

// String returns the string representation of the diagnostic kind.
func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case NameError:
		return "name error"
	case TypeError:
		return "type error"
	case ControlFlowError:
		return "control flow error"
	case InternalError:
		return "internal error"
	default:
		return "error"
	}
}

// Name returns the identifier style name of the kind, e.g. "NameError".
func (k Kind) Name() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case ControlFlowError:
		return "ControlFlowError"
	case InternalError:
		return "InternalError"
	default:
		return "Error"
	}
}

// MarshalText encodes the kind using its identifier style name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Name()), nil
}

// Diagnostic is a single reported problem with its source location.
// Line and column numbers are 1-indexed; a zero Line means the location
// is unknown.
type Diagnostic struct {
	Kind      Kind      `json:"kind"`
	Code      ErrorCode `json:"code,omitempty"`
	Message   string    `json:"message"`
	File      string    `json:"file,omitempty"`
	Line      int       `json:"line,omitempty"`
	Column    int       `json:"column,omitempty"`
	EndColumn int       `json:"end_column,omitempty"`
	Hint      string    `json:"hint,omitempty"`
}

// New returns a diagnostic spanning the given positions.
func New(kind Kind, code ErrorCode, start, end token.Position, msg string) *Diagnostic {
	d := &Diagnostic{
		Kind:    kind,
		Code:    code,
		Message: msg,
		File:    start.File,
		Line:    start.LineNumber(),
		Column:  start.ColumnNumber(),
	}
	// The end position points just past the node, so its 0-indexed column
	// is the 1-indexed column of the last character.
	if end.Line == start.Line && end.Column > start.Column {
		d.EndColumn = end.Column
	}
	return d
}

// Newf is like New but formats the message.
func Newf(kind Kind, code ErrorCode, start, end token.Position, format string, args ...any) *Diagnostic {
	return New(kind, code, start, end, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s", d.Kind, d.Line, d.Column, d.Message)
}

// Location returns the "file:line:column" form of the diagnostic location.
func (d *Diagnostic) Location() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
	return fmt.Sprintf("%d:%d", d.Line, d.Column)
}

// WithHint attaches a hint and returns the diagnostic.
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}

// List is an ordered collection of diagnostics.
type List []*Diagnostic

// Add appends a diagnostic to the list.
func (l *List) Add(d *Diagnostic) {
	*l = append(*l, d)
}

// Len returns the number of diagnostics.
func (l List) Len() int {
	return len(l)
}

// HasKind reports whether any diagnostic in the list is of the given kind.
func (l List) HasKind(kind Kind) bool {
	for _, d := range l {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics of the given kind, preserving order.
func (l List) Filter(kind Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Messages returns the message of each diagnostic in order.
func (l List) Messages() []string {
	msgs := make([]string, 0, len(l))
	for _, d := range l {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// Err folds the list into a single error, or returns nil when it is empty.
func (l List) Err() error {
	var result *multierror.Error
	for _, d := range l {
		result = multierror.Append(result, d)
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = formatList
	return result.ErrorOrNil()
}

func formatList(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(errs), strings.Join(lines, "\n"))
}
