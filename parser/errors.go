package parser

import (
	"fmt"

	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/token"
)

func tokenTypeDescription(t token.Type) string {
	return t.Describe()
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("'%s'", t.Literal)
	}
}

// Errors wraps the lexical and syntax diagnostics of one parse. It
// implements the error interface so it can be returned from Parse().
type Errors struct {
	diags []*errors.Diagnostic
}

// NewErrors creates an Errors from a slice of diagnostics.
func NewErrors(diags []*errors.Diagnostic) *Errors {
	if len(diags) == 0 {
		return nil
	}
	return &Errors{diags: diags}
}

// Error implements the error interface. Returns the first error message.
func (e *Errors) Error() string {
	if len(e.diags) == 0 {
		return ""
	}
	if len(e.diags) == 1 {
		return e.diags[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.diags[0].Error(), len(e.diags)-1)
}

// Diagnostics returns the underlying diagnostics in source order.
func (e *Errors) Diagnostics() []*errors.Diagnostic {
	return e.diags
}

// Count returns the number of errors.
func (e *Errors) Count() int {
	return len(e.diags)
}

// First returns the first error, or nil if empty.
func (e *Errors) First() *errors.Diagnostic {
	if len(e.diags) == 0 {
		return nil
	}
	return e.diags[0]
}

// Unwrap exposes each diagnostic to errors.Is and errors.As.
func (e *Errors) Unwrap() []error {
	errs := make([]error, len(e.diags))
	for i, d := range e.diags {
		errs[i] = d
	}
	return errs
}

// FriendlyErrorMessage returns a formatted message showing all errors
// against the given source text.
func (e *Errors) FriendlyErrorMessage(source string) string {
	return errors.NewFormatter(false).FormatAll(e.diags, source)
}
