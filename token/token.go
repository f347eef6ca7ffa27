// Package token defines the keywords and token kinds produced when lexing
// minic source code.
package token

import "fmt"

// Type describes the kind of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the input
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes on the same line.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// String returns the position as "line:column" using 1-indexed numbers.
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.LineNumber(), p.ColumnNumber())
	}
	return fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type    Type
	Literal string
	// Value holds the decoded payload of literal tokens: int64 for INT_NUM,
	// float64 for FLOAT_NUM and DOUBLE_NUM, bool for BOOL_LIT and a single
	// character string for CHAR_LIT. Other tokens carry their literal text.
	Value         any
	StartPosition Position
	EndPosition   Position
}

// Token types. The names double as the wire names reported to clients.
const (
	EOF     = "EOF"
	ILLEGAL = "ILLEGAL"

	TYPE       = "TYPE"
	ID         = "ID"
	INT_NUM    = "INT_NUM"
	FLOAT_NUM  = "FLOAT_NUM"
	DOUBLE_NUM = "DOUBLE_NUM"
	CHAR_LIT   = "CHAR_LIT"
	BOOL_LIT   = "BOOL_LIT"

	PLUS   = "PLUS"
	MINUS  = "MINUS"
	TIMES  = "TIMES"
	DIVIDE = "DIVIDE"
	ASSIGN = "ASSIGN"
	EQ     = "EQ"
	NEQ    = "NEQ"
	LT     = "LT"
	GT     = "GT"
	LEQ    = "LEQ"
	GEQ    = "GEQ"
	AND    = "AND"
	OR     = "OR"

	LPAREN = "LPAREN"
	RPAREN = "RPAREN"
	LBRACE = "LBRACE"
	RBRACE = "RBRACE"
	SEMI   = "SEMI"
	COMMA  = "COMMA"

	IF     = "IF"
	ELSE   = "ELSE"
	FOR    = "FOR"
	WHILE  = "WHILE"
	RETURN = "RETURN"
)

// Reserved keywords. The primitive type names all map to TYPE.
var keywords = map[string]Type{
	"int":    TYPE,
	"float":  TYPE,
	"double": TYPE,
	"char":   TYPE,
	"bool":   TYPE,
	"void":   TYPE,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"while":  WHILE,
	"return": RETURN,
}

// LookupIdentifier reports whether the identifier is a keyword, returning
// the keyword's kind or ID when it is a plain name.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return ID
}

// IsKeyword reports whether the given word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// IsLiteral reports whether tokens of this kind carry a literal value.
func (t Type) IsLiteral() bool {
	switch t {
	case INT_NUM, FLOAT_NUM, DOUBLE_NUM, CHAR_LIT, BOOL_LIT:
		return true
	}
	return false
}

// IsOperator reports whether tokens of this kind are binary operators.
func (t Type) IsOperator() bool {
	switch t {
	case PLUS, MINUS, TIMES, DIVIDE, ASSIGN, EQ, NEQ, LT, GT, LEQ, GEQ, AND, OR:
		return true
	}
	return false
}

// Describe returns a short human readable description of a token kind,
// suitable for use in diagnostics.
func (t Type) Describe() string {
	switch t {
	case EOF:
		return "end of file"
	case ID:
		return "identifier"
	case TYPE:
		return "type name"
	case INT_NUM, FLOAT_NUM, DOUBLE_NUM, CHAR_LIT, BOOL_LIT:
		return "literal"
	}
	if s, ok := symbols[t]; ok {
		return fmt.Sprintf("'%s'", s)
	}
	return string(t)
}

var symbols = map[Type]string{
	PLUS:   "+",
	MINUS:  "-",
	TIMES:  "*",
	DIVIDE: "/",
	ASSIGN: "=",
	EQ:     "==",
	NEQ:    "!=",
	LT:     "<",
	GT:     ">",
	LEQ:    "<=",
	GEQ:    ">=",
	AND:    "&&",
	OR:     "||",
	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",
	SEMI:   ";",
	COMMA:  ",",
	IF:     "if",
	ELSE:   "else",
	FOR:    "for",
	WHILE:  "while",
	RETURN: "return",
}

// Symbol returns the source spelling of an operator, punctuation or
// keyword kind, or the empty string for other kinds.
func (t Type) Symbol() string {
	return symbols[t]
}
