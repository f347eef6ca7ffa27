package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Lexical and syntax errors
//   - E2xxx: Name errors
//   - E3xxx: Type errors
//   - E4xxx: Control flow errors
//   - E9xxx: Internal errors
type ErrorCode string

const (
	// Lexical errors (E10xx)
	E1001 ErrorCode = "E1001" // Illegal character
	E1002 ErrorCode = "E1002" // Unterminated block comment
	E1003 ErrorCode = "E1003" // Invalid character literal
	E1004 ErrorCode = "E1004" // Invalid escape sequence
	E1005 ErrorCode = "E1005" // Invalid number literal

	// Syntax errors (E11xx)
	E1101 ErrorCode = "E1101" // Unexpected token
	E1102 ErrorCode = "E1102" // Missing expression
	E1103 ErrorCode = "E1103" // Invalid assignment target
	E1104 ErrorCode = "E1104" // Maximum nesting depth exceeded
	E1105 ErrorCode = "E1105" // Unclosed delimiter

	// Name errors (E2xxx)
	E2001 ErrorCode = "E2001" // Undeclared variable
	E2002 ErrorCode = "E2002" // Undeclared function
	E2003 ErrorCode = "E2003" // Redeclaration

	// Type errors (E3xxx)
	E3001 ErrorCode = "E3001" // Incompatible initializer
	E3002 ErrorCode = "E3002" // Incompatible assignment
	E3003 ErrorCode = "E3003" // Invalid operand types
	E3004 ErrorCode = "E3004" // Non-boolean condition
	E3005 ErrorCode = "E3005" // Wrong argument count
	E3006 ErrorCode = "E3006" // Incompatible argument
	E3007 ErrorCode = "E3007" // Not a function
	E3008 ErrorCode = "E3008" // Incompatible return value
	E3009 ErrorCode = "E3009" // Invalid use of void

	// Control flow errors (E4xxx)
	E4001 ErrorCode = "E4001" // Missing return value
	E4002 ErrorCode = "E4002" // main must return int
	E4003 ErrorCode = "E4003" // main must not declare parameters
	E4004 ErrorCode = "E4004" // Empty return in non-void function

	// Internal errors (E9xxx)
	E9001 ErrorCode = "E9001" // Malformed syntax tree
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "illegal character",
	E1002: "unterminated block comment",
	E1003: "invalid character literal",
	E1004: "invalid escape sequence",
	E1005: "invalid number literal",

	E1101: "unexpected token",
	E1102: "missing expression",
	E1103: "invalid assignment target",
	E1104: "maximum nesting depth exceeded",
	E1105: "unclosed delimiter",

	E2001: "undeclared variable",
	E2002: "undeclared function",
	E2003: "redeclaration",

	E3001: "incompatible initializer",
	E3002: "incompatible assignment",
	E3003: "invalid operand types",
	E3004: "non-boolean condition",
	E3005: "wrong argument count",
	E3006: "incompatible argument",
	E3007: "not a function",
	E3008: "incompatible return value",
	E3009: "invalid use of void",

	E4001: "missing return value",
	E4002: "invalid main return type",
	E4003: "invalid main parameters",
	E4004: "empty return in non-void function",

	E9001: "malformed syntax tree",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 3 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		if c[2] == '0' {
			return "lexical"
		}
		return "syntax"
	case '2':
		return "name"
	case '3':
		return "type"
	case '4':
		return "control flow"
	case '9':
		return "internal"
	default:
		return "unknown"
	}
}
