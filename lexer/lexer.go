// Package lexer converts minic source text into a stream of tokens.
//
// The lexer never stops on bad input. Illegal characters and malformed
// literals are recorded as diagnostics and skipped, and scanning resumes
// with the next character.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/token"
)

// Lexer holds the state for one tokenization run.
type Lexer struct {
	input    string
	filename string

	// pos is the byte offset of the next character to scan.
	pos       int
	line      int // 0-indexed
	lineStart int

	// prev is the kind of the last emitted token. It decides whether a
	// leading sign belongs to a numeric literal.
	prev token.Type

	diags []*errors.Diagnostic

	onToken func(token.Token)
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name reported in positions and diagnostics.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// WithTokenHook registers fn to be called with every token Next returns,
// except EOF.
func WithTokenHook(fn func(token.Token)) Option {
	return func(l *Lexer) {
		l.onToken = fn
	}
}

// New returns a Lexer for the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Tokenize lexes the whole input. The returned tokens do not include the
// trailing EOF token.
func Tokenize(input string, options ...Option) ([]token.Token, []*errors.Diagnostic) {
	l := New(input, options...)
	var tokens []token.Token
	for {
		tok := l.Next()
		if tok.Type == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.Diagnostics()
}

// SetFilename sets the file name reported in positions and diagnostics.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the file name of the input, if known.
func (l *Lexer) Filename() string {
	return l.filename
}

// Diagnostics returns the lexical errors found so far.
func (l *Lexer) Diagnostics() []*errors.Diagnostic {
	return l.diags
}

// GetLineText returns the source line on which the token starts.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return strings.TrimRight(l.input[start:start+end], "\r")
}

// Next returns the next token. Once the input is exhausted it returns EOF
// on every call.
func (l *Lexer) Next() token.Token {
	for {
		l.skipIgnored()
		if l.pos >= len(l.input) {
			pos := l.position()
			return token.Token{Type: token.EOF, StartPosition: pos, EndPosition: pos}
		}
		if tok, ok := l.scan(); ok {
			l.prev = tok.Type
			if l.onToken != nil {
				l.onToken(tok)
			}
			return tok
		}
	}
}

// scan recognizes one token at the current position. It returns false when
// the input at the position was consumed without producing a token.
func (l *Lexer) scan() (token.Token, bool) {
	ch := l.input[l.pos]
	switch {
	case ch == '/' && l.peekByte(1) == '/':
		l.skipLineComment()
		return token.Token{}, false
	case ch == '/' && l.peekByte(1) == '*':
		l.skipBlockComment()
		return token.Token{}, false
	case isLetter(ch):
		if kw, ok := l.matchBool(); ok {
			return kw, true
		}
		return l.readIdentifier(), true
	case isDigit(ch), ch == '.' && isDigit(l.peekByte(1)):
		return l.readNumber(0)
	case (ch == '+' || ch == '-') && l.signAllowed():
		return l.readNumber(1)
	case ch == '\'':
		return l.readChar()
	}
	if typ, n := matchOperator(l.input[l.pos:]); n > 0 {
		start := l.position()
		lit := l.input[l.pos : l.pos+n]
		l.pos += n
		return token.Token{
			Type:          typ,
			Literal:       lit,
			Value:         lit,
			StartPosition: start,
			EndPosition:   l.position(),
		}, true
	}
	l.illegal()
	return token.Token{}, false
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.filename,
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) newline() {
	l.line++
	l.lineStart = l.pos
}

// skipIgnored consumes whitespace and newlines.
func (l *Lexer) skipIgnored() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\f':
			l.pos++
		case '\n':
			l.pos++
			l.newline()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.position()
	end := strings.Index(l.input[l.pos+2:], "*/")
	stop := len(l.input)
	if end >= 0 {
		stop = l.pos + 2 + end + 2
	}
	for l.pos < stop {
		l.pos++
		if l.input[l.pos-1] == '\n' {
			l.newline()
		}
	}
	if end < 0 {
		l.report(errors.E1002, start, start.Advance(2), "unterminated block comment")
	}
}

// matchBool recognizes "true" and "false" ahead of identifiers. The first
// recognizer that matches wins, so "trueish" yields a boolean followed by
// the identifier "ish".
func (l *Lexer) matchBool() (token.Token, bool) {
	rest := l.input[l.pos:]
	for _, word := range []string{"true", "false"} {
		if strings.HasPrefix(rest, word) {
			start := l.position()
			l.pos += len(word)
			return token.Token{
				Type:          token.BOOL_LIT,
				Literal:       word,
				Value:         word == "true",
				StartPosition: start,
				EndPosition:   l.position(),
			}, true
		}
	}
	return token.Token{}, false
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.position()
	begin := l.pos
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	lit := l.input[begin:l.pos]
	return token.Token{
		Type:          token.LookupIdentifier(lit),
		Literal:       lit,
		Value:         lit,
		StartPosition: start,
		EndPosition:   l.position(),
	}
}

// signAllowed reports whether a '+' or '-' at the current position should
// be read as the sign of a numeric literal. That is only the case when a
// digit follows and the previous token cannot end an operand.
func (l *Lexer) signAllowed() bool {
	next := l.peekByte(1)
	if !isDigit(next) && !(next == '.' && isDigit(l.peekByte(2))) {
		return false
	}
	switch l.prev {
	case token.ID, token.INT_NUM, token.FLOAT_NUM, token.DOUBLE_NUM,
		token.CHAR_LIT, token.BOOL_LIT, token.RPAREN:
		return false
	}
	return true
}

// readNumber scans a numeric literal. The sign argument is the number of
// leading sign characters (0 or 1) already known to belong to the literal.
func (l *Lexer) readNumber(sign int) (token.Token, bool) {
	start := l.position()
	typ, n := matchNumber(l.input[l.pos+sign:])
	lit := l.input[l.pos : l.pos+sign+n]
	l.pos += sign + n
	end := l.position()

	var value any
	switch typ {
	case token.INT_NUM:
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			l.report(errors.E1005, start, end, fmt.Sprintf("integer literal %s out of range", lit))
			return token.Token{}, false
		}
		value = v
	case token.FLOAT_NUM:
		v, err := strconv.ParseFloat(lit[:len(lit)-1], 64)
		if err != nil {
			l.report(errors.E1005, start, end, fmt.Sprintf("invalid float literal %s", lit))
			return token.Token{}, false
		}
		value = v
	case token.DOUBLE_NUM:
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			l.report(errors.E1005, start, end, fmt.Sprintf("invalid double literal %s", lit))
			return token.Token{}, false
		}
		value = v
	}
	return token.Token{
		Type:          typ,
		Literal:       lit,
		Value:         value,
		StartPosition: start,
		EndPosition:   end,
	}, true
}

// readChar scans a character literal starting at an opening quote.
func (l *Lexer) readChar() (token.Token, bool) {
	start := l.position()
	body, n, closed := scanQuoted(l.input[l.pos+1:])
	if !closed {
		// No closing quote on this line: the quote itself is illegal.
		l.illegal()
		return token.Token{}, false
	}
	lit := l.input[l.pos : l.pos+n+2]
	l.pos += n + 2
	end := l.position()

	value := body
	if strings.HasPrefix(body, "\\") && len(body) == 2 {
		decoded, ok := escapes[body[1]]
		if !ok {
			l.report(errors.E1004, start, end, fmt.Sprintf("invalid escape sequence '%s'", body))
			return token.Token{}, false
		}
		value = decoded
	}
	if utf8.RuneCountInString(value) != 1 {
		l.report(errors.E1003, start, end, fmt.Sprintf("invalid character literal %s", lit))
		return token.Token{}, false
	}
	return token.Token{
		Type:          token.CHAR_LIT,
		Literal:       lit,
		Value:         value,
		StartPosition: start,
		EndPosition:   end,
	}, true
}

// illegal reports the character at the current position and skips it.
func (l *Lexer) illegal() {
	start := l.position()
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	l.report(errors.E1001, start, l.position(), fmt.Sprintf("illegal character %q", r))
}

func (l *Lexer) report(code errors.ErrorCode, start, end token.Position, msg string) {
	l.diags = append(l.diags, errors.New(errors.LexicalError, code, start, end, msg))
}

var escapes = map[byte]string{
	'n':  "\n",
	't':  "\t",
	'r':  "\r",
	'b':  "\b",
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
}

// scanQuoted finds the body of a character literal whose opening quote has
// already been consumed. It returns the body, its length in bytes and
// whether a closing quote was found before the end of the line.
func scanQuoted(s string) (string, int, bool) {
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\'':
			return s[:i], i, true
		case '\n':
			return "", 0, false
		case '\\':
			if i+1 < len(s) && s[i+1] != '\n' {
				i += 2
				continue
			}
		}
		i++
	}
	return "", 0, false
}

// matchOperator returns the operator or punctuation token at the start of
// s, preferring two character operators.
func matchOperator(s string) (token.Type, int) {
	if len(s) >= 2 {
		switch s[:2] {
		case "==":
			return token.EQ, 2
		case "!=":
			return token.NEQ, 2
		case "<=":
			return token.LEQ, 2
		case ">=":
			return token.GEQ, 2
		case "&&":
			return token.AND, 2
		case "||":
			return token.OR, 2
		}
	}
	switch s[0] {
	case '+':
		return token.PLUS, 1
	case '-':
		return token.MINUS, 1
	case '*':
		return token.TIMES, 1
	case '/':
		return token.DIVIDE, 1
	case '=':
		return token.ASSIGN, 1
	case '<':
		return token.LT, 1
	case '>':
		return token.GT, 1
	case '(':
		return token.LPAREN, 1
	case ')':
		return token.RPAREN, 1
	case '{':
		return token.LBRACE, 1
	case '}':
		return token.RBRACE, 1
	case ';':
		return token.SEMI, 1
	case ',':
		return token.COMMA, 1
	}
	return "", 0
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
