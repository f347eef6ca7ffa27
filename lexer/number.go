package lexer

import "github.com/minic-lang/minic/token"

// matchNumber applies the numeric recognizers in their fixed order: float
// with a mandatory f/F suffix, then double, then integer. The first one
// that matches wins, so "3.14" is a double and "3.14f" is a float.
//
// s must start with a digit, or with '.' followed by a digit.
func matchNumber(s string) (token.Type, int) {
	if n := matchFloat(s); n > 0 {
		return token.FLOAT_NUM, n
	}
	if n := matchDouble(s); n > 0 {
		return token.DOUBLE_NUM, n
	}
	return token.INT_NUM, digits(s, 0)
}

// matchFloat matches (\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?[fF].
func matchFloat(s string) int {
	n, _ := mantissa(s)
	if n == 0 {
		return 0
	}
	n += exponent(s, n)
	if n < len(s) && (s[n] == 'f' || s[n] == 'F') {
		return n + 1
	}
	return 0
}

// matchDouble matches (\d+\.\d*|\.\d+)([eE][+-]?\d+)?|\d+[eE][+-]?\d+.
func matchDouble(s string) int {
	n, dotted := mantissa(s)
	if n == 0 {
		return 0
	}
	exp := exponent(s, n)
	if !dotted && exp == 0 {
		return 0
	}
	return n + exp
}

// mantissa returns the length of the leading \d+\.\d*, \.\d+ or \d+ and
// whether it contains a decimal point.
func mantissa(s string) (int, bool) {
	n := digits(s, 0)
	if n < len(s) && s[n] == '.' {
		frac := digits(s, n+1)
		if n == 0 && frac == 0 {
			return 0, false
		}
		return n + 1 + frac, true
	}
	return n, false
}

// exponent returns the length of a complete [eE][+-]?\d+ at offset i, or 0.
func exponent(s string, i int) int {
	if i >= len(s) || (s[i] != 'e' && s[i] != 'E') {
		return 0
	}
	j := i + 1
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	d := digits(s, j)
	if d == 0 {
		return 0
	}
	return j + d - i
}

// digits returns the number of consecutive decimal digits at offset i.
func digits(s string, i int) int {
	n := 0
	for i+n < len(s) && isDigit(s[i+n]) {
		n++
	}
	return n
}
