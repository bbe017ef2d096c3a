package eval

import (
	"strings"

	"src.noviq.dev/pkg/ops"
)

// Finds the leftmost comparison operator. At the same index, two-character
// operators win over > and <.
func findComparison(s string) (int, string) {
	for i := 0; i < len(s); i++ {
		if i+1 < len(s) {
			switch two := s[i : i+2]; two {
			case ">=", "<=", "==":
				return i, two
			}
		}
		if s[i] == '>' || s[i] == '<' {
			return i, s[i : i+1]
		}
	}
	return -1, ""
}

var logicalOps = []struct {
	text string
	op   string
}{
	{" AND ", "AND"},
	{" OR ", "OR"},
	{"&&", "AND"},
	{"||", "OR"},
}

// Finds the leftmost logical operator, returning its index, its length in s
// and its canonical name.
func findLogical(s string) (int, int, string) {
	at, n, op := -1, 0, ""
	for _, l := range logicalOps {
		if i := strings.Index(s, l.text); i >= 0 && (at < 0 || i < at) {
			at, n, op = i, len(l.text), l.op
		}
	}
	return at, n, op
}

// Finds the binding arithmetic operator. The first ** or // anywhere in s
// wins; otherwise the first of % * / + -, skipping a - at the start or right
// after another operator character.
func findArithmetic(s string) (int, string) {
	at := -1
	for i := 0; i < len(s); i++ {
		if i+1 < len(s) {
			if two := s[i : i+2]; two == "**" || two == "//" {
				return i, two
			}
		}
		switch s[i] {
		case '%', '*', '/', '+', '-':
			if s[i] == '-' && (i == 0 || ops.IsOperator(s[i-1])) {
				continue
			}
			if at < 0 {
				at = i
			}
		}
	}
	if at < 0 {
		return -1, ""
	}
	return at, s[at : at+1]
}

// IsExpression reports whether s contains an arithmetic operator, not counting
// the sign of a leading negative number.
func IsExpression(s string) bool {
	s = strings.TrimLeft(s, " \t")
	if len(s) > 1 && s[0] == '-' && isDigit(s[1]) {
		rest := strings.TrimLeft(s[1:], "0123456789.")
		return rest != ""
	}
	for i := 0; i < len(s); i++ {
		if i+1 < len(s) {
			if two := s[i : i+2]; two == "**" || two == "//" {
				return true
			}
		}
		if i > 0 && ops.IsOperator(s[i]) {
			return true
		}
		if i == 0 && s[i] != '-' && ops.IsOperator(s[i]) {
			return true
		}
	}
	return false
}
