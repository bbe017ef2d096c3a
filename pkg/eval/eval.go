// Package eval implements the expression evaluator.
//
// Expressions are evaluated directly from their source text, without a
// tokenizer or a syntax tree. The operator that binds is found by scanning for
// the leftmost occurrence of an operator class, in this fixed order:
//
//  1. a negative number literal such as -3 or -2.5 is returned as is;
//  2. comparison operators (>= <= == > <), with both sides evaluated
//     recursively;
//  3. a leading NOT, "! " or "!", with the rest evaluated recursively;
//  4. logical operators (" AND ", " OR ", &&, ||), with both sides evaluated
//     recursively;
//  5. arithmetic operators: the first ** or // anywhere, otherwise the first
//     of % * / + - (a - at the start or after another operator is a sign).
//
// The operands of an arithmetic operator are not evaluated recursively; each
// must be a variable or a number literal. There are no precedence levels:
// 2+3*4 is 2 plus the operand "3*4", which parses as the number 3.
package eval

import (
	"strings"

	"src.noviq.dev/pkg/ops"
	"src.noviq.dev/pkg/vals"
	"src.noviq.dev/pkg/vars"
)

// Evaler evaluates expressions against a variable store.
type Evaler struct {
	store *vars.Store
}

// NewEvaler creates an Evaler that looks up variables in the given store.
func NewEvaler(store *vars.Store) *Evaler {
	return &Evaler{store}
}

// Eval evaluates an expression. Surrounding spaces and tabs are ignored.
//
// It returns a nil value and a nil error when the expression does not
// resolve to a value, for example when it names an undefined variable;
// callers decide how to interpret such text. A non-nil error is fatal.
func (ev *Evaler) Eval(expr string) (vals.Value, error) {
	s := trim(expr)

	if isNegativeLiteral(s) {
		v, _ := vals.ParseNumber(s)
		return v, nil
	}

	if i, op := findComparison(s); i >= 0 {
		l, err := ev.Eval(s[:i])
		if err != nil {
			return nil, err
		}
		r, err := ev.Eval(s[i+len(op):])
		if err != nil {
			return nil, err
		}
		if l == nil || r == nil {
			return nil, nil
		}
		b, err := ops.Compare(l, r, op)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	if rest, ok := cutNot(s); ok {
		v, err := ev.Eval(rest)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return ops.Logical(v, nil, "NOT"), nil
		}
	}

	if i, n, op := findLogical(s); i >= 0 {
		l, err := ev.Eval(s[:i])
		if err != nil {
			return nil, err
		}
		r, err := ev.Eval(strings.TrimLeft(s[i+n:], " "))
		if err != nil {
			return nil, err
		}
		if l == nil || r == nil {
			return nil, nil
		}
		return ops.Logical(l, r, op), nil
	}

	i, op := findArithmetic(s)
	if i < 0 {
		if len(s) > 1 && strings.ContainsRune(s[1:], '-') {
			// Only signs, such as in "--5"; not a valid operand.
			return nil, nil
		}
		return ev.operand(s), nil
	}
	l := ev.simpleOperand(trim(s[:i]))
	r := ev.simpleOperand(trim(s[i+len(op):]))
	if l == nil || r == nil {
		return nil, nil
	}
	return ops.Arithmetic(l, r, op)
}

// Resolves an operand that is a whole expression: a variable, a boolean
// keyword, a number literal or a string literal.
func (ev *Evaler) operand(s string) vals.Value {
	if v, ok := ev.store.Find(s); ok {
		return v.Value
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if v, ok := vals.ParseNumber(s); ok {
		return v
	}
	if str, ok := vals.Unquote(s); ok {
		return str
	}
	return nil
}

// Resolves an operand of an arithmetic operator: a variable or a number
// literal.
func (ev *Evaler) simpleOperand(s string) vals.Value {
	if v, ok := ev.store.Find(s); ok {
		return v.Value
	}
	if v, ok := vals.ParseNumber(s); ok {
		return v
	}
	return nil
}

func isNegativeLiteral(s string) bool {
	return len(s) > 1 && s[0] == '-' && isDigit(s[1]) &&
		!strings.ContainsAny(s[1:], "+-*/")
}

func cutNot(s string) (string, bool) {
	switch {
	case strings.HasPrefix(s, "NOT "):
		return s[4:], true
	case strings.HasPrefix(s, "! "):
		return s[2:], true
	case strings.HasPrefix(s, "!"):
		return s[1:], true
	}
	return "", false
}

func trim(s string) string { return strings.Trim(s, " \t") }

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
