// Package ops implements the arithmetic, comparison and logical operators.
//
// Operators work on values as defined in package vals. Errors are *diag.Error
// values and are always fatal to the caller.
package ops

import (
	"math"

	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/vals"
)

// IsOperator reports whether c is a single-character arithmetic operator.
func IsOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/' || c == '%'
}

// Arithmetic applies one of the operators + - * / % ** // to two numbers.
//
// Both operands are widened to float32 before computing. "//" and "%" produce
// integers; "/" always produces a float; for all other operators a result
// without a fractional part is converted to an integer.
func Arithmetic(l, r vals.Value, op string) (vals.Value, error) {
	if isString(l) || isString(r) {
		return nil, diag.Errorf(diag.Type, "Cannot perform arithmetic operations with strings")
	}
	if isBool(l) || isBool(r) {
		return nil, diag.Errorf(diag.Type, "Cannot perform arithmetic operations with booleans")
	}
	lf, lok := vals.ToFloat(l)
	rf, rok := vals.ToFloat(r)
	if !lok || !rok {
		return nil, diag.Errorf(diag.Type, "Cannot perform arithmetic operations with %s and %s",
			vals.Kind(l), vals.Kind(r))
	}

	var result float32
	switch op {
	case "**":
		result = float32(math.Pow(float64(lf), float64(rf)))
	case "//":
		if rf == 0 {
			return nil, diag.Errorf(diag.DivByZero, "Division by zero")
		}
		return truncate(lf / rf), nil
	case "%":
		li, ri := truncate(lf), truncate(rf)
		if ri == 0 {
			return nil, diag.Errorf(diag.DivByZero, "Modulo by zero")
		}
		return li % ri, nil
	case "+":
		result = lf + rf
	case "-":
		result = lf - rf
	case "*":
		result = lf * rf
	case "/":
		if rf == 0 {
			return nil, diag.Errorf(diag.DivByZero, "Division by zero")
		}
		return lf / rf, nil
	default:
		return nil, diag.Errorf(diag.Syntax, "Unknown operator '%s'", op)
	}

	if isWhole(result) {
		return int64(result), nil
	}
	return result, nil
}

// Bounds of float32 values that convert to int64 without overflow.
const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
)

func isWhole(f float32) bool {
	f64 := float64(f)
	return f64 >= minInt64Float && f64 < maxInt64Float && f64 == math.Trunc(f64)
}

func truncate(f float32) int64 {
	f64 := math.Trunc(float64(f))
	switch {
	case math.IsNaN(f64):
		return 0
	case f64 < minInt64Float:
		return math.MinInt64
	case f64 >= maxInt64Float:
		return math.MaxInt64
	}
	return int64(f64)
}

func isString(v vals.Value) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v vals.Value) bool {
	_, ok := v.(bool)
	return ok
}
