// Package vals contains basic facilities for manipulating values.
//
// A value is one of the following Go types:
//
//   - int64, for Integer
//   - float32, for Float
//   - bool, for Boolean
//   - string, for String
//
// A nil Value is never a valid value; functions that may fail to produce a
// value use it to signal that.
package vals

import (
	"fmt"
	"strconv"
)

// Value is one of int64, float32, bool and string.
type Value = any

// Kind returns the name of the type of the value.
func Kind(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int64:
		return "integer"
	case float32:
		return "float"
	case bool:
		return "boolean"
	case string:
		return "string"
	default:
		return fmt.Sprintf("!!%T", v)
	}
}

// Truthy converts a value to a boolean. Booleans are used as is, numbers are
// true when nonzero and strings are true when nonempty. A nil value is false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float32:
		return v != 0
	case string:
		return v != ""
	default:
		return false
	}
}

// ToFloat converts a number or a boolean to a float32. Booleans convert to 0
// or 1. It returns false for strings and invalid values.
func ToFloat(v Value) (float32, bool) {
	switch v := v.(type) {
	case int64:
		return float32(v), true
	case float32:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// ToString converts a value to the text shown by display: integers in
// decimal, floats with six decimal places, booleans as true or false.
func ToString(v Value) string {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return fmt.Sprintf("%f", float64(v))
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return fmt.Sprintf("!!%T", v)
	}
}
