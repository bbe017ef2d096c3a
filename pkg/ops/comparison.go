package ops

import (
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/vals"
)

// Compare applies one of the operators > < >= <= == to two values. Integers,
// floats and booleans are compared as float32; strings cannot be compared.
func Compare(l, r vals.Value, op string) (bool, error) {
	lf, ok := vals.ToFloat(l)
	if !ok {
		return false, diag.Errorf(diag.Type, "Cannot compare string values")
	}
	rf, ok := vals.ToFloat(r)
	if !ok {
		return false, diag.Errorf(diag.Type, "Cannot compare string values")
	}
	switch op {
	case ">":
		return lf > rf, nil
	case "<":
		return lf < rf, nil
	case ">=":
		return lf >= rf, nil
	case "<=":
		return lf <= rf, nil
	case "==":
		return lf == rf, nil
	}
	return false, diag.Errorf(diag.Syntax, "Unknown operator '%s'", op)
}
