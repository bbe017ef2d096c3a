package ops

import "src.noviq.dev/pkg/vals"

// Logical applies one of the operators AND OR NOT && || ! to the truthiness
// of its operands. A nil operand counts as false; NOT and ! ignore r.
func Logical(l, r vals.Value, op string) bool {
	switch op {
	case "AND", "&&":
		return vals.Truthy(l) && vals.Truthy(r)
	case "OR", "||":
		return vals.Truthy(l) || vals.Truthy(r)
	case "NOT", "!":
		return !vals.Truthy(l)
	}
	return false
}
