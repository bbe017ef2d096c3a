package interp

import (
	"strings"

	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/ops"
	"src.noviq.dev/pkg/vals"
)

// Assign is the structure of an assignment.
type Assign struct {
	Name string
	// Operator of a compound assignment such as x += 1, or "".
	Op  string
	RHS string
}

// ParseAssign parses an assignment, a compound assignment, or the part of a
// const declaration after "const ". It checks the structure but doesn't
// resolve the right-hand side.
func ParseAssign(text string, isConst bool) (Assign, error) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return Assign{}, diag.Errorf(diag.Syntax, "Constant declaration requires initialization")
	}
	a := Assign{Name: trim(text[:eq]), RHS: trim(text[eq+1:])}
	if a.Op = compoundOp(a.Name); a.Op != "" {
		if isConst {
			return Assign{}, diag.Errorf(diag.Syntax, "Constant declaration requires initialization")
		}
		a.Name = trim(a.Name[:len(a.Name)-len(a.Op)])
	}
	if !IsName(a.Name) {
		return Assign{}, diag.Errorf(diag.Syntax, "Invalid variable name '%s'", a.Name)
	}
	if a.RHS == "" {
		return Assign{}, diag.Errorf(diag.Syntax, "Missing value in assignment to '%s'", a.Name)
	}
	return a, nil
}

func (in *Interpreter) assign(text string, isConst bool) error {
	a, err := ParseAssign(text, isConst)
	if err != nil {
		return err
	}
	v, err := in.value(a.RHS)
	if err != nil {
		return err
	}
	if a.Op != "" {
		current, ok := in.store.Find(a.Name)
		if !ok {
			return diag.Errorf(diag.UndefinedVar, "Variable '%s' not found", a.Name)
		}
		v, err = ops.Arithmetic(current.Value, v, a.Op)
		if err != nil {
			return err
		}
	}
	return in.store.Add(a.Name, v, isConst)
}

// Returns the arithmetic operator at the end of the left-hand side of a
// compound assignment, or "".
func compoundOp(lhs string) string {
	switch {
	case strings.HasSuffix(lhs, "**"):
		return "**"
	case strings.HasSuffix(lhs, "//"):
		return "//"
	case lhs != "" && ops.IsOperator(lhs[len(lhs)-1]):
		return lhs[len(lhs)-1:]
	}
	return ""
}

// Resolves the right-hand side of an assignment. If the expression evaluator
// can't resolve it, it is interpreted as a literal.
func (in *Interpreter) value(rhs string) (vals.Value, error) {
	v, err := in.ev.Eval(rhs)
	if err != nil || v != nil {
		return v, err
	}
	switch {
	case rhs == "true":
		return true, nil
	case rhs == "false":
		return false, nil
	case vals.StartsNumeric(rhs):
		v, _ := vals.ParseNumber(rhs)
		return v, nil
	case rhs[0] == '"' || rhs[0] == '\'':
		end := strings.IndexByte(rhs[1:], rhs[0])
		if end < 0 {
			return nil, diag.Errorf(diag.Syntax, "Missing closing quote in string")
		}
		return rhs[1 : 1+end], nil
	case IsName(rhs):
		return nil, diag.Errorf(diag.UndefinedVar, "Variable '%s' not found", rhs)
	}
	return nil, diag.Errorf(diag.Syntax, "Invalid expression '%s'", rhs)
}
