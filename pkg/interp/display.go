package interp

import (
	"fmt"
	"strings"

	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/eval"
	"src.noviq.dev/pkg/vals"
)

// Executes a display statement, which writes one line.
func (in *Interpreter) display(text string) error {
	arg, err := block.CallArg(text, "display")
	if err != nil {
		return err
	}
	s, err := in.format(arg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(in.stdout, s)
	return err
}

// Formats the argument of display: a format string with %varN references
// followed by the arguments they refer to, a string literal, or an
// expression.
func (in *Interpreter) format(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	if (arg[0] == '"' || arg[0] == '\'') && strings.Contains(arg, "%var") {
		if parts := block.SplitTopLevel(arg, ','); len(parts) > 1 {
			format, ok := vals.Unquote(parts[0])
			if !ok {
				return "", diag.Errorf(diag.Syntax, "Invalid format string %s", parts[0])
			}
			return in.formatVars(format, parts[1:])
		}
	}
	if s, ok := vals.Unquote(arg); ok {
		return s, nil
	}
	v, err := in.ev.Eval(arg)
	if err != nil {
		return "", err
	}
	if v == nil {
		if IsName(arg) {
			return "", diag.Errorf(diag.UndefinedVar, "Variable '%s' not found", arg)
		}
		return "", diag.Errorf(diag.Syntax, "Invalid display format")
	}
	return vals.ToString(v), nil
}

// Substitutes each %varN in format with the value of the N-th argument.
func (in *Interpreter) formatVars(format string, args []string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(format); {
		if !strings.HasPrefix(format[i:], "%var") {
			sb.WriteByte(format[i])
			i++
			continue
		}
		i += len("%var")
		n := 0
		for ; i < len(format) && '0' <= format[i] && format[i] <= '9'; i++ {
			if n <= len(args) {
				n = n*10 + int(format[i]-'0')
			}
		}
		if n < 1 || n > len(args) {
			return "", diag.Errorf(diag.Runtime,
				"Invalid variable number %d (expected 1-%d)", n, len(args))
		}
		s, err := in.formatArg(args[n-1])
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (in *Interpreter) formatArg(arg string) (string, error) {
	if v, ok := in.store.Find(arg); ok {
		return vals.ToString(v.Value), nil
	}
	v, err := in.ev.Eval(arg)
	if err != nil {
		return "", err
	}
	switch {
	case v != nil:
		return vals.ToString(v), nil
	case eval.IsExpression(arg):
		return "", diag.Errorf(diag.Runtime, "Invalid expression '%s'", arg)
	}
	return "", diag.Errorf(diag.UndefinedVar, "Variable '%s' not found", arg)
}
