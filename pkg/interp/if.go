package interp

import (
	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/vals"
)

// Executes an if statement, which may span several lines. The line argument
// is the line number of its first line.
func (in *Interpreter) execIf(text string, line int) error {
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > in.maxNesting {
		return block.MaxNestingError(in.maxNesting)
	}

	stmt, err := block.ParseIf(text)
	if err != nil {
		return err
	}
	ok, err := in.truthy(stmt.Cond)
	if err != nil {
		return err
	}
	body := stmt.Body
	if !ok {
		if stmt.Else == nil {
			return nil
		}
		body = stmt.Else
	}
	return in.execBody(block.BodyLines(text, body, line))
}

// Evaluates the condition of an if statement. A condition that doesn't
// resolve to a value is false.
func (in *Interpreter) truthy(cond string) (bool, error) {
	if v, ok := in.store.Find(cond); ok {
		return vals.Truthy(v.Value), nil
	}
	v, err := in.ev.Eval(cond)
	if err != nil {
		return false, err
	}
	return vals.Truthy(v), nil
}

// Executes the statements in the body of a branch. The body may contain
// nested if statements spanning several lines, so it is fed through an
// Accumulator.
func (in *Interpreter) execBody(lines []block.BodyLine) error {
	acc := block.NewAccumulator(in.maxNesting)
	for _, l := range lines {
		stmt, ok, err := acc.Feed(l.Text, l.Num)
		if err != nil {
			return err
		}
		if ok {
			if err := in.Exec(stmt); err != nil {
				return err
			}
		}
	}
	return acc.Close()
}
