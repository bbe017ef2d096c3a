// Package check finds structural errors in Noviq code without executing it.
package check

import (
	"errors"
	"strings"

	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/interp"
	"src.noviq.dev/pkg/parse"
)

// Check returns the structural errors of the code in src. Each error carries
// the line number and the byte range of the line it was found on, and the
// name of src if it is a file.
//
// Errors that can only be found by executing the code, such as references to
// undefined variables or division by zero, are not reported.
func Check(src parse.Source, maxNesting int) []*diag.Error {
	c := &checker{src: src, maxNesting: maxNesting, lines: make(map[int]parse.Line)}
	var lines []block.BodyLine
	for _, l := range parse.Lines(src.Code) {
		c.lines[l.Num] = l
		lines = append(lines, block.BodyLine{Text: l.Text, Num: l.Num})
	}
	c.checkLines(lines)
	return c.errs
}

type checker struct {
	src        parse.Source
	maxNesting int
	lines      map[int]parse.Line
	errs       []*diag.Error
}

// Checks a sequence of lines. An error from the Accumulator stops the check
// of the sequence, since the lines after it can't be grouped reliably.
func (c *checker) checkLines(lines []block.BodyLine) {
	acc := block.NewAccumulator(c.maxNesting)
	for _, l := range lines {
		stmt, ok, err := acc.Feed(l.Text, l.Num)
		if err != nil {
			c.add(err, l.Num)
			return
		}
		if ok {
			c.add(c.checkStmt(stmt), stmt.Line)
		}
	}
	if lines != nil {
		c.add(acc.Close(), lines[len(lines)-1].Num)
	}
}

func (c *checker) checkStmt(stmt block.Stmt) error {
	text := strings.TrimSpace(stmt.Text)
	switch {
	case block.IsIf(text):
		ifStmt, err := block.ParseIf(text)
		if err != nil {
			return err
		}
		c.checkLines(block.BodyLines(text, ifStmt.Body, stmt.Line))
		if ifStmt.Else != nil {
			c.checkLines(block.BodyLines(text, ifStmt.Else, stmt.Line))
		}
		return nil
	case strings.HasPrefix(text, "const "):
		return checkAssign(text[len("const "):], true)
	case strings.HasPrefix(text, "input("):
		arg, err := block.CallArg(text, "input")
		if err != nil {
			return err
		}
		_, _, err = interp.ParseInput(arg)
		return err
	case strings.HasPrefix(text, "display("):
		arg, err := block.CallArg(text, "display")
		if err != nil {
			return err
		}
		return checkQuotes(arg)
	case strings.Contains(text, "="):
		return checkAssign(text, false)
	}
	return diag.Errorf(diag.Syntax, "Unknown command: %s", text)
}

func checkAssign(text string, isConst bool) error {
	a, err := interp.ParseAssign(text, isConst)
	if err != nil {
		return err
	}
	return checkQuotes(a.RHS)
}

func checkQuotes(s string) error {
	if block.UnclosedQuote(s) {
		return diag.Errorf(diag.Syntax, "Missing closing quote in string")
	}
	return nil
}

// Records err, tagging it with the line number, the range of the line and
// the file name.
func (c *checker) add(err error, line int) {
	if err == nil {
		return
	}
	var e *diag.Error
	if !errors.As(err, &e) {
		e = &diag.Error{Kind: diag.Runtime, Message: err.Error()}
	}
	if e.Line == 0 {
		e.Line = line
	}
	if l, ok := c.lines[e.Line]; ok {
		e.Ranging = diag.Ranging{From: l.From, To: l.To}
	}
	if c.src.IsFile && e.File == "" {
		e.File = c.src.Name
	}
	c.errs = append(c.errs, e)
}
