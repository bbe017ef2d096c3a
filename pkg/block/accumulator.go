package block

import (
	"strings"

	"src.noviq.dev/pkg/diag"
)

// DefaultMaxNesting is the default maximum depth of nested if blocks.
const DefaultMaxNesting = 32

// Stmt is a logical statement. A statement spanning several physical lines
// has them joined with "\n" in Text.
type Stmt struct {
	Text string
	// Line number of the first physical line.
	Line int
}

type state int

const (
	noBlock state = iota
	inIfBody
	inElseBody
)

// An if statement whose body is still being read.
type frame struct {
	line  int
	depth int
	state state
}

// Accumulator collects physical lines into logical statements. A line that
// starts an if statement opens a block; lines are collected until the braces
// of the outermost block are balanced and no else follows the closing brace
// on the same line.
//
// The zero value is not usable; use NewAccumulator.
type Accumulator struct {
	maxNesting int
	frames     []*frame
	lines      []string
	line       int
}

// NewAccumulator creates an Accumulator that allows at most maxNesting
// nested if blocks. A non-positive maxNesting means DefaultMaxNesting.
func NewAccumulator(maxNesting int) *Accumulator {
	if maxNesting <= 0 {
		maxNesting = DefaultMaxNesting
	}
	return &Accumulator{maxNesting: maxNesting}
}

// Pending reports whether the Accumulator holds an incomplete statement.
func (a *Accumulator) Pending() bool { return len(a.frames) > 0 }

// Feed adds a physical line, which must already be stripped of comments and
// surrounding whitespace. It returns a statement and true when one is
// complete. On error, the partial statement is discarded.
func (a *Accumulator) Feed(line string, lineno int) (Stmt, bool, error) {
	if !a.Pending() {
		if !IsIf(line) {
			if strings.HasPrefix(line, "}") {
				return Stmt{}, false, unexpectedClose(lineno)
			}
			return Stmt{line, lineno}, true, nil
		}
		a.line = lineno
	}
	if IsIf(line) {
		if err := a.push(lineno); err != nil {
			a.reset()
			return Stmt{}, false, err
		}
	}
	a.lines = append(a.lines, line)
	if err := a.scan(line, lineno); err != nil {
		a.reset()
		return Stmt{}, false, err
	}
	if a.Pending() {
		return Stmt{}, false, nil
	}
	stmt := Stmt{strings.Join(a.lines, "\n"), a.line}
	a.reset()
	return stmt, true, nil
}

// Close finishes the input. It returns an error if a block is still open.
func (a *Accumulator) Close() error {
	if !a.Pending() {
		return nil
	}
	line := a.frames[0].line
	a.reset()
	return &diag.Error{Kind: diag.Syntax, Line: line,
		Message: "Unclosed if block at end of file"}
}

func (a *Accumulator) push(lineno int) error {
	if len(a.frames) >= a.maxNesting {
		return diag.WithLine(MaxNestingError(a.maxNesting), lineno)
	}
	a.frames = append(a.frames, &frame{line: lineno, state: noBlock})
	return nil
}

// Updates the frames with the braces of one line.
func (a *Accumulator) scan(line string, lineno int) error {
	var err error
	walkCode(line, func(i int, ch byte) bool {
		if !a.Pending() {
			return false
		}
		top := a.frames[len(a.frames)-1]
		switch ch {
		case '{':
			if top.state == noBlock {
				top.state = inIfBody
			}
			top.depth++
		case '}':
			if top.depth == 0 {
				err = unexpectedClose(lineno)
				return false
			}
			top.depth--
			if top.depth > 0 {
				return true
			}
			if top.state == inIfBody && startsWithKeyword(strings.TrimLeft(line[i+1:], " \t"), "else") {
				if IndexCode(line[i+1:], '{') < 0 {
					err = &diag.Error{Kind: diag.Syntax, Line: lineno,
						Message: "Missing opening brace for else block"}
					return false
				}
				top.state = inElseBody
				return true
			}
			a.frames = a.frames[:len(a.frames)-1]
		}
		return true
	})
	return err
}

func (a *Accumulator) reset() {
	a.frames = a.frames[:0]
	a.lines = nil
	a.line = 0
}

// IsIf reports whether a line starts an if statement.
func IsIf(line string) bool {
	return startsWithKeyword(line, "if") &&
		(len(line) == 2 || line[2] == '(' || line[2] == ' ' || line[2] == '\t')
}

func startsWithKeyword(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	switch s[len(kw)] {
	case ' ', '\t', '{', '(':
		return true
	}
	return false
}

func unexpectedClose(lineno int) error {
	return &diag.Error{Kind: diag.Syntax, Line: lineno,
		Message: "Unexpected '}' without an open block"}
}

// MaxNestingError returns the error for exceeding the maximum depth of nested
// if blocks.
func MaxNestingError(max int) *diag.Error {
	return diag.Errorf(diag.Runtime, "Maximum if-statement nesting depth (%d) exceeded", max)
}
