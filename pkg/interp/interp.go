// Package interp implements the statement interpreter of Noviq.
package interp

import (
	"io"
	"strings"

	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/eval"
	"src.noviq.dev/pkg/parse"
	"src.noviq.dev/pkg/vars"
)

// Keywords are the words that have a meaning of their own in Noviq code.
var Keywords = []string{
	"if", "else", "const", "display", "input", "true", "false", "AND", "OR", "NOT"}

// Config keeps configuration of an Interpreter.
type Config struct {
	// Destination of display. If nil, output is discarded.
	Stdout io.Writer
	// Source of input. If nil, input always reaches end of input.
	Stdin LineReader
	// Maximum depth of nested if statements. If non-positive,
	// block.DefaultMaxNesting is used.
	MaxNesting int
}

// Interpreter executes statements against a variable store.
type Interpreter struct {
	store      *vars.Store
	ev         *eval.Evaler
	stdout     io.Writer
	stdin      LineReader
	maxNesting int
	// Depth of the if statement being executed.
	depth int
}

// New creates an Interpreter that uses the given store.
func New(store *vars.Store, cfg Config) *Interpreter {
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
	if cfg.MaxNesting <= 0 {
		cfg.MaxNesting = block.DefaultMaxNesting
	}
	return &Interpreter{
		store: store, ev: eval.NewEvaler(store),
		stdout: cfg.Stdout, stdin: cfg.Stdin, maxNesting: cfg.MaxNesting}
}

// Store returns the variable store of the Interpreter.
func (in *Interpreter) Store() *vars.Store { return in.store }

// Eval executes all the statements in src, stopping at the first error. If
// src is a file, errors are tagged with its name.
func (in *Interpreter) Eval(src parse.Source) error {
	err := in.eval(src.Code)
	if err != nil && src.IsFile {
		return diag.WithFile(err, src.Name)
	}
	return err
}

func (in *Interpreter) eval(code string) error {
	acc := block.NewAccumulator(in.maxNesting)
	for _, line := range parse.Lines(code) {
		stmt, ok, err := acc.Feed(line.Text, line.Num)
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

// Exec executes one logical statement. Errors without a line number are
// tagged with the line of the statement.
func (in *Interpreter) Exec(stmt block.Stmt) error {
	return diag.WithLine(in.exec(stmt), stmt.Line)
}

func (in *Interpreter) exec(stmt block.Stmt) error {
	text := strings.TrimSpace(stmt.Text)
	switch {
	case block.IsIf(text):
		return in.execIf(text, stmt.Line)
	case strings.HasPrefix(text, "const "):
		return in.assign(text[len("const "):], true)
	case strings.HasPrefix(text, "input("):
		return in.input(text)
	case strings.HasPrefix(text, "display("):
		return in.display(text)
	case strings.Contains(text, "="):
		return in.assign(text, false)
	}
	return diag.Errorf(diag.Syntax, "Unknown command: %s", text)
}

// IsName reports whether s is a valid variable name: a letter or underscore
// followed by letters, digits and underscores.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func trim(s string) string { return strings.Trim(s, " \t") }
