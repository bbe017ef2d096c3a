package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/vals"
)

// LineReader reads lines of input.
type LineReader interface {
	// ReadLine shows a prompt and reads one line, without the line terminator.
	// It returns io.EOF at end of input.
	ReadLine(prompt string) (string, error)
}

// NewLineReader returns a LineReader that writes prompts to w and reads lines
// from r.
func NewLineReader(r io.Reader, w io.Writer) LineReader {
	return &lineReader{bufio.NewReader(r), w}
}

type lineReader struct {
	r *bufio.Reader
	w io.Writer
}

func (lr *lineReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(lr.w, prompt)
	}
	line, err := lr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// ParseInput parses the argument text of an input statement. Its arguments
// are prompts (string literals) and variable names. It returns the names and
// the prompts, keyed by the index of the name that follows each prompt.
func ParseInput(arg string) (names []string, prompts map[int]string, err error) {
	prompts = make(map[int]string)
	for _, a := range block.SplitTopLevel(arg, ',') {
		if a != "" && (a[0] == '"' || a[0] == '\'') {
			p, ok := vals.Unquote(a)
			if !ok {
				return nil, nil, diag.Errorf(diag.Syntax, "Missing closing quote in string")
			}
			prompts[len(names)] = p
			continue
		}
		if !IsName(a) {
			return nil, nil, diag.Errorf(diag.Syntax, "Invalid variable name '%s'", a)
		}
		names = append(names, a)
	}
	return names, prompts, nil
}

// Executes an input statement. Each variable is read with the prompt right
// before it. A variable without a prompt of its own uses ": " when an earlier
// variable had one. Reading stops silently at end of input.
func (in *Interpreter) input(text string) error {
	arg, err := block.CallArg(text, "input")
	if err != nil {
		return err
	}
	names, prompts, err := ParseInput(arg)
	if err != nil {
		return err
	}
	if in.stdin == nil {
		return nil
	}
	for i, name := range names {
		prompt, ok := prompts[i]
		if !ok {
			if _, first := prompts[0]; i > 0 && first {
				prompt = ": "
			} else {
				prompt = prompts[0]
			}
		}
		line, err := in.stdin.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return diag.Errorf(diag.Runtime, "Cannot read input: %v", err)
		}
		if err := in.store.Add(name, parseInput(line), false); err != nil {
			return err
		}
	}
	return nil
}

// Converts a line of input to a value. An empty line is the integer 0.
func parseInput(line string) vals.Value {
	if line == "" {
		return int64(0)
	}
	// Leading whitespace is allowed before an integer, and integers out of
	// range saturate.
	if s := strings.TrimLeft(line, " \t\v\f\r"); s != "" {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return i
		}
	}
	if vals.IsFloat(line) {
		if f, err := strconv.ParseFloat(line, 32); err == nil {
			return float32(f)
		}
	}
	switch line {
	case "true":
		return true
	case "false":
		return false
	}
	return line
}
