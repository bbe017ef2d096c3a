package block

import (
	"strings"

	"src.noviq.dev/pkg/diag"
)

// Span is a byte range.
type Span struct{ From, To int }

// If is the structure of an if statement.
type If struct {
	Cond string
	// Bodies of the branches, excluding the braces. Else is nil if there is no
	// else branch.
	Body, Else *Span
}

// ParseIf splits an if statement into its condition and the bodies of its
// branches. The condition is delimited by parentheses, and each body by
// braces. The else body must directly follow the if body.
func ParseIf(text string) (*If, error) {
	i := skipBlank(text, len("if"))
	if i == len(text) || text[i] != '(' {
		return nil, diag.Errorf(diag.Syntax, "Missing opening parenthesis")
	}
	closeParen, ok := MatchDelim(text, i)
	if !ok {
		return nil, diag.Errorf(diag.Syntax, "Missing closing parenthesis")
	}
	stmt := &If{Cond: strings.Trim(text[i+1:closeParen], " \t")}

	body, rest, err := findBody(text, closeParen+1, "Missing opening brace")
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	if rest == len(text) {
		return stmt, nil
	}
	if !strings.HasPrefix(text[rest:], "else") {
		return nil, trailingText(text[rest:])
	}
	stmt.Else, rest, err = findBody(text, rest+len("else"), "Missing opening brace for else block")
	if err != nil {
		return nil, err
	}
	if rest < len(text) {
		return nil, trailingText(text[rest:])
	}
	return stmt, nil
}

// Finds a brace-delimited body that starts after optional whitespace at
// text[i:]. It also returns the index of the first non-blank byte after the
// body.
func findBody(text string, i int, missingOpen string) (*Span, int, error) {
	open := skipBlank(text, i)
	if open == len(text) || text[open] != '{' {
		return nil, 0, diag.Errorf(diag.Syntax, "%s", missingOpen)
	}
	closeBrace, ok := MatchDelim(text, open)
	if !ok {
		return nil, 0, diag.Errorf(diag.Syntax, "Missing closing brace")
	}
	return &Span{open + 1, closeBrace}, skipBlank(text, closeBrace+1), nil
}

func trailingText(s string) error {
	return diag.Errorf(diag.Syntax, "Unexpected text after if statement: %s", s)
}

func skipBlank(s string, i int) int {
	for i < len(s) && strings.IndexByte(" \t\r\n", s[i]) >= 0 {
		i++
	}
	return i
}

// BodyLine is a line in the body of a branch.
type BodyLine struct {
	Text string
	Num  int
}

// BodyLines returns the non-blank lines of a body of the if statement text,
// trimmed. The line argument is the line number of the first line of text.
func BodyLines(text string, body *Span, line int) []BodyLine {
	first := line + strings.Count(text[:body.From], "\n")
	var lines []BodyLine
	for i, l := range strings.Split(text[body.From:body.To], "\n") {
		if l = strings.Trim(l, " \t\r"); l != "" {
			lines = append(lines, BodyLine{l, first + i})
		}
	}
	return lines
}

// CallArg returns the trimmed argument text of a call such as display(...).
// The text must start with name followed by '('.
func CallArg(text, name string) (string, error) {
	open := len(name)
	closeParen, ok := MatchDelim(text, open)
	if !ok {
		return "", diag.Errorf(diag.Syntax, "Missing closing parenthesis")
	}
	if rest := strings.Trim(text[closeParen+1:], " \t"); rest != "" {
		return "", diag.Errorf(diag.Syntax, "Unexpected text after call: %s", rest)
	}
	return strings.Trim(text[open+1:closeParen], " \t"), nil
}
