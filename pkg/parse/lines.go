package parse

import (
	"strings"

	"src.noviq.dev/pkg/block"
)

// Line is a physical line of source code, with comments and surrounding
// whitespace removed.
type Line struct {
	Text string
	// Line number, starting from 1.
	Num int
	// Byte range of Text in the source code.
	From, To int
}

// Lines returns the non-empty lines of code, after removing comments as
// Stripper does.
func Lines(code string) []Line {
	var lines []Line
	var st Stripper
	offset := 0
	for i, raw := range strings.Split(code, "\n") {
		start := offset
		offset += len(raw) + 1
		if text, from, ok := st.Strip(raw); ok {
			lines = append(lines, Line{text, i + 1, start + from, start + from + len(text)})
		}
	}
	return lines
}

// Stripper removes comments from lines fed to it one at a time. A line whose
// first non-blank characters are ## starts or ends a multi-line comment;
// otherwise a # outside string literals starts a comment that extends to the
// end of the line.
type Stripper struct{ inComment bool }

// InComment reports whether a multi-line comment is open.
func (s *Stripper) InComment() bool { return s.inComment }

// Strip returns the code on a line, trimmed of whitespace, and the offset of
// its first byte in line. It returns false if the line has no code.
func (s *Stripper) Strip(line string) (string, int, bool) {
	text := strings.TrimLeft(line, " \t")
	switch {
	case strings.TrimRight(text, " \t\r") == "":
		return "", 0, false
	case strings.HasPrefix(text, "##"):
		s.inComment = !s.inComment
		return "", 0, false
	case s.inComment, text[0] == '#':
		return "", 0, false
	}
	from := len(line) - len(text)
	if j := block.IndexCode(text, '#'); j >= 0 {
		text = text[:j]
	}
	text = strings.TrimRight(text, " \t\r")
	return text, from, text != ""
}
