package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Context is a range of text in a source code. It is used to show the code
// that an error was found in.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Show shows the name of the source, the line number and the line that
// contains the start of the range, with the range highlighted.
func (c *Context) Show(indent string) string {
	return c.show(indent, true)
}

// ShowPlain is like Show, but marks the range with carets on a second line
// instead of highlighting it.
func (c *Context) ShowPlain(indent string) string {
	return c.show(indent, false)
}

func (c *Context) show(indent string, styled bool) string {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Sprintf("%s%s, invalid position %d-%d", indent, c.Name, c.From, c.To)
	}
	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]

	head := lastLine(before)
	var tail string
	if i := strings.IndexByte(culprit, '\n'); i >= 0 {
		// Only the first line of a range spanning several lines is shown.
		culprit = culprit[:i]
	} else {
		tail = firstLine(c.Source[c.To:])
	}
	desc := fmt.Sprintf("%s, line %d: ", c.Name, strings.Count(before, "\n")+1)

	if styled {
		if culprit == "" {
			culprit = culpritPlaceHolder
		}
		return indent + desc + head + culpritStart + culprit + culpritEnd + tail
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(desc+head))
	marks := strings.Repeat("^", max(runewidth.StringWidth(culprit), 1))
	return indent + desc + head + culprit + tail + "\n" + indent + pad + marks
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
