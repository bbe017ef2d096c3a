package diag

import (
	"fmt"
	"io"
	"os"

	"src.noviq.dev/pkg/sys"
)

// ShowError writes a diagnostic line for err to w. Messages are highlighted
// only when w is a terminal.
func ShowError(w io.Writer, err error) {
	if !isTerminal(w) {
		fmt.Fprintln(w, err.Error())
		return
	}
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		fmt.Fprintf(w, "%s%s%s\n", messageStart, err.Error(), messageEnd)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && sys.IsATTY(f.Fd())
}

// ShowContext writes c to w, indented by two spaces. The range is highlighted
// when w is a terminal, and marked with carets otherwise.
func ShowContext(w io.Writer, c *Context) {
	if isTerminal(w) {
		fmt.Fprintln(w, c.Show("  "))
	} else {
		fmt.Fprintln(w, c.ShowPlain("  "))
	}
}
