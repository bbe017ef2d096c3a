package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/config"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/interp"
	"src.noviq.dev/pkg/parse"
	"src.noviq.dev/pkg/store"
	"src.noviq.dev/pkg/store/storedefs"
	"src.noviq.dev/pkg/vals"
	"src.noviq.dev/pkg/vars"
)

const (
	prompt     = "noviq> "
	contPrompt = "...> "
)

// The line editor used by the REPL.
type editor interface {
	// Prompt reads a line. It returns io.EOF at the end of input, and
	// errInterrupted when the user aborts the line.
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	SetCompleter(f liner.Completer)
}

var errInterrupted = errors.New("interrupted")

type linerEditor struct{ *liner.State }

func (ed linerEditor) Prompt(p string) (string, error) {
	line, err := ed.State.Prompt(p)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInterrupted
	}
	return line, err
}

// The minimal editor, used when the terminal is not supported by liner.
type minEditor struct{ lr interp.LineReader }

func (ed minEditor) Prompt(p string) (string, error) { return ed.lr.ReadLine(p) }

// History and completion are not available without liner.
func (ed minEditor) AppendHistory(string) {}

func (ed minEditor) SetCompleter(liner.Completer) {}

// Adapts an editor to read lines for input statements.
type editorReader struct{ ed editor }

func (r editorReader) ReadLine(p string) (string, error) {
	line, err := r.ed.Prompt(p)
	if errors.Is(err, errInterrupted) {
		return "", io.EOF
	}
	return line, err
}

// Configuration for the interactive mode.
type interactCfg struct {
	Config config.Config
	// Storage of the history. May be nil.
	Store storedefs.Store
}

// Runs the REPL with liner as the line editor, keeping the history in the
// database at dbPath.
func interactInTTY(fds [3]*os.File, cfg config.Config, dbPath string) error {
	ic := &interactCfg{Config: cfg}
	st, err := openStore(dbPath)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: history is not available:", err)
	} else {
		defer st.Close()
		ic.Store = st
	}

	var ed editor
	if liner.TerminalSupported() {
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)
		ed = linerEditor{ln}
	} else {
		ed = minEditor{interp.NewLineReader(fds[0], fds[1])}
	}
	interact(fds, ed, ic)
	return nil
}

func openStore(dbPath string) (store.DBStore, error) {
	if dbPath == "" {
		p, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, err
	}
	return store.NewStore(dbPath)
}

// Runs an interactive session. Statements spanning several lines are read
// with the continuation prompt. An error ends the statement that caused it,
// but not the session.
func interact(fds [3]*os.File, ed editor, cfg *interactCfg) {
	in := newInterpreter(cfg.Config, fds[1], editorReader{ed})
	ed.SetCompleter(completer(in.Store()))
	h := &history{cfg.Store, cfg.Config.HistorySize}
	h.load(ed)

	acc := block.NewAccumulator(cfg.Config.MaxNesting)
	var comments parse.Stripper
	for lineno := 1; ; lineno++ {
		p := prompt
		if acc.Pending() || comments.InComment() {
			p = contPrompt
		}
		line, err := ed.Prompt(p)
		if errors.Is(err, io.EOF) {
			break
		} else if errors.Is(err, errInterrupted) {
			acc = block.NewAccumulator(cfg.Config.MaxNesting)
			comments = parse.Stripper{}
			continue
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			break
		}

		cmd := strings.TrimSpace(line)
		if !acc.Pending() && !comments.InComment() && strings.HasPrefix(cmd, ":") {
			if cmd == ":quit" {
				break
			}
			replCommand(fds, in, h, cmd)
			continue
		}
		text, _, ok := comments.Strip(line)
		if !ok {
			continue
		}
		stmt, ok, err := acc.Feed(text, lineno)
		if err != nil {
			diag.ShowError(fds[2], err)
			continue
		}
		if !ok {
			continue
		}
		h.add(ed, stmt.Text)
		if err := in.Exec(stmt); err != nil {
			diag.ShowError(fds[2], err)
		}
	}
}

// Runs a REPL command, which starts with ':'.
func replCommand(fds [3]*os.File, in *interp.Interpreter, h *history, cmd string) {
	fields := strings.Fields(cmd)
	switch {
	case cmd == ":vars":
		in.Store().Each(func(v *vars.Var) {
			if v.Const {
				fmt.Fprint(fds[1], "const ")
			}
			fmt.Fprintf(fds[1], "%s (%s) = %s\n", v.Name, vals.Kind(v.Value), vals.ToString(v.Value))
		})
	case cmd == ":reset":
		in.Store().Reset()
	case fields[0] == ":history":
		historyCommand(fds, h, fields[1:])
	default:
		fmt.Fprintf(fds[2], "Unknown REPL command %s; use :vars, :reset, :history or :quit\n", fields[0])
	}
}

// Runs :history, which lists the recent entries, shows one entry in full when
// given its sequence number, or empties the history when given "clear".
func historyCommand(fds [3]*os.File, h *history, args []string) {
	switch {
	case len(args) == 0:
		entries, err := h.recent()
		if err != nil {
			fmt.Fprintln(fds[2], "Cannot read history:", err)
			return
		}
		for _, e := range entries {
			fmt.Fprintf(fds[1], "%5d  %s\n", e.Seq, oneLine(e.Text))
		}
	case len(args) == 1 && args[0] == "clear":
		if err := h.clear(); err != nil {
			fmt.Fprintln(fds[2], "Cannot clear history:", err)
		}
	case len(args) == 1:
		seq, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(fds[2], "Usage: :history [clear | N]")
			return
		}
		text, err := h.entry(seq)
		if err != nil {
			fmt.Fprintf(fds[2], "Cannot read history entry %d: %v\n", seq, err)
			return
		}
		fmt.Fprintln(fds[1], text)
	default:
		fmt.Fprintln(fds[2], "Usage: :history [clear | N]")
	}
}

// Returns a completer for the REPL. It completes the word at the end of the
// line with keywords and the names of the variables in store.
func completer(store *vars.Store) liner.Completer {
	return func(line string) []string {
		start := len(line)
		for start > 0 && isWordByte(line[start-1]) {
			start--
		}
		word := line[start:]
		if word == "" {
			return nil
		}
		var candidates []string
		for _, names := range [][]string{interp.Keywords, store.Names()} {
			for _, name := range names {
				if strings.HasPrefix(name, word) {
					candidates = append(candidates, line[:start]+name)
				}
			}
		}
		return candidates
	}
}

func isWordByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}

var errNoHistory = errors.New("history is not available")

type history struct {
	store storedefs.Store
	size  int
}

func (h *history) recent() ([]storedefs.Entry, error) {
	if h.store == nil {
		return nil, errNoHistory
	}
	return h.store.Recent(h.size)
}

func (h *history) entry(seq int) (string, error) {
	if h.store == nil {
		return "", errNoHistory
	}
	return h.store.Entry(seq)
}

func (h *history) clear() error {
	if h.store == nil {
		return errNoHistory
	}
	return h.store.Clear()
}

// Loads the most recent entries into the editor.
func (h *history) load(ed editor) {
	if h.store == nil {
		return
	}
	entries, err := h.store.Recent(h.size)
	if err != nil {
		logger.Println("load history:", err)
		return
	}
	for _, e := range entries {
		ed.AppendHistory(oneLine(e.Text))
	}
}

func (h *history) add(ed editor, text string) {
	ed.AppendHistory(oneLine(text))
	if h.store == nil {
		return
	}
	if _, err := h.store.AddEntry(text); err != nil {
		logger.Println("add history:", err)
		return
	}
	if err := h.store.Trim(h.size); err != nil {
		logger.Println("trim history:", err)
	}
}

func oneLine(s string) string { return strings.ReplaceAll(s, "\n", " ") }
