package shell

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterh/liner"

	"src.noviq.dev/pkg/config"
	"src.noviq.dev/pkg/must"
	"src.noviq.dev/pkg/store"
	"src.noviq.dev/pkg/testutil"
)

// A line that makes fakeEditor return errInterrupted.
const interrupt = "\x03"

type fakeEditor struct {
	lines     []string
	prompts   []string
	history   []string
	completer liner.Completer
}

func (ed *fakeEditor) Prompt(p string) (string, error) {
	ed.prompts = append(ed.prompts, p)
	if len(ed.lines) == 0 {
		return "", io.EOF
	}
	line := ed.lines[0]
	ed.lines = ed.lines[1:]
	if line == interrupt {
		return "", errInterrupted
	}
	return line, nil
}

func (ed *fakeEditor) AppendHistory(line string) { ed.history = append(ed.history, line) }

func (ed *fakeEditor) SetCompleter(f liner.Completer) { ed.completer = f }

func runInteract(t *testing.T, ed editor, cfg *interactCfg) (stdout, stderr string) {
	t.Helper()
	dir := testutil.TempDir(t)
	out := must.OK1(os.Create(filepath.Join(dir, "stdout")))
	errOut := must.OK1(os.Create(filepath.Join(dir, "stderr")))
	interact([3]*os.File{nil, out, errOut}, ed, cfg)
	out.Close()
	errOut.Close()
	return must.ReadFileString(out.Name()), must.ReadFileString(errOut.Name())
}

var interactTests = []struct {
	name        string
	lines       []string
	wantStdout  string
	wantStderr  string
	wantPrompts []string
}{
	{
		name:        "statements",
		lines:       []string{"x = 5", "display(x * 2) # comment"},
		wantStdout:  "10\n",
		wantPrompts: []string{prompt, prompt, prompt},
	},
	{
		name: "multi-line if",
		lines: []string{
			"x = 1", "if (x) {", `display("yes")`, "} else {", `display("no")`, "}"},
		wantStdout: "yes\n",
		wantPrompts: []string{
			prompt, prompt, contPrompt, contPrompt, contPrompt, contPrompt, prompt},
	},
	{
		name:        "errors don't end the session",
		lines:       []string{"foo", "}", "display(1)"},
		wantStdout:  "1\n",
		wantStderr:  "Syntax Error on line 1: Unknown command: foo\nSyntax Error on line 2: Unexpected '}' without an open block\n",
		wantPrompts: []string{prompt, prompt, prompt, prompt},
	},
	{
		name:        "variables keep their values after errors",
		lines:       []string{"const c = 1", "c = 2", "display(c)"},
		wantStdout:  "1\n",
		wantStderr:  "Constant Modification Error on line 2: Cannot modify constant 'c'\n",
		wantPrompts: []string{prompt, prompt, prompt, prompt},
	},
	{
		name:        "interrupt discards pending statement",
		lines:       []string{"if (1) {", interrupt, "display(2)"},
		wantStdout:  "2\n",
		wantPrompts: []string{prompt, contPrompt, prompt, prompt},
	},
	{
		name:        "input reads from the editor",
		lines:       []string{`input("n? ", n)`, "7", "display(n + 1)"},
		wantStdout:  "8\n",
		wantPrompts: []string{prompt, "n? ", prompt, prompt},
	},
	{
		name:        ":vars",
		lines:       []string{"x = 1", "const PI = 3.14", ":vars"},
		wantStdout:  "x (integer) = 1\nconst PI (float) = 3.140000\n",
		wantPrompts: []string{prompt, prompt, prompt, prompt},
	},
	{
		name:        "multi-line comment spanning prompts",
		lines:       []string{"##", "display(1)", "##", "display(2)"},
		wantStdout:  "2\n",
		wantPrompts: []string{prompt, contPrompt, contPrompt, prompt, prompt},
	},
	{
		name:        ":quit",
		lines:       []string{":quit", "display(1)"},
		wantPrompts: []string{prompt},
	},
	{
		name:        "unknown REPL command",
		lines:       []string{":foo"},
		wantStderr:  "Unknown REPL command :foo; use :vars, :reset, :history or :quit\n",
		wantPrompts: []string{prompt, prompt},
	},
	{
		name:        ":reset",
		lines:       []string{"const x = 1", ":reset", "x = 2", ":vars"},
		wantStdout:  "x (integer) = 2\n",
		wantPrompts: []string{prompt, prompt, prompt, prompt, prompt},
	},
	{
		name:        ":history with a bad argument",
		lines:       []string{":history x"},
		wantStderr:  "Usage: :history [clear | N]\n",
		wantPrompts: []string{prompt, prompt},
	},
	{
		name:        ":history without a store",
		lines:       []string{":history"},
		wantStderr:  "Cannot read history: history is not available\n",
		wantPrompts: []string{prompt, prompt},
	},
}

func TestInteract(t *testing.T) {
	for _, test := range interactTests {
		t.Run(test.name, func(t *testing.T) {
			ed := &fakeEditor{lines: test.lines}
			stdout, stderr := runInteract(t, ed, &interactCfg{Config: config.Default()})
			if stdout != test.wantStdout {
				t.Errorf("got stdout %q, want %q", stdout, test.wantStdout)
			}
			if stderr != test.wantStderr {
				t.Errorf("got stderr %q, want %q", stderr, test.wantStderr)
			}
			if diff := cmp.Diff(test.wantPrompts, ed.prompts); diff != "" {
				t.Errorf("prompts (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInteract_History(t *testing.T) {
	st := store.MustTempStore(t)
	cfg := &interactCfg{Config: config.Default(), Store: st}

	ed := &fakeEditor{lines: []string{"x = 1", "if (x) {", "display(x)", "}", ":vars"}}
	runInteract(t, ed, cfg)
	wantHistory := []string{"x = 1", "if (x) { display(x) }"}
	if diff := cmp.Diff(wantHistory, ed.history); diff != "" {
		t.Errorf("editor history (-want +got):\n%s", diff)
	}

	entries, err := st.Recent(100)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	if diff := cmp.Diff([]string{"x = 1", "if (x) {\ndisplay(x)\n}"}, texts); diff != "" {
		t.Errorf("stored history (-want +got):\n%s", diff)
	}

	ed2 := &fakeEditor{}
	runInteract(t, ed2, cfg)
	if diff := cmp.Diff(wantHistory, ed2.history); diff != "" {
		t.Errorf("loaded history (-want +got):\n%s", diff)
	}
}

func TestInteract_HistorySize(t *testing.T) {
	st := store.MustTempStore(t)
	cfg := &interactCfg{Config: config.Default(), Store: st}
	cfg.Config.HistorySize = 1

	runInteract(t, &fakeEditor{lines: []string{"a = 1", "b = 2"}}, cfg)

	ed := &fakeEditor{}
	runInteract(t, ed, cfg)
	if diff := cmp.Diff([]string{"b = 2"}, ed.history); diff != "" {
		t.Errorf("loaded history (-want +got):\n%s", diff)
	}
}

func TestInteract_HistoryCommands(t *testing.T) {
	st := store.MustTempStore(t)
	cfg := &interactCfg{Config: config.Default(), Store: st}

	stdout, stderr := runInteract(t, &fakeEditor{lines: []string{
		"x = 1", "if (x) {", "display(x)", "}", ":history", ":history clear", ":history"}}, cfg)
	want := "1\n" +
		"    1  x = 1\n" +
		"    2  if (x) { display(x) }\n"
	if stdout != want {
		t.Errorf("got stdout %q, want %q", stdout, want)
	}
	if stderr != "" {
		t.Errorf("got stderr %q, want empty", stderr)
	}
	if entries, _ := st.Recent(100); len(entries) != 0 {
		t.Errorf("entries after :history clear: %v", entries)
	}
}

func TestInteract_HistoryEntry(t *testing.T) {
	st := store.MustTempStore(t)
	cfg := &interactCfg{Config: config.Default(), Store: st}

	stdout, stderr := runInteract(t, &fakeEditor{lines: []string{
		"x = 1", "if (x) {", "x = 2", "}", ":history 2", ":history 9"}}, cfg)
	if want := "if (x) {\nx = 2\n}\n"; stdout != want {
		t.Errorf("got stdout %q, want %q", stdout, want)
	}
	if want := "Cannot read history entry 9: no such history entry\n"; stderr != want {
		t.Errorf("got stderr %q, want %q", stderr, want)
	}
}

func TestInteract_Completer(t *testing.T) {
	ed := &fakeEditor{lines: []string{"count = 1", "const cap = 2"}}
	runInteract(t, ed, &interactCfg{Config: config.Default()})
	if ed.completer == nil {
		t.Fatal("completer not set")
	}

	tests := []struct {
		line string
		want []string
	}{
		{"display(c", []string{"display(const", "display(count", "display(cap"}},
		{"x = co", []string{"x = const", "x = count"}},
		{"dis", []string{"display"}},
		{"display(", nil},
		{"zz", nil},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, ed.completer(test.line)); diff != "" {
			t.Errorf("completer(%q) (-want +got):\n%s", test.line, diff)
		}
	}
}
