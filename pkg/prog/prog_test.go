package prog_test

import (
	"os"
	"testing"

	. "src.noviq.dev/pkg/prog"
	"src.noviq.dev/pkg/prog/progtest"
	"src.noviq.dev/pkg/testutil"
)

var (
	Test      = progtest.Test
	ThatNoviq = progtest.ThatNoviq
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, &testProgram{},
		ThatNoviq("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatNoviq("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatNoviq("-help").
			WritesStdoutContaining("Usage: noviq [flags] [script.nvq]"),

		ThatNoviq("-log", "log").DoesNothing(),
		ThatNoviq("-log", "/a/bad/path/log").
			WritesStderrContaining("/a/bad/path/log"),
	)

	if _, err := os.Stat("log"); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, &testProgram{nextProgram: true},
		ThatNoviq().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(
			&testProgram{nextProgram: true}, &testProgram{writeOut: "program 2"}),
		ThatNoviq().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(&testProgram{nextProgram: true}, &testProgram{nextProgram: true}),
		ThatNoviq().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			&testProgram{writeOut: "program 1"}, &testProgram{writeOut: "program 2"}),
		ThatNoviq().WritesStdout("program 1"),
	)
}

func TestComposite_RunsCleanups(t *testing.T) {
	Test(t,
		Composite(
			&testProgram{cleanup: "cleanup 1\n"},
			&testProgram{cleanup: "cleanup 2\n"},
			&testProgram{writeOut: "program 3\n"}),
		ThatNoviq().WritesStdout("program 3\ncleanup 2\ncleanup 1\n"),
	)
}

func TestSharedFlags(t *testing.T) {
	Test(t,
		Composite(&testProgram{sharedFlags: true}, &testProgram{sharedFlags: true}),
		ThatNoviq("-json", "-config", "a.yaml").
			WritesStdout("-json true -config a.yaml\n"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		&testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatNoviq().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, &testProgram{returnErr: Exit(3)},
		ThatNoviq().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, &testProgram{returnErr: Exit(0)},
		ThatNoviq().ExitsWith(0),
	)
}

type testProgram struct {
	nextProgram bool
	cleanup     string
	writeOut    string
	returnErr   error
	sharedFlags bool

	json   *bool
	config *string
}

func (p *testProgram) RegisterFlags(f *FlagSet) {
	if p.sharedFlags {
		p.json = f.JSON()
		p.config = f.Config()
	}
}

func (p *testProgram) Run(fds [3]*os.File, args []string) error {
	if p.nextProgram {
		return ErrNextProgram
	}
	if p.cleanup != "" {
		return NextProgram(func(fds [3]*os.File) { fds[1].WriteString(p.cleanup) })
	}
	fds[1].WriteString(p.writeOut)
	if p.sharedFlags {
		fds[1].WriteString("-json " + boolString(*p.json) + " -config " + *p.config + "\n")
	}
	return p.returnErr
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
