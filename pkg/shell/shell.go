// Package shell is the entry point for running Noviq code: scripts, code
// given on the command line, and the interactive REPL.
package shell

import (
	"io"
	"os"

	"src.noviq.dev/pkg/config"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/interp"
	"src.noviq.dev/pkg/logutil"
	"src.noviq.dev/pkg/prog"
	"src.noviq.dev/pkg/sys"
	"src.noviq.dev/pkg/vars"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It runs the script named by its first
// argument, or code given with -c. Without arguments, it starts the REPL when
// stdin is a terminal, and reads a script from stdin otherwise.
type Program struct {
	file      string
	codeInArg bool
	checkOnly bool
	db        string
	json      *bool
	config    *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.file, "e", "",
		"Execute the script `file`")
	fs.BoolVar(&p.codeInArg, "c", false,
		"Take the first argument as code to execute")
	fs.BoolVar(&p.checkOnly, "check", false,
		"Check the script for errors without executing it")
	fs.StringVar(&p.db, "db", "",
		"Path to the database of the REPL history")
	p.json = fs.JSON()
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	cfg, err := config.Load(config.Path(*p.config))
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(2)
	}
	if p.file != "" {
		if p.codeInArg || len(args) > 0 {
			return prog.BadUsage("-e can't be used with -c or a script argument")
		}
		args = []string{p.file}
	}

	sc := &scriptCfg{Cmd: p.codeInArg, CheckOnly: p.checkOnly, JSON: *p.json, Config: cfg}
	switch {
	case len(args) > 0:
		return prog.Exit(script(fds, args, sc))
	case p.codeInArg:
		return prog.BadUsage("-c requires an argument")
	case !p.checkOnly && sys.IsATTY(fds[0].Fd()):
		return interactInTTY(fds, cfg, p.db)
	}
	return prog.Exit(stdinScript(fds, sc))
}

// Creates an interpreter with a fresh variable store.
func newInterpreter(cfg config.Config, stdout io.Writer, stdin interp.LineReader) *interp.Interpreter {
	return interp.New(vars.NewStore(cfg.MaxVariables), interp.Config{
		Stdout: stdout, Stdin: stdin, MaxNesting: cfg.MaxNesting})
}
