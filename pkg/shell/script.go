package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.noviq.dev/pkg/check"
	"src.noviq.dev/pkg/config"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/interp"
	"src.noviq.dev/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd       bool
	CheckOnly bool
	JSON      bool
	Config    config.Config
}

// Executes a script named by args[0], or the code in args[0] if cfg.Cmd is
// true. Input statements read from stdin.
func script(fds [3]*os.File, args []string, cfg *scriptCfg) int {
	var src parse.Source
	if cfg.Cmd {
		src = parse.Source{Name: "code from -c", Code: args[0]}
	} else {
		var err error
		src, err = readScript(args[0], cfg.Config.FileExtension)
		if err != nil {
			diag.ShowError(fds[2], err)
			return 2
		}
	}
	return runSource(fds, src, cfg, interp.NewLineReader(fds[0], fds[1]))
}

// Executes a script read from stdin. Input statements always reach the end of
// input.
func stdinScript(fds [3]*os.File, cfg *scriptCfg) int {
	code, err := io.ReadAll(fds[0])
	if err != nil {
		diag.ShowError(fds[2], &diag.Error{Kind: diag.File,
			Message: "Cannot read script from stdin: " + err.Error()})
		return 2
	}
	return runSource(fds, parse.Source{Name: "[stdin]", Code: string(code)}, cfg, nil)
}

func runSource(fds [3]*os.File, src parse.Source, cfg *scriptCfg, stdin interp.LineReader) int {
	if cfg.CheckOnly {
		errs := check.Check(src, cfg.Config.MaxNesting)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(errs))
		} else {
			for _, err := range errs {
				diag.ShowError(fds[2], err)
				diag.ShowContext(fds[2], diag.NewContext(src.Name, src.Code, err))
			}
		}
		if len(errs) > 0 {
			return 2
		}
		return 0
	}

	logger.Println("executing", src.Name)
	err := newInterpreter(cfg.Config, fds[1], stdin).Eval(src)
	if err != nil {
		logger.Println("error executing", src.Name, err)
		diag.ShowError(fds[2], err)
		return 2
	}
	return 0
}

// Reads a script file, which must have the given extension.
func readScript(name, ext string) (parse.Source, error) {
	if filepath.Ext(name) != ext {
		return parse.Source{}, diag.Errorf(diag.File, "File must have %s extension", ext)
	}
	code, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return parse.Source{}, diag.Errorf(diag.File, "File '%s' not found", name)
	} else if err != nil {
		return parse.Source{}, diag.Errorf(diag.File, "Cannot open file '%s'", name)
	}
	if !utf8.Valid(code) {
		return parse.Source{}, diag.Errorf(diag.File, "File '%s' is not valid UTF-8", name)
	}
	return parse.Source{Name: name, Code: string(code), IsFile: true}, nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// Converts errors from the checker into JSON.
func errorsToJSON(errs []*diag.Error) []byte {
	converted := make([]errorInJSON, len(errs))
	for i, e := range errs {
		converted[i] = errorInJSON{e.File, e.Line, e.From, e.To, e.Kind.String(), e.Message}
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
